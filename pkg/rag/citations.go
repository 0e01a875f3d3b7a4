package rag

import (
	"fmt"
	"strings"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
)

// SourceLabel maps a chunk identifier to the human-readable label shown
// in the answer's source list: the source path with its position and
// ordinal segments stripped, reduced to its final path element. Returns
// "" for identifiers that don't carry the expected trailing segments.
func SourceLabel(chunkID string) string {
	src := entity.ChunkSourcePath(chunkID)
	if src == "" {
		return ""
	}
	// Source paths may have been recorded on another OS; treat both
	// separators as path boundaries.
	if i := strings.LastIndexAny(src, `/\`); i >= 0 {
		src = src[i+1:]
	}
	return src
}

// SourceLabels derives the labels for every retrieved passage,
// deduplicated in first-seen order.
func (c *RetrievedContext) SourceLabels() []string {
	var labels []string
	seen := make(map[string]struct{})
	for _, p := range c.Passages {
		label := SourceLabel(p.Chunk.ChunkID)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}

// AppendSources attaches a rendered source list to the answer text. The
// text is returned unchanged when there are no labels.
func AppendSources(text string, labels []string) string {
	if len(labels) == 0 {
		return text
	}
	var items strings.Builder
	for _, label := range labels {
		items.WriteString(fmt.Sprintf("<li>%s</li>\n", label))
	}
	return fmt.Sprintf("%s\n\n%s\n<ul>%s</ul>", text, constant.SourcesHeading, items.String())
}
