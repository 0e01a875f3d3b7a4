package rag

import (
	"strings"
	"testing"

	"docchat-be/internal/entity"
	"docchat-be/pkg/vectorstore"
)

func TestSourceLabel(t *testing.T) {
	tests := []struct {
		name    string
		chunkID string
		want    string
	}{
		{
			name:    "unix path",
			chunkID: "data/report.pdf:3:0",
			want:    "report.pdf",
		},
		{
			name:    "nested path",
			chunkID: "data/archive/2024/guide.pdf:12:4",
			want:    "guide.pdf",
		},
		{
			name:    "windows path",
			chunkID: `data\docs\manual.pdf:1:0`,
			want:    "manual.pdf",
		},
		{
			name:    "bare filename",
			chunkID: "notes.txt:1600:0",
			want:    "notes.txt",
		},
		{
			name:    "malformed identifier",
			chunkID: "garbage",
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SourceLabel(tt.chunkID); got != tt.want {
				t.Errorf("SourceLabel(%q) = %q, want %q", tt.chunkID, got, tt.want)
			}
		})
	}
}

func TestSourceLabelsDeduplicatesFirstSeen(t *testing.T) {
	retrieved := &RetrievedContext{Passages: []vectorstore.ScoredChunk{
		{Chunk: entity.Chunk{ChunkID: "data/report.pdf:3:0"}},
		{Chunk: entity.Chunk{ChunkID: "data/report.pdf:3:1"}},
		{Chunk: entity.Chunk{ChunkID: "data/guide.pdf:1:0"}},
		{Chunk: entity.Chunk{ChunkID: "data/report.pdf:4:0"}},
	}}

	labels := retrieved.SourceLabels()

	want := []string{"report.pdf", "guide.pdf"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestAppendSources(t *testing.T) {
	got := AppendSources("The answer.", []string{"report.pdf", "guide.pdf"})

	if !strings.HasPrefix(got, "The answer.") {
		t.Errorf("answer text not preserved: %q", got)
	}
	if !strings.Contains(got, "<h4>Here my Sources:</h4>") {
		t.Errorf("missing sources heading: %q", got)
	}
	if !strings.Contains(got, "<li>report.pdf</li>") || !strings.Contains(got, "<li>guide.pdf</li>") {
		t.Errorf("missing list items: %q", got)
	}
}

func TestAppendSourcesNoLabels(t *testing.T) {
	if got := AppendSources("Plain answer.", nil); got != "Plain answer." {
		t.Errorf("AppendSources with no labels = %q, want unchanged text", got)
	}
}
