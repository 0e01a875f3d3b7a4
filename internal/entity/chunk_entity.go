package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Chunk is a contiguous slice of a SourceDocument's text, the unit of
// retrieval. Created by the splitter; the identity assigner attaches
// ChunkID and Ordinal once, after which the chunk is immutable.
type Chunk struct {
	// ChunkID is "<sourcePath>:<positionKey>:<ordinal>". Stable across
	// repeated ingestion runs of the same unchanged source.
	ChunkID string

	SourcePath string

	// PositionKey is the page number for paginated sources, otherwise
	// the rune offset of the window start within the document text.
	PositionKey int

	// Ordinal is the 0-based count of chunks sharing the same
	// (SourcePath, PositionKey) pair, in splitter order.
	Ordinal int

	Content string
}

// FormatChunkID builds the persisted chunk identifier. The three parts are
// joined by literal ':' with no escaping; source paths containing ':'
// produce ambiguous identifiers (known limitation of the stored format).
func FormatChunkID(sourcePath string, positionKey, ordinal int) string {
	return fmt.Sprintf("%s:%d:%d", sourcePath, positionKey, ordinal)
}

// ChunkSourcePath returns the source path encoded in a chunk identifier:
// everything before the trailing ":<positionKey>:<ordinal>" pair. The
// empty string is returned for identifiers that do not carry both
// numeric segments.
func ChunkSourcePath(chunkID string) string {
	rest, ok := trimNumericSegment(chunkID)
	if !ok {
		return ""
	}
	rest, ok = trimNumericSegment(rest)
	if !ok {
		return ""
	}
	return rest
}

func trimNumericSegment(s string) (string, bool) {
	i := strings.LastIndexByte(s, ':')
	if i <= 0 {
		return "", false
	}
	if _, err := strconv.Atoi(s[i+1:]); err != nil {
		return "", false
	}
	return s[:i], true
}
