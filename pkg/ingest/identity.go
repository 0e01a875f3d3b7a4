package ingest

import (
	"docchat-be/internal/entity"
)

// AssignChunkIDs attaches a stable identifier to every chunk, in place,
// and returns the same slice in the same order. The ordinal counts
// consecutive chunks sharing a (sourcePath, positionKey) pair and resets
// to 0 whenever the pair changes, even if a pair recurs later. Given the
// same ordered input the exact same identifiers come out every run; that
// determinism is what makes incremental indexing correct.
func AssignChunkIDs(chunks []entity.Chunk) []entity.Chunk {
	var (
		lastPath string
		lastKey  int
		seen     bool
		ordinal  int
	)

	for i := range chunks {
		c := &chunks[i]
		if seen && c.SourcePath == lastPath && c.PositionKey == lastKey {
			ordinal++
		} else {
			ordinal = 0
		}
		c.Ordinal = ordinal
		c.ChunkID = entity.FormatChunkID(c.SourcePath, c.PositionKey, c.Ordinal)
		lastPath, lastKey, seen = c.SourcePath, c.PositionKey, true
	}

	return chunks
}
