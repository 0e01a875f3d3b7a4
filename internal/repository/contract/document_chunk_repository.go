package contract

import (
	"context"

	"docchat-be/internal/entity"
)

// ScoredChunk pairs a chunk with its cosine distance to a query embedding.
// Lower scores mean closer matches.
type ScoredChunk struct {
	Chunk entity.Chunk
	Score float64
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk, embeddings [][]float32) error
	ListChunkIds(ctx context.Context) ([]string, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]ScoredChunk, error)
	DeleteAll(ctx context.Context) error
}
