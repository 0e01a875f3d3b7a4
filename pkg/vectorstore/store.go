package vectorstore

import (
	"context"
	"errors"

	"docchat-be/internal/entity"
)

// ErrUnavailable reports that the backing index could not be reached.
// Callers abort the current ingestion or retrieval call entirely; no
// partial state is committed.
var ErrUnavailable = errors.New("vector store unavailable")

// ScoredChunk is one similarity-query candidate. Score is a cosine
// distance: lower means more relevant.
type ScoredChunk struct {
	Chunk entity.Chunk
	Score float64
}

// VectorStore is the capability contract for the persisted chunk index.
// Upsert is keyed by chunk identifier and idempotent; ListIDs reflects
// the store itself, the sole source of truth for what is indexed.
type VectorStore interface {
	Upsert(ctx context.Context, chunks []entity.Chunk) error
	ListIDs(ctx context.Context) (map[string]struct{}, error)
	Query(ctx context.Context, query string, k int) ([]ScoredChunk, error)
	Reset(ctx context.Context) error
}
