package ingest

import (
	"context"
	"fmt"

	"docchat-be/internal/entity"
	"docchat-be/pkg/vectorstore"
)

// Indexer adds only chunks not already present in the vector store,
// keyed by chunk identifier. Safe to re-run against the same document
// set arbitrarily many times.
type Indexer struct {
	store vectorstore.VectorStore
}

func NewIndexer(store vectorstore.VectorStore) *Indexer {
	return &Indexer{store: store}
}

// Sync diffs the incoming chunks against the store's identifier listing
// and upserts the new ones in a single batch. Returns how many were
// added. An unreachable store fails the whole call; nothing is committed.
func (ix *Indexer) Sync(ctx context.Context, chunks []entity.Chunk) (int, error) {
	existing, err := ix.store.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list indexed chunk ids: %w", err)
	}

	newChunks := make([]entity.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if _, ok := existing[c.ChunkID]; !ok {
			newChunks = append(newChunks, c)
		}
	}

	if len(newChunks) == 0 {
		return 0, nil
	}

	if err := ix.store.Upsert(ctx, newChunks); err != nil {
		return 0, fmt.Errorf("upsert %d chunks: %w", len(newChunks), err)
	}
	return len(newChunks), nil
}
