package ingest

import (
	"context"
	"errors"
	"testing"

	"docchat-be/internal/entity"
	"docchat-be/pkg/vectorstore"
)

// fakeStore keeps chunks in memory and counts calls.
type fakeStore struct {
	chunks      map[string]entity.Chunk
	upsertCalls int
	listErr     error
	upsertErr   error
	resetCalls  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{chunks: make(map[string]entity.Chunk)}
}

func (f *fakeStore) Upsert(ctx context.Context, chunks []entity.Chunk) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upsertCalls++
	for _, c := range chunks {
		f.chunks[c.ChunkID] = c
	}
	return nil
}

func (f *fakeStore) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := make(map[string]struct{}, len(f.chunks))
	for id := range f.chunks {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (f *fakeStore) Query(ctx context.Context, query string, k int) ([]vectorstore.ScoredChunk, error) {
	return nil, nil
}

func (f *fakeStore) Reset(ctx context.Context) error {
	f.resetCalls++
	f.chunks = make(map[string]entity.Chunk)
	return nil
}

func TestIndexerSyncAddsOnlyNewChunks(t *testing.T) {
	store := newFakeStore()
	indexer := NewIndexer(store)

	chunks := AssignChunkIDs([]entity.Chunk{
		{SourcePath: "a.pdf", PositionKey: 1, Content: "one"},
		{SourcePath: "a.pdf", PositionKey: 1, Content: "two"},
		{SourcePath: "b.pdf", PositionKey: 1, Content: "three"},
	})

	added, err := indexer.Sync(context.Background(), chunks)
	if err != nil {
		t.Fatal(err)
	}
	if added != 3 {
		t.Errorf("first sync added = %d, want 3", added)
	}

	// Replaying the identical input is a no-op.
	added, err = indexer.Sync(context.Background(), chunks)
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Errorf("second sync added = %d, want 0", added)
	}
	if store.upsertCalls != 1 {
		t.Errorf("upsert calls = %d, want 1 (no batch for empty diff)", store.upsertCalls)
	}

	// New material still lands alongside the old.
	more := AssignChunkIDs([]entity.Chunk{
		{SourcePath: "c.pdf", PositionKey: 1, Content: "four"},
	})
	added, err = indexer.Sync(context.Background(), append(chunks, more...))
	if err != nil {
		t.Fatal(err)
	}
	if added != 1 {
		t.Errorf("third sync added = %d, want 1", added)
	}
}

func TestIndexerSyncStoreUnavailable(t *testing.T) {
	store := newFakeStore()
	store.listErr = vectorstore.ErrUnavailable
	indexer := NewIndexer(store)

	_, err := indexer.Sync(context.Background(), []entity.Chunk{{ChunkID: "a.pdf:1:0"}})
	if !errors.Is(err, vectorstore.ErrUnavailable) {
		t.Errorf("error = %v, want ErrUnavailable", err)
	}
}

func TestIndexerSyncUpsertFailureCommitsNothing(t *testing.T) {
	store := newFakeStore()
	store.upsertErr = vectorstore.ErrUnavailable
	indexer := NewIndexer(store)

	chunks := AssignChunkIDs([]entity.Chunk{
		{SourcePath: "a.pdf", PositionKey: 1, Content: "one"},
	})
	_, err := indexer.Sync(context.Background(), chunks)
	if !errors.Is(err, vectorstore.ErrUnavailable) {
		t.Fatalf("error = %v, want ErrUnavailable", err)
	}
	if len(store.chunks) != 0 {
		t.Errorf("store has %d chunks after failed upsert, want 0", len(store.chunks))
	}
}
