package vectorstore

import (
	"context"
	"fmt"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/vectorstore"
)

// PgVectorStore keeps document chunks in Postgres with pgvector embeddings.
// Embeddings are generated on the way in, so callers only deal with text.
type PgVectorStore struct {
	chunks   contract.DocumentChunkRepository
	embedder embedding.EmbeddingProvider
}

func NewPgVectorStore(chunks contract.DocumentChunkRepository, embedder embedding.EmbeddingProvider) *PgVectorStore {
	return &PgVectorStore{
		chunks:   chunks,
		embedder: embedder,
	}
}

func (s *PgVectorStore) Upsert(ctx context.Context, chunks []entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	refs := make([]*entity.Chunk, len(chunks))
	embeddings := make([][]float32, len(chunks))
	for i := range chunks {
		resp, err := s.embedder.Generate(ctx, chunks[i].Content, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("%w: embed chunk %s: %v", vectorstore.ErrUnavailable, chunks[i].ChunkID, err)
		}
		refs[i] = &chunks[i]
		embeddings[i] = resp.Embedding.Values
	}
	if err := s.chunks.CreateBulk(ctx, refs, embeddings); err != nil {
		return fmt.Errorf("%w: upsert chunks: %v", vectorstore.ErrUnavailable, err)
	}
	return nil
}

func (s *PgVectorStore) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	ids, err := s.chunks.ListChunkIds(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list chunk ids: %v", vectorstore.ErrUnavailable, err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (s *PgVectorStore) Query(ctx context.Context, query string, k int) ([]vectorstore.ScoredChunk, error) {
	resp, err := s.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", vectorstore.ErrUnavailable, err)
	}
	rows, err := s.chunks.SearchSimilarWithScore(ctx, resp.Embedding.Values, k)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search: %v", vectorstore.ErrUnavailable, err)
	}
	scored := make([]vectorstore.ScoredChunk, len(rows))
	for i, row := range rows {
		scored[i] = vectorstore.ScoredChunk{Chunk: row.Chunk, Score: row.Score}
	}
	return scored, nil
}

func (s *PgVectorStore) Reset(ctx context.Context) error {
	if err := s.chunks.DeleteAll(ctx); err != nil {
		return fmt.Errorf("%w: reset index: %v", vectorstore.ErrUnavailable, err)
	}
	return nil
}
