package rag

import (
	"context"
	"fmt"

	"docchat-be/pkg/vectorstore"
)

const (
	// DefaultTopK is how many candidates a similarity query returns
	// before relevance filtering.
	DefaultTopK = 10

	// RelevanceThreshold is the cosine-distance cutoff: only candidates
	// strictly below it count as relevant.
	RelevanceThreshold = 1.0
)

// RetrievedContext is the ephemeral per-query retrieval result. Passages
// hold only candidates that passed the relevance filter, in query order.
type RetrievedContext struct {
	Passages []vectorstore.ScoredChunk
}

// Empty reports whether no candidate passed the relevance filter; the
// prompt builder then states this plainly instead of omitting the block.
func (c *RetrievedContext) Empty() bool {
	return c == nil || len(c.Passages) == 0
}

// Retriever issues similarity queries and applies the relevance filter.
type Retriever struct {
	store vectorstore.VectorStore
	topK  int
}

func NewRetriever(store vectorstore.VectorStore, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{store: store, topK: topK}
}

// Retrieve returns the relevant context for a query. Candidates with a
// score at or above the threshold never appear in the result.
func (r *Retriever) Retrieve(ctx context.Context, query string) (*RetrievedContext, error) {
	candidates, err := r.store.Query(ctx, query, r.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}

	retrieved := &RetrievedContext{}
	for _, c := range candidates {
		if c.Score < RelevanceThreshold {
			retrieved.Passages = append(retrieved.Passages, c)
		}
	}
	return retrieved, nil
}
