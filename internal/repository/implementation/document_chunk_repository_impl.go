package implementation

import (
	"context"
	"fmt"

	"docchat-be/internal/mapper"
	"docchat-be/internal/model"
	"docchat-be/internal/repository/contract"

	"docchat-be/internal/entity"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocumentChunk, len(chunks))
	for i, chunk := range chunks {
		m, err := r.mapper.ToModel(chunk, embeddings[i])
		if err != nil {
			return err
		}
		models[i] = m
	}
	// Chunk ids are deterministic, so a replayed batch is a no-op.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chunk_id"}},
			DoNothing: true,
		}).
		Create(models).Error
}

func (r *DocumentChunkRepositoryImpl) ListChunkIds(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Pluck("chunk_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *DocumentChunkRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int) ([]contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []struct {
		model.DocumentChunk
		Score float64
	}
	// pgvector cosine distance: lower score means closer match.
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Select("*, embedding <=> ? AS score", pgvector.NewVector(embedding)).
		Order(gorm.Expr("embedding <=> ?", pgvector.NewVector(embedding))).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]contract.ScoredChunk, 0, len(rows))
	for i := range rows {
		chunk, err := r.mapper.ToEntity(&rows[i].DocumentChunk)
		if err != nil {
			return nil, err
		}
		scored = append(scored, contract.ScoredChunk{Chunk: *chunk, Score: rows[i].Score})
	}
	return scored, nil
}

func (r *DocumentChunkRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&model.DocumentChunk{}).Error
}
