package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"docchat-be/internal/entity"
	"docchat-be/internal/model"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToModel(chunk *entity.Chunk, embedding []float32) (*model.DocumentChunk, error) {
	meta := model.ChunkMetadata{
		Source:      chunk.SourcePath,
		PositionKey: chunk.PositionKey,
		Ordinal:     chunk.Ordinal,
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal chunk metadata: %w", err)
	}
	return &model.DocumentChunk{
		ChunkId:   chunk.ChunkID,
		Content:   chunk.Content,
		Metadata:  raw,
		Embedding: pgvector.NewVector(embedding),
	}, nil
}

func (m *DocumentChunkMapper) ToEntity(row *model.DocumentChunk) (*entity.Chunk, error) {
	if row == nil {
		return nil, nil
	}
	var meta model.ChunkMetadata
	if len(row.Metadata) > 0 {
		if err := json.Unmarshal(row.Metadata, &meta); err != nil {
			return nil, fmt.Errorf("unmarshal chunk metadata: %w", err)
		}
	}
	return &entity.Chunk{
		ChunkID:     row.ChunkId,
		SourcePath:  meta.Source,
		PositionKey: meta.PositionKey,
		Ordinal:     meta.Ordinal,
		Content:     row.Content,
	}, nil
}
