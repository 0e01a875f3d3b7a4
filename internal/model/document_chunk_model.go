package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunk struct {
	// ChunkId is the natural key "<sourcePath>:<positionKey>:<ordinal>";
	// upserts conflict on it, which is what makes re-ingestion idempotent.
	ChunkId   string          `gorm:"primaryKey;type:text"`
	Content   string          `gorm:"type:text"`
	Metadata  datatypes.JSON  `gorm:"type:jsonb"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // nomic-embed-text / text-embedding-004 use 768 dimensions
	CreatedAt time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}

// ChunkMetadata is the structured metadata persisted alongside each
// chunk's content and embedding.
type ChunkMetadata struct {
	Source      string `json:"source"`
	PositionKey int    `json:"position_key"`
	Ordinal     int    `json:"ordinal"`
}
