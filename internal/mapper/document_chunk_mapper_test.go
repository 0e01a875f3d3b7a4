package mapper

import (
	"testing"

	"docchat-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestDocumentChunkMapperRoundTrip(t *testing.T) {
	m := NewDocumentChunkMapper()

	chunk := &entity.Chunk{
		ChunkID:     "data/report.pdf:3:1",
		SourcePath:  "data/report.pdf",
		PositionKey: 3,
		Ordinal:     1,
		Content:     "some passage",
	}

	row, err := m.ToModel(chunk, []float32{0.1, 0.2, 0.3})
	assert.NoError(t, err)
	assert.Equal(t, chunk.ChunkID, row.ChunkId)
	assert.Equal(t, chunk.Content, row.Content)
	assert.JSONEq(t, `{"source":"data/report.pdf","position_key":3,"ordinal":1}`, string(row.Metadata))

	back, err := m.ToEntity(row)
	assert.NoError(t, err)
	assert.Equal(t, chunk, back)
}

func TestDocumentChunkMapperBadMetadata(t *testing.T) {
	m := NewDocumentChunkMapper()

	row, err := m.ToModel(&entity.Chunk{ChunkID: "a.pdf:1:0"}, nil)
	assert.NoError(t, err)

	row.Metadata = []byte("{not json")
	_, err = m.ToEntity(row)
	assert.Error(t, err)
}
