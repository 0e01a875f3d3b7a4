package loader

import (
	"context"
	"fmt"

	"docchat-be/internal/entity"
)

// DocumentLoader extracts text from a single source file.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (*entity.SourceDocument, error)
}

// LoadError marks a single source document as unreadable or corrupt.
// Ingestion skips that document and continues with the rest.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
