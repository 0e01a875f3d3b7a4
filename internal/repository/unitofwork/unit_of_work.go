package unitofwork

import (
	"context"

	"docchat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatMessageRepository() contract.ChatMessageRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
}
