package contract

import (
	"context"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	UpdateContent(ctx context.Context, messageId int64, content string) error
	DeleteByChatId(ctx context.Context, chatId string) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	DistinctChatIds(ctx context.Context) ([]string, error)
}
