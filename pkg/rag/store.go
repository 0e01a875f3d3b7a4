package rag

import (
	"context"

	"docchat-be/internal/entity"
)

// ConversationStore persists chat messages. Append assigns the message
// id; Recent returns at most n newest messages in ascending time order.
type ConversationStore interface {
	Append(ctx context.Context, msg *entity.ChatMessage) error
	Recent(ctx context.Context, chatID string, n int) ([]*entity.ChatMessage, error)
	UpdateContent(ctx context.Context, messageID int64, content string) error
	DeleteAll(ctx context.Context, chatID string) error
	DistinctChatIDs(ctx context.Context) ([]string, error)
}
