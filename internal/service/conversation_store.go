package service

import (
	"context"
	"fmt"

	"docchat-be/internal/entity"
	"docchat-be/internal/repository/specification"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/rag"
)

// conversationStore backs rag.ConversationStore with the chat message repository.
type conversationStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewConversationStore(uowFactory unitofwork.RepositoryFactory) rag.ConversationStore {
	return &conversationStore{uowFactory: uowFactory}
}

func (s *conversationStore) Append(ctx context.Context, msg *entity.ChatMessage) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

func (s *conversationStore) Recent(ctx context.Context, chatID string, n int) ([]*entity.ChatMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	// Newest n rows first, then flipped back to chronological order.
	// n <= 0 means the whole conversation.
	specs := []specification.Specification{
		specification.ByChatID{ChatID: chatID},
		specification.OrderBy{Field: "id", Desc: true},
	}
	if n > 0 {
		specs = append(specs, specification.Limit{N: n})
	}
	messages, err := uow.ChatMessageRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *conversationStore) UpdateContent(ctx context.Context, messageID int64, content string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().UpdateContent(ctx, messageID, content); err != nil {
		return fmt.Errorf("update chat message %d: %w", messageID, err)
	}
	return nil
}

func (s *conversationStore) DeleteAll(ctx context.Context, chatID string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ChatMessageRepository().DeleteByChatId(ctx, chatID); err != nil {
		return fmt.Errorf("clear chat %s: %w", chatID, err)
	}
	return nil
}

func (s *conversationStore) DistinctChatIDs(ctx context.Context) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ids, err := uow.ChatMessageRepository().DistinctChatIds(ctx)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return ids, nil
}
