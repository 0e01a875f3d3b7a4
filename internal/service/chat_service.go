package service

import (
	"context"
	"fmt"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/dto"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/events"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/nats"
	"docchat-be/pkg/rag"

	"github.com/google/uuid"
)

// IChatService defines the conversation service interface
type IChatService interface {
	NewChat(ctx context.Context) (*dto.NewChatResponse, error)
	SubmitQuery(ctx context.Context, chatId string, query string, model string) (*entity.ChatMessage, error)
	GetHistory(ctx context.Context, chatId string) ([]*dto.ChatMessageResponse, error)
	ClearChat(ctx context.Context, chatId string) error
	ListChats(ctx context.Context) (*dto.ChatListResponse, error)
}

type chatService struct {
	uowFactory    unitofwork.RepositoryFactory
	store         rag.ConversationStore
	retriever     *rag.Retriever
	promptBuilder *rag.PromptBuilder
	pipeline      *rag.Pipeline
	natsPublisher *nats.Publisher
	logger        logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	store rag.ConversationStore,
	retriever *rag.Retriever,
	promptBuilder *rag.PromptBuilder,
	pipeline *rag.Pipeline,
	natsPublisher *nats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:    uowFactory,
		store:         store,
		retriever:     retriever,
		promptBuilder: promptBuilder,
		pipeline:      pipeline,
		natsPublisher: natsPublisher,
		logger:        log,
	}
}

// NewChat opens a conversation and seeds it with the welcome message.
func (cs *chatService) NewChat(ctx context.Context) (*dto.NewChatResponse, error) {
	chatId := uuid.New().String()

	welcome := &entity.ChatMessage{
		ChatId:    chatId,
		Role:      entity.RoleAssistant,
		Content:   constant.WelcomeMessage,
		CreatedAt: time.Now(),
	}
	if err := cs.store.Append(ctx, welcome); err != nil {
		return nil, fmt.Errorf("seed welcome message: %w", err)
	}

	cs.logger.Info("ChatService", "New chat created", map[string]interface{}{"chat_id": chatId})
	return &dto.NewChatResponse{
		ChatId:  chatId,
		Welcome: toMessageResponse(welcome),
	}, nil
}

// SubmitQuery runs one user question through retrieval and generation.
// The user message is persisted before retrieval so it is part of chat
// history even if generation fails. A non-empty model overrides the
// configured default for this query only.
func (cs *chatService) SubmitQuery(ctx context.Context, chatId string, query string, model string) (*entity.ChatMessage, error) {
	userMsg := &entity.ChatMessage{
		ChatId:    chatId,
		Role:      entity.RoleUser,
		Content:   query,
		CreatedAt: time.Now(),
	}
	if err := cs.store.Append(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	retrieved, err := cs.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	prompt, err := cs.promptBuilder.Build(ctx, chatId, query, retrieved)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	var opts []llm.Option
	if model != "" {
		opts = append(opts, llm.WithModel(model))
	}
	answer, err := cs.pipeline.Answer(ctx, chatId, prompt, retrieved, opts...)
	if err != nil {
		return nil, err
	}

	// Auxiliary event bus, answer delivery does not depend on it.
	if cs.natsPublisher != nil {
		if err := cs.natsPublisher.Publish(ctx, events.NewAnswerCompleted(chatId, answer.Id)); err != nil {
			cs.logger.Warn("ChatService", "Failed to publish answer event", map[string]interface{}{
				"chat_id": chatId,
				"error":   err.Error(),
			})
		}
	}
	return answer, nil
}

func (cs *chatService) GetHistory(ctx context.Context, chatId string) ([]*dto.ChatMessageResponse, error) {
	messages, err := cs.store.Recent(ctx, chatId, 0)
	if err != nil {
		return nil, err
	}
	responses := make([]*dto.ChatMessageResponse, len(messages))
	for i, msg := range messages {
		responses[i] = toMessageResponse(msg)
	}
	return responses, nil
}

// ClearChat removes every message in the conversation transactionally.
func (cs *chatService) ClearChat(ctx context.Context, chatId string) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := uow.ChatMessageRepository().DeleteByChatId(ctx, chatId); err != nil {
		uow.Rollback()
		return fmt.Errorf("clear chat %s: %w", chatId, err)
	}
	if err := uow.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	cs.logger.Info("ChatService", "Chat cleared", map[string]interface{}{"chat_id": chatId})
	return nil
}

func (cs *chatService) ListChats(ctx context.Context) (*dto.ChatListResponse, error) {
	ids, err := cs.store.DistinctChatIDs(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ChatListResponse{ChatIds: ids}, nil
}

func toMessageResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}
