package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/markdown"
)

// AnswerState tracks one query through the streaming pipeline.
type AnswerState int

const (
	StatePending AnswerState = iota
	StateStreaming
	StateFinalizing
	StateComplete
	StateFailed
)

func (s AnswerState) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateStreaming:
		return "STREAMING"
	case StateFinalizing:
		return "FINALIZING"
	case StateComplete:
		return "COMPLETE"
	case StateFailed:
		return "FAILED"
	}
	return "UNKNOWN"
}

// Pipeline drives token-by-token answer generation: it persists a
// placeholder, streams tokens to the conversation's channel, then
// finalizes with source citations and the rendered answer.
type Pipeline struct {
	model    llm.LLMProvider
	store    ConversationStore
	notifier Notifier
	renderer *markdown.Renderer
	logger   logger.ILogger
}

func NewPipeline(
	model llm.LLMProvider,
	store ConversationStore,
	notifier Notifier,
	renderer *markdown.Renderer,
	log logger.ILogger,
) *Pipeline {
	return &Pipeline{
		model:    model,
		store:    store,
		notifier: notifier,
		renderer: renderer,
		logger:   log,
	}
}

// Answer runs one query to completion and returns the persisted final
// message. On a model failure the placeholder row is deliberately left
// in place: tokens already emitted stay visible to subscribers and the
// inconsistency is surfaced via a stream_error event rather than hidden.
func (p *Pipeline) Answer(
	ctx context.Context,
	chatID string,
	prompt string,
	retrieved *RetrievedContext,
	opts ...llm.Option,
) (*entity.ChatMessage, error) {
	state := StatePending

	placeholder := &entity.ChatMessage{
		ChatId:    chatID,
		Role:      entity.RoleAssistant,
		Content:   constant.PlaceholderAnswer,
		CreatedAt: time.Now(),
	}
	if err := p.store.Append(ctx, placeholder); err != nil {
		return nil, fmt.Errorf("persist placeholder message: %w", err)
	}

	// Announce the message id first so subscribers can correlate the
	// tokens that follow.
	p.notifier.Publish(chatID, EventStreamStart, StreamStart{MessageID: placeholder.Id})

	state = StateStreaming
	var accumulator strings.Builder
	err := p.model.Stream(ctx, prompt, func(token string) error {
		accumulator.WriteString(token)
		p.notifier.Publish(chatID, EventStreamToken, StreamToken{
			MessageID: placeholder.Id,
			Token:     token,
		})
		return nil
	}, opts...)
	if err != nil {
		state = StateFailed
		p.logger.Error("Pipeline", "Generation failed mid-stream", map[string]interface{}{
			"chat_id":    chatID,
			"message_id": placeholder.Id,
			"state":      state.String(),
			"error":      err.Error(),
		})
		p.notifier.Publish(chatID, EventStreamError, StreamError{
			MessageID: placeholder.Id,
			Error:     err.Error(),
		})
		return nil, fmt.Errorf("stream completion: %w", err)
	}

	state = StateFinalizing
	annotated := AppendSources(accumulator.String(), retrieved.SourceLabels())
	rendered, err := p.renderer.Render(annotated)
	if err != nil {
		state = StateFailed
		p.logger.Error("Pipeline", "Failed to render answer", map[string]interface{}{
			"chat_id":    chatID,
			"message_id": placeholder.Id,
			"state":      state.String(),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("render answer: %w", err)
	}

	if err := p.store.UpdateContent(ctx, placeholder.Id, rendered); err != nil {
		state = StateFailed
		p.logger.Error("Pipeline", "Failed to persist final answer", map[string]interface{}{
			"chat_id":    chatID,
			"message_id": placeholder.Id,
			"state":      state.String(),
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("persist final answer: %w", err)
	}
	placeholder.Content = rendered

	state = StateComplete
	p.notifier.Publish(chatID, EventFinalResponse, FinalResponse{
		MessageID:    placeholder.Id,
		FinalMessage: rendered,
	})
	p.logger.Info("Pipeline", "Answer completed", map[string]interface{}{
		"chat_id":    chatID,
		"message_id": placeholder.Id,
		"state":      state.String(),
	})
	return placeholder, nil
}
