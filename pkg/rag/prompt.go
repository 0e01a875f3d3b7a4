package rag

import (
	"context"
	"fmt"
	"strings"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
)

// HistoryLimit bounds how many recent messages enter the prompt. Older
// turns are silently excluded, not summarized.
const HistoryLimit = 10

// PromptBuilder assembles bounded conversation history plus retrieved
// context and the current question into a single prompt.
type PromptBuilder struct {
	store ConversationStore
}

func NewPromptBuilder(store ConversationStore) *PromptBuilder {
	return &PromptBuilder{store: store}
}

// Build renders the full prompt for one query.
func (b *PromptBuilder) Build(ctx context.Context, chatID, query string, retrieved *RetrievedContext) (string, error) {
	history, err := b.store.Recent(ctx, chatID, HistoryLimit)
	if err != nil {
		return "", fmt.Errorf("load conversation history: %w", err)
	}

	var prompt strings.Builder
	prompt.WriteString(constant.AnswerPromptHeader)
	prompt.WriteString("\n\n")

	writeHistory(&prompt, history)
	writeContext(&prompt, retrieved)

	prompt.WriteString("Question:\n")
	prompt.WriteString(query)
	prompt.WriteString("\n\nAnswer:\n")

	return prompt.String(), nil
}

func writeHistory(prompt *strings.Builder, history []*entity.ChatMessage) {
	prompt.WriteString("Conversation So Far:\n")
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role.Title(), m.Content))
	}
	prompt.WriteString(strings.Join(lines, "\n"))
	prompt.WriteString("\n\n")
}

func writeContext(prompt *strings.Builder, retrieved *RetrievedContext) {
	prompt.WriteString("Retrieved Context:\n")
	if retrieved.Empty() {
		prompt.WriteString(constant.NoContextFound)
	} else {
		contents := make([]string, 0, len(retrieved.Passages))
		for _, p := range retrieved.Passages {
			contents = append(contents, p.Chunk.Content)
		}
		prompt.WriteString(strings.Join(contents, constant.ContextSeparator))
	}
	prompt.WriteString("\n\n")
}
