package rag

import (
	"context"
	"strings"
	"testing"

	"docchat-be/internal/constant"
	"docchat-be/internal/entity"
	"docchat-be/pkg/vectorstore"
)

// memoryStore is an in-memory ConversationStore for tests.
type memoryStore struct {
	messages  map[string][]*entity.ChatMessage
	nextId    int64
	appendErr error
	updateErr error
	recentErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{messages: make(map[string][]*entity.ChatMessage)}
}

func (s *memoryStore) Append(ctx context.Context, msg *entity.ChatMessage) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.nextId++
	msg.Id = s.nextId
	stored := *msg
	s.messages[msg.ChatId] = append(s.messages[msg.ChatId], &stored)
	return nil
}

func (s *memoryStore) Recent(ctx context.Context, chatID string, n int) ([]*entity.ChatMessage, error) {
	if s.recentErr != nil {
		return nil, s.recentErr
	}
	all := s.messages[chatID]
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	out := make([]*entity.ChatMessage, len(all))
	copy(out, all)
	return out, nil
}

func (s *memoryStore) UpdateContent(ctx context.Context, messageID int64, content string) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for _, msgs := range s.messages {
		for _, m := range msgs {
			if m.Id == messageID {
				m.Content = content
				return nil
			}
		}
	}
	return nil
}

func (s *memoryStore) DeleteAll(ctx context.Context, chatID string) error {
	delete(s.messages, chatID)
	return nil
}

func (s *memoryStore) DistinctChatIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for id := range s.messages {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *memoryStore) find(messageID int64) *entity.ChatMessage {
	for _, msgs := range s.messages {
		for _, m := range msgs {
			if m.Id == messageID {
				return m
			}
		}
	}
	return nil
}

func seedHistory(t *testing.T, store *memoryStore, chatID string, turns ...string) {
	t.Helper()
	role := entity.RoleUser
	for _, content := range turns {
		if err := store.Append(context.Background(), &entity.ChatMessage{
			ChatId:  chatID,
			Role:    role,
			Content: content,
		}); err != nil {
			t.Fatal(err)
		}
		if role == entity.RoleUser {
			role = entity.RoleAssistant
		} else {
			role = entity.RoleUser
		}
	}
}

func TestPromptIncludesHistoryAndContext(t *testing.T) {
	store := newMemoryStore()
	seedHistory(t, store, "chat-1", "What is pgvector?", "An extension.")

	builder := NewPromptBuilder(store)
	retrieved := &RetrievedContext{Passages: []vectorstore.ScoredChunk{
		{Chunk: entity.Chunk{ChunkID: "a.pdf:1:0", Content: "first passage"}},
		{Chunk: entity.Chunk{ChunkID: "b.pdf:1:0", Content: "second passage"}},
	}}

	prompt, err := builder.Build(context.Background(), "chat-1", "How does it index?", retrieved)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"User: What is pgvector?",
		"Assistant: An extension.",
		"first passage",
		"second passage",
		constant.ContextSeparator,
		"Question:\nHow does it index?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if !strings.HasSuffix(prompt, "Answer:\n") {
		t.Errorf("prompt does not end with the answer cue")
	}
}

func TestPromptEmptyContextSentinel(t *testing.T) {
	store := newMemoryStore()
	builder := NewPromptBuilder(store)

	prompt, err := builder.Build(context.Background(), "chat-1", "Anything?", &RetrievedContext{})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(prompt, constant.NoContextFound) {
		t.Errorf("prompt missing empty-context sentinel: %q", prompt)
	}
}

func TestPromptHistoryBounded(t *testing.T) {
	store := newMemoryStore()
	turns := make([]string, 14)
	for i := range turns {
		turns[i] = "turn-" + string(rune('a'+i))
	}
	seedHistory(t, store, "chat-1", turns...)

	builder := NewPromptBuilder(store)
	prompt, err := builder.Build(context.Background(), "chat-1", "q", &RetrievedContext{})
	if err != nil {
		t.Fatal(err)
	}

	// Only the latest HistoryLimit turns survive.
	if strings.Contains(prompt, "turn-a") {
		t.Errorf("oldest turn leaked into the prompt")
	}
	if !strings.Contains(prompt, "turn-"+string(rune('a'+13))) {
		t.Errorf("latest turn missing from the prompt")
	}
}
