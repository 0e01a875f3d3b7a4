package service

import (
	"context"
	"testing"

	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/markdown"
	"docchat-be/pkg/rag"
	"docchat-be/pkg/vectorstore"
)

type stubConversationStore struct {
	nextId   int64
	messages []*entity.ChatMessage
}

func (s *stubConversationStore) Append(_ context.Context, msg *entity.ChatMessage) error {
	s.nextId++
	msg.Id = s.nextId
	s.messages = append(s.messages, msg)
	return nil
}

func (s *stubConversationStore) Recent(_ context.Context, chatID string, n int) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, m := range s.messages {
		if m.ChatId == chatID {
			out = append(out, m)
		}
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

func (s *stubConversationStore) UpdateContent(_ context.Context, messageID int64, content string) error {
	for _, m := range s.messages {
		if m.Id == messageID {
			m.Content = content
		}
	}
	return nil
}

func (s *stubConversationStore) DeleteAll(_ context.Context, chatID string) error {
	kept := s.messages[:0]
	for _, m := range s.messages {
		if m.ChatId != chatID {
			kept = append(kept, m)
		}
	}
	s.messages = kept
	return nil
}

func (s *stubConversationStore) DistinctChatIDs(_ context.Context) ([]string, error) {
	return nil, nil
}

type stubVectorStore struct{}

func (stubVectorStore) Upsert(context.Context, []entity.Chunk) error { return nil }

func (stubVectorStore) ListIDs(context.Context) (map[string]struct{}, error) {
	return map[string]struct{}{}, nil
}

func (stubVectorStore) Query(context.Context, string, int) ([]vectorstore.ScoredChunk, error) {
	return []vectorstore.ScoredChunk{
		{Chunk: entity.Chunk{SourcePath: "data/report.pdf", Content: "relevant passage"}, Score: 0.2},
	}, nil
}

func (stubVectorStore) Reset(context.Context) error { return nil }

// recordingModel captures which model name each generation resolved to.
type recordingModel struct {
	seenModels []string
}

func (m *recordingModel) resolve(opts []llm.Option) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}
	m.seenModels = append(m.seenModels, options.Model)
}

func (m *recordingModel) Chat(_ context.Context, _ []llm.Message, opts ...llm.Option) (string, error) {
	m.resolve(opts)
	return "answer", nil
}

func (m *recordingModel) Generate(_ context.Context, _ string, opts ...llm.Option) (string, error) {
	m.resolve(opts)
	return "answer", nil
}

func (m *recordingModel) Stream(_ context.Context, _ string, onToken llm.TokenFunc, opts ...llm.Option) error {
	m.resolve(opts)
	return onToken("answer")
}

type nopNotifier struct{}

func (nopNotifier) Publish(string, string, interface{}) {}

func newTestChatService(model *recordingModel) IChatService {
	store := &stubConversationStore{}
	retriever := rag.NewRetriever(stubVectorStore{}, 0)
	promptBuilder := rag.NewPromptBuilder(store)
	pipeline := rag.NewPipeline(model, store, nopNotifier{}, markdown.NewRenderer(), logger.Nop())
	return NewChatService(nil, store, retriever, promptBuilder, pipeline, nil, logger.Nop())
}

func TestSubmitQueryAppliesSelectedModel(t *testing.T) {
	model := &recordingModel{}
	svc := newTestChatService(model)

	if _, err := svc.SubmitQuery(context.Background(), "chat-a", "what is in the report?", "gemma:2b"); err != nil {
		t.Fatalf("SubmitQuery() error = %v", err)
	}

	if len(model.seenModels) != 1 {
		t.Fatalf("generations = %d, want 1", len(model.seenModels))
	}
	if model.seenModels[0] != "gemma:2b" {
		t.Errorf("model = %q, want %q", model.seenModels[0], "gemma:2b")
	}
}

func TestSubmitQueryWithoutModelUsesDefault(t *testing.T) {
	model := &recordingModel{}
	svc := newTestChatService(model)

	if _, err := svc.SubmitQuery(context.Background(), "chat-a", "what is in the report?", ""); err != nil {
		t.Fatalf("SubmitQuery() error = %v", err)
	}

	if len(model.seenModels) != 1 {
		t.Fatalf("generations = %d, want 1", len(model.seenModels))
	}
	if model.seenModels[0] != "" {
		t.Errorf("model = %q, want the provider default (empty override)", model.seenModels[0])
	}
}
