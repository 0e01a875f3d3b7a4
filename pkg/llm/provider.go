package llm

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the language model backend failed. A
// streamed sequence may terminate early with this error; already-emitted
// tokens are not retracted.
var ErrUnavailable = errors.New("language model unavailable")

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// TokenFunc receives one token at a time, in production order. Returning
// an error stops the stream.
type TokenFunc func(token string) error

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// Stream sends a single prompt and delivers the completion token by
	// token through onToken, preserving emission order.
	Stream(ctx context.Context, prompt string, onToken TokenFunc, options ...Option) error
}
