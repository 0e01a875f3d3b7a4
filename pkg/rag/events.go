package rag

// Notifier is a fire-and-forget sink for per-conversation notifications,
// typically the websocket hub. Delivery to a room nobody joined is a
// no-op.
type Notifier interface {
	Publish(room string, eventType string, data interface{})
}

// Outbound event types for one streamed answer.
const (
	EventStreamStart   = "start_stream"
	EventStreamToken   = "stream_token"
	EventFinalResponse = "final_response"
	EventStreamError   = "stream_error"
)

type StreamStart struct {
	MessageID int64 `json:"message_id"`
}

type StreamToken struct {
	MessageID int64  `json:"message_id"`
	Token     string `json:"token"`
}

type FinalResponse struct {
	MessageID    int64  `json:"message_id"`
	FinalMessage string `json:"final_message"`
}

type StreamError struct {
	MessageID int64  `json:"message_id"`
	Error     string `json:"error"`
}
