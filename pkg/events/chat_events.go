package events

import "time"

const (
	TypeAnswerCompleted    = "ANSWER_COMPLETED"
	TypeIngestionCompleted = "INGESTION_COMPLETED"
)

// NewAnswerCompleted marks a finished answer for downstream consumers.
func NewAnswerCompleted(chatID string, messageID int64) Event {
	return BaseEvent{
		Type: TypeAnswerCompleted,
		Data: map[string]interface{}{
			"chat_id":    chatID,
			"message_id": messageID,
		},
		OccurredAt: time.Now(),
	}
}

// NewIngestionCompleted marks a finished index sync.
func NewIngestionCompleted(added int) Event {
	return BaseEvent{
		Type: TypeIngestionCompleted,
		Data: map[string]interface{}{
			"chunks_added": added,
		},
		OccurredAt: time.Now(),
	}
}
