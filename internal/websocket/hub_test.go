package websocket

import (
	"encoding/json"
	"testing"

	"docchat-be/internal/pkg/logger"
)

func newTestClient() *Client {
	return &Client{
		Rooms: make(map[string]struct{}),
		Send:  make(chan []byte, 8),
	}
}

func TestHubPublishReachesRoomMembers(t *testing.T) {
	hub := NewHub(nil, logger.Nop())

	member := newTestClient()
	outsider := newTestClient()
	hub.Join("chat-1", member)
	hub.Join("chat-2", outsider)

	hub.Publish("chat-1", "stream_token", map[string]string{"token": "hi"})

	select {
	case raw := <-member.Send:
		var envelope struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("malformed envelope: %v", err)
		}
		if envelope.Type != "stream_token" {
			t.Errorf("type = %q, want stream_token", envelope.Type)
		}
	default:
		t.Fatal("room member received nothing")
	}

	select {
	case <-outsider.Send:
		t.Fatal("client outside the room received the event")
	default:
	}
}

func TestHubLeaveStopsDelivery(t *testing.T) {
	hub := NewHub(nil, logger.Nop())

	client := newTestClient()
	hub.Join("chat-1", client)
	hub.Leave("chat-1", client)

	hub.Publish("chat-1", "stream_token", nil)

	select {
	case <-client.Send:
		t.Fatal("client received an event after leaving")
	default:
	}
}

func TestHubJoinIsIdempotent(t *testing.T) {
	hub := NewHub(nil, logger.Nop())

	client := newTestClient()
	hub.Join("chat-1", client)
	hub.Join("chat-1", client)

	hub.Publish("chat-1", "stream_token", nil)

	if got := len(client.Send); got != 1 {
		t.Errorf("deliveries = %d, want 1 (double join must not duplicate)", got)
	}
}
