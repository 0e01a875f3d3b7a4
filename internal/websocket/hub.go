package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"docchat-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: room (chat id) -> list of clients
	rooms map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case <-h.register:
			h.logger.Info("Hub", "Client connected", nil)

		case client := <-h.unregister:
			h.mu.Lock()
			for room := range client.Rooms {
				h.removeFromRoomLocked(room, client)
			}
			h.mu.Unlock()
			client.closeOnce.Do(func() { close(client.Send) })
			h.logger.Info("Hub", "Client disconnected", nil)
		}
	}
}

// Join subscribes a client to a chat room.
func (h *Hub) Join(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := client.Rooms[room]; ok {
		return
	}
	client.Rooms[room] = struct{}{}
	h.rooms[room] = append(h.rooms[room], client)
	h.logger.Info("Hub", "Client joined room", map[string]interface{}{"room": room})
}

// Leave removes a client from a chat room.
func (h *Hub) Leave(room string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := client.Rooms[room]; !ok {
		return
	}
	delete(client.Rooms, room)
	h.removeFromRoomLocked(room, client)
}

func (h *Hub) removeFromRoomLocked(room string, client *Client) {
	clients := h.rooms[room]
	for i, c := range clients {
		if c == client {
			h.rooms[room] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(h.rooms[room]) == 0 {
		delete(h.rooms, room)
	}
}

// Publish sends an event to every client in a room, across all instances.
func (h *Hub) Publish(room string, eventType string, data interface{}) {
	raw, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": data,
	})
	if err != nil {
		h.logger.Error("Hub", "Failed to serialize event", map[string]interface{}{"type": eventType, "error": err.Error()})
		return
	}

	h.deliverLocal(room, raw)

	// Publish to Redis for other instances
	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_room": room,
			"message":     json.RawMessage(raw),
		})
		h.rdb.Publish(context.Background(), "cluster_events", payload)
	}
}

func (h *Hub) deliverLocal(room string, message []byte) {
	h.mu.RLock()
	clients := make([]*Client, len(h.rooms[room]))
	copy(clients, h.rooms[room])
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- message:
		default:
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"room": room})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance subscribes to "cluster_events" and forwards messages
	// to whichever room members it holds locally.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetRoom string          `json:"target_room"`
			Message    json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}
		h.deliverLocal(payload.TargetRoom, payload.Message)
	}
}
