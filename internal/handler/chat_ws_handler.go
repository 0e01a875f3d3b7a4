package handler

import (
	"context"
	"encoding/json"

	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/service"
	internalWS "docchat-be/internal/websocket"
	"docchat-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// Inbound command types sent by the browser over the socket.
const (
	CommandJoinChat    = "join_chat"
	CommandLeaveChat   = "leave_chat"
	CommandSubmitQuery = "submit_query"
	CommandUpdateIndex = "update_index"
)

type joinChatPayload struct {
	ChatId string `json:"chat_id"`
}

type submitQueryPayload struct {
	ChatId string `json:"chat_id"`
	Query  string `json:"query"`
	Model  string `json:"model"`
}

type updateIndexPayload struct {
	ReplyRoom string `json:"reply_room"`
}

// ChatWsHandler upgrades websocket connections and dispatches the
// commands clients send over them.
type ChatWsHandler struct {
	chatService      service.IChatService
	ingestionService service.IIngestionService
	hub              *internalWS.Hub
	logger           logger.ILogger
}

func NewChatWsHandler(
	chatService service.IChatService,
	ingestionService service.IIngestionService,
	hub *internalWS.Hub,
	log logger.ILogger,
) *ChatWsHandler {
	return &ChatWsHandler{
		chatService:      chatService,
		ingestionService: ingestionService,
		hub:              hub,
		logger:           log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *ChatWsHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ChatWsHandler", "Starting WebSocket session", nil)
			internalWS.ServeWs(h.hub, h, conn)
			h.logger.Info("ChatWsHandler", "WebSocket session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// HandleCommand dispatches one inbound client command. Queries run in
// their own goroutine so a slow generation never blocks the read pump.
func (h *ChatWsHandler) HandleCommand(client *internalWS.Client, cmd internalWS.Command) {
	switch cmd.Type {
	case CommandJoinChat:
		var payload joinChatPayload
		if !h.decode(client, cmd, &payload) || payload.ChatId == "" {
			return
		}
		h.hub.Join(payload.ChatId, client)

	case CommandLeaveChat:
		var payload joinChatPayload
		if !h.decode(client, cmd, &payload) || payload.ChatId == "" {
			return
		}
		h.hub.Leave(payload.ChatId, client)

	case CommandSubmitQuery:
		var payload submitQueryPayload
		if !h.decode(client, cmd, &payload) {
			return
		}
		if payload.ChatId == "" || payload.Query == "" {
			h.hub.Publish(payload.ChatId, rag.EventStreamError, rag.StreamError{Error: "chat_id and query are required"})
			return
		}
		go func() {
			if _, err := h.chatService.SubmitQuery(context.Background(), payload.ChatId, payload.Query, payload.Model); err != nil {
				h.logger.Error("ChatWsHandler", "Query failed", map[string]interface{}{
					"chat_id": payload.ChatId,
					"error":   err.Error(),
				})
			}
		}()

	case CommandUpdateIndex:
		var payload updateIndexPayload
		if !h.decode(client, cmd, &payload) {
			return
		}
		if err := h.ingestionService.TriggerSync(context.Background(), payload.ReplyRoom); err != nil {
			h.logger.Error("ChatWsHandler", "Failed to trigger index sync", map[string]interface{}{"error": err.Error()})
		}

	default:
		h.logger.Warn("ChatWsHandler", "Unknown command", map[string]interface{}{"type": cmd.Type})
	}
}

func (h *ChatWsHandler) decode(client *internalWS.Client, cmd internalWS.Command, out interface{}) bool {
	if err := json.Unmarshal(cmd.Data, out); err != nil {
		h.logger.Warn("ChatWsHandler", "Malformed command payload", map[string]interface{}{
			"type":  cmd.Type,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// RegisterRoutes registers the websocket endpoint.
func (h *ChatWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
