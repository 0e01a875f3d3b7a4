package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs handles websocket requests from the peer.
func ServeWs(hub *Hub, handler CommandHandler, c *websocket.Conn) {
	client := &Client{
		Hub:     hub,
		Conn:    c,
		Rooms:   make(map[string]struct{}),
		Send:    make(chan []byte, 256),
		handler: handler,
	}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // run readPump in the handler goroutine
}
