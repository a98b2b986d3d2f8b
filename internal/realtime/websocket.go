package realtime

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	ActionJoinSession  = "join_session"
	ActionLeaveSession = "leave_session"

	sendBuffer = 16
)

// ClientMessage is an inbound message from a WebSocket client.
type ClientMessage struct {
	Action    string `json:"action"`
	SessionID string `json:"session_id"`
}

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Handler upgrades HTTP requests on /ws and routes client messages to the hub.
type Handler struct {
	hub *Hub
	log zerolog.Logger
}

func NewHandler(hub *Hub, log zerolog.Logger) *Handler {
	return &Handler{hub: hub, log: log.With().Str("component", "websocket").Logger()}
}

// RegisterRoutes mounts GET /ws. A "session" query parameter joins that channel on connect.
func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		h.Serve(c, c.Query("session"))
	}))
}

// Serve runs a connection until the peer goes away. It returns only after the
// writer has stopped, so conn is not used once Serve returns.
func (h *Handler) Serve(conn Conn, initial string) {
	client := NewClient(uuid.NewString(), sendBuffer)
	if initial != "" {
		h.hub.Register(client, initial)
	} else {
		h.hub.Register(client)
	}
	h.log.Debug().Str("client_id", client.ID).Str("session_id", initial).Msg("client connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(client, conn)
	}()

	h.readPump(client, conn)
	h.hub.Unregister(client)
	<-done
	h.log.Debug().Str("client_id", client.ID).Msg("client disconnected")
}

func (h *Handler) readPump(client *Client, conn Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		h.process(client, msg)
	}
}

func (h *Handler) process(client *Client, msg ClientMessage) {
	switch msg.Action {
	case ActionJoinSession:
		h.hub.Join(client, msg.SessionID)
	case ActionLeaveSession:
		h.hub.Leave(client, msg.SessionID)
	}
}

// writePump drains Send until Unregister closes it. A failed write closes
// the connection so the reader returns too.
func (h *Handler) writePump(client *Client, conn Conn) {
	for message := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			_ = conn.Close()
			for range client.Send {
			}
			return
		}
	}
}
