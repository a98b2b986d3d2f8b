// Package realtime pushes server events to WebSocket clients.
// Clients join named channels (an upload session token, for instance) and
// receive every event published to those channels while they are joined.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventUploadComplete is emitted once a mobile upload batch is fully stored.
const EventUploadComplete = "upload_complete"

// Event is a notification sent to WebSocket clients.
type Event struct {
	Name      string          `json:"event"`
	Channel   string          `json:"channel"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent marshals data into an Event stamped with the current time.
func NewEvent(name, channel string, data any) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, fmt.Errorf("marshal event data: %w", err)
	}
	return Event{Name: name, Channel: channel, Data: raw, Timestamp: time.Now().UTC()}, nil
}

// Publisher delivers an event to the current subscribers of a channel.
// Delivery is best-effort and at most once per call.
type Publisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

// Client is a single WebSocket connection. Its channel set is guarded by the hub lock.
type Client struct {
	ID       string
	Send     chan []byte
	channels map[string]struct{}
}

// NewClient returns a client with a send buffer of the given size.
func NewClient(id string, buffer int) *Client {
	return &Client{
		ID:       id,
		Send:     make(chan []byte, buffer),
		channels: make(map[string]struct{}),
	}
}

// Hub tracks clients and their channel memberships.
// All operations are thread-safe via sync.RWMutex.
type Hub struct {
	log zerolog.Logger

	mu      sync.RWMutex
	members map[string]map[*Client]struct{} // channel -> set of clients
	all     map[*Client]struct{}
}

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:     log.With().Str("component", "realtime").Logger(),
		members: make(map[string]map[*Client]struct{}),
		all:     make(map[*Client]struct{}),
	}
}

var _ Publisher = (*Hub)(nil)

// Register adds a client and joins it to the given channels.
func (h *Hub) Register(client *Client, channels ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.all[client] = struct{}{}
	for _, ch := range channels {
		h.join(client, ch)
	}
}

// Unregister removes a client from every channel and closes its Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}
	for ch := range client.channels {
		h.leave(client, ch)
	}
	delete(h.all, client)
	close(client.Send)
}

// Join subscribes a registered client to a channel.
func (h *Hub) Join(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.all[client]; ok {
		h.join(client, channel)
	}
}

// Leave unsubscribes a client from a channel.
func (h *Hub) Leave(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leave(client, channel)
}

func (h *Hub) join(client *Client, channel string) {
	if channel == "" {
		return
	}
	if h.members[channel] == nil {
		h.members[channel] = make(map[*Client]struct{})
	}
	h.members[channel][client] = struct{}{}
	client.channels[channel] = struct{}{}
}

func (h *Hub) leave(client *Client, channel string) {
	if subs, ok := h.members[channel]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.members, channel)
		}
	}
	delete(client.channels, channel)
}

// Broadcast sends an event to every client joined to channel and returns how many accepted it.
// A client whose buffer is full misses the event.
func (h *Hub) Broadcast(channel string, event Event) (int, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("marshal event: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for client := range h.members[channel] {
		select {
		case client.Send <- data:
			delivered++
		default:
			h.log.Warn().Str("client_id", client.ID).Str("channel", channel).Msg("client buffer full, event dropped")
		}
	}
	return delivered, nil
}

// Publish implements Publisher.
func (h *Hub) Publish(_ context.Context, channel string, event Event) error {
	event.Channel = channel
	n, err := h.Broadcast(channel, event)
	if err != nil {
		return err
	}
	h.log.Debug().Str("event", event.Name).Str("channel", channel).Int("delivered", n).Msg("event published")
	return nil
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// ChannelCount returns the number of clients joined to a channel.
func (h *Hub) ChannelCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members[channel])
}
