package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	fasthttpws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn feeds scripted inbound messages and records writes.
type fakeConn struct {
	in chan []byte

	mu      sync.Mutex
	written [][]byte
	closed  bool
}

func newFakeConn() *fakeConn { return &fakeConn{in: make(chan []byte, 8)} }

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	msg, ok := <-f.in
	if !ok {
		return 0, nil, errors.New("closed")
	}
	return fasthttpws.TextMessage, msg, nil
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.written = append(f.written, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

func TestHandler_ServeJoinsAndLeaves(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	h := NewHandler(hub, zerolog.Nop())
	conn := newFakeConn()

	served := make(chan struct{})
	go func() {
		h.Serve(conn, "tok-a")
		close(served)
	}()

	require.Eventually(t, func() bool { return hub.ChannelCount("tok-a") == 1 }, time.Second, 5*time.Millisecond)

	conn.in <- []byte(`{"action":"join_session","session_id":"tok-b"}`)
	require.Eventually(t, func() bool { return hub.ChannelCount("tok-b") == 1 }, time.Second, 5*time.Millisecond)

	conn.in <- []byte(`not json`)
	conn.in <- []byte(`{"action":"leave_session","session_id":"tok-a"}`)
	require.Eventually(t, func() bool { return hub.ChannelCount("tok-a") == 0 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), "tok-b", uploadEvent(t, "tok-b", 2)))
	require.Eventually(t, func() bool { return conn.writes() == 1 }, time.Second, 5*time.Millisecond)

	close(conn.in)
	select {
	case <-served:
	case <-time.After(time.Second):
		t.Fatal("Serve did not return after the peer closed")
	}
	assert.Zero(t, hub.ClientCount())
}

func TestHandler_WebSocketEndToEnd(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	NewHandler(hub, zerolog.Nop()).RegisterRoutes(app)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	defer func() { _ = app.Shutdown() }()

	url := "ws://" + ln.Addr().String() + "/ws?session=tok-e2e"
	ws, _, err := fasthttpws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool { return hub.ChannelCount("tok-e2e") == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), "tok-e2e", uploadEvent(t, "tok-e2e", 3)))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := ws.ReadMessage()
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, EventUploadComplete, got.Name)
	assert.Equal(t, "tok-e2e", got.Channel)
	assert.JSONEq(t, `{"message":"done","count":3}`, string(got.Data))

	require.NoError(t, ws.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandler_PlainHTTPRequiresUpgrade(t *testing.T) {
	app := fiber.New()
	NewHandler(NewHub(zerolog.Nop()), zerolog.Nop()).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
