package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadEvent(t *testing.T, channel string, count int) Event {
	t.Helper()
	ev, err := NewEvent(EventUploadComplete, channel, map[string]any{"message": "done", "count": count})
	require.NoError(t, err)
	return ev
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := NewClient("c1", 4)

	hub.Register(client, "tok-1")
	assert.Equal(t, 1, hub.ClientCount())
	assert.Equal(t, 1, hub.ChannelCount("tok-1"))

	hub.Unregister(client)
	assert.Zero(t, hub.ClientCount())
	assert.Zero(t, hub.ChannelCount("tok-1"))

	_, open := <-client.Send
	assert.False(t, open, "Send must be closed on unregister")

	// Second unregister is a no-op.
	hub.Unregister(client)
}

func TestHub_PublishOnlyReachesJoinedClients(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	joined := NewClient("joined", 4)
	other := NewClient("other", 4)
	hub.Register(joined, "tok-1")
	hub.Register(other, "tok-2")

	require.NoError(t, hub.Publish(context.Background(), "tok-1", uploadEvent(t, "tok-1", 3)))

	select {
	case msg := <-joined.Send:
		var got struct {
			Event   string `json:"event"`
			Channel string `json:"channel"`
			Data    struct {
				Count int `json:"count"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, EventUploadComplete, got.Event)
		assert.Equal(t, "tok-1", got.Channel)
		assert.Equal(t, 3, got.Data.Count)
	case <-time.After(time.Second):
		t.Fatal("joined client did not receive event")
	}

	select {
	case <-other.Send:
		t.Fatal("client on another channel should not receive the event")
	default:
	}
}

func TestHub_JoinLeave(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := NewClient("c1", 4)
	hub.Register(client)

	hub.Join(client, "tok")
	assert.Equal(t, 1, hub.ChannelCount("tok"))

	hub.Leave(client, "tok")
	assert.Zero(t, hub.ChannelCount("tok"))

	n, err := hub.Broadcast("tok", uploadEvent(t, "tok", 1))
	require.NoError(t, err)
	assert.Zero(t, n)

	// Empty channel names are ignored.
	hub.Join(client, "")
	assert.Zero(t, hub.ChannelCount(""))

	// Unregistered clients cannot join.
	stranger := NewClient("stranger", 1)
	hub.Join(stranger, "tok")
	assert.Zero(t, hub.ChannelCount("tok"))
}

func TestHub_PublishWithoutSubscribersSucceeds(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	assert.NoError(t, hub.Publish(context.Background(), "nobody", uploadEvent(t, "nobody", 1)))
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	slow := NewClient("slow", 1)
	hub.Register(slow, "tok")

	first, err := hub.Broadcast("tok", uploadEvent(t, "tok", 1))
	require.NoError(t, err)
	second, err := hub.Broadcast("tok", uploadEvent(t, "tok", 2))
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Zero(t, second)
	assert.Len(t, slow.Send, 1)
}

func TestHub_MultipleSubscribersSameChannel(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	a, b := NewClient("a", 2), NewClient("b", 2)
	hub.Register(a, "tok")
	hub.Register(b, "tok")

	n, err := hub.Broadcast("tok", uploadEvent(t, "tok", 1))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
