package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string, hub *Hub) *Client {
	return NewClient(id, nil, hub, nil, nil)
}

func recvJSON(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case msg := <-c.send:
		var evt Event
		require.NoError(t, json.Unmarshal(msg, &evt))
		return evt
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("client count never reached %d, have %d", want, hub.ClientCount())
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	a := newTestClient("a", hub)
	b := newTestClient("b", hub)
	hub.Register(a)
	hub.Register(b)
	waitForCount(t, hub, 2)

	hub.Broadcast("stats_update", map[string]int{"totalTests": 5})

	for _, c := range []*Client{a, b} {
		evt := recvJSON(t, c)
		assert.Equal(t, "stats_update", evt.Type)
	}
}

func TestHubUnregisterStopsDelivery(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	a := newTestClient("a", hub)
	b := newTestClient("b", hub)
	hub.Register(a)
	hub.Register(b)
	waitForCount(t, hub, 2)

	hub.Unregister(a.ID)
	waitForCount(t, hub, 1)

	hub.Broadcast("online_users_update", map[string]int{"count": 1})

	evt := recvJSON(t, b)
	assert.Equal(t, "online_users_update", evt.Type)

	// The unregistered client's channel was closed without delivery.
	msg, open := <-a.send
	assert.False(t, open, "expected closed channel, got %q", msg)
}

func TestHubSlowConsumerDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	slow := newTestClient("slow", hub)
	fast := newTestClient("fast", hub)
	hub.Register(slow)
	hub.Register(fast)
	waitForCount(t, hub, 2)

	// Overflow the slow client's buffer; the fast one must still see
	// every event that fits in its own.
	for i := 0; i < SendBufferSize+10; i++ {
		hub.Broadcast("user_typing_progress", map[string]int{"n": i})
	}

	evt := recvJSON(t, fast)
	assert.Equal(t, "user_typing_progress", evt.Type)
	assert.LessOrEqual(t, len(slow.send), SendBufferSize)
}
