package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(userID string) *Client {
	// No underlying connection: hub tests read the send channel directly
	// instead of running the write pump.
	return NewClient(nil, userID)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case ev := <-c.send:
		return ev
	default:
		t.Fatal("expected a queued event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case ev := <-c.send:
		t.Fatalf("unexpected event %q", ev.Name)
	default:
	}
}

func TestPublishToAllReachesEveryConnection(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c1 := newTestClient("u1")
	c2 := newTestClient("u2")
	hub.Register(c1)
	hub.Register(c2)

	hub.PublishToAll("new-notification", map[string]string{"message": "hello"})

	ev := receive(t, c1)
	assert.Equal(t, "new-notification", ev.Name)
	ev = receive(t, c2)
	assert.Equal(t, "new-notification", ev.Name)
}

func TestPublishToUserTargetsOnlyThatUser(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c1 := newTestClient("u1")
	c1b := newTestClient("u1")
	c2 := newTestClient("u2")
	hub.Register(c1)
	hub.Register(c1b)
	hub.Register(c2)

	hub.PublishToUser("u1", "dismissed", "n1")

	ev := receive(t, c1)
	assert.Equal(t, "dismissed", ev.Name)
	assert.Equal(t, "n1", ev.Payload)
	receive(t, c1b)
	assertNoEvent(t, c2)
}

func TestPublishToAbsentUserIsDropped(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c1 := newTestClient("u1")
	hub.Register(c1)

	// Fire-and-forget: no error, no panic, nothing delivered elsewhere.
	hub.PublishToUser("nobody", "dismissed", "n1")

	assertNoEvent(t, c1)
}

func TestSlowConsumerIsSkippedNotBlocked(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c1 := newTestClient("u1")
	hub.Register(c1)

	// Fill the send buffer; further publishes must not block the producer.
	for i := 0; i < sendBuffer+5; i++ {
		hub.PublishToAll("new-notification", i)
	}

	count := 0
	for {
		select {
		case <-c1.send:
			count++
			continue
		default:
		}
		break
	}
	assert.Equal(t, sendBuffer, count, "overflow events are dropped, not queued")
}

func TestUnregisterRemovesConnection(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c1 := newTestClient("u1")
	hub.Register(c1)
	require.Equal(t, 1, hub.ConnectionCount(""))

	hub.Unregister(c1)

	assert.Equal(t, 0, hub.ConnectionCount(""))
	assert.Equal(t, 0, hub.ConnectionCount("u1"))

	hub.PublishToAll("new-notification", "late")
	_, open := <-c1.send
	assert.False(t, open, "send channel is closed after unregister")

	// Double unregister is safe.
	hub.Unregister(c1)
}

func TestSubscribeCustomTopic(t *testing.T) {
	hub := NewHub(zap.NewNop())
	c1 := newTestClient("u1")
	c2 := newTestClient("u2")
	hub.Register(c1)
	hub.Register(c2)
	hub.Subscribe(c1, "projects")

	hub.Publish("projects", Event{Name: "new-notification", Payload: "p"})

	receive(t, c1)
	assertNoEvent(t, c2)
}

func TestConnectionCountPerUser(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Register(newTestClient("u1"))
	hub.Register(newTestClient("u1"))
	hub.Register(newTestClient("u2"))

	assert.Equal(t, 3, hub.ConnectionCount(""))
	assert.Equal(t, 2, hub.ConnectionCount("u1"))
	assert.Equal(t, 1, hub.ConnectionCount("u2"))
}
