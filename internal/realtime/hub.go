package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// TopicAll is the broadcast topic every connection joins on register.
const TopicAll = "all"

// Event is the envelope written to a WebSocket connection.
type Event struct {
	Name    string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Hub keeps the registry of live WebSocket connections, indexed by user and
// by topic. It is the only concurrently mutated in-memory structure in the
// service and must be injected where needed; there is no package-level
// instance.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]string
	byUser  map[string]map[*Client]struct{}
	topics  map[string]map[*Client]struct{}
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]string),
		byUser:  make(map[string]map[*Client]struct{}),
		topics:  make(map[string]map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a connection to the registry and subscribes it to TopicAll.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = c.UserID

	if h.byUser[c.UserID] == nil {
		h.byUser[c.UserID] = make(map[*Client]struct{})
	}
	h.byUser[c.UserID][c] = struct{}{}

	h.subscribeLocked(c, TopicAll)
}

// Unregister removes a connection from the registry and all its topics, and
// closes its send channel. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)

	if set := h.byUser[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.byUser, c.UserID)
		}
	}

	for topic, set := range h.topics {
		delete(set, c)
		if len(set) == 0 {
			delete(h.topics, topic)
		}
	}

	c.closeSend()
}

// Subscribe adds a registered connection to a topic.
func (h *Hub) Subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	h.subscribeLocked(c, topic)
}

func (h *Hub) subscribeLocked(c *Client, topic string) {
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
}

// Publish delivers an event to every subscriber of the topic. Delivery is
// best-effort: slow consumers are skipped so producer code never blocks.
func (h *Hub) Publish(topic string, ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.topics[topic] {
		h.deliver(c, ev)
	}
}

// PublishToAll delivers an event to every live connection.
func (h *Hub) PublishToAll(event string, payload interface{}) {
	h.Publish(TopicAll, Event{Name: event, Payload: payload})
}

// PublishToUser delivers an event only to connections tagged with userID.
// If the user has no live connection the event is dropped.
func (h *Hub) PublishToUser(userID, event string, payload interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ev := Event{Name: event, Payload: payload}
	for c := range h.byUser[userID] {
		h.deliver(c, ev)
	}
}

func (h *Hub) deliver(c *Client, ev Event) {
	select {
	case c.send <- ev:
	default:
		h.logger.Warn("Dropping event for slow subscriber",
			zap.String("event", ev.Name),
			zap.String("user_id", c.UserID))
	}
}

// ConnectionCount reports the number of live connections, optionally scoped
// to one user when userID is non-empty.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if userID == "" {
		return len(h.clients)
	}
	return len(h.byUser[userID])
}
