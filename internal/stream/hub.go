package stream

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Hub fans out packing-list and task events to websocket viewers of a hike.
// With a redis client attached, events are mirrored over pubsub so viewers
// connected to other instances see them too.
type Hub struct {
	id      string
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	mu      sync.RWMutex
}

type Client struct {
	HikeID string
	Send   chan []byte
}

// envelope carries the publishing instance's id over pubsub so the subscriber
// loop can drop its own publishes; local viewers already got those directly.
type envelope struct {
	Source  string `json:"source"`
	Payload string `json:"payload"`
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		id:      uuid.NewString(),
		redis:   redisClient,
		clients: map[string]map[*Client]struct{}{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(hikeID string) *Client {
	client := &Client{
		HikeID: hikeID,
		Send:   make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[hikeID] == nil {
		h.clients[hikeID] = map[*Client]struct{}{}
	}
	h.clients[hikeID][client] = struct{}{}
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if hikeClients, ok := h.clients[client.HikeID]; ok {
		delete(hikeClients, client)
		if len(hikeClients) == 0 {
			delete(h.clients, client.HikeID)
		}
	}
	close(client.Send)
}

func (h *Hub) Broadcast(hikeID string, payload []byte) {
	h.fanout(hikeID, payload)

	if h.redis != nil {
		wrapped, err := json.Marshal(envelope{Source: h.id, Payload: string(payload)})
		if err == nil {
			err = h.redis.Publish(context.Background(), redisChannel(hikeID), wrapped).Err()
		}
		if err != nil {
			log.Printf("redis publish error: %v", err)
		}
	}
}

// fanout delivers to local viewers. Sends stay under the read lock so a
// concurrent Unregister cannot close a channel mid-send; the buffered
// non-blocking send keeps slow viewers from stalling the hub.
func (h *Hub) fanout(hikeID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[hikeID] {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "packing:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		hikeID := hikeIDFromChannel(msg.Channel)

		var ev envelope
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil || ev.Source == "" {
			// bare payload from an out-of-band publisher
			h.fanout(hikeID, []byte(msg.Payload))
			continue
		}
		if ev.Source == h.id {
			continue
		}
		h.fanout(hikeID, []byte(ev.Payload))
	}
}

func redisChannel(hikeID string) string {
	return "packing:" + hikeID + ":events"
}

func hikeIDFromChannel(ch string) string {
	// packing:{hike}:events
	const prefix = "packing:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
