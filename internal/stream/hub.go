package stream

import (
	"context"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Hub fans batch events out to every subscriber of a job. An optional
// redis mirror republishes events so subscribers attached to another
// instance still receive them.
type Hub struct {
	redis   *redis.Client
	clients map[string]map[*Client]struct{}
	// everSubscribed marks jobs that had at least one subscriber, so
	// the orchestrator can tell "nobody has attached yet" apart from
	// "everybody left".
	everSubscribed map[string]bool
	mu             sync.RWMutex
}

type Client struct {
	JobID string
	Send  chan []byte
}

func NewHub(redisClient *redis.Client) *Hub {
	h := &Hub{
		redis:          redisClient,
		clients:        map[string]map[*Client]struct{}{},
		everSubscribed: map[string]bool{},
	}

	if redisClient != nil {
		go h.subscribeRedis()
	}
	return h
}

func (h *Hub) Register(jobID string) *Client {
	client := &Client{
		JobID: jobID,
		Send:  make(chan []byte, 64),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[jobID] == nil {
		h.clients[jobID] = map[*Client]struct{}{}
	}
	h.clients[jobID][client] = struct{}{}
	h.everSubscribed[jobID] = true
	return client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if jobClients, ok := h.clients[client.JobID]; ok {
		delete(jobClients, client)
		if len(jobClients) == 0 {
			delete(h.clients, client.JobID)
		}
	}
	close(client.Send)
}

// Abandoned reports whether a job once had subscribers and all of them
// have since disconnected. The orchestrator stops feeding such jobs.
func (h *Hub) Abandoned(jobID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.everSubscribed[jobID] && len(h.clients[jobID]) == 0
}

// Subscribed reports whether the job currently has a live subscriber.
func (h *Hub) Subscribed(jobID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[jobID]) > 0
}

// Forget drops the subscription bookkeeping for a finished job.
func (h *Hub) Forget(jobID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.everSubscribed, jobID)
}

// Broadcast delivers one event to the job's subscribers. With the redis
// mirror active, delivery happens solely through the subscription: the
// publish comes back to every instance, this one included, so a direct
// local send would hand each subscriber the event twice.
func (h *Hub) Broadcast(jobID string, payload []byte) {
	if h.redis != nil {
		err := h.redis.Publish(context.Background(), redisChannel(jobID), payload).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish error: %v", err)
		// fall through: local subscribers still get the event
	}
	h.deliver(jobID, payload)
}

func (h *Hub) deliver(jobID string, payload []byte) {
	h.mu.RLock()
	clients := h.clients[jobID]
	h.mu.RUnlock()

	for client := range clients {
		select {
		case client.Send <- payload:
		default:
		}
	}
}

func (h *Hub) subscribeRedis() {
	ctx := context.Background()
	pubsub := h.redis.PSubscribe(ctx, "jobs:*:events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.deliver(jobIDFromChannel(msg.Channel), []byte(msg.Payload))
	}
}

func redisChannel(jobID string) string {
	return "jobs:" + jobID + ":events"
}

func jobIDFromChannel(ch string) string {
	// jobs:{job}:events
	const prefix = "jobs:"
	const suffix = ":events"
	if len(ch) <= len(prefix)+len(suffix) {
		return ""
	}
	return ch[len(prefix) : len(ch)-len(suffix)]
}
