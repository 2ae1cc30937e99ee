package ws

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

type delivery struct {
	userIDs []uuid.UUID
	message []byte
}

// Hub fans messages out to every connection of the addressed users. All map
// mutations happen on the Run goroutine; the mutex only guards reads from
// other goroutines. Once Run returns, done is closed and Register and
// Unregister stop waiting on it.
type Hub struct {
	clients    map[*Client]struct{}
	byUser     map[uuid.UUID]map[*Client]struct{}
	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger

	done      chan struct{}
	closeOnce sync.Once
	lifecycle sync.RWMutex
	closed    bool
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		byUser:     make(map[uuid.UUID]map[*Client]struct{}),
		deliver:    make(chan delivery, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run processes registrations and deliveries until ctx is done, then closes
// every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = struct{}{}
			set, ok := h.byUser[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.byUser[client.userID] = set
			}
			set[client] = struct{}{}
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("WS connected | user_id=%s total_clients=%d", client.userID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.remove(client)
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("WS disconnected | user_id=%s total_clients=%d", client.userID, total)

		case d := <-h.deliver:
			h.mutex.Lock()
			sent, dropped := 0, 0
			for _, uid := range d.userIDs {
				for client := range h.byUser[uid] {
					select {
					case client.send <- d.message:
						sent++
					default:
						h.remove(client)
						dropped++
					}
				}
			}
			h.mutex.Unlock()
			if dropped > 0 {
				h.logf("WS deliver | sent=%d dropped_slow_clients=%d", sent, dropped)
			}
		}
	}
}

// shutdown releases blocked callers, then closes every registered client and
// every client still queued for registration.
func (h *Hub) shutdown() {
	h.closeOnce.Do(func() { close(h.done) })

	h.lifecycle.Lock()
	h.closed = true
	h.lifecycle.Unlock()

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		close(c.send)
	}
	h.clients = make(map[*Client]struct{})
	h.byUser = make(map[uuid.UUID]map[*Client]struct{})
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

// remove must be called with the mutex held.
func (h *Hub) remove(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	if set, ok := h.byUser[client.userID]; ok {
		delete(set, client)
		if len(set) == 0 {
			delete(h.byUser, client.userID)
		}
	}
	close(client.send)
}

// Register queues client. After shutdown the client's send channel is closed
// instead so its write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.lifecycle.RLock()
	defer h.lifecycle.RUnlock()
	if h.closed {
		close(client.send)
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister is a no-op once the hub has shut down; shutdown already closed
// every client.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send queues message for every connection of userIDs. It never blocks; when
// the queue is full the message is dropped.
func (h *Hub) Send(message []byte, userIDs ...uuid.UUID) {
	if h == nil || len(userIDs) == 0 {
		return
	}
	select {
	case h.deliver <- delivery{userIDs: userIDs, message: message}:
	default:
		h.logf("WS deliver dropped | reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) UserConnections(userID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.byUser[userID])
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
