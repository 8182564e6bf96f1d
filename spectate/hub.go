// Package spectate streams game snapshots to read-only WebSocket clients and
// serves the score history over HTTP.
package spectate

import (
	"classic-snake/game"
	"classic-snake/logger"
	"context"
	"encoding/json"
	"sync"
)

// Hub fans snapshots out to connected spectators. It implements
// game.Observer; publishing never blocks the game loop.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	latest []byte
	count  int

	log *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Discard()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run handles registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			h.log.Debugf("spectator hub stopped")
			return
		case client := <-h.register:
			h.clients[client] = true
			h.setCount()
			if latest := h.Latest(); latest != nil {
				client.send <- latest // fresh buffer, cannot block
			}
			h.log.Infof("spectator connected (%d watching)", len(h.clients))
		case client := <-h.unregister:
			if h.clients[client] {
				h.drop(client)
				h.log.Infof("spectator disconnected (%d watching)", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					h.log.Warnf("dropping slow spectator")
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.setCount()
}

func (h *Hub) setCount() {
	h.mu.Lock()
	h.count = len(h.clients)
	h.mu.Unlock()
}

// OnSnapshot records s as the latest state and queues it for spectators.
// When the queue is full the snapshot is skipped; the next one supersedes it.
func (h *Hub) OnSnapshot(s game.Snapshot) {
	payload, err := json.Marshal(s)
	if err != nil {
		h.log.Errorf("encode snapshot: %v", err)
		return
	}
	h.mu.Lock()
	h.latest = payload
	h.mu.Unlock()

	select {
	case h.broadcast <- payload:
	default:
		h.log.Debugf("spectator queue full, skipping tick %d", s.Ticks)
	}
}

// Latest returns the most recent encoded snapshot, nil before the first.
func (h *Hub) Latest() []byte {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

// Spectators returns the number of connected clients.
func (h *Hub) Spectators() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}
