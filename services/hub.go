package services

import (
	"encoding/json"
	"sync"

	"github.com/mkessler/squares-backend/utils/logger"
)

// Hub groups connected websocket clients by the game they are viewing and
// pushes board events to them. Sends are non-blocking: a client that cannot
// keep up is dropped and must re-fetch when it reconnects.
type Hub struct {
	mu      sync.RWMutex
	viewers map[uint]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{viewers: make(map[uint]map[*Client]bool)}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	if h.viewers[c.gameID] == nil {
		h.viewers[c.gameID] = make(map[*Client]bool)
	}
	h.viewers[c.gameID][c] = true
	total := len(h.viewers[c.gameID])
	h.mu.Unlock()

	logger.Infof("[Hub] client %s joined game %d (viewers=%d)", c.id, c.gameID, total)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	if clients, ok := h.viewers[c.gameID]; ok {
		if clients[c] {
			delete(clients, c)
			c.Close()
		}
		if len(clients) == 0 {
			delete(h.viewers, c.gameID)
		}
	}
	h.mu.Unlock()
}

// Deliver pushes an event to every viewer of the event's game.
func (h *Hub) Deliver(ev Event) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.viewers[ev.GameID]))
	for c := range h.viewers[ev.GameID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	if len(clients) == 0 {
		return
	}

	b, err := json.Marshal(ev)
	if err != nil {
		logger.Errorf("[Hub] marshal event: %v", err)
		return
	}

	for _, c := range clients {
		if !c.TrySend(b) {
			logger.Warnf("[Hub] client %s too slow, dropping from game %d", c.id, ev.GameID)
			go h.Unsubscribe(c)
		}
	}
}

func (h *Hub) ViewerCount(gameID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers[gameID])
}
