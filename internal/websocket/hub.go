package websocket

import (
	"encoding/json"
	"sync"

	"github.com/podcastsite/backend/internal/domain"
	"github.com/podcastsite/backend/internal/log"
	"github.com/podcastsite/backend/internal/metrics"
	"github.com/rs/zerolog"
)

// Hub fans carousel updates out to every connected viewer.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	stopped    bool
	seq        int64
	logger     zerolog.Logger
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
		logger:     log.WithComponent("websocket"),
	}
}

func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			metrics.SetLiveClients(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.stopped {
				// Stop is in progress; nothing will ever close this client otherwise.
				h.mu.Unlock()
				client.Close()
				continue
			}
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			metrics.SetLiveClients(count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			count := len(h.clients)
			h.mu.Unlock()
			metrics.SetLiveClients(count)

		case data := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if !client.Send(data) {
					// Slow consumer; drop it rather than block the hub.
					delete(h.clients, client)
					client.Close()
				}
			}
			count := len(h.clients)
			h.mu.Unlock()
			metrics.SetLiveClients(count)
		}
	}
}

// Stop gracefully shuts down the hub and closes every client.
// It blocks until Run has returned.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}

// BroadcastSlots sends a CAROUSEL_UPDATED message with the committed layout.
func (h *Hub) BroadcastSlots(slots []*domain.Slot) {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.seq++
	seq := h.seq
	h.mu.Unlock()

	msg, err := NewMessage(MessageTypeCarouselUpdated, CarouselUpdatedPayload{Slots: slots})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to encode carousel update")
		return
	}
	msg.Seq = seq

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to encode carousel update")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.logger.Warn().Int64("seq", seq).Msg("broadcast queue full, dropping carousel update")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.Close()
	}
}

// Unregister safely unregisters a client, handling the case where the hub may be stopped.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}
