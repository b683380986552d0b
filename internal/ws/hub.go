package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/JayeshSardesai/ERP-sub004/entity"
)

// Event represents a WebSocket event sent to staff consoles.
type Event struct {
	Type string      `json:"type"` // "sos_alert", "sos_update"
	Data interface{} `json:"data"`
}

// Hub maintains the set of connected staff consoles and fans alert
// events out to the consoles of the affected school only.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *scopedEvent
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

type scopedEvent struct {
	schoolCode string
	event      *Event
}

// NewHub creates a new Hub instance.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *scopedEvent, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case scoped := <-h.broadcast:
			data, err := json.Marshal(scoped.event)
			if err != nil {
				continue
			}
			var stale []*Client
			h.mu.RLock()
			for client := range h.clients {
				if client.schoolCode != scoped.schoolCode {
					continue
				}
				select {
				case client.send <- data:
				default:
					stale = append(stale, client)
				}
			}
			h.mu.RUnlock()

			if len(stale) > 0 {
				h.mu.Lock()
				for _, client := range stale {
					if _, ok := h.clients[client]; ok {
						delete(h.clients, client)
						close(client.send)
					}
				}
				h.mu.Unlock()
			}
		}
	}
}

// BroadcastAlert sends a sos_alert event to the school's consoles.
func (h *Hub) BroadcastAlert(schoolCode string, alert *entity.SOSAlert) {
	h.broadcast <- &scopedEvent{
		schoolCode: schoolCode,
		event:      &Event{Type: "sos_alert", Data: alert},
	}
}

// BroadcastUpdate sends a sos_update event to the school's consoles.
func (h *Hub) BroadcastUpdate(schoolCode string, alert *entity.SOSAlert) {
	h.broadcast <- &scopedEvent{
		schoolCode: schoolCode,
		event:      &Event{Type: "sos_update", Data: alert},
	}
}
