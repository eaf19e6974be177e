// Package ws pushes order change notifications to connected dashboard
// sessions. Clients do not receive order payloads, only a signal that the
// order list changed; they refetch over the REST API.
package ws

import "encoding/json"

// Event is the wire format for dashboard notifications.
type Event struct {
	Type string `json:"type"`
}

// EventOrdersChanged tells the dashboard to refetch the order list.
const EventOrdersChanged = "orders_changed"

// Hub maintains the set of connected dashboard clients and broadcasts
// events to all of them.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
	}
}

// Run processes register, unregister and broadcast events. Call it in its
// own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client, drop it.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Notify broadcasts an orders_changed event to every connected client.
func (h *Hub) Notify() {
	payload, err := json.Marshal(Event{Type: EventOrdersChanged})
	if err != nil {
		return
	}
	h.broadcast <- payload
}
