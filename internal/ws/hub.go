package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// Client is one connected admin dashboard.
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// FeedEvent is pushed to every connected client after a successful
// create. Type is "checkin" or "announcement".
type FeedEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans feed events out to all connected admin clients.
type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan FeedEvent
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan FeedEvent, 16),
	}
}

// Publish queues an event without blocking the calling handler; if the
// hub is saturated the event is dropped, the store row is already
// committed either way.
func (h *Hub) Publish(eventType string, payload interface{}) {
	select {
	case h.Broadcast <- FeedEvent{Type: eventType, Payload: payload}:
	default:
		log.Println("feed hub saturated, dropping event:", eventType)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
			log.Println("feed client connected")

		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
				log.Println("feed client disconnected")
			}

		case event := <-h.Broadcast:
			jsonData, err := json.Marshal(event)
			if err != nil {
				log.Println("failed to marshal feed event:", err)
				continue
			}
			for client := range h.Clients {
				select {
				case client.Send <- jsonData:
				default:
					// slow client, drop it
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}
