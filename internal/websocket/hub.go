package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of connected feed clients and broadcasts new-post
// events to them. The feed is global; every client sees every post.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Messages to fan out to every connected client.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Feed client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; drop it rather than stall the feed.
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}
