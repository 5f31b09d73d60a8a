package server

import (
	"log"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// Event is the envelope broadcast to every websocket client.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const (
	EventScenePending = "scene.pending"
	EventSceneUpdated = "scene.updated"
	EventSceneFailed  = "scene.failed"
)

// Hub fans generation events out to connected websocket clients. All client
// state is owned by the run goroutine; handlers talk to it through channels.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan Event
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	count      atomic.Int32
}

// NewHub returns a running Hub.
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan Event),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int32(len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.count.Store(int32(len(h.clients)))

		case event := <-h.broadcast:
			for client := range h.clients {
				if err := client.WriteJSON(event); err != nil {
					log.Printf("websocket write: %v", err)
					client.Close()
					delete(h.clients, client)
				}
			}
			h.count.Store(int32(len(h.clients)))

		case <-h.done:
			for client := range h.clients {
				client.Close()
			}
			h.clients = make(map[*websocket.Conn]bool)
			h.count.Store(0)
			return
		}
	}
}

// Broadcast sends one event to every connected client.
func (h *Hub) Broadcast(eventType string, payload any) {
	select {
	case h.broadcast <- Event{Type: eventType, Payload: payload}:
	case <-h.done:
	}
}

func (h *Hub) add(conn *websocket.Conn) {
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// ClientCount reports how many clients are currently connected.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Close disconnects every client and stops the hub.
func (h *Hub) Close() {
	close(h.done)
}
