// Package feed рассылает события об изменении лавочек подключённым websocket-клиентам.
package feed

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"benches/internal/models"
)

const (
	EventCreated = "created"
	EventDeleted = "deleted"
	EventPhoto   = "photo"
)

const (
	// sendBuffer — сколько событий может ждать отправки одному клиенту
	sendBuffer = 64
	writeWait  = 10 * time.Second
)

// Event — сообщение, которое получает клиент
type Event struct {
	Type  string       `json:"type"`
	Bench models.Bench `json:"bench"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub хранит активные соединения. У каждого соединения свой писатель,
// поэтому медленный клиент не задерживает Publish.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

// Add добавляет соединение и запускает для него писателя
func (h *Hub) Add(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[conn] = c
	h.mu.Unlock()
	go h.writeLoop(c)
}

// Remove удаляет соединение; повторный вызов ничего не делает
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.drop(conn)
}

// drop вызывается под h.mu
func (h *Hub) drop(conn *websocket.Conn) {
	c, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(c.send)
}

// Len — количество подключённых клиентов
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish ставит событие в очередь каждого клиента не блокируясь.
// Клиент с переполненной очередью отключается.
func (h *Hub) Publish(eventType string, b models.Bench) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(Event{Type: eventType, Bench: b})
	if err != nil {
		log.Printf("[FEED] marshal event: %v", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("[FEED] client %s is too slow, dropping", conn.RemoteAddr())
			h.drop(conn)
			conn.Close()
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.Remove(c.conn)
			c.conn.Close()
			return
		}
	}
}
