package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Event types pushed to connected dashboard clients.
const (
	EventSaleRecorded   = "sale_recorded"
	EventStockAlert     = "stock_alert"
	EventCatalogChanged = "catalog_changed"
)

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			zap.L().Info("ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish marshals an event envelope and hands it to the broadcast loop
// without blocking the caller. Safe on a nil hub, which keeps services
// usable without a running hub (e.g. in tests).
func (h *Hub) Publish(event string, payload interface{}) {
	if h == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"type": event,
		"data": payload,
		"at":   time.Now(),
	})
	if err != nil {
		return
	}
	go func() { h.Broadcast <- body }()
}
