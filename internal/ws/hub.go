package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// Publisher receives domain events once they are committed.
type Publisher interface {
	Publish(eventType string, payload map[string]interface{})
}

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 64),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.logger.Debug("websocket client connected", zap.Int("clients", h.ClientCount()))

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

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Publish encodes the event and queues it for broadcast without blocking the caller.
// When the broadcast queue is full the event is dropped.
func (h *Hub) Publish(eventType string, payload map[string]interface{}) {
	msg, err := Encode(eventType, payload)
	if err != nil {
		h.logger.Warn("failed to encode websocket event", zap.String("type", eventType), zap.Error(err))
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.logger.Warn("websocket broadcast queue full, dropping event", zap.String("type", eventType))
	}
}

// Encode builds the wire message: the payload with a "type" field added.
func Encode(eventType string, payload map[string]interface{}) ([]byte, error) {
	msg := make(map[string]interface{}, len(payload)+1)
	for k, v := range payload {
		msg[k] = v
	}
	msg["type"] = eventType
	return json.Marshal(msg)
}
