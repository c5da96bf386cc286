package websocket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lcalzada-xor/sentinel/internal/core/domain"
)

// writeWait bounds every broadcast write; a client that stops reading is
// dropped instead of stalling the pipeline cycle behind the mutex.
const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// Same-origin requests carry no Origin header.
		if origin == "" {
			return true
		}
		allowedOrigins := []string{
			"http://localhost:8080",
			"http://127.0.0.1:8080",
			"http://[::1]:8080",
		}
		for _, allowed := range allowedOrigins {
			if origin == allowed {
				return true
			}
		}
		log.Printf("WebSocket: rejected origin: %s", origin)
		return false
	},
}

// WSMessage is the envelope for every broadcast frame.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSManager pushes newly generated alerts to connected dashboard clients.
// Broadcasts are fire-and-forget: a failing client is dropped, never waited
// on.
type WSManager struct {
	clients map[*websocket.Conn]struct{}
	mu      sync.Mutex
}

// NewWSManager creates an empty manager.
func NewWSManager() *WSManager {
	return &WSManager{clients: make(map[*websocket.Conn]struct{})}
}

// HandleWebSocket upgrades the connection and tracks it until it closes.
func (m *WSManager) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}

	m.mu.Lock()
	m.clients[conn] = struct{}{}
	m.mu.Unlock()

	go func() {
		defer conn.Close()
		defer func() {
			m.mu.Lock()
			delete(m.clients, conn)
			m.mu.Unlock()
		}()
		// Drain until the client disconnects; the stream is one-way.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// BroadcastAlert sends an alert record to all connected clients.
func (m *WSManager) BroadcastAlert(alert domain.AlertRecord) {
	m.broadcast(WSMessage{Type: "alert", Payload: alert})
}

func (m *WSManager) broadcast(msg WSMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			conn.Close()
			delete(m.clients, conn)
		}
	}
}

// ClientCount returns the number of connected clients.
func (m *WSManager) ClientCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}
