// Package realtime pousse les changements de la boutique vers les navigateurs
// connectés en WebSocket : toasts, panier et catalogue.
package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"costumes_back_end/internal/models"
	"costumes_back_end/internal/store"
)

const (
	pingInterval = 30 * time.Second
	writeWait    = 10 * time.Second
	sendBuffer   = 16
)

type ToastMessage struct {
	Type    string `json:"type"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type CartMessage struct {
	Type  string            `json:"type"`
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

type EventMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub garde la liste des navigateurs connectés
type Hub struct {
	upgrader websocket.Upgrader
	ping     time.Duration

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub accepte les origines listées ; une liste vide les autorise toutes
func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{
		ping:    pingInterval,
		clients: map[*client]struct{}{},
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
		},
	}
	return h
}

// ServeWS passe la connexion en WebSocket et la garde jusqu'à sa fermeture
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	go h.writePump(c)

	h.sendTo(c, EventMessage{Type: "connected", Message: "Synchronisation activée"})

	// Lecture uniquement pour détecter la fermeture côté navigateur
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister(c)
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.ping)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				h.unregister(c)
				return
			}
		case <-ticker.C:
			// Ping pour garder la connexion active
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unregister(c)
				return
			}
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	log.Printf("🔌 Client WebSocket connecté (%d)", len(h.clients))
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		log.Printf("🔌 Client WebSocket déconnecté (%d)", len(h.clients))
	}
}

// Clients retourne le nombre de connexions ouvertes
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) sendTo(c *client, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("❌ Erreur encodage message WebSocket: %v", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; ok {
		select {
		case c.send <- data:
		default:
		}
	}
}

// Broadcast envoie v en JSON à tous les clients. Un client dont la file
// est pleine est déconnecté.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("❌ Erreur encodage message WebSocket: %v", err)
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.unregister(c)
	}
}

// Close déconnecte tous les clients
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) Success(msg string) {
	h.Broadcast(ToastMessage{Type: "toast", Level: "success", Message: msg})
}

func (h *Hub) Error(msg string) {
	h.Broadcast(ToastMessage{Type: "toast", Level: "error", Message: msg})
}

// Attach relaie les mutations du store : panier complet après chaque changement
// de panier, simple signal après un changement de catalogue.
func (h *Hub) Attach(s *store.Store) {
	s.Subscribe(func(ev store.Event) {
		switch ev.Slice {
		case store.SliceCart:
			h.Broadcast(CartMessage{
				Type:  "cart_updated",
				Items: s.Cart(),
				Total: s.CartTotal(),
				Count: s.CartCount(),
			})
		case store.SliceProducts:
			h.Broadcast(EventMessage{Type: "products_updated"})
		case store.SliceCategories:
			h.Broadcast(EventMessage{Type: "categories_updated"})
		case store.SliceOrders:
			h.Broadcast(EventMessage{Type: "orders_updated"})
		}
	})
}
