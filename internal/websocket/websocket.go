package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"scoutscore/internal/logger"
	"scoutscore/internal/metrics"
	"scoutscore/internal/models"
	"scoutscore/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Scoreboard is public; no origin restriction
	},
}

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	log          logger.Logger
	clients      map[*Client]bool
	broadcast    chan models.WSMessage
	register     chan *Client
	unregister   chan *Client
	mutex        sync.RWMutex
	competitions services.CompetitionServicer
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan models.WSMessage
}

// New creates a new Hub instance with injected dependencies
func New(log logger.Logger, competitions services.CompetitionServicer) *Hub {
	return &Hub{
		log:          log,
		clients:      make(map[*Client]bool),
		broadcast:    make(chan models.WSMessage),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		competitions: competitions,
	}
}

// Start begins the hub's main loop in a goroutine
func (h *Hub) Start() {
	go h.run()
}

// run handles client registration/unregistration and message broadcasting
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			metrics.WSClients.Inc()
			h.log.Debug("Client connected", "total_clients", len(h.clients))

			// Send the current competition to the new client
			go func() {
				comp, err := h.competitions.CurrentCompetition(context.Background())
				if err != nil || comp == nil {
					return
				}
				client.send <- models.WSMessage{
					Type: "competition_status",
					Payload: map[string]interface{}{
						"competition_id": comp.ID,
						"status":         comp.Status,
					},
				}
			}()

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WSClients.Dec()
			}
			h.mutex.Unlock()
			h.log.Debug("Client disconnected", "total_clients", len(h.clients))

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// BroadcastMessage sends a message to all connected clients
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	h.broadcast <- models.WSMessage{
		Type:    msgType,
		Payload: payload,
	}
}

// BroadcastScoreSaved implements services.Broadcaster
func (h *Hub) BroadcastScoreSaved(competitionID, patrolID, stationID, value int) {
	h.BroadcastMessage("score_saved", map[string]interface{}{
		"competition_id": competitionID,
		"patrol_id":      patrolID,
		"station_id":     stationID,
		"value":          value,
	})
}

// BroadcastCompetitionStatus implements services.Broadcaster
func (h *Hub) BroadcastCompetitionStatus(competitionID int, status string) {
	h.BroadcastMessage("competition_status", map[string]interface{}{
		"competition_id": competitionID,
		"status":         status,
	})
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("WebSocket error", "error", err)
			}
			break
		}

		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err == nil {
			c.hub.log.Debug("Received message", "type", msg.Type)
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}

			msgBytes, _ := json.Marshal(message)
			w.Write(msgBytes)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles websocket requests from clients
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan models.WSMessage, 256),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Ensure Hub implements the broadcaster used by the services
var _ services.Broadcaster = (*Hub)(nil)
