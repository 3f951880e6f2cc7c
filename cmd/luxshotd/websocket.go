// WebSocket event feed for desktop clients. The daemon pushes scan
// lifecycle and history change events; clients may subscribe to a subset.
package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lukebuild/luxshot/internal/history"
	"github.com/lukebuild/luxshot/internal/logging"
	"github.com/lukebuild/luxshot/internal/models"
	"github.com/lukebuild/luxshot/internal/pipeline"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The daemon only ever serves local clients.
		host := r.Host
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		return host == "localhost" || host == "127.0.0.1" || host == "[::1]"
	},
}

// Scan lifecycle events.
const (
	EventScanStarted   = "scan.started"
	EventScanCompleted = "scan.completed"
	EventScanCancelled = "scan.cancelled"
	EventScanFailed    = "scan.failed"
)

// WSEnvelope wraps every message pushed to clients.
type WSEnvelope struct {
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	Timestamp int64                  `json:"timestamp"`
}

// WSClient is one connected WebSocket client.
type WSClient struct {
	id            string
	conn          *websocket.Conn
	send          chan []byte
	hub           *WSHub
	subscriptions map[string]bool
	subMu         sync.Mutex
}

// WSHub tracks connected clients and fans events out to them.
type WSHub struct {
	clients    map[string]*WSClient
	broadcast  chan []byte
	register   chan *WSClient
	unregister chan *WSClient
	mu         sync.RWMutex
	logger     *logging.Logger
}

// NewWSHub creates the hub and starts its event loop.
func NewWSHub() *WSHub {
	hub := &WSHub{
		clients:    make(map[string]*WSClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		logger:     logging.Get().WithComponent("ws"),
	}
	go hub.run()
	return hub
}

func (h *WSHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", map[string]interface{}{
				"client": client.id,
				"total":  total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", map[string]interface{}{
				"client": client.id,
				"total":  total,
			})

		case message := <-h.broadcast:
			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client: drop the connection rather than block.
					close(client.send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast pushes one typed event to every connected client.
func (h *WSHub) Broadcast(eventType string, data map[string]interface{}) {
	envelope := WSEnvelope{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Error("cannot marshal event", err)
		return
	}

	h.broadcast <- bytes
}

// BroadcastScanStarted notifies clients that a capture run began.
func (h *WSHub) BroadcastScanStarted() {
	h.Broadcast(EventScanStarted, map[string]interface{}{})
}

// BroadcastScanOutcome notifies clients how a capture run ended.
func (h *WSHub) BroadcastScanOutcome(out pipeline.Outcome) {
	switch out.Status {
	case pipeline.StatusSuccess:
		h.Broadcast(EventScanCompleted, map[string]interface{}{
			"record": recordData(out.Record),
		})
	case pipeline.StatusCancelled:
		h.Broadcast(EventScanCancelled, map[string]interface{}{})
	default:
		data := map[string]interface{}{}
		if out.Err != nil {
			data["error"] = out.Err.Error()
		}
		h.Broadcast(EventScanFailed, data)
	}
}

// BroadcastHistoryEvent relays a history store change to clients.
func (h *WSHub) BroadcastHistoryEvent(ev history.Event) {
	data := map[string]interface{}{}
	if ev.RecordID != "" {
		data["record_id"] = ev.RecordID
	}
	if ev.Type == history.EventInserted && ev.Record != nil {
		data["record"] = recordData(ev.Record)
	}
	h.Broadcast(string(ev.Type), data)
}

func recordData(rec *models.ScanRecord) map[string]interface{} {
	return map[string]interface{}{
		"id":           rec.ID,
		"title":        rec.Title,
		"timestamp":    rec.Timestamp.Format(time.RFC3339),
		"content":      rec.Content,
		"source_app":   rec.SourceApp,
		"content_type": string(rec.ContentType),
		"icon_name":    rec.IconName,
	}
}

// readPump consumes client messages until the connection drops.
func (c *WSClient) readPump() {
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
				c.hub.logger.Warn("read error", map[string]interface{}{"error": err.Error()})
			}
			break
		}

		var msg map[string]interface{}
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}

		action, ok := msg["action"].(string)
		if !ok {
			continue
		}

		switch action {
		case "subscribe":
			if events, ok := msg["events"].([]interface{}); ok {
				c.subMu.Lock()
				for _, e := range events {
					if name, ok := e.(string); ok {
						c.subscriptions[name] = true
					}
				}
				c.subMu.Unlock()
				c.sendAck("subscribe_ack", events)
			}

		case "unsubscribe":
			if events, ok := msg["events"].([]interface{}); ok {
				c.subMu.Lock()
				for _, e := range events {
					if name, ok := e.(string); ok {
						delete(c.subscriptions, name)
					}
				}
				c.subMu.Unlock()
			}

		case "ping":
			c.sendPong()
		}
	}
}

// writePump delivers queued messages and keeps the connection alive.
func (c *WSClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)
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

func (c *WSClient) sendAck(action string, events []interface{}) {
	envelope := map[string]interface{}{
		"action":     action,
		"subscribed": events,
		"timestamp":  time.Now().Unix(),
	}
	bytes, _ := json.Marshal(envelope)
	c.send <- bytes
}

func (c *WSClient) sendPong() {
	envelope := map[string]interface{}{
		"action":    "pong",
		"timestamp": time.Now().Unix(),
	}
	bytes, _ := json.Marshal(envelope)
	c.send <- bytes
}

// HandleWebSocket upgrades the request and registers the client.
func HandleWebSocket(hub *WSHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn("upgrade failed", map[string]interface{}{"error": err.Error()})
			return
		}

		client := &WSClient{
			id:            uuid.New().String(),
			conn:          conn,
			send:          make(chan []byte, 256),
			hub:           hub,
			subscriptions: make(map[string]bool),
		}

		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
