package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/guestlens/server/internal/observability"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WSClient represents a connected WebSocket client
type WSClient struct {
	ID         string
	DeviceID   string // Set after the client identifies itself
	Topics     map[string]bool
	Conn       *websocket.Conn
	Send       chan []byte
	hub        *WebSocketHub
	mu         sync.Mutex
	closedOnce sync.Once
}

// WebSocketHub fans gallery events out to connected clients
type WebSocketHub struct {
	clients    map[*WSClient]bool
	topics     map[string]map[*WSClient]bool // topic -> clients
	register   chan *WSClient
	unregister chan *WSClient
	broadcast  chan *broadcastMsg
	mu         sync.RWMutex
}

type broadcastMsg struct {
	topic   string
	message []byte
}

// NewWebSocketHub creates a new WebSocket hub
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*WSClient]bool),
		topics:     make(map[string]map[*WSClient]bool),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		broadcast:  make(chan *broadcastMsg, 256),
	}
}

// GalleryTopic returns the event topic for a gallery's feed
func GalleryTopic(galleryID string) string {
	return "gallery:" + galleryID
}

// Run starts the hub's main loop
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			observability.Debugf("WebSocket client connected: %s", client.ID)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				for topic := range client.Topics {
					if topicClients, ok := h.topics[topic]; ok {
						delete(topicClients, client)
						if len(topicClients) == 0 {
							delete(h.topics, topic)
						}
					}
				}
				close(client.Send)
			}
			h.mu.Unlock()
			observability.Debugf("WebSocket client disconnected: %s", client.ID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var targets map[*WSClient]bool
			if msg.topic != "" {
				targets = h.topics[msg.topic]
			} else {
				targets = h.clients
			}

			for client := range targets {
				select {
				case client.Send <- msg.message:
				default:
					// Client buffer full, close connection
					go func(c *WSClient) {
						h.unregister <- c
					}(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a client to the hub
func (h *WebSocketHub) Register(client *WSClient) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *WebSocketHub) Unregister(client *WSClient) {
	h.unregister <- client
}

// Subscribe adds a client to a topic
func (h *WebSocketHub) Subscribe(client *WSClient, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client.Topics[topic] = true
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*WSClient]bool)
	}
	h.topics[topic][client] = true
}

// Unsubscribe removes a client from a topic
func (h *WebSocketHub) Unsubscribe(client *WSClient, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(client.Topics, topic)
	if topicClients, ok := h.topics[topic]; ok {
		delete(topicClients, client)
		if len(topicClients) == 0 {
			delete(h.topics, topic)
		}
	}
}

// BroadcastToGallery sends an event to all clients watching a gallery
func (h *WebSocketHub) BroadcastToGallery(galleryID string, msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		observability.Errorf("Error marshaling WebSocket message: %v", err)
		return
	}

	h.broadcast <- &broadcastMsg{
		topic:   GalleryTopic(galleryID),
		message: data,
	}
}

// GetClientCount returns the number of connected clients
func (h *WebSocketHub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetTopicSubscriberCount returns the number of subscribers for a topic
func (h *WebSocketHub) GetTopicSubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.topics[topic]; ok {
		return len(clients)
	}
	return 0
}

// NewClient creates a new WebSocket client connected to this hub
func (h *WebSocketHub) NewClient(id string, conn *websocket.Conn) *WSClient {
	return &WSClient{
		ID:     id,
		Topics: make(map[string]bool),
		Conn:   conn,
		Send:   make(chan []byte, 256),
		hub:    h,
	}
}

// WSClient methods

// Close closes the client connection
func (c *WSClient) Close() {
	c.closedOnce.Do(func() {
		c.hub.Unregister(c)
		c.Conn.Close()
	})
}

// WritePump pumps messages from the hub to the websocket connection
func (c *WSClient) WritePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			c.mu.Lock()
			err := c.Conn.WriteMessage(websocket.TextMessage, message)
			c.mu.Unlock()

			if err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump pumps messages from the websocket connection to the hub
func (c *WSClient) ReadPump(onMessage func(client *WSClient, messageType int, data []byte)) {
	defer c.Close()

	c.Conn.SetReadLimit(512 * 1024) // 512KB max message size
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				observability.Warnf("WebSocket error: %v", err)
			}
			break
		}

		if onMessage != nil {
			onMessage(c, messageType, message)
		}
	}
}

// Event types
const (
	WSTypeMediaAdded   = "media_added"
	WSTypeMediaDeleted = "media_deleted"
	WSTypeCommentAdded = "comment_added"
	WSTypeLikeChanged  = "like_changed"
	WSTypeStoryAdded   = "story_added"
	WSTypeFeedPage     = "feed_page"
	WSTypeError        = "error"
	WSTypeSubscribe    = "subscribe"
	WSTypeUnsubscribe  = "unsubscribe"
	WSTypeFeedInitial  = "feed_load_initial"
	WSTypeFeedMore     = "feed_load_more"
	WSTypeFeedRefresh  = "feed_refresh"
	WSTypePing         = "ping"
	WSTypePong         = "pong"
)

// LikeChangedPayload is broadcast when a like toggles
type LikeChangedPayload struct {
	MediaID string `json:"mediaId"`
	Count   int    `json:"count"`
}

// MediaDeletedPayload is broadcast when a media item is removed
type MediaDeletedPayload struct {
	MediaID string `json:"mediaId"`
}
