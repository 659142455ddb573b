package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/guestlens/server/internal/middleware"
	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/observability"
	"github.com/guestlens/server/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now - can be restricted in production
		return true
	},
}

// WebSocketHandler manages realtime gallery connections. Each connection gets
// its own feed session, so clients can drive pagination over the socket and
// receive live events on the same channel.
type WebSocketHandler struct {
	hub         *services.WebSocketHub
	feedService *services.FeedService
	metrics     *observability.BusinessMetrics

	mu    sync.Mutex
	feeds map[string]*services.FeedSession // client ID -> feed session
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *services.WebSocketHub, feedService *services.FeedService, metrics *observability.BusinessMetrics) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		feedService: feedService,
		metrics:     metrics,
		feeds:       make(map[string]*services.FeedSession),
	}
}

// HandleConnection upgrades HTTP to WebSocket for an authenticated gallery
// session and subscribes the client to the gallery's event topic
func (h *WebSocketHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	gallery := middleware.GetGalleryFromContext(r.Context())
	session := middleware.GetSessionFromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		observability.Warnf("WebSocket upgrade failed: %v", err)
		return
	}

	clientID := uuid.New().String()
	client := h.hub.NewClient(clientID, conn)
	client.DeviceID = session.DeviceID

	h.hub.Register(client)
	h.hub.Subscribe(client, services.GalleryTopic(gallery.ID))

	h.mu.Lock()
	h.feeds[clientID] = h.feedService.NewSession(gallery.ID)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ClientConnected(r.Context(), 1)
	}

	go client.WritePump()

	client.ReadPump(h.handleMessage)

	h.mu.Lock()
	delete(h.feeds, clientID)
	h.mu.Unlock()

	if h.metrics != nil {
		h.metrics.ClientConnected(context.Background(), -1)
	}
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(client *services.WSClient, messageType int, data []byte) {
	if messageType != websocket.TextMessage {
		return
	}

	var msg services.WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		observability.Debugf("Invalid WebSocket message: %v", err)
		return
	}

	switch msg.Type {
	case services.WSTypePing:
		h.send(client, services.WSMessage{Type: services.WSTypePong})

	case services.WSTypeFeedInitial:
		h.withFeed(client, func(feed *services.FeedSession) {
			items, err := feed.LoadInitial(context.Background())
			h.sendFeedPage(client, items, feed, err)
		})

	case services.WSTypeFeedMore:
		h.withFeed(client, func(feed *services.FeedSession) {
			items, err := feed.LoadMore(context.Background())
			h.sendFeedPage(client, items, feed, err)
		})

	case services.WSTypeFeedRefresh:
		h.withFeed(client, func(feed *services.FeedSession) {
			items, err := feed.Refresh(context.Background())
			h.sendFeedPage(client, items, feed, err)
		})
	}
}

func (h *WebSocketHandler) withFeed(client *services.WSClient, fn func(*services.FeedSession)) {
	h.mu.Lock()
	feed := h.feeds[client.ID]
	h.mu.Unlock()
	if feed == nil {
		return
	}
	fn(feed)
}

func (h *WebSocketHandler) sendFeedPage(client *services.WSClient, items []*models.MediaItem, feed *services.FeedSession, err error) {
	if err != nil {
		h.send(client, services.WSMessage{
			Type:    services.WSTypeError,
			Payload: models.ErrorResponse{Error: "Failed to load feed."},
		})
		return
	}

	responses := make([]models.MediaResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, models.MediaToResponse(item))
	}

	h.send(client, services.WSMessage{
		Type: services.WSTypeFeedPage,
		Payload: models.FeedPageResponse{
			Items:   responses,
			HasMore: feed.HasMore(),
		},
	})
}

func (h *WebSocketHandler) send(client *services.WSClient, msg services.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}
