package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/presence"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	conn   *websocket.Conn
	userID string
}

type wsEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// LocationHub owns the live location channel. Each connection gets its own
// tracker key so two devices of the same member count as two presences until
// one goes stale.
type LocationHub struct {
	tracker *presence.Tracker
	clients map[string]*wsClient
	mutex   sync.Mutex
}

// NewLocationHub returns a hub bound to the given tracker
func NewLocationHub(tracker *presence.Tracker) *LocationHub {
	return &LocationHub{
		tracker: tracker,
		clients: make(map[string]*wsClient),
	}
}

// ServeWS upgrades the connection and pumps location events until the client
// disconnects
func (h *LocationHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	caller := api.UserFromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().With(err).Error("websocket upgrade failed")
		return
	}

	connID := uuid.New().String()
	h.mutex.Lock()
	h.clients[connID] = &wsClient{conn: conn, userID: caller.ID}
	h.mutex.Unlock()
	zap.S().Infow("member connected to location channel",
		"username", caller.Username,
	)

	// current snapshot straight away
	h.sendLocations(conn)

	defer func() {
		h.mutex.Lock()
		delete(h.clients, connID)
		h.mutex.Unlock()
		h.tracker.Remove(connID)
		conn.Close()
		h.BroadcastLocations()
		zap.S().Infow("member disconnected from location channel",
			"username", caller.Username,
		)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var event wsEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			zap.S().With(err).Debug("dropping malformed websocket frame")
			continue
		}

		switch event.Event {
		case "location_update":
			h.handleLocationUpdate(connID, caller, event.Data)
		case "ping_user":
			h.handlePingUser(caller, event.Data)
		default:
			zap.S().Debugw("unknown websocket event", "event", event.Event)
		}
	}
}

func (h *LocationHub) handleLocationUpdate(connID string, caller *models.User, data json.RawMessage) {
	var req models.LocationUpdateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		zap.S().With(err).Debug("dropping malformed location update")
		return
	}
	if !validCoordinates(req.Latitude, req.Longitude) {
		zap.S().Debugw("dropping out-of-range coordinates",
			"latitude", req.Latitude,
			"longitude", req.Longitude,
		)
		return
	}

	h.tracker.Update(connID, caller.ID, caller.Username, caller.FullName, req.Latitude, req.Longitude)
	h.BroadcastLocations()
}

type pingRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

func (h *LocationHub) handlePingUser(caller *models.User, data json.RawMessage) {
	var req pingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		zap.S().With(err).Debug("dropping malformed ping")
		return
	}

	payload := map[string]interface{}{
		"event": "ping_received",
		"data": map[string]string{
			"from_user_id": caller.ID,
			"from_name":    caller.FullName,
			"message":      req.Message,
		},
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for connID, client := range h.clients {
		if client.userID != req.UserID {
			continue
		}
		if err := client.conn.WriteJSON(payload); err != nil {
			client.conn.Close()
			delete(h.clients, connID)
		}
	}
}

// BroadcastLocations pushes the current presence list to every connected
// client
func (h *LocationHub) BroadcastLocations() {
	entries := h.tracker.List()
	payload := map[string]interface{}{
		"event": "user_locations",
		"data":  entries,
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for connID, client := range h.clients {
		if err := client.conn.WriteJSON(payload); err != nil {
			client.conn.Close()
			delete(h.clients, connID)
		}
	}
}

// sendLocations writes the current snapshot to a single connection. Every
// write to a connection happens under the hub mutex; gorilla connections
// support only one concurrent writer.
func (h *LocationHub) sendLocations(conn *websocket.Conn) {
	entries := h.tracker.List()
	payload := map[string]interface{}{
		"event": "user_locations",
		"data":  entries,
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	_ = conn.WriteJSON(payload)
}
