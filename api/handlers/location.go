package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/permissions"
	"github.com/vzo-kneginec/fire-brigade-api/api/presence"
	"github.com/vzo-kneginec/fire-brigade-api/config"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

// Location exported for testing purposes
type Location struct {
	DB      databases.LocationDatabase
	UDB     databases.UserDatabase
	Tracker *presence.Tracker
	Hub     *LocationHub
}

// UpdateLocationHandler is the HTTP push path into the presence tracker,
// used by clients without a websocket connection. The sample also lands in
// the locations history collection.
func (l Location) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	var req models.LocationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode location", http.StatusBadRequest, w, err)
		return
	}
	if !validCoordinates(req.Latitude, req.Longitude) {
		config.ErrorStatus("coordinates out of range", http.StatusBadRequest, w, nil)
		return
	}

	subject := caller
	if req.UserID != "" && req.UserID != caller.ID {
		// only association offices may push on behalf of a member
		// (dispatcher consoles)
		if !permissions.HasFullAccess(caller) {
			config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
			return
		}
		other, err := l.UDB.FindOne(context.Background(), bson.M{"_id": req.UserID})
		if err != nil {
			config.ErrorStatus("user not found", http.StatusNotFound, w, err)
			return
		}
		subject = other
	}

	entry := l.Tracker.Update("http:"+subject.ID, subject.ID, subject.Username, subject.FullName, req.Latitude, req.Longitude)

	sample := models.LocationSample{
		ID:        uuid.New().String(),
		UserID:    entry.UserID,
		Username:  entry.Username,
		FullName:  entry.FullName,
		Latitude:  entry.Latitude,
		Longitude: entry.Longitude,
		Status:    entry.Status,
		Timestamp: entry.Timestamp,
	}
	if err := l.DB.InsertOne(context.Background(), sample); err != nil {
		config.ErrorStatus("failed to insert location sample", http.StatusInternalServerError, w, err)
		return
	}

	if l.Hub != nil {
		l.Hub.BroadcastLocations()
	}

	b, err := json.Marshal(entry)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ActiveLocationsHandler returns the live presence list. Stale entries are
// evicted by the read itself.
func (l Location) ActiveLocationsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	entries := l.Tracker.List()
	b, err := json.Marshal(entries)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func validCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
