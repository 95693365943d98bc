package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/permissions"
	"github.com/vzo-kneginec/fire-brigade-api/config"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

// Event exported for testing purposes
type Event struct {
	DB databases.EventDatabase
}

// EventsHandler lists events within the caller's scope
func (e Event) EventsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	dbResp, err := e.DB.Find(context.Background(), permissions.DepartmentFilter(caller))
	if err != nil {
		config.ErrorStatus("failed to get events", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Event{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// EventByIDHandler returns an event given an eventID
func (e Event) EventByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventID := mux.Vars(r)["event_id"]
	caller := api.UserFromContext(r.Context())

	dbResp, err := e.DB.FindOne(context.Background(), bson.M{"_id": eventID})
	if err != nil {
		config.ErrorStatus("failed to get event by ID", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, dbResp.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateEventHandler schedules a new event in the caller's scope
func (e Event) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		config.ErrorStatus("failed to decode event", http.StatusBadRequest, w, err)
		return
	}
	if event.Department == "" {
		event.Department = caller.Department
	}
	if !permissions.CanAccessDepartment(caller, event.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	event.ID = uuid.New().String()
	event.CreatedAt = time.Now()
	event.CreatedBy = caller.ID
	if event.Participants == nil {
		event.Participants = []string{}
	}
	if err := e.DB.InsertOne(context.Background(), event); err != nil {
		config.ErrorStatus("failed to insert event", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(event)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateEventHandler applies a partial update to an event
func (e Event) UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventID := mux.Vars(r)["event_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	existing, err := e.DB.FindOne(context.Background(), bson.M{"_id": eventID})
	if err != nil {
		config.ErrorStatus("event not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, existing.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var update models.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		config.ErrorStatus("failed to decode update", http.StatusBadRequest, w, err)
		return
	}

	set, err := updateFields(update)
	if err != nil {
		config.ErrorStatus("failed to encode update", http.StatusInternalServerError, w, err)
		return
	}
	if len(set) == 0 {
		config.ErrorStatus("no fields to update", http.StatusBadRequest, w, nil)
		return
	}

	matched, err := e.DB.UpdateOne(context.Background(), bson.M{"_id": eventID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update event", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("event not found", http.StatusNotFound, w, nil)
		return
	}

	dbResp, err := e.DB.FindOne(context.Background(), bson.M{"_id": eventID})
	if err != nil {
		config.ErrorStatus("failed to get event by ID", http.StatusNotFound, w, err)
		return
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// DeleteEventHandler removes an event
func (e Event) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventID := mux.Vars(r)["event_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	existing, err := e.DB.FindOne(context.Background(), bson.M{"_id": eventID})
	if err != nil {
		config.ErrorStatus("event not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, existing.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	deleted, err := e.DB.DeleteOne(context.Background(), bson.M{"_id": eventID})
	if err != nil {
		config.ErrorStatus("failed to delete event", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("event not found", http.StatusNotFound, w, nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}
