package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/permissions"
	"github.com/vzo-kneginec/fire-brigade-api/config"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

// Message exported for testing purposes
type Message struct {
	DB databases.MessageDatabase
}

// MessagesHandler lists notices within the caller's scope
func (m Message) MessagesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	dbResp, err := m.DB.Find(context.Background(), permissions.DepartmentFilter(caller))
	if err != nil {
		config.ErrorStatus("failed to get messages", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Message{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateMessageHandler posts a new notice in the caller's scope
func (m Message) CreateMessageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var message models.Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		config.ErrorStatus("failed to decode message", http.StatusBadRequest, w, err)
		return
	}
	if message.Department == "" {
		message.Department = caller.Department
	}
	if !permissions.CanAccessDepartment(caller, message.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	message.ID = uuid.New().String()
	message.CreatedAt = time.Now()
	message.CreatedBy = caller.ID
	if message.Recipients == nil {
		message.Recipients = []string{}
	}
	if err := m.DB.InsertOne(context.Background(), message); err != nil {
		config.ErrorStatus("failed to insert message", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(message)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// DeleteMessageHandler removes a notice
func (m Message) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	messageID := mux.Vars(r)["message_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	// scope the delete so a DVD officer cannot remove another department's
	// notice by ID
	filter := permissions.DepartmentFilter(caller)
	filter["_id"] = messageID
	deleted, err := m.DB.DeleteOne(context.Background(), filter)
	if err != nil {
		config.ErrorStatus("failed to delete message", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("message not found", http.StatusNotFound, w, nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}
