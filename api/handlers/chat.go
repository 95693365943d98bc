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

// Chat exported for testing purposes
type Chat struct {
	DB  databases.ChatDatabase
	UDB databases.UserDatabase
}

type chatSendRequest struct {
	Body string `json:"body"`
}

// GroupHistoryHandler returns the message history of a chat group. The
// general group is open to every member; the operational group requires the
// operational flag.
func (c Chat) GroupHistoryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	group := mux.Vars(r)["group"]
	caller := api.UserFromContext(r.Context())

	if !validGroup(group) {
		config.ErrorStatus("unknown chat group", http.StatusNotFound, w, nil)
		return
	}
	if group == models.ChatGroupOperational && !permissions.CanUseOperationalChat(caller) {
		config.ErrorStatus("operational members only", http.StatusForbidden, w, nil)
		return
	}

	dbResp, err := c.DB.Find(context.Background(), bson.M{"group": group})
	if err != nil {
		config.ErrorStatus("failed to get chat history", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.ChatMessage{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SendGroupHandler posts a message to a chat group
func (c Chat) SendGroupHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	group := mux.Vars(r)["group"]
	caller := api.UserFromContext(r.Context())

	if !validGroup(group) {
		config.ErrorStatus("unknown chat group", http.StatusNotFound, w, nil)
		return
	}
	if group == models.ChatGroupOperational && !permissions.CanUseOperationalChat(caller) {
		config.ErrorStatus("operational members only", http.StatusForbidden, w, nil)
		return
	}

	var req chatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode message", http.StatusBadRequest, w, err)
		return
	}
	if req.Body == "" {
		config.ErrorStatus("message body is required", http.StatusBadRequest, w, nil)
		return
	}

	message := models.ChatMessage{
		ID:         uuid.New().String(),
		Group:      group,
		Sender:     caller.ID,
		SenderName: caller.FullName,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}
	if err := c.DB.InsertOne(context.Background(), message); err != nil {
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

// PrivateHistoryHandler returns the two-way private history between the
// caller and another operational member
func (c Chat) PrivateHistoryHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	otherID := mux.Vars(r)["user_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanUseOperationalChat(caller) {
		config.ErrorStatus("operational members only", http.StatusForbidden, w, nil)
		return
	}

	dbResp, err := c.DB.Find(context.Background(), bson.M{"$or": []bson.M{
		{"sender": caller.ID, "recipient": otherID},
		{"sender": otherID, "recipient": caller.ID},
	}})
	if err != nil {
		config.ErrorStatus("failed to get chat history", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.ChatMessage{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SendPrivateHandler posts a private message to another operational member
func (c Chat) SendPrivateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	otherID := mux.Vars(r)["user_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanUseOperationalChat(caller) {
		config.ErrorStatus("operational members only", http.StatusForbidden, w, nil)
		return
	}

	recipient, err := c.UDB.FindOne(context.Background(), bson.M{"_id": otherID})
	if err != nil {
		config.ErrorStatus("recipient not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanUseOperationalChat(recipient) {
		config.ErrorStatus("recipient is not an operational member", http.StatusForbidden, w, nil)
		return
	}

	var req chatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode message", http.StatusBadRequest, w, err)
		return
	}
	if req.Body == "" {
		config.ErrorStatus("message body is required", http.StatusBadRequest, w, nil)
		return
	}

	message := models.ChatMessage{
		ID:         uuid.New().String(),
		Recipient:  recipient.ID,
		Sender:     caller.ID,
		SenderName: caller.FullName,
		Body:       req.Body,
		CreatedAt:  time.Now(),
	}
	if err := c.DB.InsertOne(context.Background(), message); err != nil {
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

func validGroup(group string) bool {
	return group == models.ChatGroupGeneral || group == models.ChatGroupOperational
}
