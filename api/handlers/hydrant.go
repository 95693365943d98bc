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

// Hydrant exported for testing purposes
type Hydrant struct {
	DB databases.HydrantDatabase
}

// HydrantsHandler returns the full hydrant registry. The registry is shared
// across departments, so reads are not scoped.
func (h Hydrant) HydrantsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	dbResp, err := h.DB.Find(context.Background(), bson.M{})
	if err != nil {
		config.ErrorStatus("failed to get hydrants", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Hydrant{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// HydrantByIDHandler returns a hydrant given a hydrantID
func (h Hydrant) HydrantByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	hydrantID := mux.Vars(r)["hydrant_id"]

	dbResp, err := h.DB.FindOne(context.Background(), bson.M{"_id": hydrantID})
	if err != nil {
		config.ErrorStatus("failed to get hydrant by ID", http.StatusNotFound, w, err)
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

// CreateHydrantHandler registers a new hydrant
func (h Hydrant) CreateHydrantHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var hydrant models.Hydrant
	if err := json.NewDecoder(r.Body).Decode(&hydrant); err != nil {
		config.ErrorStatus("failed to decode hydrant", http.StatusBadRequest, w, err)
		return
	}

	hydrant.ID = uuid.New().String()
	hydrant.CreatedAt = time.Now()
	if hydrant.Images == nil {
		hydrant.Images = []string{}
	}
	if err := h.DB.InsertOne(context.Background(), hydrant); err != nil {
		config.ErrorStatus("failed to insert hydrant", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(hydrant)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateHydrantHandler applies a partial update and records who performed the
// check and when.
func (h Hydrant) UpdateHydrantHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	hydrantID := mux.Vars(r)["hydrant_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var update models.HydrantUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		config.ErrorStatus("failed to decode update", http.StatusBadRequest, w, err)
		return
	}

	fields, err := updateFields(update)
	if err != nil {
		config.ErrorStatus("failed to encode update", http.StatusInternalServerError, w, err)
		return
	}
	// every touch counts as an inspection
	fields["last_check"] = time.Now()
	fields["checked_by"] = caller.ID

	matched, err := h.DB.UpdateOne(context.Background(), bson.M{"_id": hydrantID}, bson.M{"$set": fields})
	if err != nil {
		config.ErrorStatus("failed to update hydrant", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("hydrant not found", http.StatusNotFound, w, nil)
		return
	}

	dbResp, err := h.DB.FindOne(context.Background(), bson.M{"_id": hydrantID})
	if err != nil {
		config.ErrorStatus("failed to get hydrant by ID", http.StatusNotFound, w, err)
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

// DeleteHydrantHandler removes a hydrant from the registry
func (h Hydrant) DeleteHydrantHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	hydrantID := mux.Vars(r)["hydrant_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	deleted, err := h.DB.DeleteOne(context.Background(), bson.M{"_id": hydrantID})
	if err != nil {
		config.ErrorStatus("failed to delete hydrant", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("hydrant not found", http.StatusNotFound, w, nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}
