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

// Intervention exported for testing purposes
type Intervention struct {
	DB databases.InterventionDatabase
}

// InterventionsHandler lists callout log entries within the caller's scope
func (i Intervention) InterventionsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	dbResp, err := i.DB.Find(context.Background(), permissions.DepartmentFilter(caller))
	if err != nil {
		config.ErrorStatus("failed to get interventions", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Intervention{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// InterventionByIDHandler returns an intervention given an interventionID
func (i Intervention) InterventionByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	interventionID := mux.Vars(r)["intervention_id"]
	caller := api.UserFromContext(r.Context())

	dbResp, err := i.DB.FindOne(context.Background(), bson.M{"_id": interventionID})
	if err != nil {
		config.ErrorStatus("failed to get intervention by ID", http.StatusNotFound, w, err)
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

// CreateInterventionHandler opens a new callout log entry in the caller's
// scope
func (i Intervention) CreateInterventionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var intervention models.Intervention
	if err := json.NewDecoder(r.Body).Decode(&intervention); err != nil {
		config.ErrorStatus("failed to decode intervention", http.StatusBadRequest, w, err)
		return
	}
	if intervention.Department == "" {
		intervention.Department = caller.Department
	}
	if !permissions.CanAccessDepartment(caller, intervention.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	intervention.ID = uuid.New().String()
	intervention.CreatedAt = time.Now()
	intervention.CreatedBy = caller.ID
	if intervention.Participants == nil {
		intervention.Participants = []string{}
	}
	if intervention.Vehicles == nil {
		intervention.Vehicles = []string{}
	}
	if err := i.DB.InsertOne(context.Background(), intervention); err != nil {
		config.ErrorStatus("failed to insert intervention", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(intervention)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateInterventionHandler applies a partial update, typically to close an
// entry by setting ended_at
func (i Intervention) UpdateInterventionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	interventionID := mux.Vars(r)["intervention_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	existing, err := i.DB.FindOne(context.Background(), bson.M{"_id": interventionID})
	if err != nil {
		config.ErrorStatus("intervention not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, existing.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var update models.InterventionUpdate
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

	matched, err := i.DB.UpdateOne(context.Background(), bson.M{"_id": interventionID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update intervention", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("intervention not found", http.StatusNotFound, w, nil)
		return
	}

	dbResp, err := i.DB.FindOne(context.Background(), bson.M{"_id": interventionID})
	if err != nil {
		config.ErrorStatus("failed to get intervention by ID", http.StatusNotFound, w, err)
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

// DeleteInterventionHandler removes a callout log entry
func (i Intervention) DeleteInterventionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	interventionID := mux.Vars(r)["intervention_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	existing, err := i.DB.FindOne(context.Background(), bson.M{"_id": interventionID})
	if err != nil {
		config.ErrorStatus("intervention not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, existing.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	deleted, err := i.DB.DeleteOne(context.Background(), bson.M{"_id": interventionID})
	if err != nil {
		config.ErrorStatus("failed to delete intervention", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("intervention not found", http.StatusNotFound, w, nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}
