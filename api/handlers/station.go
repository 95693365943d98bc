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

// Station exported for testing purposes
type Station struct {
	DB databases.StationDatabase
}

// StationsHandler lists fire houses within the caller's scope
func (s Station) StationsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	dbResp, err := s.DB.Find(context.Background(), permissions.DepartmentFilter(caller))
	if err != nil {
		config.ErrorStatus("failed to get stations", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Station{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// StationByIDHandler returns a station given a stationID
func (s Station) StationByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	stationID := mux.Vars(r)["station_id"]
	caller := api.UserFromContext(r.Context())

	dbResp, err := s.DB.FindOne(context.Background(), bson.M{"_id": stationID})
	if err != nil {
		config.ErrorStatus("failed to get station by ID", http.StatusNotFound, w, err)
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

// CreateStationHandler registers a new fire house in the caller's scope
func (s Station) CreateStationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var station models.Station
	if err := json.NewDecoder(r.Body).Decode(&station); err != nil {
		config.ErrorStatus("failed to decode station", http.StatusBadRequest, w, err)
		return
	}
	if station.Department == "" {
		station.Department = caller.Department
	}
	if !permissions.CanAccessDepartment(caller, station.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	station.ID = uuid.New().String()
	station.CreatedAt = time.Now()
	station.CreatedBy = caller.ID
	if err := s.DB.InsertOne(context.Background(), station); err != nil {
		config.ErrorStatus("failed to insert station", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(station)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateStationHandler applies a partial update to a station
func (s Station) UpdateStationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	stationID := mux.Vars(r)["station_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	existing, err := s.DB.FindOne(context.Background(), bson.M{"_id": stationID})
	if err != nil {
		config.ErrorStatus("station not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, existing.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var update models.StationUpdate
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

	matched, err := s.DB.UpdateOne(context.Background(), bson.M{"_id": stationID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update station", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("station not found", http.StatusNotFound, w, nil)
		return
	}

	dbResp, err := s.DB.FindOne(context.Background(), bson.M{"_id": stationID})
	if err != nil {
		config.ErrorStatus("failed to get station by ID", http.StatusNotFound, w, err)
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

// DeleteStationHandler removes a station. Reserved to the association
// offices.
func (s Station) DeleteStationHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	stationID := mux.Vars(r)["station_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.HasFullAccess(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	deleted, err := s.DB.DeleteOne(context.Background(), bson.M{"_id": stationID})
	if err != nil {
		config.ErrorStatus("failed to delete station", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("station not found", http.StatusNotFound, w, nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}
