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

// Equipment exported for testing purposes
type Equipment struct {
	DB databases.EquipmentDatabase
}

// EquipmentListHandler lists equipment within the caller's scope
func (e Equipment) EquipmentListHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	dbResp, err := e.DB.Find(context.Background(), permissions.DepartmentFilter(caller))
	if err != nil {
		config.ErrorStatus("failed to get equipment", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Equipment{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// EquipmentByIDHandler returns a piece of equipment given an equipmentID
func (e Equipment) EquipmentByIDHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	equipmentID := mux.Vars(r)["equipment_id"]
	caller := api.UserFromContext(r.Context())

	dbResp, err := e.DB.FindOne(context.Background(), bson.M{"_id": equipmentID})
	if err != nil {
		config.ErrorStatus("failed to get equipment by ID", http.StatusNotFound, w, err)
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

// EquipmentByVehicleHandler lists equipment assigned to a vehicle
func (e Equipment) EquipmentByVehicleHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vehicleID := mux.Vars(r)["vehicle_id"]
	caller := api.UserFromContext(r.Context())

	filter := permissions.DepartmentFilter(caller)
	filter["assigned_to_vehicle"] = vehicleID
	dbResp, err := e.DB.Find(context.Background(), filter)
	if err != nil {
		config.ErrorStatus("failed to get equipment", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Equipment{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// EquipmentByUserHandler lists equipment assigned to a member
func (e Equipment) EquipmentByUserHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	userID := mux.Vars(r)["user_id"]
	caller := api.UserFromContext(r.Context())

	filter := permissions.DepartmentFilter(caller)
	filter["assigned_to_user"] = userID
	dbResp, err := e.DB.Find(context.Background(), filter)
	if err != nil {
		config.ErrorStatus("failed to get equipment", http.StatusInternalServerError, w, err)
		return
	}
	if len(dbResp) == 0 {
		dbResp = []models.Equipment{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CreateEquipmentHandler registers a new piece of equipment in the caller's
// scope
func (e Equipment) CreateEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var equipment models.Equipment
	if err := json.NewDecoder(r.Body).Decode(&equipment); err != nil {
		config.ErrorStatus("failed to decode equipment", http.StatusBadRequest, w, err)
		return
	}
	if equipment.Department == "" {
		equipment.Department = caller.Department
	}
	if !permissions.CanAccessDepartment(caller, equipment.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	equipment.ID = uuid.New().String()
	equipment.CreatedAt = time.Now()
	equipment.CreatedBy = caller.ID
	if err := e.DB.InsertOne(context.Background(), equipment); err != nil {
		config.ErrorStatus("failed to insert equipment", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(equipment)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// UpdateEquipmentHandler applies a partial update, used for reassignment and
// inspection bookkeeping
func (e Equipment) UpdateEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	equipmentID := mux.Vars(r)["equipment_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	existing, err := e.DB.FindOne(context.Background(), bson.M{"_id": equipmentID})
	if err != nil {
		config.ErrorStatus("equipment not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, existing.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	var update models.EquipmentUpdate
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

	matched, err := e.DB.UpdateOne(context.Background(), bson.M{"_id": equipmentID}, bson.M{"$set": set})
	if err != nil {
		config.ErrorStatus("failed to update equipment", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		config.ErrorStatus("equipment not found", http.StatusNotFound, w, nil)
		return
	}

	dbResp, err := e.DB.FindOne(context.Background(), bson.M{"_id": equipmentID})
	if err != nil {
		config.ErrorStatus("failed to get equipment by ID", http.StatusNotFound, w, err)
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

// DeleteEquipmentHandler removes a piece of equipment
func (e Equipment) DeleteEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	equipmentID := mux.Vars(r)["equipment_id"]
	caller := api.UserFromContext(r.Context())

	if !permissions.CanManage(caller) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	existing, err := e.DB.FindOne(context.Background(), bson.M{"_id": equipmentID})
	if err != nil {
		config.ErrorStatus("equipment not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, existing.Department) {
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	deleted, err := e.DB.DeleteOne(context.Background(), bson.M{"_id": equipmentID})
	if err != nil {
		config.ErrorStatus("failed to delete equipment", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		config.ErrorStatus("equipment not found", http.StatusNotFound, w, nil)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"deleted": true}`))
}
