package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/permissions"
	"github.com/vzo-kneginec/fire-brigade-api/api/reports"
	"github.com/vzo-kneginec/fire-brigade-api/config"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

// Report exported for testing purposes
type Report struct {
	UDB databases.UserDatabase
	VDB databases.VehicleDatabase
	EDB databases.EquipmentDatabase
}

// scopeFilter resolves a report department path segment to a store filter.
// The VZO sentinel means all departments and is reserved to the association
// offices.
func scopeFilter(caller *models.User, department string) (bson.M, bool) {
	if department == models.DepartmentVZO {
		if !permissions.HasFullAccess(caller) {
			return nil, false
		}
		return bson.M{}, true
	}
	if !permissions.CanAccessDepartment(caller, department) {
		return nil, false
	}
	return bson.M{"department": department}, true
}

func writePDF(w http.ResponseWriter, kind, scope string, table reports.Table) {
	b, err := reports.Render(table)
	if err != nil {
		config.ErrorStatus("failed to render pdf", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s", reports.Filename(kind, scope, time.Now())))
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MemberRosterHandler renders the evidencijski list for a department
func (rep Report) MemberRosterHandler(w http.ResponseWriter, r *http.Request) {
	department := mux.Vars(r)["department"]
	caller := api.UserFromContext(r.Context())

	filter, ok := scopeFilter(caller, department)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	users, err := rep.UDB.Find(context.Background(), filter)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("failed to get users", http.StatusInternalServerError, w, err)
		return
	}

	writePDF(w, "evidencijski-list", department, reports.MemberRoster(department, users))
}

// VehicleEquipmentHandler renders the per-vehicle equipment register for a
// department
func (rep Report) VehicleEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	department := mux.Vars(r)["department"]
	caller := api.UserFromContext(r.Context())

	filter, ok := scopeFilter(caller, department)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	vehicles, err := rep.VDB.Find(context.Background(), filter)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("failed to get vehicles", http.StatusInternalServerError, w, err)
		return
	}
	equipment, err := rep.EDB.Find(context.Background(), filter)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("failed to get equipment", http.StatusInternalServerError, w, err)
		return
	}

	writePDF(w, "oprema-vozilo", department, reports.VehicleManifest(department, vehicles, equipment))
}

// StorageEquipmentHandler renders the storage register for a department
func (rep Report) StorageEquipmentHandler(w http.ResponseWriter, r *http.Request) {
	department := mux.Vars(r)["department"]
	caller := api.UserFromContext(r.Context())

	filter, ok := scopeFilter(caller, department)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	equipment, err := rep.EDB.Find(context.Background(), filter)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("failed to get equipment", http.StatusInternalServerError, w, err)
		return
	}

	writePDF(w, "oprema-spremiste", department, reports.StorageManifest(department, equipment))
}

// PersonalAssignmentHandler renders one member's equipment sheet
func (rep Report) PersonalAssignmentHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	caller := api.UserFromContext(r.Context())

	user, err := rep.UDB.FindOne(context.Background(), bson.M{"_id": userID})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("user not found", http.StatusNotFound, w, err)
		return
	}
	if !permissions.CanAccessDepartment(caller, user.Department) {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("insufficient permissions", http.StatusForbidden, w, nil)
		return
	}

	equipment, err := rep.EDB.Find(context.Background(), bson.M{"assigned_to_user": user.ID})
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		config.ErrorStatus("failed to get equipment", http.StatusInternalServerError, w, err)
		return
	}

	writePDF(w, "osobno-zaduzenje", user.Username, reports.PersonalAssignment(*user, equipment))
}
