// Package permissions evaluates role and department based access rules.
// Role strings carry meaning only in combination with the association flag:
// "predsjednik" of a DVD manages one department, "predsjednik" of the
// association sees everything.
package permissions

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

// Top association offices. Full access requires one of these AND the
// association membership flag.
var associationOffices = map[string]bool{
	"predsjednik":           true,
	"zapovjednik":           true,
	"zamjenik_zapovjednika": true,
	"tajnik":                true,
}

// DVD management offices. Department management requires one of these and
// NO association membership.
var departmentManagementRoles = map[string]bool{
	"predsjednik":           true,
	"zapovjednik":           true,
	"zamjenik_zapovjednika": true,
}

// Broader operational offices that may manage hydrants, vehicles, equipment,
// stations, events, messages and interventions within their scope.
var operationalRoles = map[string]bool{
	"zapovjednistvo":        true,
	"tajnik":                true,
	"spremistar":            true,
	"blagajnik":             true,
	"clan_odbora":           true,
	"clan_nadzornog_odbora": true,
}

// HasFullAccess reports whether the user holds a top association office.
// Full access bypasses all department scoping and is required by the
// superuser-only endpoints (user mutation, station deletion).
func HasFullAccess(u *models.User) bool {
	if u == nil {
		return false
	}
	return u.IsAssociationMember && associationOffices[u.Role]
}

// HasDepartmentManagement reports whether the user manages their own DVD.
// The same role names held by an association member mean something else, so
// the flag must be unset here.
func HasDepartmentManagement(u *models.User) bool {
	if u == nil {
		return false
	}
	return !u.IsAssociationMember && departmentManagementRoles[u.Role]
}

// CanManage reports whether the user may mutate operational resources
// (hydrants, vehicles, equipment, stations, events, messages, interventions).
func CanManage(u *models.User) bool {
	if u == nil {
		return false
	}
	return HasFullAccess(u) || HasDepartmentManagement(u) || operationalRoles[u.Role]
}

// CanAccessDepartment reports whether the user may touch resources of the
// given department.
func CanAccessDepartment(u *models.User, department string) bool {
	if u == nil {
		return false
	}
	if HasFullAccess(u) {
		return true
	}
	return u.Department == department
}

// DepartmentFilter returns the store filter applied to listing endpoints:
// empty for full access, otherwise the caller's own department.
func DepartmentFilter(u *models.User) bson.M {
	if HasFullAccess(u) {
		return bson.M{}
	}
	return bson.M{"department": u.Department}
}

// CanUseOperationalChat gates private chat and the operational group. The
// flag is independent of role: a board member who is not an operational
// firefighter stays out of the callout channels.
func CanUseOperationalChat(u *models.User) bool {
	return u != nil && u.IsOperational
}
