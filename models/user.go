package models

import "time"

// Department names are free-form DVD identifiers (e.g. "DVD_Kneginec_Gornji").
// DepartmentVZO is the association sentinel: in report scopes it means "all
// departments", and as a user's department it marks association staff.
const DepartmentVZO = "VZO"

// User holds the structure for the users collection
type User struct {
	ID                  string    `json:"id" bson:"_id"`
	Username            string    `json:"username" bson:"username"`
	Email               string    `json:"email" bson:"email"`
	FullName            string    `json:"full_name" bson:"full_name"`
	Department          string    `json:"department" bson:"department"`
	Role                string    `json:"role" bson:"role"`
	IsAssociationMember bool      `json:"is_association_member" bson:"is_association_member"`
	IsOperational       bool      `json:"is_operational" bson:"is_operational"`
	IsActive            bool      `json:"is_active" bson:"is_active"`
	Password            string    `json:"-" bson:"password"`
	CreatedAt           time.Time `json:"created_at" bson:"created_at"`
}

// UserRegistration is the payload accepted by the register endpoint
type UserRegistration struct {
	Username            string `json:"username"`
	Email               string `json:"email"`
	Password            string `json:"password"`
	FullName            string `json:"full_name"`
	Department          string `json:"department"`
	Role                string `json:"role"`
	IsAssociationMember bool   `json:"is_association_member"`
	IsOperational       bool   `json:"is_operational"`
}

// UserUpdate carries a partial update for a user record. Nil fields are left
// unchanged; the wire format cannot express "clear this field".
type UserUpdate struct {
	Email               *string `json:"email" bson:"email,omitempty"`
	FullName            *string `json:"full_name" bson:"full_name,omitempty"`
	Department          *string `json:"department" bson:"department,omitempty"`
	Role                *string `json:"role" bson:"role,omitempty"`
	IsAssociationMember *bool   `json:"is_association_member" bson:"is_association_member,omitempty"`
	IsOperational       *bool   `json:"is_operational" bson:"is_operational,omitempty"`
	IsActive            *bool   `json:"is_active" bson:"is_active,omitempty"`
}
