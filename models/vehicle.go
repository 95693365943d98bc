package models

import "time"

// Vehicle holds the structure for the vehicles collection
type Vehicle struct {
	ID                string     `json:"id" bson:"_id"`
	Name              string     `json:"name" bson:"name"`
	Type              string     `json:"type" bson:"type"` // navalno, cisterna, tehnicko, zapovjedno, ostalo
	RegistrationPlate string     `json:"registration_plate" bson:"registration_plate"`
	Department        string     `json:"department" bson:"department"`
	Status            string     `json:"status" bson:"status"` // operational, maintenance, out_of_service
	NextInspection    *time.Time `json:"next_inspection" bson:"next_inspection"`
	ServiceDue        *time.Time `json:"service_due" bson:"service_due"`
	InspectionOverdue bool       `json:"inspection_overdue" bson:"inspection_overdue"`
	Notes             string     `json:"notes" bson:"notes"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	CreatedBy         string     `json:"created_by" bson:"created_by"`
}

// VehicleUpdate carries a partial update; nil fields are left unchanged
type VehicleUpdate struct {
	Name              *string    `json:"name" bson:"name,omitempty"`
	Type              *string    `json:"type" bson:"type,omitempty"`
	RegistrationPlate *string    `json:"registration_plate" bson:"registration_plate,omitempty"`
	Status            *string    `json:"status" bson:"status,omitempty"`
	NextInspection    *time.Time `json:"next_inspection" bson:"next_inspection,omitempty"`
	ServiceDue        *time.Time `json:"service_due" bson:"service_due,omitempty"`
	InspectionOverdue *bool      `json:"inspection_overdue" bson:"inspection_overdue,omitempty"`
	Notes             *string    `json:"notes" bson:"notes,omitempty"`
}
