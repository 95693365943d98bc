package models

import "time"

// Equipment holds the structure for the equipment collection. A piece of
// equipment can carry both an assigned user and an assigned vehicle in the
// data; conceptually it sits in one place at a time, and the report renderer
// treats a set vehicle assignment as authoritative.
type Equipment struct {
	ID                string     `json:"id" bson:"_id"`
	Name              string     `json:"name" bson:"name"`
	Type              string     `json:"type" bson:"type"` // cijev, mlaznica, izolacijski_aparat, odijelo, ostalo
	SerialNumber      string     `json:"serial_number" bson:"serial_number"`
	Department        string     `json:"department" bson:"department"`
	Status            string     `json:"status" bson:"status"` // operational, damaged, retired
	AssignedToUser    string     `json:"assigned_to_user" bson:"assigned_to_user"`
	AssignedToVehicle string     `json:"assigned_to_vehicle" bson:"assigned_to_vehicle"`
	NextInspection    *time.Time `json:"next_inspection" bson:"next_inspection"`
	InspectionOverdue bool       `json:"inspection_overdue" bson:"inspection_overdue"`
	Notes             string     `json:"notes" bson:"notes"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
	CreatedBy         string     `json:"created_by" bson:"created_by"`
}

// EquipmentUpdate carries a partial update; nil fields are left unchanged
type EquipmentUpdate struct {
	Name              *string    `json:"name" bson:"name,omitempty"`
	Type              *string    `json:"type" bson:"type,omitempty"`
	SerialNumber      *string    `json:"serial_number" bson:"serial_number,omitempty"`
	Status            *string    `json:"status" bson:"status,omitempty"`
	AssignedToUser    *string    `json:"assigned_to_user" bson:"assigned_to_user,omitempty"`
	AssignedToVehicle *string    `json:"assigned_to_vehicle" bson:"assigned_to_vehicle,omitempty"`
	NextInspection    *time.Time `json:"next_inspection" bson:"next_inspection,omitempty"`
	InspectionOverdue *bool      `json:"inspection_overdue" bson:"inspection_overdue,omitempty"`
	Notes             *string    `json:"notes" bson:"notes,omitempty"`
}
