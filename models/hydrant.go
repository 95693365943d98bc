package models

import "time"

// Hydrant holds the structure for the hydrants collection. Hydrants are not
// department-scoped: every member sees the whole registry.
type Hydrant struct {
	ID        string     `json:"id" bson:"_id"`
	Latitude  float64    `json:"latitude" bson:"latitude"`
	Longitude float64    `json:"longitude" bson:"longitude"`
	Address   string     `json:"address" bson:"address"`
	Type      string     `json:"type" bson:"type"`     // nadzemni, podzemni
	Status    string     `json:"status" bson:"status"` // working, broken, maintenance
	Notes     string     `json:"notes" bson:"notes"`
	Images    []string   `json:"images" bson:"images"`
	LastCheck *time.Time `json:"last_check" bson:"last_check"`
	CheckedBy string     `json:"checked_by" bson:"checked_by"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
}

// HydrantUpdate carries a partial update; nil fields are left unchanged
type HydrantUpdate struct {
	Latitude  *float64  `json:"latitude" bson:"latitude,omitempty"`
	Longitude *float64  `json:"longitude" bson:"longitude,omitempty"`
	Address   *string   `json:"address" bson:"address,omitempty"`
	Type      *string   `json:"type" bson:"type,omitempty"`
	Status    *string   `json:"status" bson:"status,omitempty"`
	Notes     *string   `json:"notes" bson:"notes,omitempty"`
	Images    *[]string `json:"images" bson:"images,omitempty"`
}
