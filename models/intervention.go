package models

import "time"

// Intervention holds the structure for the interventions collection
// (fire/technical callout log entries). Department-scoped.
type Intervention struct {
	ID           string     `json:"id" bson:"_id"`
	Title        string     `json:"title" bson:"title"`
	Description  string     `json:"description" bson:"description"`
	Type         string     `json:"type" bson:"type"` // pozar, tehnicka, ostalo
	Department   string     `json:"department" bson:"department"`
	Location     string     `json:"location" bson:"location"`
	StartedAt    time.Time  `json:"started_at" bson:"started_at"`
	EndedAt      *time.Time `json:"ended_at" bson:"ended_at"`
	Participants []string   `json:"participants" bson:"participants"`
	Vehicles     []string   `json:"vehicles" bson:"vehicles"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	CreatedBy    string     `json:"created_by" bson:"created_by"`
}

// InterventionUpdate carries a partial update; nil fields are left unchanged
type InterventionUpdate struct {
	Title        *string    `json:"title" bson:"title,omitempty"`
	Description  *string    `json:"description" bson:"description,omitempty"`
	Type         *string    `json:"type" bson:"type,omitempty"`
	Location     *string    `json:"location" bson:"location,omitempty"`
	StartedAt    *time.Time `json:"started_at" bson:"started_at,omitempty"`
	EndedAt      *time.Time `json:"ended_at" bson:"ended_at,omitempty"`
	Participants *[]string  `json:"participants" bson:"participants,omitempty"`
	Vehicles     *[]string  `json:"vehicles" bson:"vehicles,omitempty"`
}
