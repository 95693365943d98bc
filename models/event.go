package models

import "time"

// Event holds the structure for the events collection (drills, meetings,
// anniversaries). Department-scoped.
type Event struct {
	ID           string    `json:"id" bson:"_id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Department   string    `json:"department" bson:"department"`
	Location     string    `json:"location" bson:"location"`
	StartsAt     time.Time `json:"starts_at" bson:"starts_at"`
	Participants []string  `json:"participants" bson:"participants"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	CreatedBy    string    `json:"created_by" bson:"created_by"`
}

// EventUpdate carries a partial update; nil fields are left unchanged
type EventUpdate struct {
	Title        *string    `json:"title" bson:"title,omitempty"`
	Description  *string    `json:"description" bson:"description,omitempty"`
	Location     *string    `json:"location" bson:"location,omitempty"`
	StartsAt     *time.Time `json:"starts_at" bson:"starts_at,omitempty"`
	Participants *[]string  `json:"participants" bson:"participants,omitempty"`
}
