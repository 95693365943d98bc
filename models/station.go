package models

import "time"

// Station holds the structure for the stations collection (DVD fire houses)
type Station struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Department string    `json:"department" bson:"department"`
	Address    string    `json:"address" bson:"address"`
	Latitude   float64   `json:"latitude" bson:"latitude"`
	Longitude  float64   `json:"longitude" bson:"longitude"`
	Notes      string    `json:"notes" bson:"notes"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	CreatedBy  string    `json:"created_by" bson:"created_by"`
}

// StationUpdate carries a partial update; nil fields are left unchanged
type StationUpdate struct {
	Name      *string  `json:"name" bson:"name,omitempty"`
	Address   *string  `json:"address" bson:"address,omitempty"`
	Latitude  *float64 `json:"latitude" bson:"latitude,omitempty"`
	Longitude *float64 `json:"longitude" bson:"longitude,omitempty"`
	Notes     *string  `json:"notes" bson:"notes,omitempty"`
}
