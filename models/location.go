package models

import "time"

// LocationSample holds the structure for the locations collection. Samples
// are append-only history; live reads go through the presence tracker.
type LocationSample struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Username  string    `json:"username" bson:"username"`
	FullName  string    `json:"full_name" bson:"full_name"`
	Latitude  float64   `json:"latitude" bson:"latitude"`
	Longitude float64   `json:"longitude" bson:"longitude"`
	Status    string    `json:"status" bson:"status"` // active, inactive
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// LocationUpdateRequest is the payload accepted by the HTTP push endpoint and
// the websocket location_update event.
type LocationUpdateRequest struct {
	UserID    string  `json:"user_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
