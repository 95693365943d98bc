package models

import "time"

// Message holds the structure for the messages collection (internal notices).
// Department-scoped.
type Message struct {
	ID         string    `json:"id" bson:"_id"`
	Title      string    `json:"title" bson:"title"`
	Body       string    `json:"body" bson:"body"`
	Department string    `json:"department" bson:"department"`
	Recipients []string  `json:"recipients" bson:"recipients"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	CreatedBy  string    `json:"created_by" bson:"created_by"`
}
