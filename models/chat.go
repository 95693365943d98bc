package models

import "time"

// Chat group names. The operational group and private messages additionally
// require the sender (and for private chat, the recipient lookup) to be
// operational members.
const (
	ChatGroupGeneral     = "general"
	ChatGroupOperational = "operational"
)

// ChatMessage holds the structure for the chat_messages collection. Group
// messages leave Recipient empty; private messages leave Group empty.
type ChatMessage struct {
	ID         string    `json:"id" bson:"_id"`
	Group      string    `json:"group" bson:"group"`
	Recipient  string    `json:"recipient" bson:"recipient"`
	Sender     string    `json:"sender" bson:"sender"`
	SenderName string    `json:"sender_name" bson:"sender_name"`
	Body       string    `json:"body" bson:"body"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
