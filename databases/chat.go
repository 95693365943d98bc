package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const chatCollection = "chat_messages"

// ChatDatabase contains the methods to use with the chat message database
type ChatDatabase interface {
	Find(ctx context.Context, filter interface{}) ([]models.ChatMessage, error)
	InsertOne(ctx context.Context, message models.ChatMessage) error
}

type chatDatabase struct {
	db DatabaseHelper
}

// NewChatDatabase initializes a new instance of chat database with the provided db connection
func NewChatDatabase(db DatabaseHelper) ChatDatabase {
	return &chatDatabase{
		db: db,
	}
}

func (c *chatDatabase) Find(ctx context.Context, filter interface{}) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := c.db.Collection(chatCollection).Find(ctx, filter).Decode(&messages)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *chatDatabase) InsertOne(ctx context.Context, message models.ChatMessage) error {
	res := c.db.Collection(chatCollection).InsertOne(ctx, message)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}
