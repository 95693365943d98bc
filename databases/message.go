package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const messageCollection = "messages"

// MessageDatabase contains the methods to use with the message database
type MessageDatabase interface {
	Find(ctx context.Context, filter interface{}) ([]models.Message, error)
	InsertOne(ctx context.Context, message models.Message) error
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type messageDatabase struct {
	db DatabaseHelper
}

// NewMessageDatabase initializes a new instance of message database with the provided db connection
func NewMessageDatabase(db DatabaseHelper) MessageDatabase {
	return &messageDatabase{
		db: db,
	}
}

func (m *messageDatabase) Find(ctx context.Context, filter interface{}) ([]models.Message, error) {
	var messages []models.Message
	err := m.db.Collection(messageCollection).Find(ctx, filter).Decode(&messages)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (m *messageDatabase) InsertOne(ctx context.Context, message models.Message) error {
	res := m.db.Collection(messageCollection).InsertOne(ctx, message)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}

func (m *messageDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return m.db.Collection(messageCollection).DeleteOne(ctx, filter)
}
