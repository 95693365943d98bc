package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const eventCollection = "events"

// EventDatabase contains the methods to use with the event database
type EventDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Event, error)
	Find(ctx context.Context, filter interface{}) ([]models.Event, error)
	InsertOne(ctx context.Context, event models.Event) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type eventDatabase struct {
	db DatabaseHelper
}

// NewEventDatabase initializes a new instance of event database with the provided db connection
func NewEventDatabase(db DatabaseHelper) EventDatabase {
	return &eventDatabase{
		db: db,
	}
}

func (e *eventDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Event, error) {
	event := &models.Event{}
	err := e.db.Collection(eventCollection).FindOne(ctx, filter).Decode(event)
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (e *eventDatabase) Find(ctx context.Context, filter interface{}) ([]models.Event, error) {
	var events []models.Event
	err := e.db.Collection(eventCollection).Find(ctx, filter).Decode(&events)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (e *eventDatabase) InsertOne(ctx context.Context, event models.Event) error {
	res := e.db.Collection(eventCollection).InsertOne(ctx, event)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}

func (e *eventDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return e.db.Collection(eventCollection).UpdateOne(ctx, filter, update)
}

func (e *eventDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return e.db.Collection(eventCollection).DeleteOne(ctx, filter)
}
