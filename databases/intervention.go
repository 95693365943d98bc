package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const interventionCollection = "interventions"

// InterventionDatabase contains the methods to use with the intervention database
type InterventionDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Intervention, error)
	Find(ctx context.Context, filter interface{}) ([]models.Intervention, error)
	InsertOne(ctx context.Context, intervention models.Intervention) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type interventionDatabase struct {
	db DatabaseHelper
}

// NewInterventionDatabase initializes a new instance of intervention database with the provided db connection
func NewInterventionDatabase(db DatabaseHelper) InterventionDatabase {
	return &interventionDatabase{
		db: db,
	}
}

func (i *interventionDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Intervention, error) {
	intervention := &models.Intervention{}
	err := i.db.Collection(interventionCollection).FindOne(ctx, filter).Decode(intervention)
	if err != nil {
		return nil, err
	}
	return intervention, nil
}

func (i *interventionDatabase) Find(ctx context.Context, filter interface{}) ([]models.Intervention, error) {
	var interventions []models.Intervention
	err := i.db.Collection(interventionCollection).Find(ctx, filter).Decode(&interventions)
	if err != nil {
		return nil, err
	}
	return interventions, nil
}

func (i *interventionDatabase) InsertOne(ctx context.Context, intervention models.Intervention) error {
	res := i.db.Collection(interventionCollection).InsertOne(ctx, intervention)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}

func (i *interventionDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return i.db.Collection(interventionCollection).UpdateOne(ctx, filter, update)
}

func (i *interventionDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return i.db.Collection(interventionCollection).DeleteOne(ctx, filter)
}
