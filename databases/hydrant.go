package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const hydrantCollection = "hydrants"

// HydrantDatabase contains the methods to use with the hydrant database
type HydrantDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Hydrant, error)
	Find(ctx context.Context, filter interface{}) ([]models.Hydrant, error)
	InsertOne(ctx context.Context, hydrant models.Hydrant) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type hydrantDatabase struct {
	db DatabaseHelper
}

// NewHydrantDatabase initializes a new instance of hydrant database with the provided db connection
func NewHydrantDatabase(db DatabaseHelper) HydrantDatabase {
	return &hydrantDatabase{
		db: db,
	}
}

func (h *hydrantDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Hydrant, error) {
	hydrant := &models.Hydrant{}
	err := h.db.Collection(hydrantCollection).FindOne(ctx, filter).Decode(hydrant)
	if err != nil {
		return nil, err
	}
	return hydrant, nil
}

func (h *hydrantDatabase) Find(ctx context.Context, filter interface{}) ([]models.Hydrant, error) {
	var hydrants []models.Hydrant
	err := h.db.Collection(hydrantCollection).Find(ctx, filter).Decode(&hydrants)
	if err != nil {
		return nil, err
	}
	return hydrants, nil
}

func (h *hydrantDatabase) InsertOne(ctx context.Context, hydrant models.Hydrant) error {
	res := h.db.Collection(hydrantCollection).InsertOne(ctx, hydrant)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}

func (h *hydrantDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return h.db.Collection(hydrantCollection).UpdateOne(ctx, filter, update)
}

func (h *hydrantDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return h.db.Collection(hydrantCollection).DeleteOne(ctx, filter)
}
