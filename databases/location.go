package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const locationCollection = "locations"

// LocationDatabase contains the methods to use with the location history
// database. The collection is append-only; live presence reads go through
// the in-memory tracker.
type LocationDatabase interface {
	Find(ctx context.Context, filter interface{}) ([]models.LocationSample, error)
	InsertOne(ctx context.Context, sample models.LocationSample) error
}

type locationDatabase struct {
	db DatabaseHelper
}

// NewLocationDatabase initializes a new instance of location database with the provided db connection
func NewLocationDatabase(db DatabaseHelper) LocationDatabase {
	return &locationDatabase{
		db: db,
	}
}

func (l *locationDatabase) Find(ctx context.Context, filter interface{}) ([]models.LocationSample, error) {
	var samples []models.LocationSample
	err := l.db.Collection(locationCollection).Find(ctx, filter).Decode(&samples)
	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (l *locationDatabase) InsertOne(ctx context.Context, sample models.LocationSample) error {
	res := l.db.Collection(locationCollection).InsertOne(ctx, sample)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}
