package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const stationCollection = "stations"

// StationDatabase contains the methods to use with the station database
type StationDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Station, error)
	Find(ctx context.Context, filter interface{}) ([]models.Station, error)
	InsertOne(ctx context.Context, station models.Station) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type stationDatabase struct {
	db DatabaseHelper
}

// NewStationDatabase initializes a new instance of station database with the provided db connection
func NewStationDatabase(db DatabaseHelper) StationDatabase {
	return &stationDatabase{
		db: db,
	}
}

func (s *stationDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Station, error) {
	station := &models.Station{}
	err := s.db.Collection(stationCollection).FindOne(ctx, filter).Decode(station)
	if err != nil {
		return nil, err
	}
	return station, nil
}

func (s *stationDatabase) Find(ctx context.Context, filter interface{}) ([]models.Station, error) {
	var stations []models.Station
	err := s.db.Collection(stationCollection).Find(ctx, filter).Decode(&stations)
	if err != nil {
		return nil, err
	}
	return stations, nil
}

func (s *stationDatabase) InsertOne(ctx context.Context, station models.Station) error {
	res := s.db.Collection(stationCollection).InsertOne(ctx, station)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}

func (s *stationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return s.db.Collection(stationCollection).UpdateOne(ctx, filter, update)
}

func (s *stationDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return s.db.Collection(stationCollection).DeleteOne(ctx, filter)
}
