package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const vehicleCollection = "vehicles"

// VehicleDatabase contains the methods to use with the vehicle database
type VehicleDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Vehicle, error)
	Find(ctx context.Context, filter interface{}) ([]models.Vehicle, error)
	InsertOne(ctx context.Context, vehicle models.Vehicle) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type vehicleDatabase struct {
	db DatabaseHelper
}

// NewVehicleDatabase initializes a new instance of vehicle database with the provided db connection
func NewVehicleDatabase(db DatabaseHelper) VehicleDatabase {
	return &vehicleDatabase{
		db: db,
	}
}

func (v *vehicleDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := v.db.Collection(vehicleCollection).FindOne(ctx, filter).Decode(vehicle)
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (v *vehicleDatabase) Find(ctx context.Context, filter interface{}) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := v.db.Collection(vehicleCollection).Find(ctx, filter).Decode(&vehicles)
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (v *vehicleDatabase) InsertOne(ctx context.Context, vehicle models.Vehicle) error {
	res := v.db.Collection(vehicleCollection).InsertOne(ctx, vehicle)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}

func (v *vehicleDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return v.db.Collection(vehicleCollection).UpdateOne(ctx, filter, update)
}

func (v *vehicleDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return v.db.Collection(vehicleCollection).DeleteOne(ctx, filter)
}
