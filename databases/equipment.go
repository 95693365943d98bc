package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const equipmentCollection = "equipment"

// EquipmentDatabase contains the methods to use with the equipment database
type EquipmentDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Equipment, error)
	Find(ctx context.Context, filter interface{}) ([]models.Equipment, error)
	InsertOne(ctx context.Context, equipment models.Equipment) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type equipmentDatabase struct {
	db DatabaseHelper
}

// NewEquipmentDatabase initializes a new instance of equipment database with the provided db connection
func NewEquipmentDatabase(db DatabaseHelper) EquipmentDatabase {
	return &equipmentDatabase{
		db: db,
	}
}

func (e *equipmentDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Equipment, error) {
	equipment := &models.Equipment{}
	err := e.db.Collection(equipmentCollection).FindOne(ctx, filter).Decode(equipment)
	if err != nil {
		return nil, err
	}
	return equipment, nil
}

func (e *equipmentDatabase) Find(ctx context.Context, filter interface{}) ([]models.Equipment, error) {
	var equipment []models.Equipment
	err := e.db.Collection(equipmentCollection).Find(ctx, filter).Decode(&equipment)
	if err != nil {
		return nil, err
	}
	return equipment, nil
}

func (e *equipmentDatabase) InsertOne(ctx context.Context, equipment models.Equipment) error {
	res := e.db.Collection(equipmentCollection).InsertOne(ctx, equipment)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}

func (e *equipmentDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return e.db.Collection(equipmentCollection).UpdateOne(ctx, filter, update)
}

func (e *equipmentDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return e.db.Collection(equipmentCollection).DeleteOne(ctx, filter)
}
