package scheduler_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/api/scheduler"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/databases/mocks"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

func TestSweepInspectionsFlagsOverdueVehicles(t *testing.T) {
	db := &mocks.DatabaseHelper{}

	vehicleConn := &mocks.CollectionHelper{}
	vehicleCursor := &mocks.CursorHelper{}
	vehicleCursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Vehicle)
		*arg = []models.Vehicle{{ID: "v1", Name: "Navalno vozilo", Department: "DVD_Kneginec_Gornji"}}
	})
	vehicleConn.On("Find", mock.Anything, mock.Anything).Return(vehicleCursor)
	vehicleConn.On("UpdateOne", mock.Anything,
		mock.MatchedBy(func(filter interface{}) bool {
			f, ok := filter.(bson.M)
			return ok && f["_id"] == "v1"
		}),
		mock.MatchedBy(func(update interface{}) bool {
			u, ok := update.(bson.M)
			if !ok {
				return false
			}
			set, ok := u["$set"].(bson.M)
			return ok && set["inspection_overdue"] == true
		})).Return(int64(1), nil)
	db.On("Collection", "vehicles").Return(vehicleConn)

	equipmentConn := &mocks.CollectionHelper{}
	equipmentCursor := &mocks.CursorHelper{}
	equipmentCursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Equipment)
		*arg = []models.Equipment{}
	})
	equipmentConn.On("Find", mock.Anything, mock.Anything).Return(equipmentCursor)
	db.On("Collection", "equipment").Return(equipmentConn)

	// nobody to notify, so no mail goes out
	userConn := &mocks.CollectionHelper{}
	userCursor := &mocks.CursorHelper{}
	userCursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.User)
		*arg = []models.User{}
	})
	userConn.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		return ok && f["department"] == "DVD_Kneginec_Gornji"
	})).Return(userCursor)
	db.On("Collection", "users").Return(userConn)

	s := scheduler.New(
		databases.NewVehicleDatabase(db),
		databases.NewEquipmentDatabase(db),
		databases.NewUserDatabase(db),
	)
	s.SweepInspections()

	vehicleConn.AssertExpectations(t)
	userConn.AssertExpectations(t)
}
