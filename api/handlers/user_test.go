package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/handlers"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/databases/mocks"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

type MockDatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function.
func (_m *MockDatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()

	var r0 databases.ClientHelper
	if rf, ok := ret.Get(0).(func() databases.ClientHelper); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.ClientHelper)
		}
	}

	return r0
}

// Collection provides a mock function.
func (_m *MockDatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)

	var r0 databases.CollectionHelper
	if rf, ok := ret.Get(0).(func(string) databases.CollectionHelper); ok {
		r0 = rf(name)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(databases.CollectionHelper)
		}
	}

	return r0
}

func associationPresident() *models.User {
	return &models.User{
		ID:                  "caller-1",
		Username:            "predsjednik.vzo",
		FullName:            "Ivan Horvat",
		Department:          models.DepartmentVZO,
		Role:                "predsjednik",
		IsAssociationMember: true,
		IsActive:            true,
	}
}

func plainMember(department string) *models.User {
	return &models.User{
		ID:         "caller-2",
		Username:   "obican.clan",
		FullName:   "Marko Novak",
		Department: department,
		Role:       "clan_bez_funkcije",
		IsActive:   true,
	}
}

func withCaller(req *http.Request, caller *models.User) *http.Request {
	return req.WithContext(api.WithUser(req.Context(), caller))
}

func TestUser_UsersHandlerScopesToOwnDepartment(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/users", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.User)
		*arg = []models.User{{ID: "u1", Department: "DVD_Kneginec_Gornji"}}
	})
	conn.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		return ok && f["department"] == "DVD_Kneginec_Gornji"
	})).Return(cursor)
	db.On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UsersHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	conn.AssertExpectations(t)
}

func TestUser_UsersHandlerAssociationSeesEveryone(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/users", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, associationPresident())

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.User)
		*arg = []models.User{}
	})
	conn.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		return ok && len(f) == 0
	})).Return(cursor)
	db.On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UsersHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
	conn.AssertExpectations(t)
}

func TestUser_UpdateUserHandlerForbiddenForMember(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/v1/user/u1", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "u1"})
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	db.AssertNotCalled(t, "Collection", "users")
}

func TestUser_UpdateUserHandlerSetsOnlyProvidedFields(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/v1/user/u2", strings.NewReader(`{"role": "zapovjednik"}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "u2"})
	req = withCaller(req, associationPresident())

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.User)
		*arg = models.User{ID: "u2", Username: "clan.drugi", Role: "zapovjednik", Department: "DVD_Kneginec_Gornji", IsActive: true}
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	conn.On("UpdateOne", mock.Anything,
		mock.MatchedBy(func(filter interface{}) bool {
			f, ok := filter.(bson.M)
			return ok && f["_id"] == "u2"
		}),
		mock.MatchedBy(func(update interface{}) bool {
			u, ok := update.(bson.M)
			if !ok {
				return false
			}
			set, ok := u["$set"].(bson.M)
			return ok && len(set) == 1 && set["role"] == "zapovjednik"
		})).Return(int64(1), nil)
	db.On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	conn.AssertExpectations(t)
}

func TestUser_UpdateUserHandlerEmptyBodyRejected(t *testing.T) {
	req, err := http.NewRequest("PUT", "/api/v1/user/u2", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "u2"})
	req = withCaller(req, associationPresident())

	db := &MockDatabaseHelper{}
	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.UpdateUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	db.AssertNotCalled(t, "Collection", "users")
}

func TestUser_DeleteUserHandlerNotFound(t *testing.T) {
	req, err := http.NewRequest("DELETE", "/api/v1/user/missing", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "missing"})
	req = withCaller(req, associationPresident())

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(int64(0), nil)
	db.On("Collection", "users").Return(conn)

	u := handlers.User{DB: databases.NewUserDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(u.DeleteUserHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
