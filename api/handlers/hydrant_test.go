package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/api/handlers"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/databases/mocks"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

func TestHydrant_HydrantsHandlerOpenToEveryMember(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/hydrants", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, plainMember("DVD_Luzan_Biskupecki"))

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Hydrant)
		*arg = []models.Hydrant{
			{ID: "h1", Address: "Toplicka ulica 1", Status: "working"},
			{ID: "h2", Address: "Varazdinska 12", Status: "broken"},
		}
	})
	conn.On("Find", mock.Anything, mock.Anything).Return(cursor)
	db.On("Collection", "hydrants").Return(conn)

	h := handlers.Hydrant{DB: databases.NewHydrantDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HydrantsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var got []models.Hydrant
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestHydrant_CreateHydrantHandlerForbiddenForPlainMember(t *testing.T) {
	body, _ := json.Marshal(models.Hydrant{Address: "Nova ulica 5", Type: "nadzemni", Status: "working"})
	req, err := http.NewRequest("POST", "/api/v1/hydrant", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	h := handlers.Hydrant{DB: databases.NewHydrantDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.CreateHydrantHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	db.AssertNotCalled(t, "Collection", "hydrants")
}

func TestHydrant_CreateHydrantHandlerAllowedForSpremistar(t *testing.T) {
	caller := plainMember("DVD_Kneginec_Gornji")
	caller.Role = "spremistar"

	body, _ := json.Marshal(models.Hydrant{Address: "Nova ulica 5", Type: "podzemni", Status: "working"})
	req, err := http.NewRequest("POST", "/api/v1/hydrant", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, caller)

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	insertResult.On("Decode").Return("h-new")
	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult)
	db.On("Collection", "hydrants").Return(conn)

	h := handlers.Hydrant{DB: databases.NewHydrantDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.CreateHydrantHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)

	var got models.Hydrant
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "podzemni", got.Type)
}

func TestHydrant_HydrantByIDHandlerNotFound(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/hydrant/missing", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"hydrant_id": "missing"})
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "hydrants").Return(conn)

	h := handlers.Hydrant{DB: databases.NewHydrantDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.HydrantByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHydrant_UpdateHydrantHandlerStampsInspection(t *testing.T) {
	caller := plainMember("DVD_Kneginec_Gornji")
	caller.Role = "spremistar"

	req, err := http.NewRequest("PUT", "/api/v1/hydrant/h1", bytes.NewReader([]byte(`{"status": "broken"}`)))
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"hydrant_id": "h1"})
	req = withCaller(req, caller)

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.Hydrant)
		*arg = models.Hydrant{ID: "h1", Address: "Toplicka ulica 1", Status: "broken", CheckedBy: caller.ID}
	})
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	conn.On("UpdateOne", mock.Anything,
		mock.MatchedBy(func(filter interface{}) bool {
			f, ok := filter.(bson.M)
			return ok && f["_id"] == "h1"
		}),
		mock.MatchedBy(func(update interface{}) bool {
			u, ok := update.(bson.M)
			if !ok {
				return false
			}
			set, ok := u["$set"].(bson.M)
			if !ok {
				return false
			}
			_, hasCheck := set["last_check"]
			return hasCheck && set["status"] == "broken" && set["checked_by"] == caller.ID
		})).Return(int64(1), nil)
	db.On("Collection", "hydrants").Return(conn)

	h := handlers.Hydrant{DB: databases.NewHydrantDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.UpdateHydrantHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	conn.AssertExpectations(t)
}

func TestHydrant_DeleteHydrantHandlerNotFound(t *testing.T) {
	caller := plainMember("DVD_Kneginec_Gornji")
	caller.Role = "zapovjednik"

	req, err := http.NewRequest("DELETE", "/api/v1/hydrant/missing", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"hydrant_id": "missing"})
	req = withCaller(req, caller)

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("DeleteOne", mock.Anything, mock.Anything).Return(int64(0), nil)
	db.On("Collection", "hydrants").Return(conn)

	h := handlers.Hydrant{DB: databases.NewHydrantDatabase(db)}

	rr := httptest.NewRecorder()
	http.HandlerFunc(h.DeleteHydrantHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
