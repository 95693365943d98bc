package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/vzo-kneginec/fire-brigade-api/api/handlers"
	"github.com/vzo-kneginec/fire-brigade-api/api/presence"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/databases/mocks"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

func TestLocation_UpdateLocationHandlerTracksPresence(t *testing.T) {
	caller := plainMember("DVD_Kneginec_Gornji")

	body, _ := json.Marshal(models.LocationUpdateRequest{
		Latitude:  presence.BaseLatitude,
		Longitude: presence.BaseLongitude,
	})
	req, err := http.NewRequest("POST", "/api/v1/locations/update", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, caller)

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	insertResult.On("Decode").Return("s-new")
	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult)
	db.On("Collection", "locations").Return(conn)

	tracker := presence.NewTracker()
	l := handlers.Location{
		DB:      databases.NewLocationDatabase(db),
		UDB:     databases.NewUserDatabase(db),
		Tracker: tracker,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(l.UpdateLocationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var entry presence.Entry
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, presence.StatusActive, entry.Status)
	assert.Equal(t, caller.ID, entry.UserID)

	entries := tracker.List()
	assert.Len(t, entries, 1)
}

func TestLocation_UpdateLocationHandlerRejectsBadCoordinates(t *testing.T) {
	body, _ := json.Marshal(models.LocationUpdateRequest{Latitude: 120, Longitude: 15})
	req, err := http.NewRequest("POST", "/api/v1/locations/update", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	tracker := presence.NewTracker()
	l := handlers.Location{
		DB:      databases.NewLocationDatabase(db),
		UDB:     databases.NewUserDatabase(db),
		Tracker: tracker,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(l.UpdateLocationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, tracker.List())
	db.AssertNotCalled(t, "Collection", "locations")
}

func TestLocation_UpdateLocationHandlerFarAwayIsInactive(t *testing.T) {
	caller := plainMember("DVD_Kneginec_Gornji")

	// Zagreb is well outside the 10 km radius
	body, _ := json.Marshal(models.LocationUpdateRequest{Latitude: 45.815, Longitude: 15.982})
	req, err := http.NewRequest("POST", "/api/v1/locations/update", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, caller)

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	insertResult.On("Decode").Return("s-new")
	conn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult)
	db.On("Collection", "locations").Return(conn)

	l := handlers.Location{
		DB:      databases.NewLocationDatabase(db),
		UDB:     databases.NewUserDatabase(db),
		Tracker: presence.NewTracker(),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(l.UpdateLocationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var entry presence.Entry
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, presence.StatusInactive, entry.Status)
}

func TestLocation_UpdateLocationHandlerOnBehalfForbiddenForMember(t *testing.T) {
	body, _ := json.Marshal(models.LocationUpdateRequest{
		UserID:    "someone-else",
		Latitude:  presence.BaseLatitude,
		Longitude: presence.BaseLongitude,
	})
	req, err := http.NewRequest("POST", "/api/v1/locations/update", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	tracker := presence.NewTracker()
	l := handlers.Location{
		DB:      databases.NewLocationDatabase(db),
		UDB:     databases.NewUserDatabase(db),
		Tracker: tracker,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(l.UpdateLocationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, tracker.List())
	db.AssertNotCalled(t, "Collection", "users")
	db.AssertNotCalled(t, "Collection", "locations")
}

func TestLocation_UpdateLocationHandlerOnBehalfAllowedForAssociation(t *testing.T) {
	body, _ := json.Marshal(models.LocationUpdateRequest{
		UserID:    "member-7",
		Latitude:  presence.BaseLatitude,
		Longitude: presence.BaseLongitude,
	})
	req, err := http.NewRequest("POST", "/api/v1/locations/update", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, associationPresident())

	db := &MockDatabaseHelper{}
	userConn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}
	singleResult.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*models.User)
		*arg = models.User{ID: "member-7", Username: "clan.sedmi", FullName: "Sedmi Clan", IsActive: true}
	})
	userConn.On("FindOne", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		f, ok := filter.(bson.M)
		return ok && f["_id"] == "member-7"
	})).Return(singleResult)
	db.On("Collection", "users").Return(userConn)

	locationConn := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}
	insertResult.On("Decode").Return("s-new")
	locationConn.On("InsertOne", mock.Anything, mock.Anything).Return(insertResult)
	db.On("Collection", "locations").Return(locationConn)

	tracker := presence.NewTracker()
	l := handlers.Location{
		DB:      databases.NewLocationDatabase(db),
		UDB:     databases.NewUserDatabase(db),
		Tracker: tracker,
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(l.UpdateLocationHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var entry presence.Entry
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entry))
	assert.Equal(t, "member-7", entry.UserID)
	userConn.AssertExpectations(t)
}

func TestLocation_ActiveLocationsHandlerReturnsTrackedEntries(t *testing.T) {
	tracker := presence.NewTracker()
	tracker.Update("http:u1", "u1", "prvi", "Prvi Clan", presence.BaseLatitude, presence.BaseLongitude)
	tracker.Update("http:u2", "u2", "drugi", "Drugi Clan", 45.815, 15.982)

	req, err := http.NewRequest("GET", "/api/v1/locations/active", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	l := handlers.Location{Tracker: tracker}

	rr := httptest.NewRecorder()
	http.HandlerFunc(l.ActiveLocationsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var entries []presence.Entry
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)

	statuses := map[string]string{}
	for _, e := range entries {
		statuses[e.UserID] = e.Status
	}
	assert.Equal(t, presence.StatusActive, statuses["u1"])
	assert.Equal(t, presence.StatusInactive, statuses["u2"])
}
