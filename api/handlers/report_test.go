package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vzo-kneginec/fire-brigade-api/api/handlers"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/databases/mocks"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

func TestReport_MemberRosterHandlerVZOScopeForbiddenForMember(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/pdf/evidencijski-list/VZO", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"department": "VZO"})
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	rep := handlers.Report{
		UDB: databases.NewUserDatabase(db),
		VDB: databases.NewVehicleDatabase(db),
		EDB: databases.NewEquipmentDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(rep.MemberRosterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	db.AssertNotCalled(t, "Collection", "users")
}

func TestReport_MemberRosterHandlerOtherDepartmentForbidden(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/pdf/evidencijski-list/DVD_Donji_Kneginec", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"department": "DVD_Donji_Kneginec"})
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	rep := handlers.Report{
		UDB: databases.NewUserDatabase(db),
		VDB: databases.NewVehicleDatabase(db),
		EDB: databases.NewEquipmentDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(rep.MemberRosterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestReport_MemberRosterHandlerRendersAttachment(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/pdf/evidencijski-list/DVD_Kneginec_Gornji", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"department": "DVD_Kneginec_Gornji"})
	req = withCaller(req, plainMember("DVD_Kneginec_Gornji"))

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	cursor.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.User)
		*arg = []models.User{{FullName: "Ivan Horvat", Username: "ihorvat", Department: "DVD_Kneginec_Gornji"}}
	})
	conn.On("Find", mock.Anything, mock.Anything).Return(cursor)
	db.On("Collection", "users").Return(conn)

	rep := handlers.Report{
		UDB: databases.NewUserDatabase(db),
		VDB: databases.NewVehicleDatabase(db),
		EDB: databases.NewEquipmentDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(rep.MemberRosterHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment; filename=evidencijski-list_DVD_Kneginec_Gornji_")
	assert.Equal(t, "%PDF", rr.Body.String()[:4])
}

func TestReport_PersonalAssignmentHandlerUnknownUser(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/pdf/osobno-zaduzenje/ghost", nil)
	if err != nil {
		t.Fatal(err)
	}
	req = mux.SetURLVars(req, map[string]string{"user_id": "ghost"})
	req = withCaller(req, associationPresident())

	db := &MockDatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(errors.New("mongo: no documents in result"))
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	db.On("Collection", "users").Return(conn)

	rep := handlers.Report{
		UDB: databases.NewUserDatabase(db),
		VDB: databases.NewVehicleDatabase(db),
		EDB: databases.NewEquipmentDatabase(db),
	}

	rr := httptest.NewRecorder()
	http.HandlerFunc(rep.PersonalAssignmentHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
