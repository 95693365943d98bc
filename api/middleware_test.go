package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

type stubUserDB struct {
	user *models.User
	err  error
}

func (s *stubUserDB) FindOne(ctx context.Context, filter interface{}) (*models.User, error) {
	return s.user, s.err
}
func (s *stubUserDB) Find(ctx context.Context, filter interface{}) ([]models.User, error) {
	return nil, nil
}
func (s *stubUserDB) InsertOne(ctx context.Context, user models.User) error { return nil }
func (s *stubUserDB) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return 0, nil
}
func (s *stubUserDB) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return 0, nil
}
func (s *stubUserDB) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return 0, nil
}

func okHandler(t *testing.T, called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		user := UserFromContext(r.Context())
		assert.NotNil(t, user)
		w.WriteHeader(http.StatusOK)
	})
}

func TestMiddlewareRejectsMissingToken(t *testing.T) {
	auth := Auth{DB: &stubUserDB{}, Secret: []byte("test-secret")}

	called := false
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	rr := httptest.NewRecorder()
	auth.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestMiddlewareRejectsGarbageToken(t *testing.T) {
	auth := Auth{DB: &stubUserDB{}, Secret: []byte("test-secret")}

	called := false
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer asdfasdf")
	rr := httptest.NewRecorder()
	auth.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestMiddlewareAcceptsIssuedToken(t *testing.T) {
	user := &models.User{ID: "u1", Username: "vatrogasac", IsActive: true}
	auth := Auth{DB: &stubUserDB{user: user}, Secret: []byte("test-secret")}

	token, err := auth.IssueToken(user)
	assert.NoError(t, err)

	called := false
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	auth.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}

func TestMiddlewareAcceptsQueryToken(t *testing.T) {
	user := &models.User{ID: "u1", Username: "vatrogasac", IsActive: true}
	auth := Auth{DB: &stubUserDB{user: user}, Secret: []byte("test-secret")}

	token, err := auth.IssueToken(user)
	assert.NoError(t, err)

	called := false
	req := httptest.NewRequest("GET", "/api/v1/ws/location?token="+token, nil)
	rr := httptest.NewRecorder()
	auth.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, called)
}

func TestMiddlewareRejectsInactiveUser(t *testing.T) {
	user := &models.User{ID: "u1", Username: "bivsi", IsActive: false}
	auth := Auth{DB: &stubUserDB{user: user}, Secret: []byte("test-secret")}

	token, err := auth.IssueToken(user)
	assert.NoError(t, err)

	called := false
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	auth.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestMiddlewareRejectsUnknownUser(t *testing.T) {
	user := &models.User{ID: "ghost", Username: "duh", IsActive: true}
	auth := Auth{DB: &stubUserDB{err: errors.New("mongo: no documents in result")}, Secret: []byte("test-secret")}

	token, err := auth.IssueToken(user)
	assert.NoError(t, err)

	called := false
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	auth.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}

func TestMiddlewareRejectsTokenSignedWithOtherSecret(t *testing.T) {
	user := &models.User{ID: "u1", Username: "vatrogasac", IsActive: true}
	other := Auth{DB: &stubUserDB{user: user}, Secret: []byte("other-secret")}
	token, err := other.IssueToken(user)
	assert.NoError(t, err)

	auth := Auth{DB: &stubUserDB{user: user}, Secret: []byte("test-secret")}

	called := false
	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	auth.Middleware(okHandler(t, &called)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, called)
}
