package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/config"
	"github.com/vzo-kneginec/fire-brigade-api/databases"
	"github.com/vzo-kneginec/fire-brigade-api/models"
)

// Auth exported for testing purposes
type Auth struct {
	DB     databases.UserDatabase
	Tokens api.Auth
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// RegisterHandler creates a new member account. Username and email must be
// unique across all departments.
func (a Auth) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req models.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode registration", http.StatusBadRequest, w, err)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		config.ErrorStatus("username, email and password are required", http.StatusBadRequest, w, nil)
		return
	}

	count, err := a.DB.CountDocuments(context.Background(), bson.M{"$or": []bson.M{
		{"username": req.Username},
		{"email": req.Email},
	}})
	if err != nil {
		config.ErrorStatus("failed to check for existing user", http.StatusInternalServerError, w, err)
		return
	}
	if count > 0 {
		config.ErrorStatus("username or email already registered", http.StatusConflict, w, nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		config.ErrorStatus("failed to hash password", http.StatusInternalServerError, w, err)
		return
	}

	user := models.User{
		ID:                  uuid.New().String(),
		Username:            req.Username,
		Email:               req.Email,
		FullName:            req.FullName,
		Department:          req.Department,
		Role:                req.Role,
		IsAssociationMember: req.IsAssociationMember,
		IsOperational:       req.IsOperational,
		IsActive:            true,
		Password:            string(hash),
		CreatedAt:           time.Now(),
	}
	if err := a.DB.InsertOne(context.Background(), user); err != nil {
		config.ErrorStatus("failed to insert user", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("registered user",
		"username", user.Username,
		"department", user.Department,
	)

	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// LoginHandler verifies credentials and issues a bearer token
func (a Auth) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode login", http.StatusBadRequest, w, err)
		return
	}

	user, err := a.DB.FindOne(context.Background(), bson.M{"username": req.Username})
	if err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		config.ErrorStatus("invalid credentials", http.StatusUnauthorized, w, err)
		return
	}
	if !user.IsActive {
		config.ErrorStatus("account is deactivated", http.StatusUnauthorized, w, nil)
		return
	}

	token, err := a.Tokens.IssueToken(user)
	if err != nil {
		config.ErrorStatus("failed to sign token", http.StatusInternalServerError, w, err)
		return
	}

	b, err := json.Marshal(loginResponse{Token: token, User: *user})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MeHandler returns the authenticated user's own record
func (a Auth) MeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user := api.UserFromContext(r.Context())
	b, err := json.Marshal(user)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
