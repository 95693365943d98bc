package databases

import (
	"context"

	"github.com/vzo-kneginec/fire-brigade-api/models"
)

const userCollection = "users"

// UserDatabase contains the methods to use with the user database
type UserDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.User, error)
	Find(ctx context.Context, filter interface{}) ([]models.User, error)
	InsertOne(ctx context.Context, user models.User) error
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) FindOne(ctx context.Context, filter interface{}) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userCollection).FindOne(ctx, filter).Decode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userDatabase) Find(ctx context.Context, filter interface{}) ([]models.User, error) {
	var users []models.User
	err := u.db.Collection(userCollection).Find(ctx, filter).Decode(&users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (u *userDatabase) InsertOne(ctx context.Context, user models.User) error {
	res := u.db.Collection(userCollection).InsertOne(ctx, user)
	if res.Decode() == nil {
		return ErrNotInserted
	}
	return nil
}

func (u *userDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (int64, error) {
	return u.db.Collection(userCollection).UpdateOne(ctx, filter, update)
}

func (u *userDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return u.db.Collection(userCollection).DeleteOne(ctx, filter)
}

func (u *userDatabase) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	return u.db.Collection(userCollection).CountDocuments(ctx, filter)
}
