package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/database"
)

// UserRepository persists accounts in the "users" collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: database.Collection("users")}
}

func (r *UserRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("user get", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var u models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("user get by email", err)
	}
	return &u, nil
}

func (r *UserRepository) Save(ctx context.Context, u *models.User) (*models.User, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	u.UpdatedAt = now
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
		u.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": u.ID}, u, opts); err != nil {
		return nil, apperr.Store("user save", err)
	}
	return u, nil
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	return nil
}
