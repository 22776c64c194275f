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

// CategoryRepository persists categories in the "categories" collection.
type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{col: database.Collection("categories")}
}

func (r *CategoryRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var c models.Category
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("category get", err)
	}
	return &c, nil
}

func (r *CategoryRepository) Save(ctx context.Context, c *models.Category) (*models.Category, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	c.UpdatedAt = now
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
		c.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, opts); err != nil {
		return nil, apperr.Store("category save", err)
	}
	return c, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var c models.Category
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("category delete", err)
	}
	return &c, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Store("category list", err)
	}
	defer cur.Close(ctx)

	var out []models.Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("category decode", err)
	}
	return out, nil
}

func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("category indexes: %w", err)
	}
	return nil
}
