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

// ShippingRepository persists rate tiers in the "shippings" collection.
type ShippingRepository struct {
	col *mongo.Collection
}

func NewShippingRepository() *ShippingRepository {
	return &ShippingRepository{col: database.Collection("shippings")}
}

func (r *ShippingRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Shipping, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var s models.Shipping
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("shipping get", err)
	}
	return &s, nil
}

func (r *ShippingRepository) Save(ctx context.Context, s *models.Shipping) (*models.Shipping, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	s.UpdatedAt = now
	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
		s.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": s.ID}, s, opts); err != nil {
		return nil, apperr.Store("shipping save", err)
	}
	return s, nil
}

func (r *ShippingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Store("shipping delete", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// List returns every rate tier sorted by destination name. The list is
// small reference data, so it is not paginated.
func (r *ShippingRepository) List(ctx context.Context) ([]models.Shipping, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "wilayaTo", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, apperr.Store("shipping list", err)
	}
	defer cur.Close(ctx)

	var out []models.Shipping
	if err := cur.All(ctx, &out); err != nil {
		return nil, apperr.Store("shipping decode", err)
	}
	return out, nil
}

func (r *ShippingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "wilayaTo", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("shipping indexes: %w", err)
	}
	return nil
}
