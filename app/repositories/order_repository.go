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

// OrderRepository persists orders in the "orders" collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{col: database.Collection("orders")}
}

func (r *OrderRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var o models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("order get", err)
	}
	return &o, nil
}

func (r *OrderRepository) Save(ctx context.Context, o *models.Order) (*models.Order, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	o.UpdatedAt = now
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
		o.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": o.ID}, o, opts); err != nil {
		return nil, apperr.Store("order save", err)
	}
	return o, nil
}

// Delete removes the order and returns the pre-delete document so callers
// can inspect its prior status and items.
func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var o models.Order
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("order delete", err)
	}
	return &o, nil
}

// List returns a page of orders, newest first, optionally filtered by
// status and a phone or customer-name search. Each page row carries its
// shipping tier resolved into ShippingDetail via a lookup stage.
func (r *OrderRepository) List(ctx context.Context, page, limit int64, status models.OrderStatus, search string) ([]models.Order, int64, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["orderStatus"] = status
	}
	if search != "" {
		filter["$or"] = []bson.M{
			{"customerName": bson.M{"$regex": search, "$options": "i"}},
			{"phoneNumber": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Store("order count", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "shippings",
			"localField":   "shipping",
			"foreignField": "_id",
			"as":           "shippingDetail",
		}}},
		{{Key: "$set", Value: bson.M{
			"shippingDetail": bson.M{"$first": "$shippingDetail"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, apperr.Store("order list", err)
	}
	defer cur.Close(ctx)

	var out []models.Order
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, apperr.Store("order decode", err)
	}
	return out, total, nil
}

// CountByStatus groups order counts per status for the dashboard.
func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$orderStatus",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Store("order stats", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Store("order stats decode", err)
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderStatus", Value: 1}}},
		{Keys: bson.D{{Key: "phoneNumber", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("order indexes: %w", err)
	}
	return nil
}
