package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/database"
)

// ExpenseRepository persists ledger entries in the "expenses" collection.
type ExpenseRepository struct {
	col *mongo.Collection
}

func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{col: database.Collection("expenses")}
}

func (r *ExpenseRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var e models.Expense
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("expense get", err)
	}
	return &e, nil
}

// FindByTitle returns the newest entry with the given title. Stock
// purchase upkeep uses it to locate the expense booked for a product.
func (r *ExpenseRepository) FindByTitle(ctx context.Context, title string) (*models.Expense, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var e models.Expense
	err := r.col.FindOne(ctx, bson.M{"title": title}, opts).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("expense find", err)
	}
	return &e, nil
}

func (r *ExpenseRepository) Save(ctx context.Context, e *models.Expense) (*models.Expense, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	e.UpdatedAt = now
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
		e.CreatedAt = now
	}
	if e.Date.IsZero() {
		e.Date = now
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": e.ID}, e, opts); err != nil {
		return nil, apperr.Store("expense save", err)
	}
	return e, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return apperr.Store("expense delete", err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *ExpenseRepository) List(ctx context.Context, page, limit int64) ([]models.Expense, int64, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, apperr.Store("expense count", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, apperr.Store("expense list", err)
	}
	defer cur.Close(ctx)

	var out []models.Expense
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, apperr.Store("expense decode", err)
	}
	return out, total, nil
}
