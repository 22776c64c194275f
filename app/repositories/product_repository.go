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

// ProductRepository persists products in the "products" collection. It
// also reads the "categories" collection to resolve category references
// and to widen searches to category names.
type ProductRepository struct {
	col  *mongo.Collection
	cats *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		col:  database.Collection("products"),
		cats: database.Collection("categories"),
	}
}

// Get returns the product with its category resolved into CategoryDetail.
// A dangling category reference is tolerated and left unresolved.
func (r *ProductRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var p models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("product get", err)
	}

	if !p.Category.IsZero() {
		var cat models.Category
		if err := r.cats.FindOne(ctx, bson.M{"_id": p.Category}).Decode(&cat); err == nil {
			p.CategoryDetail = &cat
		}
	}
	return &p, nil
}

// Save upserts the whole document including nested variant arrays.
func (r *ProductRepository) Save(ctx context.Context, p *models.Product) (*models.Product, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	p.UpdatedAt = now
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
		p.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts); err != nil {
		return nil, apperr.Store("product save", err)
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	var p models.Product
	err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, apperr.Store("product delete", err)
	}
	return &p, nil
}

// List returns a page of products, newest first, optionally filtered by
// category and featured flag. A search term matches either the product
// name or the name of its category, both case-insensitive.
func (r *ProductRepository) List(ctx context.Context, page, limit int64, category primitive.ObjectID, search string, featured *bool) ([]models.Product, int64, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	filter := bson.M{}
	if !category.IsZero() {
		filter["category"] = category
	}
	if featured != nil {
		filter["isFeatured"] = *featured
	}
	if search != "" {
		catIDs, err := r.categoryIDsByName(ctx, search)
		if err != nil {
			return nil, 0, err
		}
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": search, "$options": "i"}},
			{"category": bson.M{"$in": catIDs}},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, apperr.Store("product count", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, apperr.Store("product list", err)
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, apperr.Store("product decode", err)
	}
	return out, total, nil
}

// categoryIDsByName resolves a case-insensitive category-name pattern to
// category ids, widening product searches to category names.
func (r *ProductRepository) categoryIDsByName(ctx context.Context, pattern string) ([]primitive.ObjectID, error) {
	cur, err := r.cats.Find(ctx,
		bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, apperr.Store("category search", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Store("category search decode", err)
	}

	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids, nil
}

// Stats aggregates inventory totals. valueofstock sums the wholesale
// buy-in price across the catalog; estimatedincome is the retail value
// of units in stock minus that buy-in.
func (r *ProductRepository) Stats(ctx context.Context) (bson.M, error) {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"totalstock":   bson.M{"$sum": "$quantity"},
			"valueofstock": bson.M{"$sum": "$buyingPrice"},
			"retailvalue":  bson.M{"$sum": bson.M{"$multiply": []any{"$quantity", "$price"}}},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":             0,
			"totalstock":      1,
			"valueofstock":    1,
			"estimatedincome": bson.M{"$subtract": []any{"$retailvalue", "$valueofstock"}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, apperr.Store("product stats", err)
	}
	defer cur.Close(ctx)

	var rows []bson.M
	if err := cur.All(ctx, &rows); err != nil {
		return nil, apperr.Store("product stats decode", err)
	}
	if len(rows) == 0 {
		return bson.M{"totalstock": 0, "valueofstock": 0, "estimatedincome": 0}, nil
	}
	return rows[0], nil
}

// EnsureIndexes creates the indexes product queries rely on.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.Ctx(ctx)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "isFeatured", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("product indexes: %w", err)
	}
	return nil
}
