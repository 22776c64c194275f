package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/cache"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/storage"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/validate"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/workerpool"
)

const statsCacheKey = "products:stats"
const statsCacheTTL = 5 * time.Minute

// SizeInput mirrors models.Size for request payloads.
type SizeInput struct {
	Name string `json:"name" validate:"required"`
	Qty  int    `json:"qty" validate:"gte=0"`
}

// ColorVariantInput mirrors models.ColorVariant for request payloads.
type ColorVariantInput struct {
	Name      string      `json:"name" validate:"required"`
	ColorCode string      `json:"colorCode"`
	Qty       int         `json:"qty" validate:"gte=0"`
	Sizes     []SizeInput `json:"sizes"`
}

// ProductInput is the create/update payload. Quantity is only honored for
// simple products; once sizes or variants exist it is derived.
type ProductInput struct {
	Name          string              `json:"name" validate:"required,min=2,max=150"`
	Description   string              `json:"description"`
	Category      string              `json:"category"`
	Price         float64             `json:"price" validate:"required,gt=0"`
	BuyingPrice   float64             `json:"buyingPrice" validate:"nullable,gte=0"`
	IsFeatured    bool                `json:"isFeatured"`
	Quantity      int                 `json:"quantity" validate:"gte=0"`
	Sizes         []SizeInput         `json:"sizes"`
	ColorVariants []ColorVariantInput `json:"colorVariants"`
}

// AddStockInput buys quantity into one stock bucket and records the
// purchase as an expense when a buying price is given.
type AddStockInput struct {
	Quantity    int     `json:"quantity" validate:"required,gte=1"`
	Color       string  `json:"color"`
	Size        string  `json:"size"`
	BuyingPrice float64 `json:"buyingPrice" validate:"nullable,gte=0"`
}

// ProductService manages the catalog and its derived inventory counts.
type ProductService struct {
	products  ProductStore
	expenses  ExpenseStore
	inventory *InventoryService
	pool      *workerpool.Pool
}

func NewProductService(products ProductStore, expenses ExpenseStore, inventory *InventoryService, pool *workerpool.Pool) *ProductService {
	return &ProductService{products: products, expenses: expenses, inventory: inventory, pool: pool}
}

// Create validates the payload, derives the aggregate quantity from the
// variant tree, persists, and books the initial stock purchase as an
// expense when a buying price is set.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	product, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	product.RecomputeQuantity()

	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	s.recordPurchase(ctx, saved, saved.Quantity, in.BuyingPrice)
	cache.Forget(statsCacheKey)
	return saved, nil
}

// Update replaces the catalog fields and variant tree, re-deriving the
// aggregate quantity before the write. A changed buying price carries
// over to the purchase expense booked for the product.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, in ProductInput) (*models.Product, error) {
	prev, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	product.ID = prev.ID
	product.CreatedAt = prev.CreatedAt
	product.Images = prev.Images
	product.RecomputeQuantity()

	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	if in.BuyingPrice > 0 && in.BuyingPrice != prev.BuyingPrice {
		s.upkeepPurchase(ctx, prev.Name, saved, in.BuyingPrice)
	}

	cache.Forget(statsCacheKey)
	return saved, nil
}

// AddStock buys units into the matching variant/size bucket (or the flat
// quantity for simple products), re-derives the total, and books the
// purchase expense.
func (s *ProductService) AddStock(ctx context.Context, id primitive.ObjectID, in AddStockInput) (*models.Product, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.ValidationFields(errs)
	}

	l := s.inventory.lock(id.Hex())
	l.Lock()
	defer l.Unlock()

	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	item := models.OrderItem{Product: id, Quantity: in.Quantity, Color: in.Color, Size: in.Size}
	if len(product.ColorVariants) == 0 && len(product.Sizes) == 0 {
		product.Quantity += in.Quantity
	} else {
		applyVariantDelta(product, item, in.Quantity)
		product.RecomputeQuantity()
	}

	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	s.recordPurchase(ctx, saved, in.Quantity, in.BuyingPrice)
	cache.Forget(statsCacheKey)
	return saved, nil
}

// Delete removes the product and cleans its stored images up in the
// background; image cleanup failures never fail the delete.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.pool != nil {
		for _, img := range deleted.Images {
			path := img
			if err := s.pool.Submit(func() {
				if err := storage.Delete(path); err != nil {
					logger.Warn("product image cleanup failed", "path", path, "error", err)
				}
			}); err != nil {
				logger.Warn("image cleanup not scheduled", "path", path, "error", err)
			}
		}
	}

	cache.Forget(statsCacheKey)
	return deleted, nil
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *ProductService) List(ctx context.Context, page, limit int64, category primitive.ObjectID, search string, featured *bool) ([]models.Product, int64, error) {
	return s.products.List(ctx, page, limit, category, search, featured)
}

// AttachImages appends stored image paths to the product.
func (s *ProductService) AttachImages(ctx context.Context, id primitive.ObjectID, paths []string) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Images = append(product.Images, paths...)
	return s.products.Save(ctx, product)
}

// Stats returns catalog totals, served from Redis for a few minutes.
func (s *ProductService) Stats(ctx context.Context) (bson.M, error) {
	var cached bson.M
	if cache.Get(statsCacheKey, &cached) {
		return cached, nil
	}

	stats, err := s.products.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(statsCacheKey, stats, statsCacheTTL); err != nil {
		logger.Warn("stats cache write failed", "error", err)
	}
	return stats, nil
}

func (s *ProductService) fromInput(in ProductInput) (*models.Product, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.ValidationFields(errs)
	}
	if err := checkNonNegative(in); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		BuyingPrice: in.BuyingPrice,
		IsFeatured:  in.IsFeatured,
		Quantity:    in.Quantity,
	}

	if in.Category != "" {
		catID, err := primitive.ObjectIDFromHex(in.Category)
		if err != nil {
			return nil, apperr.Validation("category", "The category field must be a valid id.")
		}
		product.Category = catID
	}

	for _, sz := range in.Sizes {
		product.Sizes = append(product.Sizes, models.Size{Name: sz.Name, Qty: sz.Qty})
	}
	for _, cv := range in.ColorVariants {
		variant := models.ColorVariant{Name: cv.Name, ColorCode: cv.ColorCode, Qty: cv.Qty}
		for _, sz := range cv.Sizes {
			variant.Sizes = append(variant.Sizes, models.Size{Name: sz.Name, Qty: sz.Qty})
		}
		product.ColorVariants = append(product.ColorVariants, variant)
	}
	return product, nil
}

// checkNonNegative rejects negative bucket quantities at the mutation
// boundary; aggregation assumes non-negative inputs and only sums.
func checkNonNegative(in ProductInput) error {
	for i, sz := range in.Sizes {
		if sz.Qty < 0 {
			return apperr.Validation(fmt.Sprintf("sizes.%d.qty", i), "The qty must not be negative.")
		}
	}
	for i, cv := range in.ColorVariants {
		if cv.Qty < 0 {
			return apperr.Validation(fmt.Sprintf("colorVariants.%d.qty", i), "The qty must not be negative.")
		}
		for j, sz := range cv.Sizes {
			if sz.Qty < 0 {
				return apperr.Validation(fmt.Sprintf("colorVariants.%d.sizes.%d.qty", i, j), "The qty must not be negative.")
			}
		}
	}
	return nil
}

func purchaseTitle(productName string) string {
	return "Stock purchase: " + productName
}

// recordPurchase books an inventory buy-in as a ledger expense.
func (s *ProductService) recordPurchase(ctx context.Context, p *models.Product, units int, buyingPrice float64) {
	if buyingPrice <= 0 || units <= 0 {
		return
	}
	_, err := s.expenses.Save(ctx, &models.Expense{
		Title:       purchaseTitle(p.Name),
		Description: fmt.Sprintf("%d units at %.2f", units, buyingPrice),
		Amount:      float64(units) * buyingPrice,
		Date:        time.Now().UTC(),
	})
	if err != nil {
		logger.WithCtx(ctx).Warn("stock purchase expense not recorded",
			"product", p.ID.Hex(), "error", err)
	}
}

// upkeepPurchase re-prices the purchase expense after a buying-price
// change. The lookup uses the pre-update product name since that is the
// title the expense was booked under; a missing entry is booked fresh.
// Ledger failures are logged and never fail the product update.
func (s *ProductService) upkeepPurchase(ctx context.Context, prevName string, p *models.Product, buyingPrice float64) {
	exp, err := s.expenses.FindByTitle(ctx, purchaseTitle(prevName))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			s.recordPurchase(ctx, p, p.Quantity, buyingPrice)
			return
		}
		logger.WithCtx(ctx).Warn("purchase expense lookup failed",
			"product", p.ID.Hex(), "error", err)
		return
	}

	exp.Title = purchaseTitle(p.Name)
	exp.Description = fmt.Sprintf("%d units at %.2f", p.Quantity, buyingPrice)
	exp.Amount = float64(p.Quantity) * buyingPrice
	if _, err := s.expenses.Save(ctx, exp); err != nil {
		logger.WithCtx(ctx).Warn("purchase expense not re-priced",
			"product", p.ID.Hex(), "error", err)
	}
}
