package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/cache"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/validate"
)

const shippingCacheKey = "shippings:all"
const shippingCacheTTL = 10 * time.Minute

func shippingIDKey(id primitive.ObjectID) string {
	return "shippings:" + id.Hex()
}

// ShippingInput is the create/update payload for a rate tier.
type ShippingInput struct {
	WilayaFrom  string  `json:"wilayaFrom"`
	WilayaTo    string  `json:"wilayaTo" validate:"required,min=2,max=100"`
	PlaceName   string  `json:"placeName" validate:"required,min=2,max=100"`
	DeskPrice   float64 `json:"deskprice" validate:"gte=0"`
	HomePrice   float64 `json:"homeprice" validate:"gte=0"`
	IsAvailable bool    `json:"isavailable"`
}

// ShippingService manages rate tiers. The full list is reference data
// read on almost every order, so it is cached in Redis and invalidated
// on every write.
type ShippingService struct {
	shippings ShippingStore
}

func NewShippingService(shippings ShippingStore) *ShippingService {
	return &ShippingService{shippings: shippings}
}

func (s *ShippingService) Create(ctx context.Context, in ShippingInput) (*models.Shipping, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.ValidationFields(errs)
	}

	saved, err := s.shippings.Save(ctx, &models.Shipping{
		WilayaFrom:  in.WilayaFrom,
		WilayaTo:    in.WilayaTo,
		PlaceName:   in.PlaceName,
		DeskPrice:   in.DeskPrice,
		HomePrice:   in.HomePrice,
		IsAvailable: in.IsAvailable,
	})
	if err != nil {
		return nil, err
	}
	cache.Forget(shippingCacheKey)
	return saved, nil
}

func (s *ShippingService) Update(ctx context.Context, id primitive.ObjectID, in ShippingInput) (*models.Shipping, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.ValidationFields(errs)
	}

	prev, err := s.shippings.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	prev.WilayaFrom = in.WilayaFrom
	prev.WilayaTo = in.WilayaTo
	prev.PlaceName = in.PlaceName
	prev.DeskPrice = in.DeskPrice
	prev.HomePrice = in.HomePrice
	prev.IsAvailable = in.IsAvailable

	saved, err := s.shippings.Save(ctx, prev)
	if err != nil {
		return nil, err
	}
	cache.Forget(shippingCacheKey, shippingIDKey(id))
	return saved, nil
}

func (s *ShippingService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.shippings.Delete(ctx, id); err != nil {
		return err
	}
	cache.Forget(shippingCacheKey, shippingIDKey(id))
	return nil
}

// Get caches per-tier lookups since every order build reads one.
func (s *ShippingService) Get(ctx context.Context, id primitive.ObjectID) (*models.Shipping, error) {
	var cached models.Shipping
	if cache.Get(shippingIDKey(id), &cached) {
		return &cached, nil
	}

	sh, err := s.shippings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(shippingIDKey(id), sh, shippingCacheTTL); err != nil {
		logger.Warn("shipping cache write failed", "error", err)
	}
	return sh, nil
}

func (s *ShippingService) List(ctx context.Context) ([]models.Shipping, error) {
	var cached []models.Shipping
	if cache.Get(shippingCacheKey, &cached) {
		return cached, nil
	}

	list, err := s.shippings.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.Set(shippingCacheKey, list, shippingCacheTTL); err != nil {
		logger.Warn("shipping cache write failed", "error", err)
	}
	return list, nil
}
