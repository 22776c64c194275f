// Package seeders loads development fixtures: an admin account, a few
// categories, and common shipping destinations.
package seeders

import (
	"context"
	"errors"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/app/repositories"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/auth"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
)

// Run seeds baseline data. Existing records are left alone, so the seeder
// can be re-run freely.
func Run(ctx context.Context) error {
	if err := seedAdmin(ctx); err != nil {
		return err
	}
	if err := seedCategories(ctx); err != nil {
		return err
	}
	return seedShippings(ctx)
}

func seedAdmin(ctx context.Context) error {
	users := repositories.NewUserRepository()

	_, err := users.GetByEmail(ctx, "admin@shopstore.local")
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}
	_, err = users.Save(ctx, &models.User{
		Name:     "Admin",
		Email:    "admin@shopstore.local",
		Password: hash,
	})
	if err != nil {
		return err
	}
	logger.Info("seeded admin user", "email", "admin@shopstore.local")
	return nil
}

func seedCategories(ctx context.Context) error {
	categories := repositories.NewCategoryRepository()

	existing, err := categories.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, name := range []string{"Shoes", "Shirts", "Pants", "Accessories"} {
		if _, err := categories.Save(ctx, &models.Category{Name: name}); err != nil {
			return err
		}
	}
	logger.Info("seeded categories")
	return nil
}

func seedShippings(ctx context.Context) error {
	shippings := repositories.NewShippingRepository()

	existing, err := shippings.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	tiers := []models.Shipping{
		{WilayaTo: "Alger", PlaceName: "Alger Centre", DeskPrice: 300, HomePrice: 500, IsAvailable: true},
		{WilayaTo: "Oran", PlaceName: "Oran Centre", DeskPrice: 400, HomePrice: 650, IsAvailable: true},
		{WilayaTo: "Constantine", PlaceName: "Constantine Centre", DeskPrice: 400, HomePrice: 700, IsAvailable: true},
		{WilayaTo: "Annaba", PlaceName: "Annaba Centre", DeskPrice: 450, HomePrice: 750, IsAvailable: true},
	}
	for i := range tiers {
		if _, err := shippings.Save(ctx, &tiers[i]); err != nil {
			return err
		}
	}
	logger.Info("seeded shipping tiers", "count", len(tiers))
	return nil
}
