// Package migrations bootstraps the MongoDB indexes the queries rely on.
// Index creation is idempotent, so running it on every deploy is safe.
package migrations

import (
	"context"

	"github.com/barecheradouane2/ShoppingStorev1/app/repositories"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
)

// Run creates all collection indexes.
func Run(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"products", repositories.NewProductRepository().EnsureIndexes},
		{"orders", repositories.NewOrderRepository().EnsureIndexes},
		{"shippings", repositories.NewShippingRepository().EnsureIndexes},
		{"categories", repositories.NewCategoryRepository().EnsureIndexes},
		{"users", repositories.NewUserRepository().EnsureIndexes},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return err
		}
		logger.Info("indexes ensured", "collection", step.name)
	}
	return nil
}
