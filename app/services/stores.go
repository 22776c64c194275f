package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
)

// Store contracts consumed by the services. The repositories package
// provides the mongo implementations; tests substitute in-memory fakes.

type ProductStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Save(ctx context.Context, p *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	List(ctx context.Context, page, limit int64, category primitive.ObjectID, search string, featured *bool) ([]models.Product, int64, error)
	Stats(ctx context.Context) (bson.M, error)
}

type OrderStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	Save(ctx context.Context, o *models.Order) (*models.Order, error)
	// Delete returns the pre-delete document.
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	List(ctx context.Context, page, limit int64, status models.OrderStatus, search string) ([]models.Order, int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type ShippingStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Shipping, error)
	Save(ctx context.Context, s *models.Shipping) (*models.Shipping, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context) ([]models.Shipping, error)
}

type ExpenseStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Expense, error)
	// FindByTitle returns the newest entry with the given title, or
	// apperr.ErrNotFound.
	FindByTitle(ctx context.Context, title string) (*models.Expense, error)
	Save(ctx context.Context, e *models.Expense) (*models.Expense, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, page, limit int64) ([]models.Expense, int64, error)
}

type CategoryStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	Save(ctx context.Context, c *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
}

type UserStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, u *models.User) (*models.User, error)
}
