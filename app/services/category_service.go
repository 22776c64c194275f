package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/logger"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/storage"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/validate"
)

// CategoryInput is the create/update payload.
type CategoryInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Image string `json:"image"`
}

// CategoryService manages catalog categories.
type CategoryService struct {
	categories CategoryStore
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.ValidationFields(errs)
	}
	return s.categories.Save(ctx, &models.Category{Name: in.Name, Image: in.Image})
}

func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, in CategoryInput) (*models.Category, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.ValidationFields(errs)
	}

	prev, err := s.categories.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	prev.Name = in.Name
	if in.Image != "" {
		prev.Image = in.Image
	}
	return s.categories.Save(ctx, prev)
}

func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	deleted, err := s.categories.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted.Image != "" {
		if err := storage.Delete(deleted.Image); err != nil {
			logger.Warn("category image cleanup failed", "path", deleted.Image, "error", err)
		}
	}
	return deleted, nil
}

func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	return s.categories.Get(ctx, id)
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}
