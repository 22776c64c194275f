package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/validate"
)

// ExpenseInput is the create/update payload for a ledger entry.
type ExpenseInput struct {
	Title       string  `json:"title" validate:"required,min=2,max=150"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date" validate:"nullable,date"`
}

// ExpenseService manages the expense ledger.
type ExpenseService struct {
	expenses ExpenseStore
}

func NewExpenseService(expenses ExpenseStore) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.Expense, error) {
	expense, err := fromExpenseInput(in)
	if err != nil {
		return nil, err
	}
	return s.expenses.Save(ctx, expense)
}

func (s *ExpenseService) Update(ctx context.Context, id primitive.ObjectID, in ExpenseInput) (*models.Expense, error) {
	expense, err := fromExpenseInput(in)
	if err != nil {
		return nil, err
	}

	prev, err := s.expenses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	expense.ID = prev.ID
	expense.CreatedAt = prev.CreatedAt
	return s.expenses.Save(ctx, expense)
}

func (s *ExpenseService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.expenses.Delete(ctx, id)
}

func (s *ExpenseService) Get(ctx context.Context, id primitive.ObjectID) (*models.Expense, error) {
	return s.expenses.Get(ctx, id)
}

func (s *ExpenseService) List(ctx context.Context, page, limit int64) ([]models.Expense, int64, error) {
	return s.expenses.List(ctx, page, limit)
}

func fromExpenseInput(in ExpenseInput) (*models.Expense, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.ValidationFields(errs)
	}

	expense := &models.Expense{
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
	}
	if in.Date != "" {
		d, err := time.Parse(time.RFC3339, in.Date)
		if err != nil {
			d, err = time.Parse("2006-01-02", in.Date)
		}
		if err != nil {
			return nil, apperr.Validation("date", "The date is not a valid date.")
		}
		expense.Date = d
	}
	return expense, nil
}
