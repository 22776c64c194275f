package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/services"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/response"
)

// ExpenseController exposes the expense ledger over HTTP.
type ExpenseController struct {
	expenses *services.ExpenseService
}

func NewExpenseController(expenses *services.ExpenseService) *ExpenseController {
	return &ExpenseController{expenses: expenses}
}

func (c *ExpenseController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	expense, err := c.expenses.Create(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, expense)
}

func (c *ExpenseController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var in services.ExpenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	expense, err := c.expenses.Update(r.Context(), id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, expense)
}

func (c *ExpenseController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := c.expenses.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"deleted": id.Hex()})
}

func (c *ExpenseController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	expense, err := c.expenses.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, expense)
}

func (c *ExpenseController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	expenses, total, err := c.expenses.List(r.Context(), page, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, expenses, pagination(page, limit, total))
}
