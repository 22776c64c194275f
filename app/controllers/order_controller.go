package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/models"
	"github.com/barecheradouane2/ShoppingStorev1/app/services"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/apperr"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/response"
)

// OrderController exposes the order lifecycle over HTTP.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order, err := c.orders.Create(r.Context(), in)
	var stockErr *apperr.PartialStockError
	switch {
	case err == nil:
		response.Created(w, order)
	case errors.As(err, &stockErr):
		response.PartialSuccess(w, order, stockErr.Report())
	default:
		response.FromError(w, err)
	}
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var in services.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	order, err := c.orders.Update(r.Context(), id, in)
	var stockErr *apperr.PartialStockError
	switch {
	case err == nil:
		response.Success(w, order)
	case errors.As(err, &stockErr):
		response.PartialSuccess(w, order, stockErr.Report())
	default:
		response.FromError(w, err)
	}
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	order, err := c.orders.Delete(r.Context(), id)
	var stockErr *apperr.PartialStockError
	switch {
	case err == nil:
		response.Success(w, order)
	case errors.As(err, &stockErr):
		response.PartialSuccess(w, order, stockErr.Report())
	default:
		response.FromError(w, err)
	}
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	order, err := c.orders.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, order)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	status := models.OrderStatus(r.URL.Query().Get("status"))
	search := r.URL.Query().Get("search")

	orders, total, err := c.orders.List(r.Context(), page, limit, status, search)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, orders, pagination(page, limit, total))
}

func (c *OrderController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.orders.Stats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, stats)
}

// pageParams reads page/limit query params with sane bounds.
func pageParams(r *http.Request) (int64, int64) {
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func pagination(page, limit, total int64) response.Pagination {
	pages := int(total / limit)
	if total%limit != 0 {
		pages++
	}
	return response.Pagination{
		Page:       int(page),
		Limit:      int(limit),
		Total:      total,
		TotalPages: pages,
	}
}
