package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/services"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/response"
)

// CategoryController exposes category management over HTTP.
type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := c.categories.Create(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, category)
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var in services.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	category, err := c.categories.Update(r.Context(), id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	category, err := c.categories.Delete(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	category, err := c.categories.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, category)
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	list, err := c.categories.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, list)
}
