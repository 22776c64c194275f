package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/services"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/response"
)

// ShippingController exposes rate-tier management over HTTP.
type ShippingController struct {
	shippings *services.ShippingService
}

func NewShippingController(shippings *services.ShippingService) *ShippingController {
	return &ShippingController{shippings: shippings}
}

func (c *ShippingController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ShippingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	shipping, err := c.shippings.Create(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, shipping)
}

func (c *ShippingController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var in services.ShippingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	shipping, err := c.shippings.Update(r.Context(), id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, shipping)
}

func (c *ShippingController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := c.shippings.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, map[string]string{"deleted": id.Hex()})
}

func (c *ShippingController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	shipping, err := c.shippings.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, shipping)
}

func (c *ShippingController) List(w http.ResponseWriter, r *http.Request) {
	list, err := c.shippings.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, list)
}
