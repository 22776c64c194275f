package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/barecheradouane2/ShoppingStorev1/app/services"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/response"
	"github.com/barecheradouane2/ShoppingStorev1/pkg/storage"
)

const maxUploadSize = 10 << 20 // 10 MiB per request

// ProductController exposes catalog management over HTTP.
type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, err := c.products.Create(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Created(w, product)
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var in services.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, err := c.products.Update(r.Context(), id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

// AddStock buys quantity into one variant/size bucket.
func (c *ProductController) AddStock(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	var in services.AddStockInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	product, err := c.products.AddStock(r.Context(), id, in)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	product, err := c.products.Delete(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	product, err := c.products.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}

func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	search := r.URL.Query().Get("search")

	var category primitive.ObjectID
	if raw := r.URL.Query().Get("category"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		category = id
	}

	var featured *bool
	if raw := r.URL.Query().Get("featured"); raw != "" {
		f := raw == "true" || raw == "1"
		featured = &f
	}

	products, total, err := c.products.List(r.Context(), page, limit, category, search, featured)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Paginated(w, products, pagination(page, limit, total))
}

func (c *ProductController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.products.Stats(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, stats)
}

// UploadImages accepts a multipart form with one or more "images" parts,
// stores each on the configured disk, and attaches the paths to the
// product.
func (c *ProductController) UploadImages(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.NotFound(w)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		response.Error(w, http.StatusBadRequest, "No images attached")
		return
	}

	var paths []string
	for i, header := range files {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png", ".webp":
		default:
			response.Error(w, http.StatusBadRequest, "Unsupported image type: "+ext)
			return
		}

		f, err := header.Open()
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Unreadable upload")
			return
		}

		path := fmt.Sprintf("images/%d-%d-%s%s", time.Now().UnixNano(), i, id.Hex(), ext)
		err = storage.PutStream(path, f)
		f.Close()
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Image store failed")
			return
		}
		paths = append(paths, path)
	}

	product, err := c.products.AttachImages(r.Context(), id, paths)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, product)
}
