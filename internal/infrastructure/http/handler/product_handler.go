package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/niharikakanakala/products-api/internal/app/dto"
	"github.com/niharikakanakala/products-api/internal/domain"
	"github.com/niharikakanakala/products-api/internal/infrastructure/http/response"
)

// Fixed response messages. Clients match on these strings, so they must stay
// exactly as they are, spelling included.
const (
	msgAddError      = "Error in adding product."
	msgFetchAllError = "Not able to fetch all products."
	msgBadProductID  = "Give proper product id."
	msgFindError     = "Error in finding the product."
	msgSearchError   = "Error in searching the products."
	msgCountError    = "Error in getting product count."
	msgUpdateError   = "Error in updating product."
	msgWrongCriteria = "Wrong Criteria for Sorting"
	msgCategoryError = "Error in getting productsa by category"
	msgDeleteAllErr  = "Error in deleting all products"
)

// Placeholder values applied by the update operation regardless of the
// request body.
const (
	updatedName     = "Updated Product"
	updatedCategory = "Updated Category"
	updatedPrice    = float64(21)
)

// ProductCatalog is the collaborator the handler dispatches to. Absence is
// reported as domain.ErrProductNotFound; any other error is a fault.
type ProductCatalog interface {
	AddProduct(ctx context.Context, product *domain.Product) error
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	GetProductsByName(ctx context.Context, name string) ([]domain.Product, error)
	GetTotalProductCount(ctx context.Context) (int64, error)
	UpdateProduct(ctx context.Context, product *domain.Product) error
	SortProductsByName(ctx context.Context, order domain.SortOrder) ([]domain.Product, error)
	SortProductsByCategory(ctx context.Context, order domain.SortOrder) ([]domain.Product, error)
	SortProductsByPrice(ctx context.Context, order domain.SortOrder) ([]domain.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	DeleteAllProducts(ctx context.Context) error
}

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	catalog ProductCatalog
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog ProductCatalog, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes mounts the product routes under the given router.
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", h.AddProduct)
		r.Get("/", h.GetAllProducts)
		r.Delete("/", h.DeleteAllProducts)
		r.Get("/total-count", h.GetTotalProductCount)
		r.Get("/sort", h.SortProducts)
		r.Get("/search/{name}", h.SearchProducts)
		r.Get("/category/{category}", h.GetProductsByCategory)
		r.Get("/{id}", h.GetProductByID)
		r.Put("/{id}", h.UpdateProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
}

// AddProduct handles POST /api/products
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload dto.ProductPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WarnContext(ctx, "failed to decode product body", "error", err)
		response.Error(w, http.StatusBadRequest, msgAddError)
		return
	}

	product := payload.ToDomain()
	if err := h.catalog.AddProduct(ctx, product); err != nil {
		h.logger.ErrorContext(ctx, "failed to add product", "error", err)
		response.Error(w, http.StatusBadRequest, msgAddError)
		return
	}

	w.Header().Set("Location", "/api/products")
	response.JSON(w, http.StatusCreated, dto.ToProductPayload(product))
}

// GetAllProducts handles GET /api/products
func (h *ProductHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.catalog.GetAllProducts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", "error", err)
		response.Error(w, http.StatusBadRequest, msgFetchAllError)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductPayloadList(products))
}

// GetProductByID handles GET /api/products/{id}
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid product id", "id", chi.URLParam(r, "id"))
		response.Error(w, http.StatusBadRequest, msgFindError)
		return
	}

	product, err := h.catalog.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.Error(w, http.StatusNotFound, msgBadProductID)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get product", "product_id", id, "error", err)
		response.Error(w, http.StatusBadRequest, msgFindError)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductPayload(product))
}

// SearchProducts handles GET /api/products/search/{name}
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "name")

	products, err := h.catalog.GetProductsByName(ctx, name)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to search products", "name", name, "error", err)
		response.Error(w, http.StatusBadRequest, msgSearchError)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductPayloadList(products))
}

// GetTotalProductCount handles GET /api/products/total-count
func (h *ProductHandler) GetTotalProductCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.catalog.GetTotalProductCount(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count products", "error", err)
		response.Error(w, http.StatusBadRequest, msgCountError)
		return
	}

	response.JSON(w, http.StatusOK, count)
}

// UpdateProduct handles PUT /api/products/{id}.
//
// The stored product is overwritten with fixed placeholder values; the
// request body is intentionally ignored. Callers depend on this behavior.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid product id", "id", chi.URLParam(r, "id"))
		response.Error(w, http.StatusBadRequest, msgUpdateError)
		return
	}

	product, err := h.catalog.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to fetch product for update", "product_id", id, "error", err)
		response.Error(w, http.StatusBadRequest, msgUpdateError)
		return
	}

	product.Name = updatedName
	product.Category = updatedCategory
	product.Price = updatedPrice

	if err := h.catalog.UpdateProduct(ctx, product); err != nil {
		h.logger.ErrorContext(ctx, "failed to update product", "product_id", id, "error", err)
		response.Error(w, http.StatusBadRequest, msgUpdateError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SortProducts handles GET /api/products/sort. The sort criterion arrives as
// the request body (raw or JSON-quoted string); the sortingorder query value
// is forwarded verbatim to the collaborator.
func (h *ProductHandler) SortProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	raw := strings.Trim(strings.TrimSpace(string(body)), `"`)

	criterion, err := domain.ParseSortCriterion(raw)
	if err != nil {
		h.logger.WarnContext(ctx, "unknown sort criterion", "criterion", raw)
		response.Error(w, http.StatusBadRequest, msgWrongCriteria)
		return
	}

	order := domain.SortOrder(r.URL.Query().Get("sortingorder"))

	var products []domain.Product
	switch criterion {
	case domain.SortByName:
		products, err = h.catalog.SortProductsByName(ctx, order)
	case domain.SortByCategory:
		products, err = h.catalog.SortProductsByCategory(ctx, order)
	case domain.SortByPrice:
		products, err = h.catalog.SortProductsByPrice(ctx, order)
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to sort products", "criterion", raw, "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductPayloadList(products))
}

// GetProductsByCategory handles GET /api/products/category/{category}
func (h *ProductHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := chi.URLParam(r, "category")

	products, err := h.catalog.GetProductsByCategory(ctx, category)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get products by category", "category", category, "error", err)
		response.Error(w, http.StatusBadRequest, msgCategoryError)
		return
	}

	if len(products) == 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	response.JSON(w, http.StatusOK, dto.ToProductPayloadList(products))
}

// DeleteProduct handles DELETE /api/products/{id}. The existence check is
// awaited before deciding between 204 and 404.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if _, err := h.catalog.GetProductByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to check product before delete", "product_id", id, "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete product", "product_id", id, "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllProducts handles DELETE /api/products
func (h *ProductHandler) DeleteAllProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.catalog.DeleteAllProducts(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to delete all products", "error", err)
		response.Error(w, http.StatusBadRequest, msgDeleteAllErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
