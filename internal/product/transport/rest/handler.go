// Package rest provides HTTP handlers for product-related operations.
package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	producterrors "github.com/mkravets/resource-api/internal/product/errors"
	"github.com/mkravets/resource-api/internal/product/service"
	"github.com/mkravets/resource-api/pkg/web"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of the product API with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "product_rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the product resource.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Post("/", h.Create)
		r.Get("/search", h.Search)
		r.Get("/price-range", h.FindByPriceRange)
		r.Get("/filter", h.FilterByPriceAndBrand)
		r.Get("/in-stock", h.FindInStock)
		r.Get("/category/{category}", h.FindByCategory)
		r.Get("/brand/{brand}", h.FindByBrand)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Patch("/stock", h.UpdateStock)
			r.Delete("/", h.DeleteByID)
		})
	})
}

// FindAll retrieves all products, or a single page when both the page and
// limit query parameters are present.
func (h *Handler) FindAll(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	query := r.URL.Query()
	if query.Get("page") != "" && query.Get("limit") != "" {
		page, ok := web.ParseValidateGte(r, w, mLogger, "page", 0)
		if !ok {
			return
		}
		limit, ok := web.ParseValidateGt(r, w, mLogger, "limit", 0)
		if !ok {
			return
		}
		mLogger.DebugContext(r.Context(), "Received request to find product page", "page", page, "limit", limit)
		list, err := h.service.FindPage(r.Context(), page, limit)
		if err != nil {
			mLogger.ErrorContext(r.Context(), "Error retrieving product page", "error", err)
			web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
			return
		}
		web.RespondJSON(w, mLogger, http.StatusOK, list)
		return
	}

	list, err := h.service.FindAll(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product list", "count", len(list))
	web.RespondJSON(w, mLogger, http.StatusOK, list)
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to retrieve product with ID %d", id))
		return
	}
	web.RespondJSON(w, mLogger, http.StatusOK, found)
}

// FindByCategory retrieves products in the given category.
func (h *Handler) FindByCategory(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	category := r.PathValue("category")

	list, err := h.service.FindByCategory(r.Context(), category)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving products by category", "category", category, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.respondList(w, mLogger, list)
}

// FindByBrand retrieves products of the given brand.
func (h *Handler) FindByBrand(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	brand := r.PathValue("brand")

	list, err := h.service.FindByBrand(r.Context(), brand)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving products by brand", "brand", brand, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.respondList(w, mLogger, list)
}

// Search retrieves products whose name or description contains the keyword.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	keyword, ok := web.ParseString(r, w, mLogger, "keyword")
	if !ok {
		return
	}

	list, err := h.service.SearchByKeyword(r.Context(), keyword)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error searching products", "keyword", keyword, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to search products")
		return
	}
	h.respondList(w, mLogger, list)
}

// FindByPriceRange retrieves products priced within [min, max].
func (h *Handler) FindByPriceRange(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	min, ok := web.ParseFloat(r, w, mLogger, "min")
	if !ok {
		return
	}
	max, ok := web.ParseFloat(r, w, mLogger, "max")
	if !ok {
		return
	}

	list, err := h.service.FindByPriceRange(r.Context(), min, max)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving products by price range", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.respondList(w, mLogger, list)
}

// FilterByPriceAndBrand retrieves products matching the exact price and brand.
func (h *Handler) FilterByPriceAndBrand(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	price, ok := web.ParseFloat(r, w, mLogger, "price")
	if !ok {
		return
	}
	brand, ok := web.ParseString(r, w, mLogger, "brand")
	if !ok {
		return
	}

	list, err := h.service.FilterByPriceAndBrand(r.Context(), price, brand)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error filtering products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to filter products")
		return
	}
	h.respondList(w, mLogger, list)
}

// FindInStock retrieves products with stock strictly greater than zero.
func (h *Handler) FindInStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)

	list, err := h.service.FindInStock(r.Context())
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error retrieving in-stock products", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	h.respondList(w, mLogger, list)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	dto, ok := h.decodeAndValidate(w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), dto)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNameTaken) {
			mLogger.WarnContext(r.Context(), "Product name already exists", "Name", dto.Name)
			web.RespondJSON(w, mLogger, http.StatusConflict, fmt.Sprintf("Product with name '%s' already exists", dto.Name))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.RespondJSON(w, mLogger, http.StatusCreated, created)
}

// Update overwrites every mutable field of an existing product.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	dto, ok := h.decodeAndValidate(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, dto)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for update", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// UpdateStock overwrites the stock quantity of an existing product.
// Any integer is accepted, including negative values.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}
	quantity, ok := web.ParseInt32(r, w, mLogger, "quantity")
	if !ok {
		return
	}

	updated, err := h.service.UpdateStock(r.Context(), id, quantity)
	if err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for stock update", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error updating stock", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to update stock for product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Stock updated successfully", "ID", updated.ID, "NewStock", updated.StockQuantity)
	web.RespondJSON(w, mLogger, http.StatusOK, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := web.ParseID(w, r, mLogger)
	if !ok {
		return
	}

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		if errors.Is(err, producterrors.ErrProductNotFound) {
			mLogger.WarnContext(r.Context(), "Product not found for deletion", "ID", id)
			web.RespondJSON(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
			return
		}
		mLogger.ErrorContext(r.Context(), "Error deleting product", "ID", id, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to delete product with ID %d", id))
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	w.WriteHeader(http.StatusNoContent)
}

// respondList mirrors an empty result back with a 404 status, matching the
// collection-endpoint contract for this resource.
func (h *Handler) respondList(w http.ResponseWriter, logger *slog.Logger, list []service.ProductDto) {
	if len(list) == 0 {
		web.RespondJSON(w, logger, http.StatusNotFound, list)
		return
	}
	web.RespondJSON(w, logger, http.StatusOK, list)
}

// decodeAndValidate decodes the request body into a ProductCreateDto and
// validates it, writing a 400 response on failure.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (service.ProductCreateDto, bool) {
	var dto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	if err := h.validate.Struct(dto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			errorResponse := make(map[string]string)
			for _, fieldErr := range validationErrors {
				errorResponse[fieldErr.Field()] = "failed on rule: " + fieldErr.Tag()
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", errorResponse)
			web.RespondJSON(w, mLogger, http.StatusBadRequest, map[string]any{"validation_errors": errorResponse})
			return dto, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return dto, false
	}
	return dto, true
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	return h.logger.With("request_id", web.RequestIDFrom(r.Context()))
}
