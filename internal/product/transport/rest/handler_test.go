package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	perrors "github.com/mkravets/resource-api/internal/product/errors"
	"github.com/mkravets/resource-api/internal/product/service"
	"github.com/mkravets/resource-api/internal/product/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	product  *service.ProductDto
	products []service.ProductDto
	error    error
}

func (m *mockProductService) FindAll(_ context.Context) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) FindPage(_ context.Context, _, _ int32) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) FindByID(_ context.Context, _ int64) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) FindByCategory(_ context.Context, _ string) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) FindByBrand(_ context.Context, _ string) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) SearchByKeyword(_ context.Context, _ string) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) FindByPriceRange(_ context.Context, _, _ float64) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) FilterByPriceAndBrand(_ context.Context, _ float64, _ string) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) FindInStock(_ context.Context) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ int64, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) UpdateStock(_ context.Context, _ int64, _ int32) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ int64) error {
	return m.error
}

// toJSON is a helper function to convert a value to its JSON string
func toJSON(t *testing.T, v any) string {
	t.Helper()
	bytes, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal to JSON: %v", err)
	}
	return string(bytes)
}

func newTestHandler(svc service.ProductService) *Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return NewHandler(svc, logger)
}

func Test_ProductAPI_FindByID(t *testing.T) {
	widget := &service.ProductDto{ID: 1, Name: "Widget", Price: 9.99, Category: "Tools", StockQuantity: 5}
	testCases := []struct {
		name         string
		mockService  mockProductService
		productID    string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product found",
			mockService:  mockProductService{product: widget},
			productID:    "1",
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, widget),
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			productID:    "42",
			expectedCode: http.StatusNotFound,
			expectedBody: toJSON(t, "Product with ID 42 not found"),
		},
		{
			name:         "Error - invalid id",
			mockService:  mockProductService{},
			productID:    "not-a-number",
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, map[string]string{"error": "Invalid ID: not-a-number"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rr := httptest.NewRecorder()

			// when
			api.FindByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_FindByCategory(t *testing.T) {
	widgets := []service.ProductDto{{ID: 1, Name: "Widget", Category: "Tools"}}
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - products found",
			mockService:  mockProductService{products: widgets},
			expectedCode: http.StatusOK,
			expectedBody: toJSON(t, widgets),
		},
		{
			// Empty result mirrors the empty list back with a 404.
			name:         "Not found - empty list body",
			mockService:  mockProductService{products: []service.ProductDto{}},
			expectedCode: http.StatusNotFound,
			expectedBody: "[]",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/category/Tools", nil)
			req.SetPathValue("category", "Tools")
			rr := httptest.NewRecorder()

			// when
			api.FindByCategory(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_Create(t *testing.T) {
	created := &service.ProductDto{ID: 1, Name: "Widget", Price: 9.99, Category: "Tools", StockQuantity: 5}
	testCases := []struct {
		name         string
		mockService  mockProductService
		body         string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "Success - product created",
			mockService:  mockProductService{product: created},
			body:         `{"name":"Widget","price":9.99,"category":"Tools","stockQuantity":5}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, created),
		},
		{
			name:         "Conflict - duplicate name",
			mockService:  mockProductService{error: perrors.ErrProductNameTaken},
			body:         `{"name":"Widget","price":9.99}`,
			expectedCode: http.StatusConflict,
			expectedBody: toJSON(t, "Product with name 'Widget' already exists"),
		},
		{
			// No field constraints: empty name and negative numbers decode
			// and pass through.
			name:         "Success - unconstrained fields accepted",
			mockService:  mockProductService{product: &service.ProductDto{ID: 2, Price: -5, StockQuantity: -1}},
			body:         `{"name":"","price":-5,"stockQuantity":-1}`,
			expectedCode: http.StatusCreated,
			expectedBody: toJSON(t, &service.ProductDto{ID: 2, Price: -5, StockQuantity: -1}),
		},
		{
			name:         "Error - invalid body",
			mockService:  mockProductService{},
			body:         `{not-json`,
			expectedCode: http.StatusBadRequest,
			expectedBody: toJSON(t, map[string]string{"error": "Invalid request body"}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()

			// when
			api.Create(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			assert.JSONEq(t, tc.expectedBody, rr.Body.String())
		})
	}
}

func Test_ProductAPI_UpdateStock(t *testing.T) {
	restocked := &service.ProductDto{ID: 1, Name: "Widget", StockQuantity: 0}
	testCases := []struct {
		name         string
		mockService  mockProductService
		target       string
		expectedCode int
	}{
		{
			name:         "Success - stock updated",
			mockService:  mockProductService{product: restocked},
			target:       "/api/v1/products/1/stock?quantity=0",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Success - negative quantity accepted",
			mockService:  mockProductService{product: restocked},
			target:       "/api/v1/products/1/stock?quantity=-1",
			expectedCode: http.StatusOK,
		},
		{
			name:         "Error - missing quantity",
			mockService:  mockProductService{},
			target:       "/api/v1/products/1/stock",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			target:       "/api/v1/products/1/stock?quantity=3",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodPatch, tc.target, nil)
			req.SetPathValue("id", "1")
			rr := httptest.NewRecorder()

			// when
			api.UpdateStock(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}
}

func Test_ProductAPI_DeleteByID(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  mockProductService
		expectedCode int
	}{
		{
			name:         "Success - product deleted",
			mockService:  mockProductService{},
			expectedCode: http.StatusNoContent,
		},
		{
			name:         "Error - product not found",
			mockService:  mockProductService{error: perrors.ErrProductNotFound},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			api := newTestHandler(&tc.mockService)
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/1", nil)
			req.SetPathValue("id", "1")
			rr := httptest.NewRecorder()

			// when
			api.DeleteByID(rr, req)

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
		})
	}
}

// Test_ProductAPI_Lifecycle drives the full route surface against the real
// service and the in-memory store: create, duplicate conflict, in-stock
// filtering before and after a stock update.
func Test_ProductAPI_Lifecycle(t *testing.T) {
	mux := chi.NewRouter()
	handler := newTestHandler(service.NewService(store.NewInMemoryStore()))
	handler.RegisterRoutes(mux)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		t.Helper()
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, target, reader)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)
		return rr
	}

	// create "Widget"
	rr := do(http.MethodPost, "/api/v1/products", `{"name":"Widget","price":9.99,"category":"Tools","stockQuantity":5}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var widget service.ProductDto
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &widget))
	assert.Equal(t, int64(1), widget.ID)
	assert.Equal(t, "Widget", widget.Name)
	assert.Equal(t, 9.99, widget.Price)

	// duplicate name is rejected
	rr = do(http.MethodPost, "/api/v1/products", `{"name":"Widget","price":1.00}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	assert.JSONEq(t, toJSON(t, "Product with name 'Widget' already exists"), rr.Body.String())

	// in-stock contains Widget
	rr = do(http.MethodGet, "/api/v1/products/in-stock", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Widget")

	// stock drops to zero
	rr = do(http.MethodPatch, "/api/v1/products/1/stock?quantity=0", "")
	require.Equal(t, http.StatusOK, rr.Code)

	// in-stock no longer contains Widget
	rr = do(http.MethodGet, "/api/v1/products/in-stock", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	// stock accepts any integer, negative included
	rr = do(http.MethodPatch, "/api/v1/products/1/stock?quantity=-1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &widget))
	assert.Equal(t, int32(-1), widget.StockQuantity)
}
