// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/mkravets/resource-api/internal/product/errors"
	"github.com/mkravets/resource-api/internal/product/store"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// FindAll returns all available products.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindPage returns one page of products. The page index is zero-based.
	FindPage(ctx context.Context, page, limit int32) ([]ProductDto, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// FindByCategory returns products in the given category, case-insensitively.
	FindByCategory(ctx context.Context, category string) ([]ProductDto, error)

	// FindByBrand returns products of the given brand, case-insensitively.
	FindByBrand(ctx context.Context, brand string) ([]ProductDto, error)

	// SearchByKeyword returns products whose name or description contains the
	// keyword, case-insensitively.
	SearchByKeyword(ctx context.Context, keyword string) ([]ProductDto, error)

	// FindByPriceRange returns products priced within [min, max], inclusive.
	FindByPriceRange(ctx context.Context, min, max float64) ([]ProductDto, error)

	// FilterByPriceAndBrand returns products matching the exact price and brand.
	FilterByPriceAndBrand(ctx context.Context, price float64, brand string) ([]ProductDto, error)

	// FindInStock returns products with stock strictly greater than zero.
	FindInStock(ctx context.Context) ([]ProductDto, error)

	// Create adds a new product; the store assigns its identifier.
	// Returns ErrProductNameTaken if a product with the same name already
	// exists (case-sensitive exact match).
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update overwrites every mutable field of the product with the given ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, product ProductCreateDto) (*ProductDto, error)

	// UpdateStock overwrites only the stock quantity.
	// Returns ErrProductNotFound if no product exists with the given ID.
	UpdateStock(ctx context.Context, id int64, quantity int32) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating or fully
// updating a product. Every field is overwritten on update; there is no
// partial-merge-by-omission. No field constraints are imposed: any decodable
// body is accepted, including empty names and negative numbers.
type ProductCreateDto struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	StockQuantity int32   `json:"stockQuantity"`
	Brand         string  `json:"brand"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	StockQuantity int32   `json:"stockQuantity"`
	Brand         string  `json:"brand"`
}

func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toDtos(products), nil
}

func (s *Service) FindPage(ctx context.Context, page, limit int32) ([]ProductDto, error) {
	// 64-bit offset so large page and limit values cannot wrap negative.
	products, err := s.repository.FindPage(ctx, limit, int64(page)*int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product page: %w", err)
	}
	return toDtos(products), nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

func (s *Service) FindByCategory(ctx context.Context, category string) ([]ProductDto, error) {
	products, err := s.repository.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products by category %q: %w", category, err)
	}
	return toDtos(products), nil
}

func (s *Service) FindByBrand(ctx context.Context, brand string) ([]ProductDto, error) {
	products, err := s.repository.FindByBrand(ctx, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products by brand %q: %w", brand, err)
	}
	return toDtos(products), nil
}

func (s *Service) SearchByKeyword(ctx context.Context, keyword string) ([]ProductDto, error) {
	products, err := s.repository.SearchByKeyword(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("failed to search products by keyword %q: %w", keyword, err)
	}
	return toDtos(products), nil
}

func (s *Service) FindByPriceRange(ctx context.Context, min, max float64) ([]ProductDto, error) {
	products, err := s.repository.FindByPriceBetween(ctx, min, max)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products by price range: %w", err)
	}
	return toDtos(products), nil
}

func (s *Service) FilterByPriceAndBrand(ctx context.Context, price float64, brand string) ([]ProductDto, error) {
	products, err := s.repository.FindByPriceAndBrand(ctx, price, brand)
	if err != nil {
		return nil, fmt.Errorf("failed to filter products by price and brand: %w", err)
	}
	return toDtos(products), nil
}

// FindInStock returns products with stock strictly greater than zero.
func (s *Service) FindInStock(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindByStockGreaterThan(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch in-stock products: %w", err)
	}
	return toDtos(products), nil
}

// Create adds a new product after checking name uniqueness.
// The pre-check gives the common conflict a fast path; the store's unique
// index still catches a racing duplicate insert and reports the same error.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	taken, err := s.repository.ExistsByName(ctx, product.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check product name %q: %w", product.Name, err)
	}
	if taken {
		return nil, perrors.ErrProductNameTaken
	}

	created, err := s.repository.Create(ctx, store.Product{
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Brand:         product.Brand,
	})
	if err != nil {
		if errors.Is(err, perrors.ErrProductNameTaken) {
			return nil, perrors.ErrProductNameTaken
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(created), nil
}

// Update overwrites every mutable field of an existing product, preserving
// its identifier.
func (s *Service) Update(ctx context.Context, id int64, product ProductCreateDto) (*ProductDto, error) {
	updated, err := s.repository.Update(ctx, store.Product{
		ID:            id,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Brand:         product.Brand,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return toDto(updated), nil
}

func (s *Service) UpdateStock(ctx context.Context, id int64, quantity int32) (*ProductDto, error) {
	updated, err := s.repository.UpdateStock(ctx, id, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock for product with ID %d: %w", id, err)
	}
	return toDto(updated), nil
}

func (s *Service) DeleteByID(ctx context.Context, id int64) error {
	return s.repository.DeleteByID(ctx, id)
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Category:      product.Category,
		StockQuantity: product.StockQuantity,
		Brand:         product.Brand,
	}
}

func toDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toDto(&products[i])
	}
	return dtos
}
