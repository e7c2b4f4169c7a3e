// Package store provides an interface for product storage operations.
package store

import "context"

// Product represents a product row as stored.
type Product struct {
	ID            int64
	Name          string
	Description   string
	Price         float64
	Category      string
	StockQuantity int32
	Brand         string
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different
// implementations (e.g., in-memory, database).
//
// Lookup methods return ErrProductNotFound when no product matches a single
// identifier; collection methods return an empty slice when nothing matches.
type ProductStore interface {
	// FindAll returns all products in a stable order.
	FindAll(ctx context.Context) ([]Product, error)

	// FindPage returns one page of products. The offset is 64-bit so large
	// page and limit combinations never wrap negative.
	FindPage(ctx context.Context, limit int32, offset int64) ([]Product, error)

	// FindByID retrieves a single product by its unique identifier.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// FindByCategory returns products whose category equals the given value,
	// case-insensitively.
	FindByCategory(ctx context.Context, category string) ([]Product, error)

	// FindByBrand returns products whose brand equals the given value,
	// case-insensitively.
	FindByBrand(ctx context.Context, brand string) ([]Product, error)

	// SearchByKeyword returns products whose name or description contains the
	// keyword, case-insensitively.
	SearchByKeyword(ctx context.Context, keyword string) ([]Product, error)

	// FindByPriceBetween returns products priced within [min, max], bounds
	// inclusive.
	FindByPriceBetween(ctx context.Context, min, max float64) ([]Product, error)

	// FindByPriceAndBrand returns products matching the exact price and the
	// brand, case-insensitively on the brand.
	FindByPriceAndBrand(ctx context.Context, price float64, brand string) ([]Product, error)

	// FindByStockGreaterThan returns products with stock strictly above the
	// given quantity.
	FindByStockGreaterThan(ctx context.Context, quantity int32) ([]Product, error)

	// ExistsByName reports whether a product with exactly this name exists.
	// The match is case-sensitive.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Create inserts a new product; the store assigns the identifier.
	// Returns ErrProductNameTaken when the name is already in use.
	Create(ctx context.Context, p Product) (*Product, error)

	// Update overwrites every mutable field of the product with the given ID.
	Update(ctx context.Context, p Product) (*Product, error)

	// UpdateStock overwrites only the stock quantity.
	UpdateStock(ctx context.Context, id int64, quantity int32) (*Product, error)

	// DeleteByID removes a product by its ID.
	DeleteByID(ctx context.Context, id int64) error
}
