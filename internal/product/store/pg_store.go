package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	perrors "github.com/mkravets/resource-api/internal/product/errors"
)

const uniqueViolation = "23505"

const productColumns = `id, name, description, price, category, stock_quantity, brand`

const (
	findAllQuery = `SELECT ` + productColumns + ` FROM products ORDER BY id`

	findPageQuery = `SELECT ` + productColumns + ` FROM products ORDER BY id LIMIT $1 OFFSET $2`

	findByIDQuery = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	findByCategoryQuery = `SELECT ` + productColumns + ` FROM products WHERE LOWER(category) = LOWER($1) ORDER BY id`

	findByBrandQuery = `SELECT ` + productColumns + ` FROM products WHERE LOWER(brand) = LOWER($1) ORDER BY id`

	searchByKeywordQuery = `SELECT ` + productColumns + ` FROM products
		WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%' ORDER BY id`

	findByPriceBetweenQuery = `SELECT ` + productColumns + ` FROM products WHERE price >= $1 AND price <= $2 ORDER BY id`

	findByPriceAndBrandQuery = `SELECT ` + productColumns + ` FROM products
		WHERE price = $1 AND LOWER(brand) = LOWER($2) ORDER BY id`

	findByStockGreaterThanQuery = `SELECT ` + productColumns + ` FROM products WHERE stock_quantity > $1 ORDER BY id`

	existsByNameQuery = `SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)`

	createQuery = `INSERT INTO products (name, description, price, category, stock_quantity, brand)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + productColumns

	updateQuery = `UPDATE products
		SET name = $2, description = $3, price = $4, category = $5, stock_quantity = $6, brand = $7
		WHERE id = $1 RETURNING ` + productColumns

	updateStockQuery = `UPDATE products SET stock_quantity = $2 WHERE id = $1 RETURNING ` + productColumns

	deleteQuery = `DELETE FROM products WHERE id = $1`
)

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	return p.queryList(ctx, findAllQuery)
}

func (p *PgStore) FindPage(ctx context.Context, limit int32, offset int64) ([]Product, error) {
	return p.queryList(ctx, findPageQuery, limit, offset)
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	product, err := p.queryOne(ctx, findByIDQuery, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

func (p *PgStore) FindByCategory(ctx context.Context, category string) ([]Product, error) {
	return p.queryList(ctx, findByCategoryQuery, category)
}

func (p *PgStore) FindByBrand(ctx context.Context, brand string) ([]Product, error) {
	return p.queryList(ctx, findByBrandQuery, brand)
}

func (p *PgStore) SearchByKeyword(ctx context.Context, keyword string) ([]Product, error) {
	return p.queryList(ctx, searchByKeywordQuery, keyword)
}

func (p *PgStore) FindByPriceBetween(ctx context.Context, min, max float64) ([]Product, error) {
	return p.queryList(ctx, findByPriceBetweenQuery, min, max)
}

func (p *PgStore) FindByPriceAndBrand(ctx context.Context, price float64, brand string) ([]Product, error) {
	return p.queryList(ctx, findByPriceAndBrandQuery, price, brand)
}

func (p *PgStore) FindByStockGreaterThan(ctx context.Context, quantity int32) ([]Product, error) {
	return p.queryList(ctx, findByStockGreaterThanQuery, quantity)
}

// ExistsByName reports whether a product with exactly this name exists.
func (p *PgStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := p.db.QueryRow(ctx, existsByNameQuery, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product name: %w", err)
	}
	return exists, nil
}

// Create inserts a new product and returns it with its assigned identifier.
// The unique index on name is the authoritative uniqueness guard: a
// constraint violation maps to ErrProductNameTaken, so a racing duplicate
// insert still surfaces as a conflict.
func (p *PgStore) Create(ctx context.Context, product Product) (*Product, error) {
	created, err := p.queryOne(ctx, createQuery,
		product.Name, product.Description, product.Price, product.Category, product.StockQuantity, product.Brand)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, perrors.ErrProductNameTaken
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return created, nil
}

// Update overwrites every mutable field of an existing product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) Update(ctx context.Context, product Product) (*Product, error) {
	updated, err := p.queryOne(ctx, updateQuery,
		product.ID, product.Name, product.Description, product.Price, product.Category, product.StockQuantity, product.Brand)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return updated, nil
}

// UpdateStock overwrites only the stock quantity of a product.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) UpdateStock(ctx context.Context, id int64, quantity int32) (*Product, error) {
	updated, err := p.queryOne(ctx, updateStockQuery, id, quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product stock: %w", err)
	}
	return updated, nil
}

// DeleteByID removes a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) DeleteByID(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, deleteQuery, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrProductNotFound
	}
	return nil
}

func (p *PgStore) queryOne(ctx context.Context, query string, args ...any) (*Product, error) {
	row := p.db.QueryRow(ctx, query, args...)
	var product Product
	if err := scanProduct(row, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *PgStore) queryList(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	list := make([]Product, 0)
	for rows.Next() {
		var product Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		list = append(list, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return list, nil
}

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.StockQuantity, &p.Brand)
}
