package store

import (
	"context"
	"strings"

	"github.com/mkravets/resource-api/internal/memstore"
	perrors "github.com/mkravets/resource-api/internal/product/errors"
)

// inMemory implements ProductStore on top of a memstore collection.
// It mirrors the PostgreSQL store's semantics, including the unique-name
// guard, and is used by unit tests and local development.
type inMemory struct {
	products *memstore.Store[Product]
}

// NewInMemoryStore creates a new, empty in-memory ProductStore.
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: memstore.New(
			func(p Product) int64 { return p.ID },
			func(p *Product, id int64) { p.ID = id },
		),
	}
}

func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	return s.products.List(), nil
}

func (s *inMemory) FindPage(_ context.Context, limit int32, offset int64) ([]Product, error) {
	all := s.products.List()
	if offset >= int64(len(all)) {
		return []Product{}, nil
	}
	start := int(offset)
	end := start + int(limit)
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	p, ok := s.products.FindByID(id)
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &p, nil
}

func (s *inMemory) FindByCategory(_ context.Context, category string) ([]Product, error) {
	return s.products.Filter(func(p Product) bool {
		return strings.EqualFold(p.Category, category)
	}), nil
}

func (s *inMemory) FindByBrand(_ context.Context, brand string) ([]Product, error) {
	return s.products.Filter(func(p Product) bool {
		return strings.EqualFold(p.Brand, brand)
	}), nil
}

func (s *inMemory) SearchByKeyword(_ context.Context, keyword string) ([]Product, error) {
	kw := strings.ToLower(keyword)
	return s.products.Filter(func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), kw) ||
			strings.Contains(strings.ToLower(p.Description), kw)
	}), nil
}

func (s *inMemory) FindByPriceBetween(_ context.Context, min, max float64) ([]Product, error) {
	return s.products.Filter(func(p Product) bool {
		return p.Price >= min && p.Price <= max
	}), nil
}

func (s *inMemory) FindByPriceAndBrand(_ context.Context, price float64, brand string) ([]Product, error) {
	return s.products.Filter(func(p Product) bool {
		return p.Price == price && strings.EqualFold(p.Brand, brand)
	}), nil
}

func (s *inMemory) FindByStockGreaterThan(_ context.Context, quantity int32) ([]Product, error) {
	return s.products.Filter(func(p Product) bool {
		return p.StockQuantity > quantity
	}), nil
}

func (s *inMemory) ExistsByName(_ context.Context, name string) (bool, error) {
	matches := s.products.Filter(func(p Product) bool {
		return p.Name == name
	})
	return len(matches) > 0, nil
}

// Create inserts the product unless its name is already taken. The guard and
// the insert share one critical section, mirroring the atomicity the database
// gets from its unique index.
func (s *inMemory) Create(_ context.Context, product Product) (*Product, error) {
	created, ok := s.products.CreateGuarded(product, func(p Product) bool {
		return p.Name == product.Name
	})
	if !ok {
		return nil, perrors.ErrProductNameTaken
	}
	return &created, nil
}

func (s *inMemory) Update(_ context.Context, product Product) (*Product, error) {
	updated, ok := s.products.Update(product.ID, func(p *Product) {
		p.Name = product.Name
		p.Description = product.Description
		p.Price = product.Price
		p.Category = product.Category
		p.StockQuantity = product.StockQuantity
		p.Brand = product.Brand
	})
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &updated, nil
}

func (s *inMemory) UpdateStock(_ context.Context, id int64, quantity int32) (*Product, error) {
	updated, ok := s.products.Update(id, func(p *Product) {
		p.StockQuantity = quantity
	})
	if !ok {
		return nil, perrors.ErrProductNotFound
	}
	return &updated, nil
}

func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	if !s.products.DeleteByID(id) {
		return perrors.ErrProductNotFound
	}
	return nil
}
