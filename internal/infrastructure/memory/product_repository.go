package memory

import (
	"context"
	"sync"

	domain "github.com/cartella-shop/fulfillment/internal/domain/product"
)

type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
	}
}

// Seed loads a catalog product; this core treats the catalog as external.
func (r *ProductRepository) Seed(p *domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p.Clone()
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p.Clone(), nil
}

// Reserve performs the check and the decrement under one lock, mirroring the
// conditional update a relational store would run.
func (r *ProductRepository) Reserve(ctx context.Context, id string, quantity int) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	return p.Reserve(quantity)
}

func (r *ProductRepository) Release(ctx context.Context, id string, quantity int) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	return p.Release(quantity)
}
