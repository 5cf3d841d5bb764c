package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/cartella-shop/fulfillment/internal/domain/order"
	domproduct "github.com/cartella-shop/fulfillment/internal/domain/product"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order

	// products is consulted only for the vendor view; orders reference
	// products by id, never by pointer.
	products *ProductRepository
}

func NewOrderRepository(products *ProductRepository) *OrderRepository {
	return &OrderRepository{
		orders:   make(map[string]*domain.Order),
		products: products,
	}
}

func (r *OrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	r.orders[o.ID] = o.Clone()
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	sortByCreation(out)
	return out, nil
}

func (r *OrderRepository) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Order
	for _, o := range r.orders {
		for _, l := range o.Lines {
			p, err := r.products.FindByID(ctx, l.ProductID)
			if err == domproduct.ErrNotFound {
				continue
			}
			if err != nil {
				return nil, err
			}
			if p.VendorID == vendorID {
				out = append(out, o.Clone())
				break
			}
		}
	}
	sortByCreation(out)
	return out, nil
}

func sortByCreation(orders []*domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}
