package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/cartella-shop/fulfillment/internal/domain/address"
)

type AddressRepository struct {
	mu        sync.RWMutex
	addresses map[string]*domain.Address
}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{
		addresses: make(map[string]*domain.Address),
	}
}

func (r *AddressRepository) Insert(ctx context.Context, addr *domain.Address) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	r.addresses[addr.ID] = addr.Clone()
	return nil
}

func (r *AddressRepository) Update(ctx context.Context, addr *domain.Address) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[addr.ID]; !ok {
		return domain.ErrNotFound
	}
	r.addresses[addr.ID] = addr.Clone()
	return nil
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.addresses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.addresses, id)
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*domain.Address, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	addr, ok := r.addresses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return addr.Clone(), nil
}

func (r *AddressRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Address, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Address
	for _, addr := range r.addresses {
		if addr.UserID == userID {
			out = append(out, addr.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *AddressRepository) FindDefault(ctx context.Context, userID string) (*domain.Address, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, addr := range r.addresses {
		if addr.UserID == userID && addr.IsDefault {
			return addr.Clone(), nil
		}
	}
	return nil, domain.ErrNoDefault
}

// SetDefault flips the flag for the whole user under one lock, the in-memory
// equivalent of a single conditional update.
func (r *AddressRepository) SetDefault(ctx context.Context, userID, addressID string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.addresses[addressID]
	if !ok || target.UserID != userID {
		return domain.ErrNotFound
	}

	for _, addr := range r.addresses {
		if addr.UserID == userID {
			addr.IsDefault = addr.ID == addressID
		}
	}
	return nil
}
