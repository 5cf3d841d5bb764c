package address

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("address: not found")
	ErrMissingField = errors.New("address: street, city, postal code and country are required")
	ErrNoDefault    = errors.New("address: no default address set")
	ErrUserRequired = errors.New("address: user id is required")
)

type Address struct {
	ID         string
	UserID     string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func New(id, userID, street, city, state, postalCode, country string, isDefault bool) (*Address, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if street == "" || city == "" || postalCode == "" || country == "" {
		return nil, ErrMissingField
	}
	now := time.Now().UTC()
	return &Address{
		ID:         id,
		UserID:     userID,
		Street:     street,
		City:       city,
		State:      state,
		PostalCode: postalCode,
		Country:    country,
		IsDefault:  isDefault,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Update applies partial field updates; nil pointers leave the field untouched.
func (a *Address) Update(street, city, state, postalCode, country *string) {
	if street != nil {
		a.Street = *street
	}
	if city != nil {
		a.City = *city
	}
	if state != nil {
		a.State = *state
	}
	if postalCode != nil {
		a.PostalCode = *postalCode
	}
	if country != nil {
		a.Country = *country
	}
	a.UpdatedAt = time.Now().UTC()
}

func (a *Address) Clone() *Address {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}
