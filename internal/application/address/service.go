package address

import (
	"context"
	"errors"
	"fmt"

	domaddress "github.com/cartella-shop/fulfillment/internal/domain/address"
	"github.com/cartella-shop/fulfillment/internal/pkg/logging"
	"go.uber.org/zap"
)

type IDGenerator interface {
	NewID() string
}

type Service struct {
	addresses   domaddress.Repository
	idGenerator IDGenerator
}

func NewService(addresses domaddress.Repository, idGen IDGenerator) *Service {
	return &Service{
		addresses:   addresses,
		idGenerator: idGen,
	}
}

type CreateInput struct {
	UserID     string
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
}

// Create persists a new address. A user's first address is forced default
// regardless of the request; otherwise the flag follows the caller and, when
// set, the previous default is cleared atomically.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domaddress.Address, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "address_service"))

	existing, err := s.addresses.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("address: list: %w", err)
	}

	makeDefault := input.IsDefault || len(existing) == 0

	addr, err := domaddress.New(
		s.idGenerator.NewID(),
		input.UserID,
		input.Street,
		input.City,
		input.State,
		input.PostalCode,
		input.Country,
		makeDefault && len(existing) == 0,
	)
	if err != nil {
		return nil, err
	}

	if err := s.addresses.Insert(ctx, addr); err != nil {
		return nil, fmt.Errorf("address: insert: %w", err)
	}

	// Reassigning the default away from an existing address goes through the
	// atomic flip so there is no window with two defaults.
	if makeDefault && len(existing) > 0 {
		if err := s.addresses.SetDefault(ctx, input.UserID, addr.ID); err != nil {
			return nil, fmt.Errorf("address: set default: %w", err)
		}
		addr.IsDefault = true
	}

	logger.Info("address_created",
		zap.String("user_id", input.UserID),
		zap.String("address_id", addr.ID),
		zap.Bool("is_default", addr.IsDefault),
	)
	return addr, nil
}

type UpdateInput struct {
	Street     *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

// Update mutates field-by-field; unspecified fields stay untouched.
func (s *Service) Update(ctx context.Context, addressID string, input UpdateInput) (*domaddress.Address, error) {
	addr, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	addr.Update(input.Street, input.City, input.State, input.PostalCode, input.Country)

	if err := s.addresses.Update(ctx, addr); err != nil {
		return nil, fmt.Errorf("address: update: %w", err)
	}
	return addr, nil
}

// SetDefault makes the given address the user's single default.
func (s *Service) SetDefault(ctx context.Context, addressID string) (*domaddress.Address, error) {
	addr, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	if err := s.addresses.SetDefault(ctx, addr.UserID, addr.ID); err != nil {
		return nil, fmt.Errorf("address: set default: %w", err)
	}
	addr.IsDefault = true
	return addr, nil
}

// Delete removes the address. Deleting the default does not promote another
// address; the user must set a new default before the next checkout.
func (s *Service) Delete(ctx context.Context, addressID string) error {
	err := s.addresses.Delete(ctx, addressID)
	if errors.Is(err, domaddress.ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("address: delete: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, addressID string) (*domaddress.Address, error) {
	return s.addresses.FindByID(ctx, addressID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*domaddress.Address, error) {
	return s.addresses.ListByUser(ctx, userID)
}
