package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("order: not found")
	ErrUnknownStatus = errors.New("order: unknown status")
	ErrNoLines       = errors.New("order: at least one line is required")
)

// InvalidTransitionError names the status that blocked the transition.
type InvalidTransitionError struct {
	Current Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order: invalid transition, order is already %s", e.Current)
}

var ErrInvalidTransition = errors.New("order: invalid transition")

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// Order is an immutable-once-placed snapshot of purchased lines, the total at
// purchase time and the shipping address reference. TotalAmount is computed
// once at creation and never recomputed.
type Order struct {
	ID          string
	UserID      string
	AddressID   string
	TotalAmount decimal.Decimal
	Status      Status
	Lines       []*Line
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Line captures quantity and the unit price at the moment the order was
// placed. It is never mutated afterwards.
type Line struct {
	ID                 string
	OrderID            string
	ProductID          string
	Quantity           int
	PriceAtTimeOfOrder decimal.Decimal
}

// New builds a pending order from snapshot lines. The total is the sum of
// price-at-time-of-order times quantity over all lines.
func New(id, userID, addressID string, lines []*Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	total := decimal.Zero
	for _, l := range lines {
		l.OrderID = id
		total = total.Add(l.PriceAtTimeOfOrder.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	now := time.Now().UTC()
	return &Order{
		ID:          id,
		UserID:      userID,
		AddressID:   addressID,
		TotalAmount: total,
		Status:      StatusPending,
		Lines:       lines,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewSnapshot builds a pending order that records only the total, without
// lines. Kept for the direct-address checkout flow.
func NewSnapshot(id, userID, addressID string, total decimal.Decimal) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:          id,
		UserID:      userID,
		AddressID:   addressID,
		TotalAmount: total,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetStatus applies an already-parsed status. Transitions out of CANCELLED are
// rejected.
func (o *Order) SetStatus(s Status) error {
	if o.Status.Terminal() {
		return &InvalidTransitionError{Current: o.Status}
	}
	o.Status = s
	o.touch()
	return nil
}

// Cancel is only legal while the order is still PENDING.
func (o *Order) Cancel() error {
	if o.Status != StatusPending {
		return &InvalidTransitionError{Current: o.Status}
	}
	o.Status = StatusCancelled
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.UpdatedAt = time.Now().UTC()
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = make([]*Line, len(o.Lines))
	for i, l := range o.Lines {
		lc := *l
		clone.Lines[i] = &lc
	}
	return &clone
}
