package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("payment: not found")
	ErrInvalidAmount   = errors.New("payment: amount must be greater than zero")
	ErrUnknownStatus   = errors.New("payment: unknown status")
	ErrSessionRequired = errors.New("payment: provider session id is required")
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus validates a provider callback status string, matching
// case-insensitively against the known members.
func ParseStatus(s string) (Status, error) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch normalized {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded, StatusCancelled:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// Payment tracks an external payment session tied to a user and, once
// checkout completes, to exactly one order. Its status is kept in lockstep
// with the order's status by the checkout orchestrator.
type Payment struct {
	ID        string
	UserID    string
	OrderID   string // empty until attached to an order
	Amount    decimal.Decimal
	Currency  string
	SessionID string // opaque id assigned by the external provider, unique
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func New(id, userID, sessionID string, amount decimal.Decimal, currency string) (*Payment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if sessionID == "" {
		return nil, ErrSessionRequired
	}
	now := time.Now().UTC()
	return &Payment{
		ID:        id,
		UserID:    userID,
		Amount:    amount,
		Currency:  currency,
		SessionID: sessionID,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetStatus is a direct overwrite; the orchestrator is responsible for only
// invoking legal cascades.
func (p *Payment) SetStatus(s Status) {
	p.Status = s
	p.UpdatedAt = time.Now().UTC()
}

func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

// CompletedEvent is emitted when a payment reaches COMPLETED.
type CompletedEvent struct {
	PaymentID  string
	UserID     string
	OrderID    string
	Amount     decimal.Decimal
	Currency   string
	OccurredAt time.Time
}

func (CompletedEvent) EventName() string { return "payment.completed" }

func NewCompletedEvent(p *Payment) CompletedEvent {
	return CompletedEvent{
		PaymentID:  p.ID,
		UserID:     p.UserID,
		OrderID:    p.OrderID,
		Amount:     p.Amount,
		Currency:   p.Currency,
		OccurredAt: time.Now().UTC(),
	}
}
