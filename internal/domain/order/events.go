package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlacedEvent is emitted after an order has been durably recorded.
type PlacedEvent struct {
	OrderID     string
	UserID      string
	TotalAmount decimal.Decimal
	LineCount   int
	OccurredAt  time.Time
}

func (PlacedEvent) EventName() string { return "order.placed" }

func NewPlacedEvent(o *Order) PlacedEvent {
	return PlacedEvent{
		OrderID:     o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		LineCount:   len(o.Lines),
		OccurredAt:  time.Now().UTC(),
	}
}

// StatusChangedEvent is emitted on every externally visible status transition.
type StatusChangedEvent struct {
	OrderID    string
	UserID     string
	Status     Status
	OccurredAt time.Time
}

func (StatusChangedEvent) EventName() string { return "order.status_changed" }

func NewStatusChangedEvent(o *Order) StatusChangedEvent {
	return StatusChangedEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		Status:     o.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// CancelledEvent is emitted after a successful cancellation, once stock has
// been released and the linked payment voided.
type CancelledEvent struct {
	OrderID    string
	UserID     string
	OccurredAt time.Time
}

func (CancelledEvent) EventName() string { return "order.cancelled" }

func NewCancelledEvent(o *Order) CancelledEvent {
	return CancelledEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		OccurredAt: time.Now().UTC(),
	}
}
