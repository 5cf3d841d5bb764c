package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrProvider wraps any upstream failure while opening a checkout session.
var ErrProvider = errors.New("payment: provider error")

// Session is what the external provider hands back: an opaque id the end user
// completes payment against, out-of-band.
type Session struct {
	ID          string
	RedirectURL string
}

// Provider opens checkout sessions with the external payment service. Calls
// must carry a bounded timeout; they run outside the order transaction.
type Provider interface {
	CreateSession(ctx context.Context, userID string, amount decimal.Decimal, currency string) (*Session, error)
}
