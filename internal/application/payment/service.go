package payment

import (
	"context"
	"fmt"

	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
	"github.com/cartella-shop/fulfillment/internal/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type IDGenerator interface {
	NewID() string
}

// Service tracks payment sessions against the external provider. It never
// re-validates business rules on status updates; the checkout orchestrator is
// responsible for only invoking legal cascades.
type Service struct {
	payments    dompayment.Repository
	provider    dompayment.Provider
	idGenerator IDGenerator
}

func NewService(payments dompayment.Repository, provider dompayment.Provider, idGen IDGenerator) *Service {
	return &Service{
		payments:    payments,
		provider:    provider,
		idGenerator: idGen,
	}
}

type CreateSessionInput struct {
	UserID   string
	OrderID  string // optional; attached when the session pays for an order
	Amount   decimal.Decimal
	Currency string
}

type CreateSessionResult struct {
	Payment     *dompayment.Payment
	RedirectURL string
}

// CreateSession opens a session with the external provider and persists a
// PENDING payment row carrying the provider's opaque session id. The provider
// call runs before the local write with a bounded timeout; an upstream failure
// persists nothing.
func (s *Service) CreateSession(ctx context.Context, input CreateSessionInput) (*CreateSessionResult, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "payment_service"))
	logger.Info("create_session_start",
		zap.String("user_id", input.UserID),
		zap.String("amount", input.Amount.String()),
		zap.String("currency", input.Currency),
	)

	session, err := s.provider.CreateSession(ctx, input.UserID, input.Amount, input.Currency)
	if err != nil {
		logger.Error("provider_session_failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", dompayment.ErrProvider, err)
	}

	p, err := dompayment.New(s.idGenerator.NewID(), input.UserID, session.ID, input.Amount, input.Currency)
	if err != nil {
		return nil, err
	}
	p.OrderID = input.OrderID

	if err := s.payments.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("payment: insert: %w", err)
	}

	logger.Info("create_session_success",
		zap.String("payment_id", p.ID),
		zap.String("session_id", p.SessionID),
	)
	return &CreateSessionResult{Payment: p, RedirectURL: session.RedirectURL}, nil
}

// UpdateStatus overwrites the payment status, addressed by payment id. Used by
// external-provider callbacks and by the checkout cascades.
func (s *Service) UpdateStatus(ctx context.Context, paymentID string, status string) (*dompayment.Payment, error) {
	parsed, err := dompayment.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	p.SetStatus(parsed)
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("payment: update: %w", err)
	}
	return p, nil
}

// UpdateStatusBySession is UpdateStatus addressed by the provider session id.
func (s *Service) UpdateStatusBySession(ctx context.Context, sessionID string, status string) (*dompayment.Payment, error) {
	parsed, err := dompayment.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	p, err := s.payments.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	p.SetStatus(parsed)
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("payment: update: %w", err)
	}
	return p, nil
}

// AttachOrder links a payment to the order it pays for.
func (s *Service) AttachOrder(ctx context.Context, paymentID, orderID string) (*dompayment.Payment, error) {
	p, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	p.OrderID = orderID
	if err := s.payments.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("payment: update: %w", err)
	}
	return p, nil
}

func (s *Service) FindByOrder(ctx context.Context, orderID string) (*dompayment.Payment, error) {
	return s.payments.FindByOrderID(ctx, orderID)
}

func (s *Service) Get(ctx context.Context, paymentID string) (*dompayment.Payment, error) {
	return s.payments.FindByID(ctx, paymentID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*dompayment.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}
