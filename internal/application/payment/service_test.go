package payment_test

import (
	"context"
	"errors"
	"testing"

	apppayment "github.com/cartella-shop/fulfillment/internal/application/payment"
	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/id"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	session *dompayment.Session
	err     error
	calls   int
}

func (p *fakeProvider) CreateSession(_ context.Context, _ string, _ decimal.Decimal, _ string) (*dompayment.Session, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.session, nil
}

func newPaymentService(t *testing.T, provider *fakeProvider) (*apppayment.Service, *memory.PaymentRepository) {
	t.Helper()
	repo := memory.NewPaymentRepository()
	return apppayment.NewService(repo, provider, id.NewUUIDGenerator()), repo
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a pending payment with the provider session id", func(t *testing.T) {
		provider := &fakeProvider{session: &dompayment.Session{ID: "sess_1", RedirectURL: "https://pay.example/s1"}}
		svc, repo := newPaymentService(t, provider)

		result, err := svc.CreateSession(ctx, apppayment.CreateSessionInput{
			UserID:   "u1",
			Amount:   decimal.RequireFromString("20.00"),
			Currency: "usd",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://pay.example/s1", result.RedirectURL)
		assert.Equal(t, dompayment.StatusPending, result.Payment.Status)
		assert.Equal(t, "sess_1", result.Payment.SessionID)

		stored, err := repo.FindBySessionID(ctx, "sess_1")
		require.NoError(t, err)
		assert.Equal(t, result.Payment.ID, stored.ID)
	})

	t.Run("provider failure persists nothing", func(t *testing.T) {
		provider := &fakeProvider{err: errors.New("upstream 503")}
		svc, repo := newPaymentService(t, provider)

		_, err := svc.CreateSession(ctx, apppayment.CreateSessionInput{
			UserID:   "u1",
			Amount:   decimal.RequireFromString("20.00"),
			Currency: "usd",
		})
		require.ErrorIs(t, err, dompayment.ErrProvider)

		list, err := repo.ListByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		provider := &fakeProvider{session: &dompayment.Session{ID: "sess_1"}}
		svc, _ := newPaymentService(t, provider)

		_, err := svc.CreateSession(ctx, apppayment.CreateSessionInput{
			UserID:   "u1",
			Amount:   decimal.Zero,
			Currency: "usd",
		})
		assert.ErrorIs(t, err, dompayment.ErrInvalidAmount)
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{session: &dompayment.Session{ID: "sess_1"}}
	svc, _ := newPaymentService(t, provider)

	result, err := svc.CreateSession(ctx, apppayment.CreateSessionInput{
		UserID:   "u1",
		Amount:   decimal.RequireFromString("20.00"),
		Currency: "usd",
	})
	require.NoError(t, err)

	p, err := svc.UpdateStatus(ctx, result.Payment.ID, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, dompayment.StatusCompleted, p.Status)

	// Provider callbacks post lowercase status strings.
	p, err = svc.UpdateStatus(ctx, result.Payment.ID, "refunded")
	require.NoError(t, err)
	assert.Equal(t, dompayment.StatusRefunded, p.Status)

	_, err = svc.UpdateStatus(ctx, result.Payment.ID, "PAID")
	assert.ErrorIs(t, err, dompayment.ErrUnknownStatus)

	_, err = svc.UpdateStatus(ctx, "ghost", "COMPLETED")
	assert.ErrorIs(t, err, dompayment.ErrNotFound)
}

func TestUpdateStatusBySession(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{session: &dompayment.Session{ID: "sess_1"}}
	svc, _ := newPaymentService(t, provider)

	_, err := svc.CreateSession(ctx, apppayment.CreateSessionInput{
		UserID:   "u1",
		Amount:   decimal.RequireFromString("20.00"),
		Currency: "usd",
	})
	require.NoError(t, err)

	p, err := svc.UpdateStatusBySession(ctx, "sess_1", "FAILED")
	require.NoError(t, err)
	assert.Equal(t, dompayment.StatusFailed, p.Status)

	_, err = svc.UpdateStatusBySession(ctx, "sess_unknown", "FAILED")
	assert.ErrorIs(t, err, dompayment.ErrNotFound)
}

func TestAttachOrder(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{session: &dompayment.Session{ID: "sess_1"}}
	svc, _ := newPaymentService(t, provider)

	result, err := svc.CreateSession(ctx, apppayment.CreateSessionInput{
		UserID:   "u1",
		Amount:   decimal.RequireFromString("20.00"),
		Currency: "usd",
	})
	require.NoError(t, err)

	p, err := svc.AttachOrder(ctx, result.Payment.ID, "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", p.OrderID)

	found, err := svc.FindByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
}
