package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Status
	}{
		{"PENDING", StatusPending},
		{"pending", StatusPending},
		{"Paid", StatusPaid},
		{" shipped ", StatusShipped},
		{"DELIVERED", StatusDelivered},
		{"cancelled", StatusCancelled},
	} {
		got, err := ParseStatus(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseStatus("RETURNED")
	assert.ErrorIs(t, err, ErrUnknownStatus)
	_, err = ParseStatus("")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestNewComputesTotal(t *testing.T) {
	lines := []*Line{
		{ID: "l1", ProductID: "p1", Quantity: 2, PriceAtTimeOfOrder: decimal.RequireFromString("7.50")},
		{ID: "l2", ProductID: "p2", Quantity: 1, PriceAtTimeOfOrder: decimal.RequireFromString("5.00")},
	}

	o, err := New("o1", "u1", "a1", lines)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, o.Status)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("20.00")), "got %s", o.TotalAmount)
	assert.Equal(t, "o1", o.Lines[0].OrderID, "lines adopt the order id")
}

func TestNewRequiresLines(t *testing.T) {
	_, err := New("o1", "u1", "a1", nil)
	assert.ErrorIs(t, err, ErrNoLines)
}

func TestCancelOnlyFromPending(t *testing.T) {
	for _, s := range []Status{StatusPaid, StatusShipped, StatusDelivered, StatusCancelled} {
		o := NewSnapshot("o1", "u1", "a1", decimal.NewFromInt(10))
		o.Status = s

		err := o.Cancel()
		require.ErrorIs(t, err, ErrInvalidTransition, "from %s", s)

		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, s, transitionErr.Current)
	}

	o := NewSnapshot("o1", "u1", "a1", decimal.NewFromInt(10))
	require.NoError(t, o.Cancel())
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestSetStatusRejectsTerminal(t *testing.T) {
	o := NewSnapshot("o1", "u1", "a1", decimal.NewFromInt(10))
	require.NoError(t, o.Cancel())

	err := o.SetStatus(StatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusCancelled, o.Status)
}
