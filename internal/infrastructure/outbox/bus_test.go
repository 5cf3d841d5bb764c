package outbox

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domoutbox "github.com/cartella-shop/fulfillment/internal/domain/outbox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	got := make(chan domoutbox.Event, 1)
	bus.Subscribe("order.placed", func(_ context.Context, e domoutbox.Event) error {
		got <- e
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "order.placed"}))

	select {
	case e := <-got:
		assert.Equal(t, "order.placed", e.EventName())
	case <-time.After(2 * time.Second):
		t.Fatal("handler was never invoked")
	}
}

func TestFailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	var healthy atomic.Int32
	bus.Subscribe("order.placed", func(context.Context, domoutbox.Event) error {
		return errors.New("boom")
	})
	bus.Subscribe("order.placed", func(context.Context, domoutbox.Event) error {
		panic("much worse")
	})
	done := make(chan struct{}, 2)
	bus.Subscribe("order.placed", func(context.Context, domoutbox.Event) error {
		healthy.Add(1)
		done <- struct{}{}
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "order.placed"}))
	require.NoError(t, bus.Publish(context.Background(), testEvent{name: "order.placed"}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("healthy handler starved by failing siblings")
		}
	}
	assert.Equal(t, int32(2), healthy.Load())
}

func TestEventWithoutSubscriberIsDropped(t *testing.T) {
	bus := NewBus(zap.NewNop())
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	assert.NoError(t, bus.Publish(context.Background(), testEvent{name: "nobody.cares"}))
}

func TestPublishAfterContextCancel(t *testing.T) {
	bus := NewBus(zap.NewNop())
	// Not started: the queue fills and Publish must honor ctx cancellation
	// instead of blocking forever.
	for i := 0; i < 1024; i++ {
		require.NoError(t, bus.Publish(context.Background(), testEvent{name: "filler"}))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := bus.Publish(ctx, testEvent{name: "overflow"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
