package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domaddress "github.com/cartella-shop/fulfillment/internal/domain/address"
	domcart "github.com/cartella-shop/fulfillment/internal/domain/cart"
	domorder "github.com/cartella-shop/fulfillment/internal/domain/order"
	domoutbox "github.com/cartella-shop/fulfillment/internal/domain/outbox"
	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
	domproduct "github.com/cartella-shop/fulfillment/internal/domain/product"
	"github.com/cartella-shop/fulfillment/internal/pkg/cache"
	"github.com/cartella-shop/fulfillment/internal/pkg/logging"
	"github.com/cartella-shop/fulfillment/internal/pkg/metrics"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	tracerName     = "checkout"
	publishTimeout = 300 * time.Millisecond
	vendorViewTTL  = 30 * time.Second

	useCaseConvertCart  = "checkout.convert_cart"
	useCasePlaceOrder   = "checkout.place_order"
	useCaseUpdateStatus = "checkout.update_status"
	useCaseCancelOrder  = "checkout.cancel_order"
)

// Service is the checkout orchestrator: the only component allowed to mutate
// more than one aggregate in a single operation. Every multi-aggregate write
// runs through the TxManager.
type Service struct {
	tx          TxManager
	carts       domcart.Repository
	products    domproduct.Repository
	addresses   domaddress.Repository
	orders      domorder.Repository
	payments    dompayment.Repository
	publisher   domoutbox.Publisher
	idGenerator IDGenerator
	vendorCache cache.Cache
	tracer      trace.Tracer
}

func NewService(
	tx TxManager,
	carts domcart.Repository,
	products domproduct.Repository,
	addresses domaddress.Repository,
	orders domorder.Repository,
	payments dompayment.Repository,
	publisher domoutbox.Publisher,
	idGen IDGenerator,
	vendorCache cache.Cache,
) *Service {
	if vendorCache == nil {
		vendorCache = cache.NewNopCache()
	}
	return &Service{
		tx:          tx,
		carts:       carts,
		products:    products,
		addresses:   addresses,
		orders:      orders,
		payments:    payments,
		publisher:   publisher,
		idGenerator: idGen,
		vendorCache: vendorCache,
		tracer:      otel.Tracer(tracerName),
	}
}

// ConvertCartToOrder is the canonical checkout path. It requires a non-empty
// cart and a default address, snapshots every cart line at the product's
// current price, reserves stock line by line and clears the cart — all in one
// atomic unit. The order-placed notification is published after commit and is
// best-effort.
func (s *Service) ConvertCartToOrder(ctx context.Context, userID string) (_ *domorder.Order, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "checkout_service"))
	logger.Info("convert_cart_start", zap.String("user_id", userID))

	ctx, span := s.tracer.Start(ctx, "UC.ConvertCartToOrder",
		trace.WithAttributes(attribute.String("user_id", userID)),
	)
	defer s.finish(span, useCaseConvertCart, time.Now(), &err)

	var placed *domorder.Order
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// The cart is read inside the transaction boundary: a concurrent
		// conversion of the same cart serializes here, and the loser sees the
		// already-cleared cart instead of placing a second order from a stale
		// snapshot.
		c, err := s.carts.FindByUser(ctx, userID)
		if errors.Is(err, domcart.ErrNotFound) {
			return domcart.ErrEmpty
		}
		if err != nil {
			return fmt.Errorf("checkout: load cart: %w", err)
		}
		if c.IsEmpty() {
			return domcart.ErrEmpty
		}

		// The default address is never inferred; checkout without one is an
		// explicit failure.
		addr, err := s.addresses.FindDefault(ctx, userID)
		if err != nil {
			return err
		}

		orderID := s.idGenerator.NewID()

		// First pass: check every line and freeze prices, so that nothing is
		// reserved when any line cannot be satisfied.
		lines := make([]*domorder.Line, 0, len(c.Lines))
		for _, cl := range c.Lines {
			p, err := s.products.FindByID(ctx, cl.ProductID)
			if err != nil {
				return err
			}
			if cl.Quantity > p.StockQuantity {
				return &domproduct.InsufficientStockError{ProductName: p.Name, Available: p.StockQuantity}
			}
			lines = append(lines, &domorder.Line{
				ID:                 s.idGenerator.NewID(),
				OrderID:            orderID,
				ProductID:          cl.ProductID,
				Quantity:           cl.Quantity,
				PriceAtTimeOfOrder: p.Price,
			})
		}

		// Second pass: reserve. The repository applies a conditional
		// decrement, so a concurrent checkout cannot slip past the check; a
		// failure here rolls back every earlier reservation with the
		// transaction.
		for _, l := range lines {
			if err := s.products.Reserve(ctx, l.ProductID, l.Quantity); err != nil {
				return err
			}
		}

		o, err := domorder.New(orderID, userID, addr.ID, lines)
		if err != nil {
			return err
		}
		if err := s.orders.Insert(ctx, o); err != nil {
			return fmt.Errorf("checkout: insert order: %w", err)
		}
		if err := s.carts.Clear(ctx, userID); err != nil {
			return fmt.Errorf("checkout: clear cart: %w", err)
		}
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("order.id", placed.ID),
		attribute.String("order.total", placed.TotalAmount.String()),
	)
	s.publish(ctx, domorder.NewPlacedEvent(placed))

	logger.Info("convert_cart_success",
		zap.String("order_id", placed.ID),
		zap.String("total", placed.TotalAmount.String()),
		zap.Int("lines", len(placed.Lines)),
	)
	return placed, nil
}

// PlaceOrder creates an order snapshot from the cart's current lines and
// total against an explicitly supplied address, without creating order lines
// or reserving stock.
//
// Deprecated: retained for the direct-address checkout flow; ConvertCartToOrder
// is the canonical path.
func (s *Service) PlaceOrder(ctx context.Context, userID, addressID string) (_ *domorder.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "UC.PlaceOrder",
		trace.WithAttributes(attribute.String("user_id", userID)),
	)
	defer s.finish(span, useCasePlaceOrder, time.Now(), &err)

	c, err := s.carts.FindByUser(ctx, userID)
	if errors.Is(err, domcart.ErrNotFound) {
		return nil, domcart.ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("checkout: load cart: %w", err)
	}
	if c.IsEmpty() {
		return nil, domcart.ErrEmpty
	}

	addr, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, cl := range c.Lines {
		p, err := s.products.FindByID(ctx, cl.ProductID)
		if err != nil {
			return nil, err
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(cl.Quantity))))
	}

	o := domorder.NewSnapshot(s.idGenerator.NewID(), userID, addr.ID, total)
	if err := s.orders.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("checkout: insert order: %w", err)
	}
	return o, nil
}

// UpdateOrderStatus parses the status case-insensitively and applies it. A
// transition to DELIVERED forces the linked payment to COMPLETED in the same
// transaction; the cascade is one-way and idempotent.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID, status string) (_ *domorder.Order, err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "checkout_service"))

	ctx, span := s.tracer.Start(ctx, "UC.UpdateOrderStatus",
		trace.WithAttributes(
			attribute.String("order.id", orderID),
			attribute.String("order.requested_status", status),
		),
	)
	defer s.finish(span, useCaseUpdateStatus, time.Now(), &err)

	parsed, err := domorder.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var (
		updated      *domorder.Order
		completedPay *dompayment.Payment
	)
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.SetStatus(parsed); err != nil {
			return err
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return fmt.Errorf("checkout: update order: %w", err)
		}

		if parsed == domorder.StatusDelivered {
			pay, err := s.payments.FindByOrderID(ctx, orderID)
			switch {
			case errors.Is(err, dompayment.ErrNotFound):
				// No payment attached; nothing to cascade.
			case err != nil:
				return fmt.Errorf("checkout: load payment: %w", err)
			case pay.Status != dompayment.StatusCompleted:
				pay.SetStatus(dompayment.StatusCompleted)
				if err := s.payments.Update(ctx, pay); err != nil {
					return fmt.Errorf("checkout: update payment: %w", err)
				}
				completedPay = pay
			}
		}

		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domorder.NewStatusChangedEvent(updated))
	if completedPay != nil {
		s.publish(ctx, dompayment.NewCompletedEvent(completedPay))
	}

	logger.Info("order_status_updated",
		zap.String("order_id", updated.ID),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

// CancelOrder is only legal while the order is PENDING. Stock release, the
// status change and the payment void commit together.
func (s *Service) CancelOrder(ctx context.Context, orderID string) (err error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "checkout_service"))

	ctx, span := s.tracer.Start(ctx, "UC.CancelOrder",
		trace.WithAttributes(attribute.String("order.id", orderID)),
	)
	defer s.finish(span, useCaseCancelOrder, time.Now(), &err)

	var cancelled *domorder.Order
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.Cancel(); err != nil {
			return err
		}

		for _, l := range o.Lines {
			if err := s.products.Release(ctx, l.ProductID, l.Quantity); err != nil {
				return fmt.Errorf("checkout: release stock: %w", err)
			}
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return fmt.Errorf("checkout: update order: %w", err)
		}

		pay, err := s.payments.FindByOrderID(ctx, orderID)
		switch {
		case errors.Is(err, dompayment.ErrNotFound):
			// no linked payment
		case err != nil:
			return fmt.Errorf("checkout: load payment: %w", err)
		case pay.Status != dompayment.StatusCancelled:
			pay.SetStatus(dompayment.StatusCancelled)
			if err := s.payments.Update(ctx, pay); err != nil {
				return fmt.Errorf("checkout: update payment: %w", err)
			}
		}

		cancelled = o
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, domorder.NewCancelledEvent(cancelled))

	logger.Info("order_cancelled", zap.String("order_id", orderID))
	return nil
}

func (s *Service) GetUserOrders(ctx context.Context, userID string) ([]*domorder.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func (s *Service) GetOrderByID(ctx context.Context, orderID string) (*domorder.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

// OrderWithPayment is the order detail projection assembled from id-based
// lookups; the payment is nil when none is attached.
type OrderWithPayment struct {
	Order   *domorder.Order
	Payment *dompayment.Payment
}

func (s *Service) GetOrderWithPayment(ctx context.Context, orderID string) (*OrderWithPayment, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	pay, err := s.payments.FindByOrderID(ctx, orderID)
	if errors.Is(err, dompayment.ErrNotFound) {
		return &OrderWithPayment{Order: o}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checkout: load payment: %w", err)
	}
	return &OrderWithPayment{Order: o, Payment: pay}, nil
}

// GetOrdersByVendor returns the derived view of orders containing at least one
// line whose product belongs to the vendor. The view is read-mostly and served
// through a short-TTL cache; cache failures fall back to the store.
func (s *Service) GetOrdersByVendor(ctx context.Context, vendorID string) ([]*domorder.Order, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "checkout_service"))
	key := s.vendorCache.GenerateKey("vendor_orders", vendorID)

	if raw, err := s.vendorCache.Get(ctx, key); err != nil {
		logger.Warn("vendor_cache_get_failed", zap.Error(err))
	} else if raw != "" {
		var cached []*domorder.Order
		if err := json.Unmarshal([]byte(raw), &cached); err != nil {
			logger.Warn("vendor_cache_decode_failed", zap.Error(err))
		} else {
			return cached, nil
		}
	}

	found, err := s.orders.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(found); err == nil {
		if err := s.vendorCache.Set(ctx, key, string(raw), vendorViewTTL); err != nil {
			logger.Warn("vendor_cache_set_failed", zap.Error(err))
		}
	}
	return found, nil
}

// publish hands an event to the outbox with a bounded timeout. A failure is
// logged and counted, never propagated: notifications must not convert a
// successful business operation into a failed one.
func (s *Service) publish(ctx context.Context, e domoutbox.Event) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, e); err != nil {
		metrics.EventPublishFailures.WithLabelValues(e.EventName()).Inc()
		logging.FromContext(ctx).Warn("event_publish_failed",
			zap.String("event", e.EventName()),
			zap.Error(err),
		)
	}
}

func (s *Service) finish(span trace.Span, useCase string, start time.Time, err *error) {
	outcome := "success"
	if *err != nil {
		outcome = "error"
		span.RecordError(*err)
		span.SetStatus(codes.Error, (*err).Error())
	} else {
		span.SetStatus(codes.Ok, "OK")
	}
	span.End()

	metrics.UseCaseRequests.WithLabelValues(useCase, outcome).Inc()
	metrics.UseCaseDuration.WithLabelValues(useCase).Observe(time.Since(start).Seconds())
}
