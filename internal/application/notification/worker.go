package notification

import (
	"context"
	"fmt"

	domorder "github.com/cartella-shop/fulfillment/internal/domain/order"
	domoutbox "github.com/cartella-shop/fulfillment/internal/domain/outbox"
	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
	"github.com/cartella-shop/fulfillment/internal/pkg/logging"
	"go.uber.org/zap"
)

// Worker subscribes to order and payment transitions and turns them into
// user-facing notifications. Handler errors are logged by the bus and dropped;
// there is no retry.
type Worker struct {
	subscriber domoutbox.Subscriber
	service    *Service
}

func NewWorker(subscriber domoutbox.Subscriber, service *Service) *Worker {
	return &Worker{
		subscriber: subscriber,
		service:    service,
	}
}

func (w *Worker) Start() {
	w.subscriber.Subscribe(domorder.PlacedEvent{}.EventName(), w.handleOrderPlaced)
	w.subscriber.Subscribe(domorder.StatusChangedEvent{}.EventName(), w.handleStatusChanged)
	w.subscriber.Subscribe(domorder.CancelledEvent{}.EventName(), w.handleOrderCancelled)
	w.subscriber.Subscribe(dompayment.CompletedEvent{}.EventName(), w.handlePaymentCompleted)
}

func (w *Worker) handleOrderPlaced(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domorder.PlacedEvent)
	if !ok {
		return nil
	}

	msg := fmt.Sprintf("Your order has been placed. Total: %s", evt.TotalAmount.StringFixed(2))
	n, err := w.service.Create(ctx, evt.UserID, msg, map[string]string{"orderId": evt.OrderID})
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("notification_created",
		zap.String("notification_id", n.ID),
		zap.String("order_id", evt.OrderID),
	)
	return nil
}

func (w *Worker) handleStatusChanged(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domorder.StatusChangedEvent)
	if !ok {
		return nil
	}

	msg := fmt.Sprintf("Order %s: your order is now %s", evt.OrderID, evt.Status)
	metadata := map[string]string{"orderId": evt.OrderID, "status": string(evt.Status)}
	if evt.Status == domorder.StatusDelivered {
		metadata["trackingDetails"] = "delivered"
	}

	_, err := w.service.Create(ctx, evt.UserID, msg, metadata)
	return err
}

func (w *Worker) handleOrderCancelled(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(domorder.CancelledEvent)
	if !ok {
		return nil
	}

	msg := fmt.Sprintf("Order %s has been cancelled and your items returned to stock.", evt.OrderID)
	_, err := w.service.Create(ctx, evt.UserID, msg, map[string]string{"orderId": evt.OrderID})
	return err
}

func (w *Worker) handlePaymentCompleted(ctx context.Context, e domoutbox.Event) error {
	evt, ok := e.(dompayment.CompletedEvent)
	if !ok {
		return nil
	}

	msg := fmt.Sprintf("Payment successful: %s %s", evt.Amount.StringFixed(2), evt.Currency)
	metadata := map[string]string{"paymentId": evt.PaymentID}
	if evt.OrderID != "" {
		metadata["orderId"] = evt.OrderID
	}

	_, err := w.service.Create(ctx, evt.UserID, msg, metadata)
	return err
}
