package httppresentation

import (
	"time"

	domaddress "github.com/cartella-shop/fulfillment/internal/domain/address"
	domcart "github.com/cartella-shop/fulfillment/internal/domain/cart"
	domnotification "github.com/cartella-shop/fulfillment/internal/domain/notification"
	domorder "github.com/cartella-shop/fulfillment/internal/domain/order"
	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
)

type cartLineResponse struct {
	ID        string `json:"id"`
	CartID    string `json:"cart_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func fromCartLine(l *domcart.Line) cartLineResponse {
	return cartLineResponse{ID: l.ID, CartID: l.CartID, ProductID: l.ProductID, Quantity: l.Quantity}
}

type cartResponse struct {
	ID     string             `json:"id"`
	UserID string             `json:"user_id"`
	Lines  []cartLineResponse `json:"lines"`
}

func fromCart(c *domcart.Cart) cartResponse {
	out := cartResponse{ID: c.ID, UserID: c.UserID, Lines: []cartLineResponse{}}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, fromCartLine(l))
	}
	return out
}

type addressResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

func fromAddress(a *domaddress.Address) addressResponse {
	return addressResponse{
		ID:         a.ID,
		UserID:     a.UserID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		IsDefault:  a.IsDefault,
	}
}

type orderLineResponse struct {
	ID                 string `json:"id"`
	ProductID          string `json:"product_id"`
	Quantity           int    `json:"quantity"`
	PriceAtTimeOfOrder string `json:"price_at_time_of_order"`
}

type orderResponse struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	AddressID   string              `json:"address_id"`
	TotalAmount string              `json:"total_amount"`
	Status      domorder.Status     `json:"status"`
	Lines       []orderLineResponse `json:"lines"`
	CreatedAt   time.Time           `json:"created_at"`
}

func fromOrder(o *domorder.Order) orderResponse {
	out := orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		AddressID:   o.AddressID,
		TotalAmount: o.TotalAmount.StringFixed(2),
		Status:      o.Status,
		Lines:       []orderLineResponse{},
		CreatedAt:   o.CreatedAt,
	}
	for _, l := range o.Lines {
		out.Lines = append(out.Lines, orderLineResponse{
			ID:                 l.ID,
			ProductID:          l.ProductID,
			Quantity:           l.Quantity,
			PriceAtTimeOfOrder: l.PriceAtTimeOfOrder.StringFixed(2),
		})
	}
	return out
}

func fromOrders(orders []*domorder.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, fromOrder(o))
	}
	return out
}

type paymentResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	OrderID   string            `json:"order_id,omitempty"`
	Amount    string            `json:"amount"`
	Currency  string            `json:"currency"`
	SessionID string            `json:"session_id"`
	Status    dompayment.Status `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

func fromPayment(p *dompayment.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		OrderID:   p.OrderID,
		Amount:    p.Amount.StringFixed(2),
		Currency:  p.Currency,
		SessionID: p.SessionID,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

type notificationResponse struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Message   string            `json:"message"`
	IsRead    bool              `json:"is_read"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func fromNotification(n *domnotification.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Message:   n.Message,
		IsRead:    n.IsRead,
		Metadata:  n.Metadata,
		CreatedAt: n.CreatedAt,
	}
}
