// Package stripe talks to the external checkout-session provider over HTTPS.
// The protocol is treated as opaque: we send an amount and get back a session
// id and a redirect URL the end user completes payment on, out-of-band.
package stripe

import (
	"context"
	"fmt"
	"time"

	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
	"github.com/cartella-shop/fulfillment/internal/pkg/metrics"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

const (
	defaultTimeout = 5 * time.Second
	peerName       = "stripe"
)

type sessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	http *resty.Client
}

// NewClient builds a session client against the provider base URL. The HTTP
// timeout bounds how long checkout can block on the provider.
func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetAuthToken(apiKey)
	return &Client{http: c}
}

// CreateSession opens a checkout session. Amounts are sent in minor units,
// the convention of the provider's API.
func (c *Client) CreateSession(ctx context.Context, userID string, amount decimal.Decimal, currency string) (*dompayment.Session, error) {
	start := time.Now()
	outcome := "success"
	defer func() {
		metrics.ProviderRequestDuration.WithLabelValues(peerName, outcome).Observe(time.Since(start).Seconds())
	}()

	minorUnits := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	var (
		ok   sessionResponse
		fail errorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"mode":                                   "payment",
			"client_reference_id":                    userID,
			"line_items[0][price_data][currency]":    currency,
			"line_items[0][price_data][unit_amount]": fmt.Sprintf("%d", minorUnits),
			"line_items[0][quantity]":                "1",
		}).
		SetResult(&ok).
		SetError(&fail).
		Post("/v1/checkout/sessions")
	if err != nil {
		outcome = "error"
		return nil, fmt.Errorf("stripe: create session: %w", err)
	}
	if resp.IsError() {
		outcome = "error"
		return nil, fmt.Errorf("stripe: create session: status %d: %s", resp.StatusCode(), fail.Error.Message)
	}
	if ok.ID == "" {
		outcome = "error"
		return nil, fmt.Errorf("stripe: create session: empty session id")
	}

	return &dompayment.Session{ID: ok.ID, RedirectURL: ok.URL}, nil
}
