package httppresentation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appaddress "github.com/cartella-shop/fulfillment/internal/application/address"
	appcart "github.com/cartella-shop/fulfillment/internal/application/cart"
	appcheckout "github.com/cartella-shop/fulfillment/internal/application/checkout"
	appnotification "github.com/cartella-shop/fulfillment/internal/application/notification"
	apppayment "github.com/cartella-shop/fulfillment/internal/application/payment"
	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
	domproduct "github.com/cartella-shop/fulfillment/internal/domain/product"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/id"
	"github.com/cartella-shop/fulfillment/internal/infrastructure/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubProvider struct{}

func (stubProvider) CreateSession(context.Context, string, decimal.Decimal, string) (*dompayment.Session, error) {
	return &dompayment.Session{ID: "sess_1", RedirectURL: "https://pay.example/s1"}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memory.ProductRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := memory.NewProductRepository()
	carts := memory.NewCartRepository()
	addresses := memory.NewAddressRepository()
	orders := memory.NewOrderRepository(products)
	payments := memory.NewPaymentRepository()
	notifications := memory.NewNotificationRepository()
	idGen := id.NewUUIDGenerator()

	handler := NewHandler(
		appcart.NewService(carts, products, idGen),
		appaddress.NewService(addresses, idGen),
		appcheckout.NewService(memory.NewTxManager(), carts, products, addresses, orders, payments, nil, idGen, nil),
		apppayment.NewService(payments, stubProvider{}, idGen),
		appnotification.NewService(notifications, idGen),
		zap.NewNop(),
	)
	return handler.Router(), products
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckoutOverHTTP(t *testing.T) {
	router, products := newTestRouter(t)
	products.Seed(&domproduct.Product{
		ID:            "p1",
		VendorID:      "v1",
		Name:          "Keyboard",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: 5,
	})

	w := do(t, router, http.MethodPost, "/users/u1/addresses",
		`{"street":"1 Main St","city":"Springfield","postal_code":"12345","country":"US"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, router, http.MethodPost, "/users/u1/cart/lines", `{"product_id":"p1","quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, router, http.MethodPost, "/users/u1/orders", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var placed struct {
		ID          string `json:"id"`
		TotalAmount string `json:"total_amount"`
		Status      string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	assert.Equal(t, "20.00", placed.TotalAmount)
	assert.Equal(t, "PENDING", placed.Status)

	w = do(t, router, http.MethodGet, "/orders/"+placed.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/users/u1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cart struct {
		Lines []any `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Lines, "checkout must clear the cart")
}

func TestCheckoutErrorsOverHTTP(t *testing.T) {
	router, products := newTestRouter(t)
	products.Seed(&domproduct.Product{
		ID:            "p1",
		VendorID:      "v1",
		Name:          "Keyboard",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: 5,
	})

	t.Run("empty cart is a 400", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/users/u1/addresses",
			`{"street":"1 Main St","city":"Springfield","postal_code":"12345","country":"US"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(t, router, http.MethodPost, "/users/u1/orders", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "empty")
	})

	t.Run("missing default address is a 400", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/users/u2/cart/lines", `{"product_id":"p1","quantity":1}`)
		require.Equal(t, http.StatusCreated, w.Code)

		w = do(t, router, http.MethodPost, "/users/u2/orders", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "default address")
	})

	t.Run("unknown order is a 404", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/orders/ghost", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown status is a 400", func(t *testing.T) {
		w := do(t, router, http.MethodPatch, "/orders/ghost/status", `{"status":"TELEPORTED"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCancelConflictOverHTTP(t *testing.T) {
	router, products := newTestRouter(t)
	products.Seed(&domproduct.Product{
		ID:            "p1",
		VendorID:      "v1",
		Name:          "Keyboard",
		Price:         decimal.RequireFromString("10.00"),
		StockQuantity: 5,
	})

	w := do(t, router, http.MethodPost, "/users/u1/addresses",
		`{"street":"1 Main St","city":"Springfield","postal_code":"12345","country":"US"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, router, http.MethodPost, "/users/u1/cart/lines", `{"product_id":"p1","quantity":1}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, router, http.MethodPost, "/users/u1/orders", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var placed struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))

	w = do(t, router, http.MethodPost, "/orders/"+placed.ID+"/cancel", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, router, http.MethodPost, "/orders/"+placed.ID+"/cancel", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPaymentSessionOverHTTP(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/payments/sessions",
		`{"user_id":"u1","amount":"20.00","currency":"usd"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Payment struct {
			ID        string `json:"id"`
			SessionID string `json:"session_id"`
			Status    string `json:"status"`
		} `json:"payment"`
		RedirectURL string `json:"redirect_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "sess_1", created.Payment.SessionID)
	assert.Equal(t, "PENDING", created.Payment.Status)
	assert.Equal(t, "https://pay.example/s1", created.RedirectURL)

	w = do(t, router, http.MethodPatch, "/payments/sessions/sess_1/status", `{"status":"COMPLETED"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodGet, "/payments/"+created.Payment.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"COMPLETED"`)
}
