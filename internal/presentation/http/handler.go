package httppresentation

import (
	"net/http"

	appaddress "github.com/cartella-shop/fulfillment/internal/application/address"
	appcart "github.com/cartella-shop/fulfillment/internal/application/cart"
	appcheckout "github.com/cartella-shop/fulfillment/internal/application/checkout"
	appnotification "github.com/cartella-shop/fulfillment/internal/application/notification"
	apppayment "github.com/cartella-shop/fulfillment/internal/application/payment"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler exposes the application services over HTTP. Authentication is owned
// by an upstream gateway; callers are identified by path and payload ids.
type Handler struct {
	carts         *appcart.Service
	addresses     *appaddress.Service
	checkout      *appcheckout.Service
	payments      *apppayment.Service
	notifications *appnotification.Service
	log           *zap.Logger
}

func NewHandler(
	carts *appcart.Service,
	addresses *appaddress.Service,
	checkout *appcheckout.Service,
	payments *apppayment.Service,
	notifications *appnotification.Service,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		carts:         carts,
		addresses:     addresses,
		checkout:      checkout,
		payments:      payments,
		notifications: notifications,
		log:           logger.With(zap.String("component", "http_server")),
	}
}

func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), ObservabilityMiddleware(h.log))

	r.GET("/health", h.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := r.Group("/users/:userId")
	{
		users.GET("/cart", h.handleGetCart)
		users.POST("/cart/lines", h.handleAddCartLine)
		users.DELETE("/cart", h.handleClearCart)

		users.POST("/addresses", h.handleCreateAddress)
		users.GET("/addresses", h.handleListAddresses)

		users.POST("/orders", h.handleConvertCart)
		users.GET("/orders", h.handleGetUserOrders)
		users.POST("/orders/direct", h.handlePlaceOrder)

		users.GET("/payments", h.handleListPayments)
		users.GET("/notifications", h.handleListNotifications)
	}

	r.PATCH("/cart/lines/:lineId", h.handleUpdateCartLine)
	r.DELETE("/cart/lines/:lineId", h.handleRemoveCartLine)

	r.PATCH("/addresses/:addressId", h.handleUpdateAddress)
	r.PUT("/addresses/:addressId/default", h.handleSetDefaultAddress)
	r.GET("/addresses/:addressId", h.handleGetAddress)
	r.DELETE("/addresses/:addressId", h.handleDeleteAddress)

	r.GET("/orders/:orderId", h.handleGetOrder)
	r.GET("/orders/:orderId/with-payment", h.handleGetOrderWithPayment)
	r.PATCH("/orders/:orderId/status", h.handleUpdateOrderStatus)
	r.POST("/orders/:orderId/cancel", h.handleCancelOrder)

	r.GET("/vendors/:vendorId/orders", h.handleGetVendorOrders)

	r.POST("/payments/sessions", h.handleCreatePaymentSession)
	r.GET("/payments/:paymentId", h.handleGetPayment)
	r.PATCH("/payments/:paymentId/status", h.handleUpdatePaymentStatus)
	r.PATCH("/payments/sessions/:sessionId/status", h.handleUpdatePaymentStatusBySession)
	r.GET("/orders/:orderId/payment", h.handleGetPaymentByOrder)

	r.PATCH("/notifications/:notificationId/read", h.handleMarkNotificationRead)
	r.DELETE("/notifications/:notificationId", h.handleDeleteNotification)

	return r
}

func (h *Handler) handleHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
