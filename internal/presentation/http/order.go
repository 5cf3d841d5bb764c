package httppresentation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) handleConvertCart(c *gin.Context) {
	order, err := h.checkout.ConvertCartToOrder(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromOrder(order))
}

type placeOrderRequest struct {
	AddressID string `json:"address_id" binding:"required"`
}

func (h *Handler) handlePlaceOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.checkout.PlaceOrder(c.Request.Context(), c.Param("userId"), req.AddressID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromOrder(order))
}

func (h *Handler) handleGetUserOrders(c *gin.Context) {
	orders, err := h.checkout.GetUserOrders(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrders(orders))
}

func (h *Handler) handleGetOrder(c *gin.Context) {
	order, err := h.checkout.GetOrderByID(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

type orderWithPaymentResponse struct {
	Order   orderResponse    `json:"order"`
	Payment *paymentResponse `json:"payment,omitempty"`
}

func (h *Handler) handleGetOrderWithPayment(c *gin.Context) {
	owp, err := h.checkout.GetOrderWithPayment(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := orderWithPaymentResponse{Order: fromOrder(owp.Order)}
	if owp.Payment != nil {
		pay := fromPayment(owp.Payment)
		resp.Payment = &pay
	}
	c.JSON(http.StatusOK, resp)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) handleUpdateOrderStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.checkout.UpdateOrderStatus(c.Request.Context(), c.Param("orderId"), req.Status)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrder(order))
}

func (h *Handler) handleCancelOrder(c *gin.Context) {
	if err := h.checkout.CancelOrder(c.Request.Context(), c.Param("orderId")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleGetVendorOrders(c *gin.Context) {
	orders, err := h.checkout.GetOrdersByVendor(c.Request.Context(), c.Param("vendorId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromOrders(orders))
}
