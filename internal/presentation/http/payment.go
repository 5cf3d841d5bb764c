package httppresentation

import (
	"net/http"

	apppayment "github.com/cartella-shop/fulfillment/internal/application/payment"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createPaymentSessionRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	OrderID  string `json:"order_id"`
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

type createPaymentSessionResponse struct {
	Payment     paymentResponse `json:"payment"`
	RedirectURL string          `json:"redirect_url"`
}

func (h *Handler) handleCreatePaymentSession(c *gin.Context) {
	var req createPaymentSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount: " + req.Amount})
		return
	}

	result, err := h.payments.CreateSession(c.Request.Context(), apppayment.CreateSessionInput{
		UserID:   req.UserID,
		OrderID:  req.OrderID,
		Amount:   amount,
		Currency: req.Currency,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, createPaymentSessionResponse{
		Payment:     fromPayment(result.Payment),
		RedirectURL: result.RedirectURL,
	})
}

type updatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) handleUpdatePaymentStatus(c *gin.Context) {
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.payments.UpdateStatus(c.Request.Context(), c.Param("paymentId"), req.Status)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromPayment(p))
}

func (h *Handler) handleUpdatePaymentStatusBySession(c *gin.Context) {
	var req updatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.payments.UpdateStatusBySession(c.Request.Context(), c.Param("sessionId"), req.Status)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromPayment(p))
}

func (h *Handler) handleGetPayment(c *gin.Context) {
	p, err := h.payments.Get(c.Request.Context(), c.Param("paymentId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromPayment(p))
}

func (h *Handler) handleGetPaymentByOrder(c *gin.Context) {
	p, err := h.payments.FindByOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromPayment(p))
}

func (h *Handler) handleListPayments(c *gin.Context) {
	payments, err := h.payments.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, fromPayment(p))
	}
	c.JSON(http.StatusOK, out)
}
