package httppresentation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartLineRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

func (h *Handler) handleGetCart(c *gin.Context) {
	cart, err := h.carts.GetOrCreate(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCart(cart))
}

func (h *Handler) handleAddCartLine(c *gin.Context) {
	var req addCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := h.carts.AddLine(c.Request.Context(), c.Param("userId"), req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromCartLine(line))
}

type updateCartLineRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func (h *Handler) handleUpdateCartLine(c *gin.Context) {
	var req updateCartLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	line, err := h.carts.UpdateLineQuantity(c.Request.Context(), c.Param("lineId"), req.Quantity)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCartLine(line))
}

func (h *Handler) handleRemoveCartLine(c *gin.Context) {
	if err := h.carts.RemoveLine(c.Request.Context(), c.Param("lineId")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), c.Param("userId")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
