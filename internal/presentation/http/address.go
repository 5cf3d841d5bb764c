package httppresentation

import (
	"net/http"

	appaddress "github.com/cartella-shop/fulfillment/internal/application/address"
	"github.com/gin-gonic/gin"
)

type createAddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

func (h *Handler) handleCreateAddress(c *gin.Context) {
	var req createAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr, err := h.addresses.Create(c.Request.Context(), appaddress.CreateInput{
		UserID:     c.Param("userId"),
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		IsDefault:  req.IsDefault,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromAddress(addr))
}

type updateAddressRequest struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

func (h *Handler) handleUpdateAddress(c *gin.Context) {
	var req updateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr, err := h.addresses.Update(c.Request.Context(), c.Param("addressId"), appaddress.UpdateInput{
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromAddress(addr))
}

func (h *Handler) handleSetDefaultAddress(c *gin.Context) {
	addr, err := h.addresses.SetDefault(c.Request.Context(), c.Param("addressId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromAddress(addr))
}

func (h *Handler) handleGetAddress(c *gin.Context) {
	addr, err := h.addresses.Get(c.Request.Context(), c.Param("addressId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromAddress(addr))
}

func (h *Handler) handleDeleteAddress(c *gin.Context) {
	if err := h.addresses.Delete(c.Request.Context(), c.Param("addressId")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) handleListAddresses(c *gin.Context) {
	addrs, err := h.addresses.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]addressResponse, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, fromAddress(a))
	}
	c.JSON(http.StatusOK, out)
}
