package httppresentation

import (
	"errors"
	"net/http"

	domaddress "github.com/cartella-shop/fulfillment/internal/domain/address"
	domcart "github.com/cartella-shop/fulfillment/internal/domain/cart"
	domnotification "github.com/cartella-shop/fulfillment/internal/domain/notification"
	domorder "github.com/cartella-shop/fulfillment/internal/domain/order"
	dompayment "github.com/cartella-shop/fulfillment/internal/domain/payment"
	domproduct "github.com/cartella-shop/fulfillment/internal/domain/product"
	"github.com/gin-gonic/gin"
)

// writeDomainError maps domain sentinels onto HTTP statuses. The error text is
// returned as-is; domain errors are written to be user-presentable.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domcart.ErrNotFound),
		errors.Is(err, domcart.ErrLineNotFound),
		errors.Is(err, domaddress.ErrNotFound),
		errors.Is(err, domorder.ErrNotFound),
		errors.Is(err, dompayment.ErrNotFound),
		errors.Is(err, domnotification.ErrNotFound),
		errors.Is(err, domproduct.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domorder.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domcart.ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, dompayment.ErrProvider):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, domcart.ErrEmpty),
		errors.Is(err, domcart.ErrInvalidQuantity),
		errors.Is(err, domproduct.ErrInsufficientStock),
		errors.Is(err, domproduct.ErrInvalidQuantity),
		errors.Is(err, domaddress.ErrNoDefault),
		errors.Is(err, domaddress.ErrMissingField),
		errors.Is(err, domaddress.ErrUserRequired),
		errors.Is(err, domorder.ErrUnknownStatus),
		errors.Is(err, domorder.ErrNoLines),
		errors.Is(err, dompayment.ErrUnknownStatus),
		errors.Is(err, dompayment.ErrInvalidAmount),
		errors.Is(err, dompayment.ErrSessionRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
