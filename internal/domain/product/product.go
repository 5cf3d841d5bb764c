package product

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("product: not found")
	ErrInvalidQuantity = errors.New("product: quantity must be greater than zero")
)

// InsufficientStockError reports a reservation that exceeds the available
// quantity. It carries the product name and the remaining stock so callers can
// surface a meaningful message.
type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product: insufficient stock for %q, only %d available", e.ProductName, e.Available)
}

// ErrInsufficientStock is the sentinel matched by errors.Is against
// *InsufficientStockError values.
var ErrInsufficientStock = errors.New("product: insufficient stock")

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

// Product is the catalog projection this core reads. Only StockQuantity is
// mutated here; everything else belongs to the surrounding catalog CRUD.
type Product struct {
	ID            string
	VendorID      string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	UpdatedAt     time.Time
}

// Reserve decrements available stock. Stock never goes negative.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > p.StockQuantity {
		return &InsufficientStockError{ProductName: p.Name, Available: p.StockQuantity}
	}
	p.StockQuantity -= quantity
	p.touch()
	return nil
}

// Release returns previously reserved stock. It never fails for a positive
// quantity; cancellation must not be blockable by the ledger.
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.StockQuantity += quantity
	p.touch()
	return nil
}

func (p *Product) touch() {
	p.UpdatedAt = time.Now().UTC()
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
