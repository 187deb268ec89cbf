package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item available for purchase. Prices are whole
// rupees. Discount, when non-nil, is an explicit percentage in the range
// 0-100; when nil the pricing calculator derives a discount from the ID.
type Product struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Discount *decimal.Decimal
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
}
