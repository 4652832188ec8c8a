package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product carries the catalog fields the purchase flow depends on. Stock is
// mutated exclusively through the reservation query in the product
// repository and never goes negative.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Stock     int
	SellerID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Product) HasStockFor(quantity int) bool {
	return quantity <= p.Stock
}
