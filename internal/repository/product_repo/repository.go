package product_repo

import (
	"context"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)

	// ReserveStockAndCreatePurchase decrements the product stock and creates
	// the pending purchase as one atomic unit. It fails with
	// domain.ErrInsufficientStock when the product has less stock than
	// requested, leaving the stock untouched.
	ReserveStockAndCreatePurchase(ctx context.Context, purchase *domain.Purchase) error
}
