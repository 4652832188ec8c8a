package purchase_repo

import (
	"context"
	"time"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

type PurchaseRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Purchase, error)

	// FinishPurchase moves a purchase out of PENDING. The update is
	// conditional on the current status, so of two concurrent callbacks for
	// the same purchase exactly one wins; the loser gets
	// domain.ErrPurchaseFinished.
	FinishPurchase(ctx context.Context, id string, status domain.PurchaseStatus, paidAt *time.Time) error
}
