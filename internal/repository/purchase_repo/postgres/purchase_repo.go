package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/purchase_repo"
)

type pgPurchaseRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPurchaseRepository(db *sql.DB, l *zap.Logger) purchase_repo.PurchaseRepository {
	return &pgPurchaseRepository{db: db, logger: l}
}

func (r *pgPurchaseRepository) GetByID(ctx context.Context, id string) (*domain.Purchase, error) {
	purchase := &domain.Purchase{}
	var paidAt sql.NullTime
	query := `SELECT id, buyer_id, product_id, quantity, gateway, status, paid_at, created_at, updated_at FROM purchases WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&purchase.ID, &purchase.BuyerID, &purchase.ProductID, &purchase.Quantity,
		&purchase.Gateway, &purchase.Status, &paidAt, &purchase.CreatedAt, &purchase.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to get purchase by ID", zap.String("purchase_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get purchase by ID %s: %w", id, err)
	}
	if paidAt.Valid {
		purchase.PaidAt = &paidAt.Time
	}
	return purchase, nil
}

func (r *pgPurchaseRepository) FinishPurchase(ctx context.Context, id string, status domain.PurchaseStatus, paidAt *time.Time) error {
	query := `UPDATE purchases SET status = $2, paid_at = $3, updated_at = NOW() WHERE id = $1 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, id, status, paidAt, domain.PurchaseStatusPending)
	if err != nil {
		r.logger.Error("Failed to finish purchase", zap.String("purchase_id", id), zap.Error(err))
		return fmt.Errorf("failed to finish purchase %s: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		r.logger.Error("Failed to get rows affected for purchase finish", zap.String("purchase_id", id), zap.Error(err))
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		// Another callback already resolved this purchase.
		r.logger.Warn("No rows affected when finishing purchase, it already left PENDING", zap.String("purchase_id", id))
		return domain.ErrPurchaseFinished
	}
	r.logger.Debug("Purchase finished", zap.String("purchase_id", id), zap.String("status", string(status)))
	return nil
}
