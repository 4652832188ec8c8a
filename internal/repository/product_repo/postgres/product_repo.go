package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/product_repo"
)

type pgProductRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewProductRepository(db *sql.DB, l *zap.Logger) product_repo.ProductRepository {
	return &pgProductRepository{db: db, logger: l}
}

func (r *pgProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product := &domain.Product{}
	query := `SELECT id, name, price, stock, seller_id, created_at, updated_at FROM products WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Price, &product.Stock, &product.SellerID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to get product by ID", zap.String("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return product, nil
}

func (r *pgProductRepository) ReserveStockAndCreatePurchase(ctx context.Context, purchase *domain.Purchase) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction for stock reservation", zap.String("product_id", purchase.ProductID), zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("Panic during stock reservation transaction, rolling back", zap.String("product_id", purchase.ProductID))
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
			if err != nil {
				r.logger.Error("Failed to commit stock reservation transaction", zap.String("purchase_id", purchase.ID), zap.Error(err))
			}
		}
	}()

	// The conditional decrement is the single concurrency-control point of
	// the whole system: concurrent reservations against the same product row
	// serialize here, and the guard keeps stock from ever going negative.
	stockQuery := `UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`
	res, err := tx.ExecContext(ctx, stockQuery, purchase.Quantity, purchase.ProductID)
	if err != nil {
		return fmt.Errorf("tx failed to decrement stock: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check stock update result: %w", err)
	}
	if rows == 0 {
		r.logger.Debug("Reservation rejected, not enough stock",
			zap.String("product_id", purchase.ProductID),
			zap.Int("quantity", purchase.Quantity))
		err = domain.ErrInsufficientStock
		return err
	}

	purchaseQuery := `INSERT INTO purchases (id, buyer_id, product_id, quantity, gateway, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = tx.ExecContext(ctx, purchaseQuery,
		purchase.ID, purchase.BuyerID, purchase.ProductID, purchase.Quantity,
		purchase.Gateway, purchase.Status, purchase.CreatedAt, purchase.UpdatedAt)
	if err != nil {
		return fmt.Errorf("tx failed to create purchase: %w", err)
	}

	r.logger.Debug("Stock reserved and purchase created",
		zap.String("purchase_id", purchase.ID),
		zap.String("product_id", purchase.ProductID),
		zap.Int("quantity", purchase.Quantity))
	return err
}
