package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/email_repo"
)

type pgEmailRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewEmailRepository(db *sql.DB, l *zap.Logger) email_repo.EmailRepository {
	return &pgEmailRepository{db: db, logger: l}
}

func (r *pgEmailRepository) Create(ctx context.Context, email *domain.Email) error {
	query := `INSERT INTO sent_emails (id, recipient, sender, subject, body, product_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		email.ID, email.To, email.From, email.Subject, email.Body, email.ProductID, email.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to persist sent email", zap.String("email_id", email.ID), zap.Error(err))
		return fmt.Errorf("failed to persist sent email: %w", err)
	}
	r.logger.Debug("Sent email persisted", zap.String("email_id", email.ID), zap.String("recipient", email.To))
	return nil
}
