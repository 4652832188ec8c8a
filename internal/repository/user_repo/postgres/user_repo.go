package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/user_repo"
)

type pgUserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewUserRepository(db *sql.DB, l *zap.Logger) user_repo.UserRepository {
	return &pgUserRepository{db: db, logger: l}
}

func (r *pgUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, email, created_at FROM users WHERE id = $1`, id)
}

func (r *pgUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, `SELECT id, email, created_at FROM users WHERE email = $1`, email)
}

func (r *pgUserRepository) get(ctx context.Context, query, arg string) (*domain.User, error) {
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Email, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		r.logger.Error("Failed to get user", zap.String("arg", arg), zap.Error(err))
		return nil, fmt.Errorf("failed to get user %s: %w", arg, err)
	}
	return user, nil
}
