package user_repo

import (
	"context"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
