package email_repo

import (
	"context"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

type EmailRepository interface {
	Create(ctx context.Context, email *domain.Email) error
}
