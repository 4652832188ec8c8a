package email

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/email_repo"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/util"
)

// Sender hands an email over to the delivery layer. Actual delivery is an
// external collaborator's responsibility; this service only records what
// went out.
type Sender interface {
	Send(ctx context.Context, email *domain.Email) error
}

type repositorySender struct {
	emailRepo email_repo.EmailRepository
	logger    *zap.Logger
}

// NewRepositorySender returns a Sender that persists every outbound email.
func NewRepositorySender(repo email_repo.EmailRepository, l *zap.Logger) Sender {
	return &repositorySender{emailRepo: repo, logger: l}
}

func (s *repositorySender) Send(ctx context.Context, email *domain.Email) error {
	if email.ID == "" {
		email.ID = util.GenerateUUID()
	}
	if email.CreatedAt.IsZero() {
		email.CreatedAt = time.Now()
	}

	if err := s.emailRepo.Create(ctx, email); err != nil {
		return fmt.Errorf("failed to record outbound email: %w", err)
	}

	s.logger.Info("Email handed to delivery",
		zap.String("email_id", email.ID),
		zap.String("recipient", email.To),
		zap.String("subject", email.Subject))
	return nil
}

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender is the non-production stand-in: it only logs.
func NewNoopSender(l *zap.Logger) Sender {
	return &noopSender{logger: l}
}

func (s *noopSender) Send(_ context.Context, email *domain.Email) error {
	s.logger.Debug("Email suppressed outside production mode",
		zap.String("recipient", email.To),
		zap.String("subject", email.Subject))
	return nil
}
