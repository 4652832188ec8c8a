package email

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

type mockEmailRepo struct {
	created []*domain.Email
	err     error
}

func (m *mockEmailRepo) Create(_ context.Context, email *domain.Email) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, email)
	return nil
}

func TestRepositorySender(t *testing.T) {
	t.Run("persists the email and fills identity fields", func(t *testing.T) {
		repo := &mockEmailRepo{}
		sender := NewRepositorySender(repo, zap.NewNop())

		err := sender.Send(context.Background(), &domain.Email{
			To:      "buyer@example.com",
			From:    "seller@example.com",
			Subject: "Payment confirmed! Your product is being prepared",
			Body:    "body",
		})
		require.NoError(t, err)

		require.Len(t, repo.created, 1)
		assert.NotEmpty(t, repo.created[0].ID)
		assert.False(t, repo.created[0].CreatedAt.IsZero())
	})

	t.Run("surfaces repository failures", func(t *testing.T) {
		repo := &mockEmailRepo{err: errors.New("db down")}
		sender := NewRepositorySender(repo, zap.NewNop())

		err := sender.Send(context.Background(), &domain.Email{To: "buyer@example.com"})
		assert.Error(t, err)
	})
}

func TestNoopSender(t *testing.T) {
	sender := NewNoopSender(zap.NewNop())
	err := sender.Send(context.Background(), &domain.Email{To: "buyer@example.com"})
	assert.NoError(t, err)
}
