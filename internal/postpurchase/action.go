package postpurchase

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

// Action is one independent side effect fired after a purchase reaches a
// terminal state. Each action decides internally whether it applies to a
// successful or a failed purchase, so the pipeline stays a plain fan-out.
type Action interface {
	Execute(ctx context.Context, purchase *domain.ProcessedPurchase, baseURL *url.URL) error
}

// Pipeline runs every registered action for every terminal purchase. A
// failing action is logged and must not stop the others, and it never rolls
// back the purchase's state transition.
type Pipeline struct {
	actions []Action
	logger  *zap.Logger
}

func NewPipeline(logger *zap.Logger, actions ...Action) *Pipeline {
	return &Pipeline{actions: actions, logger: logger}
}

func (p *Pipeline) Run(ctx context.Context, purchase *domain.ProcessedPurchase, baseURL *url.URL) {
	for _, action := range p.actions {
		if err := action.Execute(ctx, purchase, baseURL); err != nil {
			p.logger.Error("Post-purchase action failed",
				zap.String("purchase_id", purchase.ID),
				zap.Bool("payment_successful", purchase.IsPaymentSuccessful()),
				zap.Error(err))
		}
	}
}
