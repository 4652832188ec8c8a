package postpurchase

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/email"
)

const confirmedTimeFormat = "02/01/2006 03:04:05"

// sendPurchaseEmailConfirmation mails the buyer once the payment is
// confirmed. No-ops on failed payments.
type sendPurchaseEmailConfirmation struct {
	sender email.Sender
	logger *zap.Logger
}

func NewSendPurchaseEmailConfirmation(s email.Sender, l *zap.Logger) Action {
	return &sendPurchaseEmailConfirmation{sender: s, logger: l}
}

func (a *sendPurchaseEmailConfirmation) Execute(ctx context.Context, purchase *domain.ProcessedPurchase, _ *url.URL) error {
	if !purchase.IsPaymentSuccessful() {
		return nil
	}

	confirmedAt, err := purchase.PaymentConfirmedTime()
	if err != nil {
		return err
	}

	body := fmt.Sprintf("Your %d product(s): %s is being prepared! Your purchase was confirmed at %s",
		purchase.Quantity, purchase.ProductName, confirmedAt.Format(confirmedTimeFormat))

	msg := &domain.Email{
		To:        purchase.BuyerEmail,
		From:      purchase.SellerEmail,
		Subject:   "Payment confirmed! Your product is being prepared",
		Body:      body,
		ProductID: purchase.ProductID,
	}
	if err := a.sender.Send(ctx, msg); err != nil {
		return err
	}

	a.logger.Info("Purchase confirmation has been sent to email",
		zap.String("purchase_id", purchase.ID),
		zap.String("recipient", purchase.BuyerEmail))
	return nil
}
