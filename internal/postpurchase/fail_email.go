package postpurchase

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/email"
)

// sendPurchaseFailEmail mails the buyer a link to retry a payment that was
// not confirmed. No-ops on successful payments.
type sendPurchaseFailEmail struct {
	sender email.Sender
	logger *zap.Logger
}

func NewSendPurchaseFailEmail(s email.Sender, l *zap.Logger) Action {
	return &sendPurchaseFailEmail{sender: s, logger: l}
}

func (a *sendPurchaseFailEmail) Execute(ctx context.Context, purchase *domain.ProcessedPurchase, baseURL *url.URL) error {
	if purchase.IsPaymentSuccessful() {
		return nil
	}

	retryPaymentURL, err := purchase.PaymentURL(baseURL)
	if err != nil {
		return err
	}

	body := "An error occurred when processing your payment, try again in this link: " + retryPaymentURL

	msg := &domain.Email{
		To:        purchase.BuyerEmail,
		From:      purchase.SellerEmail,
		Subject:   "Payment could not be confirmed",
		Body:      body,
		ProductID: purchase.ProductID,
	}
	if err := a.sender.Send(ctx, msg); err != nil {
		return err
	}

	a.logger.Warn("Purchase fail has been sent to email",
		zap.String("purchase_id", purchase.ID),
		zap.String("recipient", purchase.BuyerEmail))
	return nil
}
