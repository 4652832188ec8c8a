package postpurchase

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/client"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

// sendConfirmationToInvoiceSystem asks the invoicing system to emit an
// invoice for a confirmed purchase. No-ops on failed payments.
type sendConfirmationToInvoiceSystem struct {
	invoiceClient client.InvoiceClient
	logger        *zap.Logger
}

func NewSendConfirmationToInvoiceSystem(c client.InvoiceClient, l *zap.Logger) Action {
	return &sendConfirmationToInvoiceSystem{invoiceClient: c, logger: l}
}

func (a *sendConfirmationToInvoiceSystem) Execute(ctx context.Context, purchase *domain.ProcessedPurchase, _ *url.URL) error {
	if !purchase.IsPaymentSuccessful() {
		return nil
	}

	req := client.InvoiceRequest{PurchaseID: purchase.ID, BuyerEmail: purchase.BuyerEmail}
	if err := a.invoiceClient.RequestInvoice(ctx, req); err != nil {
		return err
	}

	a.logger.Info("Purchase confirmation has been sent to invoice system",
		zap.String("purchase_id", purchase.ID),
		zap.String("buyer_email", purchase.BuyerEmail))
	return nil
}
