package postpurchase

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/client"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

// sendConfirmationToSellersSystem reports a confirmed purchase to the seller
// ranking system. No-ops on failed payments.
type sendConfirmationToSellersSystem struct {
	rankingClient client.SellersRankingClient
	logger        *zap.Logger
}

func NewSendConfirmationToSellersSystem(c client.SellersRankingClient, l *zap.Logger) Action {
	return &sendConfirmationToSellersSystem{rankingClient: c, logger: l}
}

func (a *sendConfirmationToSellersSystem) Execute(ctx context.Context, purchase *domain.ProcessedPurchase, _ *url.URL) error {
	if !purchase.IsPaymentSuccessful() {
		return nil
	}

	req := client.SellersRankingRequest{PurchaseID: purchase.ID, SellerEmail: purchase.SellerEmail}
	if err := a.rankingClient.RegisterPurchase(ctx, req); err != nil {
		return err
	}

	a.logger.Info("Purchase confirmation has been sent to sellers system",
		zap.String("purchase_id", purchase.ID),
		zap.String("seller_email", purchase.SellerEmail))
	return nil
}
