package purchases

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/app/purchases"
)

func RegisterRoutes(r chi.Router, s purchases.PurchaseService, l *zap.Logger) {
	handler := NewPurchaseHandler(s, l.With(zap.String("component", "PurchaseHTTPHandler")))

	r.Route("/api/purchases", func(r chi.Router) {
		r.Post("/", handler.CreatePurchase)
		r.Post("/confirm-payment", handler.ConfirmPayment)
		r.Get("/{purchaseID}", handler.GetPurchase)
	})
}
