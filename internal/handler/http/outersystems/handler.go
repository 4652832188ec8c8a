package outersystems

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Local stand-ins for the invoice and seller-ranking systems, so the service
// can run end to end without external infrastructure.
type OuterSystemsHandler struct {
	logger *zap.Logger
}

func NewOuterSystemsHandler(l *zap.Logger) *OuterSystemsHandler {
	return &OuterSystemsHandler{logger: l}
}

func (h *OuterSystemsHandler) RegisterInvoice(w http.ResponseWriter, r *http.Request) {
	h.acknowledge(w, r, "New invoice has been registered")
}

func (h *OuterSystemsHandler) NewPurchase(w http.ResponseWriter, r *http.Request) {
	h.acknowledge(w, r, "New purchase has been registered")
}

func (h *OuterSystemsHandler) acknowledge(w http.ResponseWriter, r *http.Request, message string) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	h.logger.Info(message, zap.Any("payload", payload))
	w.WriteHeader(http.StatusOK)
}

func RegisterRoutes(r chi.Router, l *zap.Logger) {
	handler := NewOuterSystemsHandler(l.With(zap.String("component", "OuterSystemsHandler")))

	r.Post("/invoice/register", handler.RegisterInvoice)
	r.Post("/sellerRanking/newPurchase", handler.NewPurchase)
}
