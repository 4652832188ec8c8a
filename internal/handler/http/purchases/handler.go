package purchases

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/app/purchases"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

// userEmailHeader carries the authenticated buyer's email, resolved by the
// edge layer from the bearer token. Token validation itself is not this
// service's concern.
const userEmailHeader = "X-User-Email"

type PurchaseHandler struct {
	service purchases.PurchaseService
	logger  *zap.Logger
}

func NewPurchaseHandler(s purchases.PurchaseService, l *zap.Logger) *PurchaseHandler {
	return &PurchaseHandler{service: s, logger: l}
}

func (h *PurchaseHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	buyerEmail := r.Header.Get(userEmailHeader)
	if buyerEmail == "" {
		h.logger.Warn("Missing user email header on CreatePurchase")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req purchases.NewPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid request body for CreatePurchase", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msgs := validateNewPurchase(&req); len(msgs) > 0 {
		writeValidationErrors(w, msgs)
		return
	}

	res, err := h.service.Reserve(r.Context(), buyerEmail, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			http.Error(w, "Forbidden", http.StatusForbidden)
		case errors.Is(err, domain.ErrProductNotFound):
			writeValidationErrors(w, []string{"productId is not registered"})
		case errors.Is(err, domain.ErrInsufficientStock):
			writeValidationErrors(w, []string{"This product is out of stock"})
		default:
			h.logger.Error("Error creating purchase", zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(res)
}

func (h *PurchaseHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var ret purchases.PaymentReturnRequest
	if err := json.NewDecoder(r.Body).Decode(&ret); err != nil {
		h.logger.Warn("Invalid request body for ConfirmPayment", zap.Error(err))
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msgs := validatePaymentReturn(&ret); len(msgs) > 0 {
		writeValidationErrors(w, msgs)
		return
	}

	err := h.service.ConfirmPayment(r.Context(), &ret)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPurchaseNotFound):
			http.Error(w, "Purchase not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrPurchaseFinished):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			h.logger.Error("Error confirming payment", zap.String("purchase_id", ret.PurchaseID), zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	// Both terminal outcomes acknowledge the gateway with 200.
	w.WriteHeader(http.StatusOK)
}

func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	purchaseID := chi.URLParam(r, "purchaseID")
	if purchaseID == "" {
		http.Error(w, "Purchase ID is required", http.StatusBadRequest)
		return
	}

	res, err := h.service.GetPurchase(r.Context(), purchaseID)
	if err != nil {
		if errors.Is(err, domain.ErrPurchaseNotFound) {
			http.Error(w, "Purchase not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Error getting purchase", zap.String("purchase_id", purchaseID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func validateNewPurchase(req *purchases.NewPurchaseRequest) []string {
	var msgs []string
	if req.ProductID == "" {
		msgs = append(msgs, "productId must not be blank")
	}
	if req.Quantity < 1 {
		msgs = append(msgs, "quantity must not be less than 1")
	}
	if !domain.PaymentGateway(req.PaymentGateway).IsValid() {
		msgs = append(msgs, "paymentGateway is not supported")
	}
	return msgs
}

func validatePaymentReturn(ret *purchases.PaymentReturnRequest) []string {
	var msgs []string
	if ret.PurchaseID == "" {
		msgs = append(msgs, "purchaseId must not be blank")
	}
	if ret.PaymentID == "" {
		msgs = append(msgs, "paymentId must not be blank")
	}
	if ret.Status == "" {
		msgs = append(msgs, "status must not be blank")
	}
	return msgs
}

func writeValidationErrors(w http.ResponseWriter, msgs []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string][]string{"errors": msgs})
}
