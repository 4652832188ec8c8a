package postpurchase

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/infrastructure/kafka"
)

type PurchaseStatusEvent struct {
	PurchaseID string     `json:"purchase_id"`
	ProductID  string     `json:"product_id"`
	BuyerEmail string     `json:"buyer_email"`
	Quantity   int        `json:"quantity"`
	Status     string     `json:"status"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
}

// publishPurchaseStatus pushes the terminal status of every purchase onto a
// Kafka topic for whoever listens downstream. Runs for both outcomes.
type publishPurchaseStatus struct {
	producer kafka.Producer
	topic    string
	logger   *zap.Logger
}

func NewPublishPurchaseStatus(producer kafka.Producer, topic string, l *zap.Logger) Action {
	return &publishPurchaseStatus{producer: producer, topic: topic, logger: l}
}

func (a *publishPurchaseStatus) Execute(ctx context.Context, purchase *domain.ProcessedPurchase, _ *url.URL) error {
	event := PurchaseStatusEvent{
		PurchaseID: purchase.ID,
		ProductID:  purchase.ProductID,
		BuyerEmail: purchase.BuyerEmail,
		Quantity:   purchase.Quantity,
		Status:     string(domain.PurchaseStatusFailed),
	}
	if purchase.IsPaymentSuccessful() {
		paidAt, err := purchase.PaymentConfirmedTime()
		if err != nil {
			return err
		}
		event.Status = string(domain.PurchaseStatusPaid)
		event.PaidAt = &paidAt
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := a.producer.Produce(ctx, a.topic, payload); err != nil {
		return err
	}

	a.logger.Info("Purchase status event published",
		zap.String("purchase_id", purchase.ID),
		zap.String("status", event.Status))
	return nil
}
