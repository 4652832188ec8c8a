package postpurchase

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/client"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
)

type mockInvoiceClient struct {
	mu       sync.Mutex
	requests []client.InvoiceRequest
	err      error
}

func (m *mockInvoiceClient) RequestInvoice(_ context.Context, req client.InvoiceRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.requests = append(m.requests, req)
	return nil
}

type mockRankingClient struct {
	mu       sync.Mutex
	requests []client.SellersRankingRequest
	err      error
}

func (m *mockRankingClient) RegisterPurchase(_ context.Context, req client.SellersRankingRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.requests = append(m.requests, req)
	return nil
}

type mockSender struct {
	mu     sync.Mutex
	emails []*domain.Email
	err    error
}

func (m *mockSender) Send(_ context.Context, email *domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.emails = append(m.emails, email)
	return nil
}

type mockProducer struct {
	mu       sync.Mutex
	topics   []string
	messages [][]byte
	err      error
}

func (m *mockProducer) Produce(_ context.Context, topic string, message []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.topics = append(m.topics, topic)
	m.messages = append(m.messages, message)
	return nil
}

func (m *mockProducer) Close() error { return nil }

func terminalPurchase(t *testing.T, gateway domain.PaymentGateway, status string) *domain.ProcessedPurchase {
	t.Helper()

	buyer := &domain.User{ID: "buyer-1", Email: "buyer@example.com"}
	seller := &domain.User{ID: "seller-1", Email: "seller@example.com"}
	product := &domain.Product{ID: "product-1", Name: "Tijorola", Stock: 5, SellerID: seller.ID}

	purchase, err := domain.NewPurchase("purchase-1", buyer, product, 2, gateway)
	require.NoError(t, err)

	_, err = purchase.Process(domain.PaymentReturn{PurchaseID: purchase.ID, PaymentID: "pay-1", Status: status}, time.Now())
	require.NoError(t, err)

	processed, err := domain.NewProcessedPurchase(purchase, product, buyer, seller)
	require.NoError(t, err)
	return processed
}

func paidPurchase(t *testing.T) *domain.ProcessedPurchase {
	return terminalPurchase(t, domain.GatewayPaypal, "1")
}

func failedPurchase(t *testing.T) *domain.ProcessedPurchase {
	return terminalPurchase(t, domain.GatewayPaypal, "2")
}

func baseURL(t *testing.T) *url.URL {
	t.Helper()
	base, err := url.Parse("http://localhost:8080")
	require.NoError(t, err)
	return base
}

func TestSendConfirmationToInvoiceSystem(t *testing.T) {
	t.Run("fires once for a paid purchase", func(t *testing.T) {
		invoiceClient := &mockInvoiceClient{}
		action := NewSendConfirmationToInvoiceSystem(invoiceClient, zap.NewNop())

		err := action.Execute(context.Background(), paidPurchase(t), baseURL(t))
		require.NoError(t, err)

		require.Len(t, invoiceClient.requests, 1)
		assert.Equal(t, "purchase-1", invoiceClient.requests[0].PurchaseID)
		assert.Equal(t, "buyer@example.com", invoiceClient.requests[0].BuyerEmail)
	})

	t.Run("no-ops for a failed purchase", func(t *testing.T) {
		invoiceClient := &mockInvoiceClient{}
		action := NewSendConfirmationToInvoiceSystem(invoiceClient, zap.NewNop())

		err := action.Execute(context.Background(), failedPurchase(t), baseURL(t))
		require.NoError(t, err)
		assert.Empty(t, invoiceClient.requests)
	})

	t.Run("surfaces the downstream error", func(t *testing.T) {
		invoiceClient := &mockInvoiceClient{err: errors.New("invoice system unavailable")}
		action := NewSendConfirmationToInvoiceSystem(invoiceClient, zap.NewNop())

		err := action.Execute(context.Background(), paidPurchase(t), baseURL(t))
		assert.Error(t, err)
	})
}

func TestSendConfirmationToSellersSystem(t *testing.T) {
	t.Run("fires once for a paid purchase", func(t *testing.T) {
		rankingClient := &mockRankingClient{}
		action := NewSendConfirmationToSellersSystem(rankingClient, zap.NewNop())

		err := action.Execute(context.Background(), paidPurchase(t), baseURL(t))
		require.NoError(t, err)

		require.Len(t, rankingClient.requests, 1)
		assert.Equal(t, "purchase-1", rankingClient.requests[0].PurchaseID)
		assert.Equal(t, "seller@example.com", rankingClient.requests[0].SellerEmail)
	})

	t.Run("no-ops for a failed purchase", func(t *testing.T) {
		rankingClient := &mockRankingClient{}
		action := NewSendConfirmationToSellersSystem(rankingClient, zap.NewNop())

		err := action.Execute(context.Background(), failedPurchase(t), baseURL(t))
		require.NoError(t, err)
		assert.Empty(t, rankingClient.requests)
	})
}

func TestSendPurchaseEmailConfirmation(t *testing.T) {
	t.Run("mails the buyer once for a paid purchase", func(t *testing.T) {
		sender := &mockSender{}
		action := NewSendPurchaseEmailConfirmation(sender, zap.NewNop())

		err := action.Execute(context.Background(), paidPurchase(t), baseURL(t))
		require.NoError(t, err)

		require.Len(t, sender.emails, 1)
		email := sender.emails[0]
		assert.Equal(t, "buyer@example.com", email.To)
		assert.Equal(t, "seller@example.com", email.From)
		assert.Equal(t, "Payment confirmed! Your product is being prepared", email.Subject)
		assert.Contains(t, email.Body, "Your 2 product(s): Tijorola")
	})

	t.Run("no-ops for a failed purchase", func(t *testing.T) {
		sender := &mockSender{}
		action := NewSendPurchaseEmailConfirmation(sender, zap.NewNop())

		err := action.Execute(context.Background(), failedPurchase(t), baseURL(t))
		require.NoError(t, err)
		assert.Empty(t, sender.emails)
	})
}

func TestSendPurchaseFailEmail(t *testing.T) {
	t.Run("mails the buyer a retry link for a failed purchase", func(t *testing.T) {
		sender := &mockSender{}
		action := NewSendPurchaseFailEmail(sender, zap.NewNop())

		err := action.Execute(context.Background(), failedPurchase(t), baseURL(t))
		require.NoError(t, err)

		require.Len(t, sender.emails, 1)
		email := sender.emails[0]
		assert.Equal(t, "buyer@example.com", email.To)
		assert.Equal(t, "Payment could not be confirmed", email.Subject)
		assert.Contains(t, email.Body, "purchase-1")
		assert.Contains(t, email.Body, "https://paypal.com/purchase-1")
	})

	t.Run("no-ops for a paid purchase", func(t *testing.T) {
		sender := &mockSender{}
		action := NewSendPurchaseFailEmail(sender, zap.NewNop())

		err := action.Execute(context.Background(), paidPurchase(t), baseURL(t))
		require.NoError(t, err)
		assert.Empty(t, sender.emails)
	})
}

func TestPublishPurchaseStatus(t *testing.T) {
	t.Run("publishes a paid event with the confirmation time", func(t *testing.T) {
		producer := &mockProducer{}
		action := NewPublishPurchaseStatus(producer, "purchase_status_updates", zap.NewNop())

		err := action.Execute(context.Background(), paidPurchase(t), baseURL(t))
		require.NoError(t, err)

		require.Len(t, producer.messages, 1)
		assert.Equal(t, "purchase_status_updates", producer.topics[0])

		var event PurchaseStatusEvent
		require.NoError(t, json.Unmarshal(producer.messages[0], &event))
		assert.Equal(t, "purchase-1", event.PurchaseID)
		assert.Equal(t, string(domain.PurchaseStatusPaid), event.Status)
		assert.NotNil(t, event.PaidAt)
	})

	t.Run("publishes a failed event without a paid time", func(t *testing.T) {
		producer := &mockProducer{}
		action := NewPublishPurchaseStatus(producer, "purchase_status_updates", zap.NewNop())

		err := action.Execute(context.Background(), failedPurchase(t), baseURL(t))
		require.NoError(t, err)

		var event PurchaseStatusEvent
		require.NoError(t, json.Unmarshal(producer.messages[0], &event))
		assert.Equal(t, string(domain.PurchaseStatusFailed), event.Status)
		assert.Nil(t, event.PaidAt)
	})
}
