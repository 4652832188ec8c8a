package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuyer() *User {
	return &User{ID: "buyer-1", Email: "buyer@example.com", CreatedAt: time.Now()}
}

func testProduct() *Product {
	return &Product{
		ID:       "product-1",
		Name:     "Tijorola",
		Price:    decimal.RequireFromString("150.00"),
		Stock:    5,
		SellerID: "seller-1",
	}
}

func TestNewPurchase(t *testing.T) {
	t.Run("creates a pending purchase", func(t *testing.T) {
		purchase, err := NewPurchase("purchase-1", testBuyer(), testProduct(), 2, GatewayPaypal)
		require.NoError(t, err)

		assert.Equal(t, PurchaseStatusPending, purchase.Status)
		assert.Equal(t, 2, purchase.Quantity)
		assert.Equal(t, "buyer-1", purchase.BuyerID)
		assert.Equal(t, "product-1", purchase.ProductID)
		assert.Nil(t, purchase.PaidAt)
		assert.False(t, purchase.IsFinished())
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		_, err := NewPurchase("purchase-1", testBuyer(), testProduct(), 0, GatewayPaypal)
		assert.EqualError(t, err, "quantity must not be less than 1")
	})

	t.Run("rejects nil buyer", func(t *testing.T) {
		_, err := NewPurchase("purchase-1", nil, testProduct(), 1, GatewayPaypal)
		assert.EqualError(t, err, "buyer must not be nil")
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewPurchase("purchase-1", testBuyer(), nil, 1, GatewayPaypal)
		assert.EqualError(t, err, "product must not be nil")
	})

	t.Run("rejects unsupported gateway", func(t *testing.T) {
		_, err := NewPurchase("purchase-1", testBuyer(), testProduct(), 1, PaymentGateway("MERCADOPAGO"))
		assert.EqualError(t, err, "payment gateway is not supported")
	})
}

func TestProcess(t *testing.T) {
	now := time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)

	t.Run("approved status moves purchase to paid and stamps the time", func(t *testing.T) {
		purchase, _ := NewPurchase("purchase-1", testBuyer(), testProduct(), 1, GatewayPaypal)

		successful, err := purchase.Process(PaymentReturn{PurchaseID: purchase.ID, PaymentID: "pay-1", Status: "1"}, now)
		require.NoError(t, err)

		assert.True(t, successful)
		assert.Equal(t, PurchaseStatusPaid, purchase.Status)
		confirmedAt, err := purchase.PaymentConfirmedTime()
		require.NoError(t, err)
		assert.Equal(t, now, confirmedAt)
	})

	t.Run("rejected status moves purchase to failed without a paid time", func(t *testing.T) {
		purchase, _ := NewPurchase("purchase-1", testBuyer(), testProduct(), 1, GatewayPagSeguro)

		successful, err := purchase.Process(PaymentReturn{PurchaseID: purchase.ID, PaymentID: "pay-1", Status: "ERROR"}, now)
		require.NoError(t, err)

		assert.False(t, successful)
		assert.Equal(t, PurchaseStatusFailed, purchase.Status)
		assert.Nil(t, purchase.PaidAt)
	})

	t.Run("a finished purchase cannot be paid again", func(t *testing.T) {
		purchase, _ := NewPurchase("purchase-1", testBuyer(), testProduct(), 1, GatewayPaypal)
		ret := PaymentReturn{PurchaseID: purchase.ID, PaymentID: "pay-1", Status: "1"}

		_, err := purchase.Process(ret, now)
		require.NoError(t, err)

		_, err = purchase.Process(ret, now)
		assert.ErrorIs(t, err, ErrPurchaseFinished)
		assert.Equal(t, PurchaseStatusPaid, purchase.Status)
	})

	t.Run("a failed purchase cannot be processed again either", func(t *testing.T) {
		purchase, _ := NewPurchase("purchase-1", testBuyer(), testProduct(), 1, GatewayPaypal)

		_, err := purchase.Process(PaymentReturn{PurchaseID: purchase.ID, PaymentID: "pay-1", Status: "2"}, now)
		require.NoError(t, err)

		_, err = purchase.Process(PaymentReturn{PurchaseID: purchase.ID, PaymentID: "pay-2", Status: "1"}, now)
		assert.ErrorIs(t, err, ErrPurchaseFinished)
		assert.Equal(t, PurchaseStatusFailed, purchase.Status)
	})
}

func TestPaymentConfirmedTime(t *testing.T) {
	t.Run("an unfinished purchase has no confirmation timestamp", func(t *testing.T) {
		purchase, _ := NewPurchase("purchase-1", testBuyer(), testProduct(), 1, GatewayPaypal)

		_, err := purchase.PaymentConfirmedTime()
		assert.ErrorIs(t, err, ErrPurchaseUnfinished)
	})

	t.Run("a failed purchase has no confirmation timestamp", func(t *testing.T) {
		purchase, _ := NewPurchase("purchase-1", testBuyer(), testProduct(), 1, GatewayPaypal)
		_, err := purchase.Process(PaymentReturn{PurchaseID: purchase.ID, PaymentID: "pay-1", Status: "2"}, time.Now())
		require.NoError(t, err)

		_, err = purchase.PaymentConfirmedTime()
		assert.ErrorIs(t, err, ErrPurchaseUnfinished)
	})
}
