package domain

import (
	"errors"
	"time"
)

type PurchaseStatus string

const (
	PurchaseStatusPending PurchaseStatus = "PENDING"
	PurchaseStatusPaid    PurchaseStatus = "PAID"
	PurchaseStatusFailed  PurchaseStatus = "FAILED"
)

// Purchase is one buyer's attempt to acquire a reserved quantity of a
// product through a chosen gateway. It leaves PENDING exactly once.
type Purchase struct {
	ID        string
	BuyerID   string
	ProductID string
	Quantity  int
	Gateway   PaymentGateway
	Status    PurchaseStatus
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewPurchase(id string, buyer *User, product *Product, quantity int, gateway PaymentGateway) (*Purchase, error) {
	if buyer == nil {
		return nil, errors.New("buyer must not be nil")
	}
	if product == nil {
		return nil, errors.New("product must not be nil")
	}
	if quantity < 1 {
		return nil, errors.New("quantity must not be less than 1")
	}
	if !gateway.IsValid() {
		return nil, errors.New("payment gateway is not supported")
	}
	now := time.Now()
	return &Purchase{
		ID:        id,
		BuyerID:   buyer.ID,
		ProductID: product.ID,
		Quantity:  quantity,
		Gateway:   gateway,
		Status:    PurchaseStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *Purchase) IsFinished() bool {
	return p.Status != PurchaseStatusPending
}

// Process applies the gateway's verdict and moves the purchase to its
// terminal state. A purchase that already left PENDING rejects any further
// callback with ErrPurchaseFinished.
func (p *Purchase) Process(ret PaymentReturn, now time.Time) (bool, error) {
	if p.IsFinished() {
		return false, ErrPurchaseFinished
	}

	successful := p.Gateway.IsPaymentSuccessful(ret.Status)
	if successful {
		p.Status = PurchaseStatusPaid
		p.PaidAt = &now
	} else {
		p.Status = PurchaseStatusFailed
	}
	p.UpdatedAt = now

	return successful, nil
}

// PaymentConfirmedTime is only readable once the payment went through.
func (p *Purchase) PaymentConfirmedTime() (time.Time, error) {
	if p.Status != PurchaseStatusPaid || p.PaidAt == nil {
		return time.Time{}, ErrPurchaseUnfinished
	}
	return *p.PaidAt, nil
}
