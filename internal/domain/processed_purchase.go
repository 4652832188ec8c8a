package domain

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// ProcessedPurchase is the read-only projection of a purchase that just
// reached a terminal state. It is the sole input of every post-purchase
// action, so actions never touch the mutable Purchase/Product records.
type ProcessedPurchase struct {
	ID          string
	Successful  bool
	BuyerEmail  string
	SellerEmail string
	ProductID   string
	ProductName string
	Quantity    int
	Gateway     PaymentGateway
	paidAt      *time.Time
}

func NewProcessedPurchase(purchase *Purchase, product *Product, buyer, seller *User) (*ProcessedPurchase, error) {
	if purchase == nil || product == nil || buyer == nil || seller == nil {
		return nil, errors.New("processed purchase requires purchase, product, buyer and seller")
	}
	if !purchase.IsFinished() {
		return nil, errors.New("cannot project an unfinished purchase")
	}
	return &ProcessedPurchase{
		ID:          purchase.ID,
		Successful:  purchase.Status == PurchaseStatusPaid,
		BuyerEmail:  buyer.Email,
		SellerEmail: seller.Email,
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    purchase.Quantity,
		Gateway:     purchase.Gateway,
		paidAt:      purchase.PaidAt,
	}, nil
}

func (p *ProcessedPurchase) IsPaymentSuccessful() bool {
	return p.Successful
}

func (p *ProcessedPurchase) PaymentConfirmedTime() (time.Time, error) {
	if !p.Successful || p.paidAt == nil {
		return time.Time{}, ErrPurchaseUnfinished
	}
	return *p.paidAt, nil
}

// PaymentURL builds the address where the buyer can retry a failed payment:
// the gateway checkout again, redirecting back to this purchase.
func (p *ProcessedPurchase) PaymentURL(base *url.URL) (string, error) {
	if p.Successful {
		return "", errors.New("a successful purchase has no retry payment url")
	}
	retry := base.JoinPath(fmt.Sprintf("/api/purchases/%s", p.ID))
	return p.Gateway.PaymentURL(p.ID, retry.String()), nil
}
