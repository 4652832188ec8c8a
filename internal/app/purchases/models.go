package purchases

import "time"

type NewPurchaseRequest struct {
	ProductID      string `json:"product_id"`
	Quantity       int    `json:"quantity"`
	PaymentGateway string `json:"payment_gateway"`
}

type NewPurchaseResponse struct {
	PurchaseID string `json:"purchase_id"`
	PaymentURL string `json:"payment_url"`
}

type PaymentReturnRequest struct {
	PurchaseID string `json:"purchase_id"`
	PaymentID  string `json:"payment_id"`
	Status     string `json:"status"`
}

type PurchaseResponse struct {
	ID         string     `json:"id"`
	ProductID  string     `json:"product_id"`
	Quantity   int        `json:"quantity"`
	Gateway    string     `json:"payment_gateway"`
	Status     string     `json:"status"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	PaymentURL string     `json:"payment_url,omitempty"`
}
