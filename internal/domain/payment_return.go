package domain

// PaymentReturn is the callback a payment gateway sends after the buyer
// finishes (or abandons) checkout. It is consumed exactly once and never
// persisted by the core.
type PaymentReturn struct {
	PurchaseID string
	PaymentID  string
	Status     string
}
