package domain

import "fmt"

type PaymentGateway string

const (
	GatewayPaypal    PaymentGateway = "PAYPAL"
	GatewayPagSeguro PaymentGateway = "PAGSEGURO"
)

// approvedStatuses maps each gateway to the exact token it uses to report an
// approved payment. Paypal answers with a numeric code, PagSeguro with a
// string literal. New gateways are added here and nowhere else.
var approvedStatuses = map[PaymentGateway]string{
	GatewayPaypal:    "1",
	GatewayPagSeguro: "SUCESSO",
}

var paymentURLFormats = map[PaymentGateway]string{
	GatewayPaypal:    "https://paypal.com/%s?redirectUrl=%s",
	GatewayPagSeguro: "https://pagseguro.com/%s?redirectUrl=%s",
}

func (g PaymentGateway) IsValid() bool {
	_, ok := approvedStatuses[g]
	return ok
}

// IsPaymentSuccessful decodes a raw gateway status token. An unknown gateway
// fails closed: a misconfigured purchase must never report success.
func (g PaymentGateway) IsPaymentSuccessful(status string) bool {
	approved, ok := approvedStatuses[g]
	return ok && status == approved
}

// PaymentURL builds the gateway checkout address the buyer is redirected to.
func (g PaymentGateway) PaymentURL(purchaseID, redirectURL string) string {
	format, ok := paymentURLFormats[g]
	if !ok {
		return ""
	}
	return fmt.Sprintf(format, purchaseID, redirectURL)
}
