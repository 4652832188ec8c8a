package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type InvoiceRequest struct {
	PurchaseID string `json:"purchase_id"`
	BuyerEmail string `json:"buyer_email"`
}

// InvoiceClient notifies the invoicing system about a confirmed purchase.
type InvoiceClient interface {
	RequestInvoice(ctx context.Context, req InvoiceRequest) error
}

type httpInvoiceClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewInvoiceClient(baseURL string, l *zap.Logger) InvoiceClient {
	return &httpInvoiceClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     l,
	}
}

func (c *httpInvoiceClient) RequestInvoice(ctx context.Context, req InvoiceRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal invoice request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/invoice/register", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build invoice request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("invoice system call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("invoice system returned status %d", resp.StatusCode)
	}

	c.logger.Debug("Invoice requested", zap.String("purchase_id", req.PurchaseID))
	return nil
}
