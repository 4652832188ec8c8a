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

type SellersRankingRequest struct {
	PurchaseID  string `json:"purchase_id"`
	SellerEmail string `json:"seller_email"`
}

// SellersRankingClient reports a confirmed purchase to the seller ranking
// system.
type SellersRankingClient interface {
	RegisterPurchase(ctx context.Context, req SellersRankingRequest) error
}

type httpSellersRankingClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewSellersRankingClient(baseURL string, l *zap.Logger) SellersRankingClient {
	return &httpSellersRankingClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     l,
	}
}

func (c *httpSellersRankingClient) RegisterPurchase(ctx context.Context, req SellersRankingRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal sellers ranking request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sellerRanking/newPurchase", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sellers ranking request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sellers ranking system call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sellers ranking system returned status %d", resp.StatusCode)
	}

	c.logger.Debug("Purchase registered on sellers ranking", zap.String("purchase_id", req.PurchaseID))
	return nil
}
