package purchases

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/domain"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/postpurchase"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/product_repo"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/purchase_repo"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/user_repo"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/util"
)

type PurchaseService interface {
	// Reserve decrements stock, creates the pending purchase and answers
	// with the gateway checkout URL the buyer must be redirected to.
	Reserve(ctx context.Context, buyerEmail string, req *NewPurchaseRequest) (*NewPurchaseResponse, error)

	// ConfirmPayment consumes a gateway callback, moves the purchase to its
	// terminal state exactly once and fans out the post-purchase actions.
	// Success and failure are both valid terminal outcomes, not errors.
	ConfirmPayment(ctx context.Context, ret *PaymentReturnRequest) error

	GetPurchase(ctx context.Context, purchaseID string) (*PurchaseResponse, error)
}

type purchaseService struct {
	productRepo  product_repo.ProductRepository
	purchaseRepo purchase_repo.PurchaseRepository
	userRepo     user_repo.UserRepository
	pipeline     *postpurchase.Pipeline
	baseURL      *url.URL
	logger       *zap.Logger
}

func NewPurchaseService(
	productRepo product_repo.ProductRepository,
	purchaseRepo purchase_repo.PurchaseRepository,
	userRepo user_repo.UserRepository,
	pipeline *postpurchase.Pipeline,
	baseURL *url.URL,
	logger *zap.Logger,
) PurchaseService {
	return &purchaseService{
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		pipeline:     pipeline,
		baseURL:      baseURL,
		logger:       logger,
	}
}

func (s *purchaseService) Reserve(ctx context.Context, buyerEmail string, req *NewPurchaseRequest) (*NewPurchaseResponse, error) {
	buyer, err := s.userRepo.GetByEmail(ctx, buyerEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("Buyer is not registered", zap.String("email", buyerEmail))
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error("Failed to get buyer", zap.String("email", buyerEmail), zap.Error(err))
		return nil, fmt.Errorf("failed to get buyer: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("Product is not registered", zap.String("product_id", req.ProductID))
			return nil, domain.ErrProductNotFound
		}
		s.logger.Error("Failed to get product", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	purchase, err := domain.NewPurchase(util.GenerateUUID(), buyer, product, req.Quantity, domain.PaymentGateway(req.PaymentGateway))
	if err != nil {
		s.logger.Warn("Invalid purchase request", zap.String("product_id", req.ProductID), zap.Error(err))
		return nil, err
	}

	if err := s.productRepo.ReserveStockAndCreatePurchase(ctx, purchase); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			s.logger.Info("Reservation rejected, product out of stock",
				zap.String("product_id", product.ID),
				zap.Int("quantity", req.Quantity))
			return nil, domain.ErrInsufficientStock
		}
		s.logger.Error("Failed to reserve stock", zap.String("product_id", product.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to reserve stock: %w", err)
	}

	s.logger.Info("Purchase created",
		zap.String("purchase_id", purchase.ID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", purchase.Quantity),
		zap.String("gateway", string(purchase.Gateway)))

	return &NewPurchaseResponse{
		PurchaseID: purchase.ID,
		PaymentURL: s.paymentURL(purchase),
	}, nil
}

func (s *purchaseService) ConfirmPayment(ctx context.Context, ret *PaymentReturnRequest) error {
	purchase, err := s.purchaseRepo.GetByID(ctx, ret.PurchaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("Purchase not found for payment return", zap.String("purchase_id", ret.PurchaseID))
			return domain.ErrPurchaseNotFound
		}
		s.logger.Error("Failed to get purchase", zap.String("purchase_id", ret.PurchaseID), zap.Error(err))
		return fmt.Errorf("failed to get purchase: %w", err)
	}

	product, err := s.productRepo.GetByID(ctx, purchase.ProductID)
	if err != nil {
		s.logger.Error("Failed to get product of purchase", zap.String("purchase_id", purchase.ID), zap.Error(err))
		return fmt.Errorf("failed to get product of purchase: %w", err)
	}

	buyer, err := s.userRepo.GetByID(ctx, purchase.BuyerID)
	if err != nil {
		s.logger.Error("Failed to get buyer of purchase", zap.String("purchase_id", purchase.ID), zap.Error(err))
		return fmt.Errorf("failed to get buyer of purchase: %w", err)
	}

	seller, err := s.userRepo.GetByID(ctx, product.SellerID)
	if err != nil {
		s.logger.Error("Failed to get seller of purchase", zap.String("purchase_id", purchase.ID), zap.Error(err))
		return fmt.Errorf("failed to get seller of purchase: %w", err)
	}

	paymentReturn := domain.PaymentReturn{
		PurchaseID: ret.PurchaseID,
		PaymentID:  ret.PaymentID,
		Status:     ret.Status,
	}

	successful, err := purchase.Process(paymentReturn, time.Now())
	if err != nil {
		s.logger.Warn("Payment return rejected", zap.String("purchase_id", purchase.ID), zap.Error(err))
		return err
	}

	// The conditional update is what makes the transition one-shot under
	// concurrent callbacks; the in-memory check above only fails fast.
	if err := s.purchaseRepo.FinishPurchase(ctx, purchase.ID, purchase.Status, purchase.PaidAt); err != nil {
		if errors.Is(err, domain.ErrPurchaseFinished) {
			s.logger.Warn("Concurrent payment return lost the race", zap.String("purchase_id", purchase.ID))
			return domain.ErrPurchaseFinished
		}
		s.logger.Error("Failed to persist purchase transition", zap.String("purchase_id", purchase.ID), zap.Error(err))
		return fmt.Errorf("failed to persist purchase transition: %w", err)
	}

	s.logger.Info("Purchase reached terminal state",
		zap.String("purchase_id", purchase.ID),
		zap.String("status", string(purchase.Status)),
		zap.Bool("payment_successful", successful))

	processed, err := domain.NewProcessedPurchase(purchase, product, buyer, seller)
	if err != nil {
		s.logger.Error("Failed to project processed purchase", zap.String("purchase_id", purchase.ID), zap.Error(err))
		return fmt.Errorf("failed to project processed purchase: %w", err)
	}

	s.pipeline.Run(ctx, processed, s.baseURL)
	return nil
}

func (s *purchaseService) GetPurchase(ctx context.Context, purchaseID string) (*PurchaseResponse, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPurchaseNotFound
		}
		s.logger.Error("Failed to get purchase", zap.String("purchase_id", purchaseID), zap.Error(err))
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}

	resp := &PurchaseResponse{
		ID:        purchase.ID,
		ProductID: purchase.ProductID,
		Quantity:  purchase.Quantity,
		Gateway:   string(purchase.Gateway),
		Status:    string(purchase.Status),
		PaidAt:    purchase.PaidAt,
	}
	if purchase.Status != domain.PurchaseStatusPaid {
		resp.PaymentURL = s.paymentURL(purchase)
	}
	return resp, nil
}

func (s *purchaseService) paymentURL(purchase *domain.Purchase) string {
	redirect := s.baseURL.JoinPath("/api/purchases/confirm-payment")
	return purchase.Gateway.PaymentURL(purchase.ID, redirect.String())
}
