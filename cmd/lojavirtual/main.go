package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	app_purchases "github.com/henriquesousazup/nossa-loja-virtual-testes/internal/app/purchases"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/client"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/config"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/email"
	http_outersystems "github.com/henriquesousazup/nossa-loja-virtual-testes/internal/handler/http/outersystems"
	http_purchases "github.com/henriquesousazup/nossa-loja-virtual-testes/internal/handler/http/purchases"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/infrastructure/database"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/infrastructure/kafka"
	"github.com/henriquesousazup/nossa-loja-virtual-testes/internal/postpurchase"
	postgres_email_repo "github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/email_repo/postgres"
	postgres_product_repo "github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/product_repo/postgres"
	postgres_purchase_repo "github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/purchase_repo/postgres"
	postgres_user_repo "github.com/henriquesousazup/nossa-loja-virtual-testes/internal/repository/user_repo/postgres"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	appLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create zap logger: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("Loja virtual service starting...")

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		appLogger.Fatal("Invalid base URL", zap.String("base_url", cfg.BaseURL), zap.Error(err))
	}

	appLogger.Info("Waiting for database to be available...")
	dbConfig := database.DBConfig{
		Host:     cfg.DBConfig.DBHost,
		Port:     cfg.DBConfig.DBPort,
		User:     cfg.DBConfig.DBUser,
		Password: cfg.DBConfig.DBPassword,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.DBSSLMode,
	}

	var db *sql.DB
	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = database.NewPostgresDB(dbConfig)
		if err == nil {
			appLogger.Info("Successfully connected to PostgreSQL database!")
			break
		}
		appLogger.Warn(fmt.Sprintf("Failed to connect to database (attempt %d/%d): %v. Retrying in %s...", i+1, maxRetries, err, retryDelay))
		time.Sleep(retryDelay)
	}

	if db == nil {
		appLogger.Fatal("Could not connect to database after multiple retries. Exiting.", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("Error closing database connection", zap.Error(err))
		} else {
			appLogger.Info("Database connection closed.")
		}
	}()

	appLogger.Info("Running database migrations...")
	migrateDSN := "postgres://" + cfg.GetDBMigrationConnectionString()
	m, err := migrate.New(cfg.MigrationsPath, migrateDSN)
	if err != nil {
		appLogger.Fatal("Failed to create migrate instance", zap.Error(err))
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		appLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	appLogger.Info("Database migrations completed successfully (or no new migrations).")

	productRepository := postgres_product_repo.NewProductRepository(db, appLogger)
	purchaseRepository := postgres_purchase_repo.NewPurchaseRepository(db, appLogger)
	userRepository := postgres_user_repo.NewUserRepository(db, appLogger)
	emailRepository := postgres_email_repo.NewEmailRepository(db, appLogger)

	var actions []postpurchase.Action
	var kafkaProducer kafka.Producer

	if cfg.ProductionMode {
		kafkaProducer, err = kafka.NewProducer(cfg.GetKafkaBrokers(), appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Kafka producer", zap.Error(err))
		}
		defer func() {
			if err := kafkaProducer.Close(); err != nil {
				appLogger.Error("Error closing Kafka producer", zap.Error(err))
			}
		}()

		invoiceClient := client.NewInvoiceClient(cfg.InvoiceSystemURL, appLogger.With(zap.String("component", "InvoiceClient")))
		rankingClient := client.NewSellersRankingClient(cfg.SellersRankingURL, appLogger.With(zap.String("component", "SellersRankingClient")))
		sender := email.NewRepositorySender(emailRepository, appLogger.With(zap.String("component", "EmailSender")))

		actions = []postpurchase.Action{
			postpurchase.NewSendConfirmationToInvoiceSystem(invoiceClient, appLogger),
			postpurchase.NewSendConfirmationToSellersSystem(rankingClient, appLogger),
			postpurchase.NewSendPurchaseEmailConfirmation(sender, appLogger),
			postpurchase.NewSendPurchaseFailEmail(sender, appLogger),
			postpurchase.NewPublishPurchaseStatus(kafkaProducer, cfg.KafkaPurchaseStatusTopic, appLogger),
		}
		appLogger.Info("Post-purchase pipeline wired with production integrations.")
	} else {
		sender := email.NewNoopSender(appLogger.With(zap.String("component", "EmailSender")))
		actions = []postpurchase.Action{
			postpurchase.NewSendPurchaseEmailConfirmation(sender, appLogger),
			postpurchase.NewSendPurchaseFailEmail(sender, appLogger),
		}
		appLogger.Info("Post-purchase pipeline wired with no-op integrations.")
	}

	pipeline := postpurchase.NewPipeline(appLogger.With(zap.String("component", "PostPurchasePipeline")), actions...)

	purchaseService := app_purchases.NewPurchaseService(
		productRepository,
		purchaseRepository,
		userRepository,
		pipeline,
		baseURL,
		appLogger,
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	http_purchases.RegisterRoutes(r, purchaseService, appLogger)
	http_outersystems.RegisterRoutes(r, appLogger)

	serverAddr := fmt.Sprintf(":%d", cfg.ServerPort)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	appLogger.Info("Loja virtual service started", zap.String("address", serverAddr))

	<-sigChan

	appLogger.Info("Shutting down loja virtual service...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Fatal("Graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("Loja virtual service stopped.")
}
