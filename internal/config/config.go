package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	ServerPort int

	DBConfig struct {
		DBHost     string `env:"LOJA_DB_HOST"`
		DBPort     string `env:"LOJA_DB_PORT"`
		DBUser     string `env:"LOJA_DB_USER"`
		DBPassword string `env:"LOJA_DB_PASSWORD"`
		DBName     string `env:"LOJA_DB_NAME"`
		DBSSLMode  string `env:"LOJA_DB_SSLMODE"`
	}

	MigrationsPath string `env:"LOJA_MIGRATIONS_PATH"`

	KafkaURL                 string `env:"KAFKA_BROKER_URL"`
	KafkaPurchaseStatusTopic string `env:"KAFKA_PURCHASE_STATUS_TOPIC"`

	// BaseURL is the public address of this service, used to build gateway
	// redirect and retry-payment links.
	BaseURL string `env:"LOJA_BASE_URL"`

	InvoiceSystemURL  string `env:"INVOICE_SYSTEM_URL"`
	SellersRankingURL string `env:"SELLERS_RANKING_URL"`

	// ProductionMode switches the post-purchase integrations on. Outside
	// production the pipeline runs with no-op collaborators.
	ProductionMode bool `env:"LOJA_PRODUCTION_MODE"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	portStr := getEnvOrDefault("LOJA_SERVER_PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid LOJA_SERVER_PORT: %w", err)
	}
	cfg.ServerPort = port

	cfg.DBConfig.DBHost = getEnvOrDefault("LOJA_DB_HOST", "localhost")
	cfg.DBConfig.DBPort = getEnvOrDefault("LOJA_DB_PORT", "5432")
	cfg.DBConfig.DBUser = getEnvOrDefault("LOJA_DB_USER", "postgres")
	cfg.DBConfig.DBPassword = getEnvOrDefault("LOJA_DB_PASSWORD", "postgres")
	cfg.DBConfig.DBName = getEnvOrDefault("LOJA_DB_NAME", "loja_db")
	cfg.DBConfig.DBSSLMode = getEnvOrDefault("LOJA_DB_SSLMODE", "disable")

	cfg.MigrationsPath = getEnvOrDefault("LOJA_MIGRATIONS_PATH", "file://migrations")

	cfg.KafkaURL = getEnvOrDefault("KAFKA_BROKER_URL", "localhost:9092")
	cfg.KafkaPurchaseStatusTopic = getEnvOrDefault("KAFKA_PURCHASE_STATUS_TOPIC", "purchase_status_updates")

	cfg.BaseURL = getEnvOrDefault("LOJA_BASE_URL", fmt.Sprintf("http://localhost:%d", port))

	cfg.InvoiceSystemURL = getEnvOrDefault("INVOICE_SYSTEM_URL", cfg.BaseURL)
	cfg.SellersRankingURL = getEnvOrDefault("SELLERS_RANKING_URL", cfg.BaseURL)

	cfg.ProductionMode = getEnvOrDefault("LOJA_PRODUCTION_MODE", "false") == "true"

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetDBMigrationConnectionString() string {
	return fmt.Sprintf("%s:%s@%s:%s/%s?sslmode=%s",
		c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetKafkaBrokers() []string {
	return []string{c.KafkaURL}
}
