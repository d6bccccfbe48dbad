package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Backend  BackendConfig
	Delivery DeliveryConfig
}

type AppConfig struct {
	Name string
	Env  string
}

// ServerConfig addresses the storefront facade's own HTTP listener.
type ServerConfig struct {
	Host string
	Port int
}

// BackendConfig points at the remote catalog/order service. All endpoints
// live under BaseURL + "/api".
type BackendConfig struct {
	BaseURL   string
	TimeoutMS int
}

type DeliveryConfig struct {
	Charge decimal.Decimal
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "communite"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8045),
		},
		Backend: BackendConfig{
			BaseURL:   getEnv("BACKEND_BASE_URL", "http://localhost:5000"),
			TimeoutMS: getEnvAsInt("BACKEND_TIMEOUT_MS", 30000),
		},
		Delivery: DeliveryConfig{
			Charge: getEnvAsDecimal("DELIVERY_CHARGE", decimal.NewFromInt(50)),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is empty")
	}
	if _, err := url.Parse(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("BACKEND_BASE_URL is invalid: %w", err)
	}
	if c.Delivery.Charge.IsNegative() {
		return fmt.Errorf("DELIVERY_CHARGE must not be negative")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvAsDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return defaultVal
}
