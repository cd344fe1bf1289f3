package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort       = "3001"
	defaultPayPalBaseURL = "https://api-m.sandbox.paypal.com"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	AppPort    string
	AppEnv     string
	JWTSecret  string

	PayPalClientID     string
	PayPalClientSecret string
	PayPalBaseURL      string

	CORSAllowOrigin string

	// AllowPlaceholderUsers lets order creation fabricate a customer
	// record for an unknown user id. Demo storefronts only.
	AllowPlaceholderUsers bool
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:                os.Getenv("DB_HOST"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBPort:                os.Getenv("DB_PORT"),
		DBSSLMode:             getEnv("DB_SSLMODE", "disable"),
		AppPort:               getEnv("APP_PORT", defaultAppPort),
		AppEnv:                os.Getenv("APP_ENV"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		PayPalClientID:        getEnv("PAYPAL_CLIENT_ID", "PAYPAL_CLIENT_ID_NOT_SET"),
		PayPalClientSecret:    getEnv("PAYPAL_CLIENT_SECRET", "PAYPAL_CLIENT_SECRET_NOT_SET"),
		PayPalBaseURL:         getEnv("PAYPAL_BASE_URL", defaultPayPalBaseURL),
		CORSAllowOrigin:       getEnv("CORS_ALLOW_ORIGIN", "*"),
		AllowPlaceholderUsers: parseBool(os.Getenv("ALLOW_PLACEHOLDER_USERS")),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

// IsProduction reports whether the service runs with production logging and gin release mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
