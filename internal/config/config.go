package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Secrets (JWT signing key, admin credentials,
// checkout provider keys) are always injected here and never appear as
// literals anywhere in the source tree.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	DBUser           string // database username
	DBPass           string // database password (optional)
	DBHost           string // database host address
	DBPort           string // database port number
	DBName           string // database name
	JWTSecret        string // secret used to sign admin JWTs
	AdminUsername    string // admin login name
	AdminPassword    string // plaintext admin password (dev only, ignored when hash is set)
	AdminPassHash    string // bcrypt hash of the admin password (preferred)
	AccessTTLMin     int    // admin access token time-to-live in minutes
	SessionTTLDays   int    // member session time-to-live in days
	AuthProviderURL  string // base URL of the external identity provider
	StripeSecretKey  string // secret API key for the checkout provider
	StripeWebhookKey string // shared secret expected on webhook calls
	UploadDir        string // directory for uploaded photo files
	AMQPURL          string // RabbitMQ connection URL (empty disables notifications)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the process to exit with a fatal log message. One of ADMIN_PASSWORD
// or ADMIN_PASSWORD_HASH must be present.
func Load() Config {
	cfg := Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		DBUser:           must("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"), // empty allowed
		DBHost:           must("DB_HOST"),
		DBPort:           must("DB_PORT"),
		DBName:           must("DB_NAME"),
		JWTSecret:        must("JWT_SECRET"),
		AdminUsername:    must("ADMIN_USERNAME"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		AdminPassHash:    os.Getenv("ADMIN_PASSWORD_HASH"),
		AccessTTLMin:     envInt("ACCESS_TOKEN_TTL_MIN", 30),
		SessionTTLDays:   envInt("SESSION_TTL_DAYS", 7),
		AuthProviderURL:  must("AUTH_PROVIDER_URL"),
		StripeSecretKey:  os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookKey: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		UploadDir:        envStr("UPLOAD_DIR", "uploads"),
		AMQPURL:          os.Getenv("RABBITMQ_URL"),
	}
	if cfg.AdminPassword == "" && cfg.AdminPassHash == "" {
		log.Fatal("set ADMIN_PASSWORD or ADMIN_PASSWORD_HASH")
	}
	return cfg
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
