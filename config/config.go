package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadENV loads environment variables from .env when GO_ENV is not set
// to a deployed environment.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		// Missing .env is fine when variables come from the shell.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// EnvironmentVariable holds the full process configuration. It is built
// once at startup and passed by reference into every component that
// needs it; nothing reads ambient process state at call time.
type EnvironmentVariable struct {
	GO_ENV       string
	PORT         int
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string

	// Identity provider
	FIREBASE_PROJECT_ID string
	AUTH_DEV_SECRET     string // enables the HS256 dev verifier when set
	OPERATOR_EMAIL      string // first-contact users with this email become admin

	// Redis (rate limiting); limiter is disabled when unreachable
	REDIS_URL string

	// Outbound side channels; each silently disabled when unset
	SMTP_HOST           string
	SMTP_PORT           int
	SMTP_USERNAME       string
	SMTP_PASSWORD       string
	SMTP_FROM           string
	DISCORD_WEBHOOK_URL string

	ALLOWED_ORIGINS string
	CRON_ENABLED    bool
}

// Get builds the typed configuration from the environment.
func Get() (*EnvironmentVariable, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 3000
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		smtpPort = 587
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		PORT:         port,
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),

		FIREBASE_PROJECT_ID: os.Getenv("FIREBASE_PROJECT_ID"),
		AUTH_DEV_SECRET:     os.Getenv("AUTH_DEV_SECRET"),
		OPERATOR_EMAIL:      strings.ToLower(os.Getenv("OPERATOR_EMAIL")),

		REDIS_URL: os.Getenv("REDIS_URL"),

		SMTP_HOST:           os.Getenv("SMTP_HOST"),
		SMTP_PORT:           smtpPort,
		SMTP_USERNAME:       os.Getenv("SMTP_USERNAME"),
		SMTP_PASSWORD:       os.Getenv("SMTP_PASSWORD"),
		SMTP_FROM:           os.Getenv("SMTP_FROM"),
		DISCORD_WEBHOOK_URL: os.Getenv("DISCORD_WEBHOOK_URL"),

		ALLOWED_ORIGINS: os.Getenv("ALLOWED_ORIGINS"),
		CRON_ENABLED:    os.Getenv("CRON_ENABLED") != "false",
	}

	return envVariables, nil
}
