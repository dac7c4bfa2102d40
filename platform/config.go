package platform

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every environment-sourced setting. Load fails fast on the one
// value the server must never run without: the token signing secret.
type Config struct {
	Port string

	JWTSecret         string
	JWTAlgorithm      string
	JWTExpiresMinutes int

	SQLHost     string
	SQLPort     string
	SQLUser     string
	SQLPassword string
	SQLDBName   string

	LLMBaseURL        string
	LLMAPIKey         string
	LLMModel          string
	LLMSiteURL        string
	LLMAppName        string
	LLMConnectTimeout time.Duration
	LLMReadTimeout    time.Duration

	ChatMemoryMessages int

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	DigestTo     string
}

// LoadConfig reads the environment, .env included when present.
func LoadConfig() (*Config, error) {
	// .env is a development convenience; production sets real env vars
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is missing in environment")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		JWTSecret:          secret,
		JWTAlgorithm:       getEnv("JWT_ALGORITHM", "HS256"),
		JWTExpiresMinutes:  getEnvInt("JWT_EXPIRES_MINUTES", 15),
		SQLHost:            os.Getenv("SQL_HOST"),
		SQLPort:            getEnv("SQL_PORT", "3306"),
		SQLUser:            os.Getenv("SQL_USER"),
		SQLPassword:        os.Getenv("SQL_PASSWORD"),
		SQLDBName:          getEnv("SQL_DBNAME", "assistantia"),
		LLMBaseURL:         getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMAPIKey:          os.Getenv("OPENROUTER_API_KEY"),
		LLMModel:           getEnv("OPENROUTER_MODEL", "openrouter/auto"),
		LLMSiteURL:         getEnv("OPENROUTER_SITE_URL", "http://localhost:3000"),
		LLMAppName:         getEnv("OPENROUTER_APP_NAME", "AssistantIA"),
		LLMConnectTimeout:  10 * time.Second,
		LLMReadTimeout:     30 * time.Second,
		ChatMemoryMessages: getEnvInt("CHAT_MEMORY_MESSAGES", 8),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUser:           os.Getenv("SMTP_USER"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		DigestTo:           os.Getenv("DIGEST_TO"),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
