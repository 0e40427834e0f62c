package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultModel   = "mistral-large-latest"
	defaultChatURL = "https://api.mistral.ai/v1/chat/completions"

	defaultMaxRetries     = 3
	defaultRetryDelay     = 5 * time.Second
	defaultRequestTimeout = 30 * time.Second

	defaultTemperature = 0.5
	defaultMaxTokens   = 500
)

// Config holds the application configuration.
// Loaded once at process start and treated as read-only afterwards -
// nothing in the request path mutates it.
type Config struct {
	// Environment
	Environment string
	Port        string

	// Mistral chat completion API
	MistralAPIKey  string // Required for generation; absence fails fast at call time
	MistralModel   string
	MistralChatURL string
	Temperature    float64
	MaxTokens      int

	// Retry tuning for rate-limited (429) responses.
	// Fixed delay, no jitter - acceptable for a single-user tool.
	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration // Per-attempt HTTP timeout

	// Email delivery (AWS SES)
	AWSRegion string
	EmailFrom string

	// Generation history (optional, disabled when empty)
	DatabaseURL string

	// Observability
	SentryDSN         string
	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseHost      string
	LangfuseEnabled   bool
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		Port:              getEnv("PORT", "8080"),
		MistralAPIKey:     getEnv("MISTRAL_API_KEY", ""),
		MistralModel:      getEnv("MISTRAL_MODEL", defaultModel),
		MistralChatURL:    getEnv("MISTRAL_CHAT_URL", defaultChatURL),
		Temperature:       getEnvFloat("MISTRAL_TEMPERATURE", defaultTemperature),
		MaxTokens:         getEnvInt("MISTRAL_MAX_TOKENS", defaultMaxTokens),
		MaxRetries:        getEnvInt("MAX_RETRIES", defaultMaxRetries),
		RetryDelay:        getEnvDuration("RETRY_DELAY", defaultRetryDelay),
		RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", defaultRequestTimeout),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		EmailFrom:         getEnv("EMAIL_FROM", ""),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration reads a duration like "5s" or "500ms". Bare integers are
// treated as seconds for compatibility with older deployments.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if parsed, err := time.ParseDuration(value); err == nil {
		return parsed
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
