package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"MISTRAL_API_KEY", "MISTRAL_MODEL", "MISTRAL_CHAT_URL",
		"MAX_RETRIES", "RETRY_DELAY", "REQUEST_TIMEOUT", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "mistral-large-latest", cfg.MistralModel)
	assert.Equal(t, "https://api.mistral.ai/v1/chat/completions", cfg.MistralChatURL)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.RetryDelay)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 0.5, cfg.Temperature)
	assert.Equal(t, 500, cfg.MaxTokens)
	assert.Empty(t, cfg.MistralAPIKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MISTRAL_MODEL", "mistral-small-latest")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("RETRY_DELAY", "250ms")

	cfg := Load()

	assert.Equal(t, "mistral-small-latest", cfg.MistralModel)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("RETRY_DELAY", "2s")
	assert.Equal(t, 2*time.Second, Load().RetryDelay)

	// Bare integers are legacy "seconds" values
	t.Setenv("RETRY_DELAY", "7")
	assert.Equal(t, 7*time.Second, Load().RetryDelay)

	t.Setenv("RETRY_DELAY", "garbage")
	assert.Equal(t, 5*time.Second, Load().RetryDelay)
}
