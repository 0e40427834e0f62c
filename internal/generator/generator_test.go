package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/config"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/llm"
)

func testConfig(url string) *config.Config {
	cfg := config.Load()
	cfg.MistralAPIKey = "test-api-key"
	cfg.MistralChatURL = url
	cfg.MaxRetries = 3
	cfg.RetryDelay = 0
	return cfg
}

func testRequest() Request {
	return Request{
		Company:       "Acme Inc.",
		Role:          "Data Science",
		SenderEmail:   "alice@x.com",
		ReceiverEmail: "jane@acme.com",
		Position:      "Summer 2026 Intern",
		SenderName:    "Alice Smith",
	}
}

// countingServer returns a mock chat completion endpoint and a counter of
// how many calls actually reached it.
func countingServer(t *testing.T, content string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	encoded, err := json.Marshal(content)
	require.NoError(t, err)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":` + string(encoded) + `}}],"usage":{"prompt_tokens":100,"completion_tokens":60,"total_tokens":160}}`))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestGenerate_EndToEnd(t *testing.T) {
	server, calls := countingServer(t, "Subject: Intro — Alice Smith\n\nHi Jane, ... Best, Alice Smith")

	service := NewService(testConfig(server.URL), nil)
	result, err := service.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "Intro — Alice Smith", result.Subject)
	assert.Equal(t, "Hi Jane, ... Best, Alice Smith", result.Body)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerate_EmptySenderNameFailsBeforeNetworkCall(t *testing.T) {
	server, calls := countingServer(t, "Subject: x\n\ny")

	service := NewService(testConfig(server.URL), nil)

	for _, senderName := range []string{"", "   "} {
		req := testRequest()
		req.SenderName = senderName

		result, err := service.Generate(context.Background(), req)

		require.Error(t, err)
		assert.Nil(t, result)

		var configErr *ConfigError
		require.ErrorAs(t, err, &configErr)
		assert.Contains(t, configErr.Error(), "sender name")
	}

	assert.Equal(t, int32(0), calls.Load(), "precondition failures must not reach the network")
}

func TestGenerate_MissingAPIKeyFailsBeforeNetworkCall(t *testing.T) {
	server, calls := countingServer(t, "Subject: x\n\ny")

	cfg := testConfig(server.URL)
	cfg.MistralAPIKey = ""
	service := NewService(cfg, nil)

	_, err := service.Generate(context.Background(), testRequest())

	var configErr *ConfigError
	require.ErrorAs(t, err, &configErr)
	assert.Contains(t, configErr.Error(), "MISTRAL_API_KEY")
	assert.Equal(t, int32(0), calls.Load())
}

func TestGenerate_PropagatesRateLimitError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	service := NewService(testConfig(server.URL), nil)
	result, err := service.Generate(context.Background(), testRequest())

	assert.Nil(t, result, "failure must never fabricate a result")
	var rateLimitErr *llm.RateLimitError
	require.ErrorAs(t, err, &rateLimitErr)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGenerate_PropagatesRequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad model"}`))
	}))
	t.Cleanup(server.Close)

	service := NewService(testConfig(server.URL), nil)
	_, err := service.Generate(context.Background(), testRequest())

	var requestErr *llm.RequestError
	require.ErrorAs(t, err, &requestErr)
	assert.Equal(t, http.StatusBadRequest, requestErr.StatusCode)
}

func TestGenerate_PropagatesResponseShapeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	t.Cleanup(server.Close)

	service := NewService(testConfig(server.URL), nil)
	_, err := service.Generate(context.Background(), testRequest())

	var shapeErr *llm.ResponseShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestGenerate_EmptyContentIsShapeError(t *testing.T) {
	server, _ := countingServer(t, "")

	service := NewService(testConfig(server.URL), nil)
	result, err := service.Generate(context.Background(), testRequest())

	// An empty content field is a shape error, not a blank result.
	assert.Nil(t, result)
	var shapeErr *llm.ResponseShapeError
	require.ErrorAs(t, err, &shapeErr)
}

func TestGenerate_FormatDriftDegradesGracefully(t *testing.T) {
	server, _ := countingServer(t, "Hello there\nI wanted to reach out... Best, Alice Smith")

	service := NewService(testConfig(server.URL), nil)
	result, err := service.Generate(context.Background(), testRequest())

	require.NoError(t, err)
	assert.Equal(t, "Hello there", result.Subject)
	assert.Equal(t, "I wanted to reach out... Best, Alice Smith", result.Body)
}

func TestExport(t *testing.T) {
	text := Export(&Result{Subject: "Hello", Body: "Hi Jane.\nBest, Alice"})
	assert.Equal(t, "Subject: Hello\n\nHi Jane.\nBest, Alice", text)
}
