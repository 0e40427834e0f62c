// Package generator is the single entry point for cold email generation.
// It validates preconditions, builds the prompt, executes the chat
// completion call, and parses the model output into a subject/body pair.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/config"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/llm"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/logger"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/metrics"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/observability"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/prompt"
)

// Request carries the domain parameters for one generation call.
type Request struct {
	Company       string `json:"company" binding:"required"`
	Role          string `json:"role" binding:"required"`
	SenderEmail   string `json:"sender_email" binding:"required"`
	ReceiverEmail string `json:"receiver_email" binding:"required"`
	Position      string `json:"position"` // optional
	SenderName    string `json:"sender_name"`
}

// Result is the parsed generation output. Both fields may be empty strings
// when the model produced nothing parseable - never absent, never nil.
type Result struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ConfigError reports missing required configuration (API key, sender
// name). Raised before any network call; never retried.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Detail
}

// Completer abstracts the chat completion client for testing.
type Completer interface {
	Complete(ctx context.Context, messages []llm.ChatMessage) (*llm.Completion, error)
	Model() string
}

// Service orchestrates prompt building, the resilient API call, and
// response parsing.
type Service struct {
	client  Completer
	builder *prompt.Builder
	cfg     *config.Config
	cw      *metrics.Client // optional
}

// NewService creates the generation facade from process configuration.
// The metrics client may be nil.
func NewService(cfg *config.Config, cw *metrics.Client) *Service {
	return &Service{
		client:  llm.NewClient(cfg),
		builder: prompt.NewBuilder(),
		cfg:     cfg,
		cw:      cw,
	}
}

// Generate produces a cold email for the given request. On failure it
// returns exactly one of *ConfigError, *llm.RateLimitError,
// *llm.RequestError, or *llm.ResponseShapeError.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	if s.cfg.MistralAPIKey == "" {
		return nil, &ConfigError{Detail: "MISTRAL_API_KEY is not set"}
	}
	if strings.TrimSpace(req.SenderName) == "" {
		return nil, &ConfigError{Detail: "sender name must not be empty"}
	}

	messages := s.builder.BuildMessages(prompt.Params{
		Company:       req.Company,
		Role:          req.Role,
		SenderEmail:   req.SenderEmail,
		ReceiverEmail: req.ReceiverEmail,
		Position:      req.Position,
		SenderName:    req.SenderName,
	})

	trace := observability.GetClient().StartTrace(ctx, "cold_email_generation", map[string]interface{}{
		"company": req.Company,
		"role":    req.Role,
	})
	defer trace.Finish()
	gen := trace.Generation("chat_completion", nil)

	start := time.Now()
	completion, err := s.client.Complete(ctx, messages)
	if err != nil {
		gen.FinishWithError(err)
		logger.Error("Email generation failed", err, logger.Fields{
			"model":   s.client.Model(),
			"company": req.Company,
		})
		return nil, err
	}

	gen.LogChatCompletion(s.client.Model(), messages, completion.Content, completion.Usage)
	gen.Finish()

	if s.cw != nil {
		s.cw.RecordTokenUsage(s.client.Model(),
			completion.Usage.TotalTokens,
			completion.Usage.PromptTokens,
			completion.Usage.CompletionTokens)
	}

	logger.LogGeneration(s.client.Model(), time.Since(start), map[string]interface{}{
		"total_tokens":      completion.Usage.TotalTokens,
		"prompt_tokens":     completion.Usage.PromptTokens,
		"completion_tokens": completion.Usage.CompletionTokens,
		"cost":              observability.FormatCost(observability.CalculateMistralCost(s.client.Model(), completion.Usage)),
	}, nil)

	subject, body := ParseSubjectBody(completion.Content)
	if subject == "" && body == "" {
		// Lenient parse found nothing; surface it in logs so a blank email
		// is diagnosable, but hand the empty sentinel back to the caller.
		logger.Warn("Model output yielded an empty subject and body", logger.Fields{
			"model": s.client.Model(),
		})
	}

	return &Result{Subject: subject, Body: body}, nil
}

// Export renders a result in the downloadable plain-text shape.
func Export(r *Result) string {
	return fmt.Sprintf("Subject: %s\n\n%s", r.Subject, r.Body)
}
