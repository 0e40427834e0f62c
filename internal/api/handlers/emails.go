package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/generator"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/history"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/llm"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/logger"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/mailer"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/metrics"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// EmailGenerator abstracts the generation facade for handler tests.
type EmailGenerator interface {
	Generate(ctx context.Context, req generator.Request) (*generator.Result, error)
}

// HistoryStore is the subset of the history store the handlers call.
type HistoryStore interface {
	Record(record *history.GenerationRecord) error
	MarkDelivered(requestID string) error
	Recent(limit int) ([]history.GenerationRecord, error)
}

// EmailHandler serves the generation and delivery endpoints.
type EmailHandler struct {
	service EmailGenerator
	sender  mailer.Sender
	store   HistoryStore // nil when DATABASE_URL is not configured
	cw      *metrics.Client
	model   string
}

// NewEmailHandler wires the generation facade, the mail sender, and the
// optional history store into one handler.
func NewEmailHandler(service EmailGenerator, sender mailer.Sender, store HistoryStore, cw *metrics.Client, model string) *EmailHandler {
	return &EmailHandler{
		service: service,
		sender:  sender,
		store:   store,
		cw:      cw,
		model:   model,
	}
}

// Generate handles POST /api/v1/emails/generate
func (h *EmailHandler) Generate(c *gin.Context) {
	var req generator.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	result, err := h.service.Generate(c.Request.Context(), req)
	duration := time.Since(start)

	if h.cw != nil {
		h.cw.RecordGenerationDuration(duration, err == nil)
	}
	if err != nil {
		h.renderGenerationError(c, err)
		return
	}

	if h.store != nil {
		record := &history.GenerationRecord{
			RequestID:     c.GetString("request_id"),
			Company:       req.Company,
			TargetRole:    req.Role,
			Position:      req.Position,
			SenderEmail:   req.SenderEmail,
			ReceiverEmail: req.ReceiverEmail,
			Subject:       result.Subject,
			Model:         h.model,
			DurationMs:    duration.Milliseconds(),
		}
		if err := h.store.Record(record); err != nil {
			logger.Error("Failed to record generation history", err, logger.WithContext(c))
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"subject":  result.Subject,
		"body":     result.Body,
		"download": generator.Export(result),
	})
}

// SendRequest is the payload for POST /api/v1/emails/send. RequestID is the
// generation's request ID (returned to the client in the X-Request-ID header
// of the generate response); when present, the matching history record is
// flagged as delivered.
type SendRequest struct {
	To        string `json:"to" binding:"required"`
	From      string `json:"from"`
	Subject   string `json:"subject" binding:"required"`
	Body      string `json:"body" binding:"required"`
	RequestID string `json:"request_id"`
}

// Send handles POST /api/v1/emails/send
func (h *EmailHandler) Send(c *gin.Context) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := mailer.Message{
		To:      req.To,
		From:    req.From,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := h.sender.Send(c.Request.Context(), msg); err != nil {
		var validationErr *mailer.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		logger.Error("Email delivery failed", err, logger.WithContext(c))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Email delivery failed"})
		return
	}

	if h.store != nil && req.RequestID != "" {
		if err := h.store.MarkDelivered(req.RequestID); err != nil {
			fields := logger.WithContext(c)
			fields["error"] = err
			fields["generation_request_id"] = req.RequestID
			logger.Warn("Failed to mark generation as delivered", fields)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

// History handles GET /api/v1/emails/history
func (h *EmailHandler) History(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "History is disabled (DATABASE_URL not configured)"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 100"})
			return
		}
		limit = parsed
	}

	records, err := h.store.Recent(limit)
	if err != nil {
		logger.Error("Failed to list generation history", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"generations": records})
}

// renderGenerationError maps the generation error taxonomy onto HTTP
// responses. Rate-limit exhaustion is the only retryable condition and is
// told apart from hard failures so the caller can present it as transient.
func (h *EmailHandler) renderGenerationError(c *gin.Context, err error) {
	var configErr *generator.ConfigError
	var rateLimitErr *llm.RateLimitError
	var requestErr *llm.RequestError
	var shapeErr *llm.ResponseShapeError

	switch {
	case errors.As(err, &configErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": configErr.Error()})
	case errors.As(err, &rateLimitErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "The generation service is temporarily overloaded, please retry later",
		})
	case errors.As(err, &requestErr):
		logger.Error("Upstream API request failed", err, logger.WithContext(c))
		c.JSON(http.StatusBadGateway, gin.H{"error": requestErr.Error()})
	case errors.As(err, &shapeErr):
		logger.Error("Upstream API response shape changed", err, logger.WithContext(c))
		c.JSON(http.StatusBadGateway, gin.H{"error": shapeErr.Error()})
	default:
		logger.Error("Unclassified generation error", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
