package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Siddharth1254/ai-cold-email-generator/internal/api/handlers"
	apimiddleware "github.com/Siddharth1254/ai-cold-email-generator/internal/api/middleware"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/config"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/generator"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/history"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/mailer"
	"github.com/Siddharth1254/ai-cold-email-generator/internal/metrics"
)

// SetupRouter builds the gin engine with the full middleware chain and the
// email generation endpoints. The history store may be nil.
func SetupRouter(cfg *config.Config, store *history.Store, cw *metrics.Client) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())
	router.Use(apimiddleware.SentryMiddleware())
	router.Use(apimiddleware.RequestTracking(cw))
	router.Use(apimiddleware.CORS())

	healthHandler := handlers.NewHealthHandler(cfg)
	router.GET("/health", healthHandler.HealthCheck)

	genService := generator.NewService(cfg, cw)
	sender := mailer.NewSESMailer(cfg)

	// A typed nil pointer must not become a non-nil interface in the handler.
	var histStore handlers.HistoryStore
	if store != nil {
		histStore = store
	}
	emailHandler := handlers.NewEmailHandler(genService, sender, histStore, cw, cfg.MistralModel)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/emails/generate", emailHandler.Generate)
		v1.POST("/emails/send", emailHandler.Send)
		v1.GET("/emails/history", emailHandler.History)
	}

	return router
}
