// Package main provides the Margdarshak chat server entry point.
package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/margdarshak/margdarshak-go/internal/catalog"
	"github.com/margdarshak/margdarshak-go/internal/chat"
	domerrors "github.com/margdarshak/margdarshak-go/internal/errors"
	"github.com/margdarshak/margdarshak-go/internal/logger"
	"github.com/margdarshak/margdarshak-go/internal/metrics"
	"github.com/margdarshak/margdarshak-go/internal/sentry"
	"github.com/margdarshak/margdarshak-go/internal/translate"
)

// chatRequest is the POST /api/chat payload.
type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, resolver *chat.Resolver, kb *catalog.KnowledgeBase, regional *catalog.Catalog, m *metrics.Metrics, registry *prometheus.Registry, log *logger.Logger) {
	// Root endpoint - redirect to project page
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/margdarshak/margdarshak-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness probe - only that the process is running, never dependencies
	healthzHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthzHandler)
	router.HEAD("/healthz", healthzHandler)

	// Readiness probe - knowledge base is loaded at startup or the process
	// exits, so report the data the instance is serving with.
	readyHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
			"data": gin.H{
				"greetings":         len(kb.Greetings),
				"scholarships":      len(kb.Scholarships),
				"regional_colleges": regional.Len(),
			},
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	api := router.Group("/api")

	api.POST("/chat", func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			m.RecordHTTPError("bad_request", "/api/chat")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request must be JSON"})
			return
		}

		session := c.GetHeader("X-Session-ID")
		if session == "" {
			session = c.ClientIP()
		}

		response, err := resolver.Resolve(c.Request.Context(), session, req.Message, req.Language)
		if err != nil {
			var verr *domerrors.ValidationError
			if errors.As(err, &verr) {
				m.RecordHTTPError("validation", "/api/chat")
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
				return
			}

			m.RecordHTTPError("internal", "/api/chat")
			sentry.CaptureExceptionWithContext(c.Request.Context(), err)
			log.WithRequestID(c.GetString(requestIDKey)).WithError(err).Error("Chat resolution failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		lang := req.Language
		if lang == "" || lang == "auto" || !translate.Supported(lang) {
			lang = "en"
		}
		c.JSON(http.StatusOK, gin.H{
			"response": response,
			"language": lang,
		})
	})

	api.GET("/languages", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"languages": translate.Languages})
	})

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
