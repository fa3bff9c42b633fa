// Package server assembles the HTTP surface: middleware chain, health
// probe, metrics endpoint and the feature routes.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/coverletter"
	"skillbridge-backend/internal/reports"
	"skillbridge-backend/internal/shared/config"
	"skillbridge-backend/internal/shared/metrics"
	"skillbridge-backend/internal/shared/server/middleware"
)

// Deps carries everything the router needs.
type Deps struct {
	Config      config.Config
	Reports     *reports.Handler
	CoverLetter *coverletter.Handler
}

// NewRouter builds the gin engine with the full middleware chain and all
// routes registered.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	router.GET("/health", healthHandler)
	router.GET("/metrics", metrics.Handler())

	api := router.Group("/api/v1")
	api.GET("/health", healthHandler)

	// Analysis and cover letter routes share one token bucket per client:
	// each request fans out to several LLM calls.
	limited := api.Group("", middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"generate": {
				Rate:  deps.Config.AnalyzeRatePerSec,
				Burst: deps.Config.AnalyzeRateBurst,
			},
		},
		GroupFor: func(*gin.Context) string { return "generate" },
	}))
	if deps.Reports != nil {
		deps.Reports.RegisterRoutes(limited)
	}
	if deps.CoverLetter != nil {
		deps.CoverLetter.RegisterRoutes(limited)
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "skillbridge-backend",
	})
}

// NewHTTPServer wraps the engine in an http.Server with timeouts sized
// for the streaming endpoints, which hold the response open for the
// whole pipeline run.
func NewHTTPServer(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      cfg.PipelineTimeout + 30*time.Second,
		IdleTimeout:       90 * time.Second,
	}
}
