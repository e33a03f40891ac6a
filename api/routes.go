package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/talentstack/cvintake/api/handlers"
	"github.com/talentstack/cvintake/api/middleware"
	"github.com/talentstack/cvintake/internal/repository"
	"github.com/talentstack/cvintake/internal/tracing"
	"github.com/talentstack/cvintake/services"
)

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(ctx context.Context, r *gin.Engine, s *services.Services, repos *repository.Repositories, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}
	if repos == nil {
		panic("Repositories cannot be nil")
	}

	// Add recovery middlewares
	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))

	// Health check endpoint (no auth needed)
	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  "X-CVINTAKE-API-KEY",
		ValidAPIKey: apikey,
	})

	// API group with version
	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	{
		inbox := api.Group("/inbox")
		{
			inbox.GET("/count", tracing.TracingEnhancer(ctx, "GET /inbox/count"), handlers.InboxCount(s.MessageSource))
			inbox.GET("/:index", tracing.TracingEnhancer(ctx, "GET /inbox/:index"), handlers.InspectMessage(s.IngestionService))
			inbox.POST("/refresh", tracing.TracingEnhancer(ctx, "POST /inbox/refresh"), handlers.RefreshInbox(s.IngestionService))
		}

		candidates := api.Group("/candidates")
		{
			candidates.GET("", tracing.TracingEnhancer(ctx, "GET /candidates"), handlers.ListCandidates(repos.CandidateRepository))
			candidates.GET("/:id", tracing.TracingEnhancer(ctx, "GET /candidates/:id"), handlers.GetCandidate(repos.CandidateRepository))
		}

		mail := api.Group("/mail")
		{
			mail.PUT("/send", tracing.TracingEnhancer(ctx, "PUT /mail/send"), handlers.SendDecision(s.NotificationService))
		}
	}
}
