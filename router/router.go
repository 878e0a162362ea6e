package router

import (
	"github.com/gin-gonic/gin"
	"github.com/nadit/nadit-backend/config"
	"github.com/nadit/nadit-backend/handlers"
	"github.com/nadit/nadit-backend/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	RootHandler     *handlers.RootHandler
	HealthHandler   *handlers.HealthHandler
	FeedbackHandler *handlers.FeedbackHandler
	// Gatherer backs /metrics. Defaults to the global Prometheus registry.
	Gatherer prometheus.Gatherer
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	handlers.RegisterValidation()

	r := gin.New()

	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	r.NoRoute(middleware.NotFoundHandler())

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.GET("/", deps.RootHandler.Root)
	r.GET("/test", deps.HealthHandler.DatabaseDiagnostic)
	r.GET("/health/liveness", deps.HealthHandler.LivenessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/hello", deps.RootHandler.Hello)
		api.POST("/feedback", deps.FeedbackHandler.SubmitFeedback)
	}

	return r
}
