package router

import (
	"github.com/gin-gonic/gin"

	"fiscoex/internal/handler"
	"fiscoex/internal/middleware"
	"fiscoex/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	sessionSvc service.SessionService,
	corsOrigins []string,
	sessionH *handler.SessionHandler,
	documentH *handler.DocumentHandler,
	exportH *handler.ExportHandler,
	analysisH *handler.AnalysisHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", sessionH.Login)

	// Protected routes - require valid session JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(sessionSvc))

	docs := protected.Group("/documents")
	docs.POST("", documentH.Upload)
	docs.GET("", documentH.List)
	docs.GET("/:id", documentH.GetByID)
	docs.GET("/:id/export", exportH.Export)
	docs.POST("/:id/analysis", analysisH.Analyze)

	return r
}
