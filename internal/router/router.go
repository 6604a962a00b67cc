package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lintahlo/potential-backend/internal/config"
	"github.com/lintahlo/potential-backend/internal/handler"
	"github.com/lintahlo/potential-backend/internal/middleware"
	"github.com/lintahlo/potential-backend/internal/response"
	"github.com/lintahlo/potential-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Question   *handler.QuestionHandler
	Vocabulary *handler.VocabularyHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/me", middleware.RequireAdminJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Question Group (Public Reads) ──────────────────────────────
	questions := router.Group("/api/v1/questions")
	{
		questions.GET("", handlers.Question.List)
		questions.GET("/random", handlers.Question.Random)
		questions.GET("/filters", handlers.Question.Filters)
	}

	// ─── 3. Vocabulary Group (Public) ──────────────────────────────────
	vocabulary := router.Group("/api/v1/vocabulary")
	{
		vocabulary.GET("/cards", handlers.Vocabulary.ListCards)
		vocabulary.GET("/cards/due", handlers.Vocabulary.DueCards)
		vocabulary.GET("/stats", handlers.Vocabulary.Stats)
		vocabulary.POST("/cards/:id/review", handlers.Vocabulary.Review)
	}

	// ─── 4. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.POST("/questions", handlers.Question.Create)
		adminAPI.POST("/vocabulary/cards", handlers.Vocabulary.CreateCard)
	}

	return router
}
