package routes

import (
	"net/http"
	"strings"
	"time"

	"blogify/config"
	"blogify/handlers"
	"blogify/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authLimiter := middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)

	// Public routes
	auth := router.Group("/api/auth")
	auth.Use(middleware.RateLimit(authLimiter))
	auth.POST("/register", handlers.Register)
	auth.POST("/login", handlers.Login)
	auth.GET("/google/url", handlers.GetGoogleAuthURL)
	auth.GET("/google/callback", handlers.GoogleOAuthCallback)

	// Public reads
	router.GET("/api/posts", handlers.ListPosts)
	router.GET("/api/posts/slug/:slug", handlers.GetPostBySlug)
	router.GET("/api/search-suggestions", handlers.SearchSuggestions)
	router.GET("/api/vapid-public-key", handlers.GetVapidPublicKey)

	// Authenticated routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	// Posts
	protected.POST("/posts", handlers.CreatePost)
	protected.GET("/posts/mine", handlers.GetMyPosts)
	protected.GET("/posts/liked", handlers.GetLikedPosts)
	protected.GET("/posts/saved", handlers.GetSavedPosts)

	// Interactions
	protected.POST("/posts/:id/like", handlers.ToggleLike)
	protected.POST("/posts/:id/save", handlers.ToggleSave)
	protected.POST("/posts/:id/comment", handlers.AddComment)
	protected.POST("/posts/:id/report", handlers.ReportContent)

	// Profile & social graph
	protected.GET("/user/profile", handlers.GetProfile)
	protected.PUT("/user/profile", handlers.UpdateProfile)
	protected.POST("/user/follow", handlers.FollowUser)
	protected.DELETE("/user/follow", handlers.UnfollowUser)
	protected.DELETE("/user", handlers.DeleteAccount)

	// 2FA
	protected.POST("/user/2fa/setup", handlers.SetupTwoFactor)
	protected.POST("/user/2fa/verify", handlers.VerifyTwoFactor)
	protected.POST("/user/2fa/disable", handlers.DisableTwoFactor)

	// Push registration
	protected.POST("/user/push-token", handlers.SavePushToken)
	protected.DELETE("/user/push-token", handlers.DeletePushToken)

	// Media
	protected.POST("/upload", handlers.UploadMedia)
	protected.POST("/upload-profile-photo", handlers.UploadProfilePhoto)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Endpoint not found",
				"path":  c.Request.URL.Path,
			})
			return
		}
		c.Next()
	})

	return router
}
