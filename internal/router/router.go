// Package router assembles the HTTP surface: middleware, routes and the
// handlers behind them.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"endpage/internal/handlers"
	"endpage/internal/middleware"
	"endpage/internal/models"
	"endpage/internal/services"

	_ "endpage/internal/docs" // Import swagger docs
)

// Services are the operations the routes call into.
type Services struct {
	Users    services.UserServicer
	EndPages services.EndPageServicer
	Comments services.CommentServicer
	Media    services.MediaServicer
	Scanner  handlers.ContentScanner
}

// Options tune the HTTP surface.
type Options struct {
	// RateLimitPerMinute caps login, rating and comment requests per client
	// and endpoint. 0 disables limiting.
	RateLimitPerMinute int
	// UploadDir is served under /uploads when set (local storage only).
	UploadDir string
	// MaxMultipartMemory is how much of a multipart body is kept in memory
	// before spilling to temporary files.
	MaxMultipartMemory int64
}

// New builds the gin engine with every route of the API.
func New(svc Services, opts Options) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users)
	userHandler := handlers.NewUserHandler(svc.Users, svc.EndPages)
	endPageHandler := handlers.NewEndPageHandler(svc.EndPages)
	commentHandler := handlers.NewCommentHandler(svc.Comments)
	mediaHandler := handlers.NewMediaHandler(svc.Media)
	moderationHandler := handlers.NewModerationHandler(svc.Scanner)
	shareHandler := handlers.NewShareHandler(svc.EndPages)

	router := gin.New()
	if opts.MaxMultipartMemory > 0 {
		router.MaxMultipartMemory = opts.MaxMultipartMemory
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	limited := func(c *gin.Context) { c.Next() }
	if opts.RateLimitPerMinute > 0 {
		limited = middleware.RateLimit(opts.RateLimitPerMinute, time.Minute)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public share page
	router.GET("/share/:uuid", shareHandler.Show)

	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}

	api := router.Group("/api")

	// Health check endpoint
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	api.POST("/register", authHandler.Register)
	api.POST("/auth/login_check", limited, authHandler.Login)
	api.POST("/moderation/scan", moderationHandler.Scan)
	api.PUT("/end_pages/:uuid/rating", limited, endPageHandler.AddRating)

	// Routes that identify the caller when a token is supplied
	optional := api.Group("/")
	optional.Use(middleware.OptionalAuth(svc.Users))
	optional.GET("/end_pages", endPageHandler.ListEndPages)
	optional.GET("/end_pages/:uuid", endPageHandler.GetEndPage)
	optional.GET("/end_pages/:uuid/comments", commentHandler.ListComments)
	optional.POST("/comments", limited, commentHandler.CreateComment)
	optional.GET("/users/:userId/end_pages", userHandler.ListEndPages)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(svc.Users))
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/attempts/:userId", userHandler.DecrementAttempt)
	protected.POST("/end_pages", endPageHandler.CreateEndPage)
	protected.DELETE("/end_pages/:uuid", endPageHandler.DeleteEndPage)
	protected.POST("/end_pages/:uuid/upload", mediaHandler.Upload)

	// Admin routes
	admin := protected.Group("/")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("/users", userHandler.ListUsers)

	return router
}
