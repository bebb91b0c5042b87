package main

import (
	"context"
	"fmt"
	"os"

	"endpage/internal/config"
	"endpage/internal/database"
	"endpage/internal/logger"
	"endpage/internal/mailer"
	"endpage/internal/moderation"
	"endpage/internal/repository"
	"endpage/internal/router"
	"endpage/internal/services"
	"endpage/internal/storage"
	"endpage/internal/validator"
)

// @title           The End Page API
// @version         1.0
// @description     The End Page lets people write a farewell page, pick a tone, attach media, and share it for ratings and comments.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()
	ctx := context.Background()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	files, err := storage.New(ctx, appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize media storage: %w", err)
	}
	sender := mailer.New(appConfig.SMTPHost, appConfig.SMTPPort, appConfig.SMTPUser, appConfig.SMTPPassword,
		appConfig.MailFrom, logger.Named("mailer"))
	scanner := moderation.Default()

	// Initialize services
	store := repository.New(dbManager.DB())
	auditService := services.NewAuditService(store)
	notifier := services.NewNotificationService(sender, appConfig.AppURL)
	userService := services.NewUserService(store, auditService, notifier, appConfig.PasswordMinEntropy)
	endPageService := services.NewEndPageService(store, scanner, notifier, auditService, files, appConfig.MediaBaseURL)
	commentService := services.NewCommentService(store)
	mediaService := services.NewMediaService(store, files, auditService, appConfig.MediaBaseURL, appConfig.MaxUploadBytes)

	opts := router.Options{
		RateLimitPerMinute: appConfig.RateLimitPerMinute,
		MaxMultipartMemory: 32 << 20,
	}
	if appConfig.StorageDriver == storage.DriverLocal {
		opts.UploadDir = appConfig.UploadDir
	}

	r := router.New(router.Services{
		Users:    userService,
		EndPages: endPageService,
		Comments: commentService,
		Media:    mediaService,
		Scanner:  scanner,
	}, opts)

	log.Infof("Starting The End Page backend on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return r.Run(":" + appConfig.Port)
}
