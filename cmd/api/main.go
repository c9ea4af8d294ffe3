package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JawherBalti/HiredIn-Back/config"
	_ "github.com/JawherBalti/HiredIn-Back/docs" // Important for Swagger
	v1 "github.com/JawherBalti/HiredIn-Back/internal/delivery/http/v1"
	"github.com/JawherBalti/HiredIn-Back/internal/domain"
	"github.com/JawherBalti/HiredIn-Back/internal/repository/postgres"
	"github.com/JawherBalti/HiredIn-Back/internal/usecase"
	"github.com/JawherBalti/HiredIn-Back/migrations"
	"github.com/JawherBalti/HiredIn-Back/pkg/audit"
	"github.com/JawherBalti/HiredIn-Back/pkg/auth"
	"github.com/JawherBalti/HiredIn-Back/pkg/database"
	"github.com/JawherBalti/HiredIn-Back/pkg/email"
	"github.com/JawherBalti/HiredIn-Back/pkg/logger"
	"github.com/JawherBalti/HiredIn-Back/pkg/realtime"
	"github.com/JawherBalti/HiredIn-Back/pkg/redis"
	"github.com/JawherBalti/HiredIn-Back/pkg/storage"
)

// @title           HiredIn API
// @version         1.0
// @description     Job board backend: applications, interviews and notifications.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting HiredIn backend", "port", cfg.Port)

	auditLog := audit.New("hiredin-api", cfg.AuditEnv)
	defer func() { _ = auditLog.Sync() }()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(rootCtx, dbPool, migrations.FS); err != nil {
			logger.Log.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// 4. Real-time fan-out. With Redis every instance relays the shared
	// channel into its local hub; without it events stay in-process.
	hub := realtime.NewHub()
	var broadcaster domain.Broadcaster = hub
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, using in-process broadcasting", "error", err)
	} else {
		defer redis.Close()
		broadcaster = redis.NewBroadcaster(redis.Client())
		go func() {
			if err := redis.Relay(rootCtx, redis.Client(), hub); err != nil && !errors.Is(err, context.Canceled) {
				logger.Log.Error("Notification relay stopped", "error", err)
			}
		}()
	}

	// 5. Resume storage
	storageCfg := storage.Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
	}
	if !storageCfg.IsConfigured() {
		logger.Log.Warn("Resume storage not configured - applications will fail until S3_* is set")
	}
	fileStorage, err := storage.NewS3Storage(rootCtx, storageCfg)
	if err != nil {
		logger.Log.Error("Failed to initialise resume storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - notification emails are disabled")
	}

	// 7. Setup Repositories
	tx := database.NewTransactor(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)
	companyRepo := postgres.NewCompanyRepository(dbPool)
	jobOfferRepo := postgres.NewJobOfferRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)

	// 8. Setup UseCases
	dispatcher := usecase.NewNotificationDispatcher(notificationRepo, userRepo, broadcaster, emailService, auditLog)
	userUC := usecase.NewUserUsecase(userRepo)
	companyUC := usecase.NewCompanyUsecase(companyRepo, auditLog, cfg.MaxCompaniesPerUser)
	jobOfferUC := usecase.NewJobOfferUsecase(jobOfferRepo, companyRepo)
	applicationUC := usecase.NewApplicationUsecase(tx, resumeRepo, jobOfferRepo, userRepo, fileStorage, dispatcher, auditLog,
		usecase.ApplicationOptions{
			MaxResumeBytes:         cfg.ResumeMaxBytes,
			DownloadTTL:            cfg.ResumeURLTTL,
			EnforceStatusOwnership: cfg.EnforceStatusOwnership,
		})
	interviewUC := usecase.NewInterviewUsecase(tx, interviewRepo, resumeRepo, jobOfferRepo, dispatcher, auditLog)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)

	probes := map[string]usecase.HealthProbe{
		"database": dbPool.Ping,
	}
	if redis.Client() != nil {
		probes["redis"] = redis.HealthCheck
	}
	if storageCfg.IsConfigured() {
		probes["storage"] = fileStorage.Ping
	}
	healthUC := usecase.NewHealthUsecase(probes)

	// 9. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.JWKSUrl)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		UserUC:         userUC,
		CompanyUC:      companyUC,
		JobOfferUC:     jobOfferUC,
		ApplicationUC:  applicationUC,
		InterviewUC:    interviewUC,
		NotificationUC: notificationUC,
		HealthUC:       healthUC,
		Subscriptions:  hub,
		JWKSProvider:   jwksProvider,
		Config:         cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return rootCtx },
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	// cancels the relay and every open event stream
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	dispatcher.Wait()

	logger.Log.Info("Server exiting")
}
