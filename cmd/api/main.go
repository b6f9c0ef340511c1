package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/learningflow/api/api/swagger"
	"github.com/learningflow/api/internal/handler"
	"github.com/learningflow/api/internal/llm/gemini"
	"github.com/learningflow/api/internal/middleware"
	"github.com/learningflow/api/internal/repository"
	"github.com/learningflow/api/internal/service"
	"github.com/learningflow/api/pkg/cache"
	"github.com/learningflow/api/pkg/config"
	"github.com/learningflow/api/pkg/database"
	"github.com/learningflow/api/pkg/export"
	"github.com/learningflow/api/pkg/jobs"
	"github.com/learningflow/api/pkg/logger"
	corsmiddleware "github.com/learningflow/api/pkg/middleware/cors"
	reqidmiddleware "github.com/learningflow/api/pkg/middleware/requestid"
	"github.com/learningflow/api/pkg/storage"
)

// @title LearningFlow API
// @version 1.0.0
// @description Study assistant backend: document upload, AI study material, quizzes and reports
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	store, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare uploads directory", "error", err)
	}

	// Redis is optional: without it generation results are simply not cached.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, generation cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	llmClient := gemini.NewClient(cfg.LLM, logr)
	renderer := export.NewReportRenderer(cfg.Report.FontPath, cfg.Report.FontName)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsService := service.NewMetricsService()
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      "learningflow-api",
	})
	contentService := service.NewContentService(llmClient, cacheRepo, logr, cfg.LLM.CacheTTL)
	gradingService := service.NewGradingService(llmClient, logr)
	uploadService := service.NewUploadService(sessionRepo, store, contentService, logr, cfg.Uploads)
	sessionService := service.NewSessionService(sessionRepo, store, validate, logr)
	reportService := service.NewReportService(renderer, logr)

	authHandler := handler.NewAuthHandler(authService)
	uploadHandler := handler.NewUploadHandler(uploadService, store, metricsService)
	contentHandler := handler.NewContentHandler(contentService)
	gradingHandler := handler.NewGradingHandler(gradingService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	reportHandler := handler.NewReportHandler(reportService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	janitor := startJanitor(store, cfg, logr)
	defer janitor.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", middleware.JWT(authService), authHandler.Me)
	}

	r.POST("/upload", middleware.OptionalJWT(authService), uploadHandler.Upload)
	r.GET("/uploads/:filename", uploadHandler.ServeFile)
	r.POST("/generate-quiz", contentHandler.GenerateQuiz)
	r.POST("/chat", contentHandler.Chat)
	r.POST("/explain", contentHandler.Explain)
	r.POST("/feedback", gradingHandler.Feedback)
	r.POST("/pdf", reportHandler.Generate)

	secured := r.Group("", middleware.JWT(authService))
	{
		secured.GET("/wrongnotes", sessionHandler.ListWrongNotes)
		secured.POST("/wrongnotes", sessionHandler.SaveWrongNote)
		secured.POST("/study/save", sessionHandler.SaveStudy)
		secured.GET("/mypage/files", sessionHandler.ListFiles)
		secured.DELETE("/mypage/files/:id", sessionHandler.DeleteFile)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "mock_llm", contentService.MockMode())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// startJanitor schedules periodic sweeps of expired anonymous uploads.
func startJanitor(store *storage.LocalStorage, cfg *config.Config, logr *zap.Logger) *jobs.Queue {
	queue := jobs.NewQueue("uploads-janitor", func(ctx context.Context, job jobs.Job) error {
		deleted, err := store.CleanupOlderThan(cfg.Uploads.AnonymousTTL, "anon-")
		if err != nil {
			return err
		}
		if len(deleted) > 0 {
			logr.Sugar().Infow("cleaned up anonymous uploads", "count", len(deleted))
		}
		return nil
	}, jobs.QueueConfig{Workers: 1, Logger: logr})

	queue.Start(context.Background())

	go func() {
		ticker := time.NewTicker(cfg.Uploads.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			if err := queue.Enqueue(jobs.Job{ID: uuid.NewString(), Type: "cleanup"}); err != nil {
				return
			}
		}
	}()

	return queue
}
