package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"quizflow/internal/adapter"
	"quizflow/internal/adapter/completion"
	"quizflow/internal/adapter/titlegen"
	"quizflow/internal/cache"
	"quizflow/internal/config"
	"quizflow/internal/extractor"
	"quizflow/internal/handler"
	"quizflow/internal/logger"
	"quizflow/internal/middleware"
	"quizflow/internal/service"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if cfg.OpenRouter.APIKey == "" {
		appLogger.Warn("OPENROUTER_API_KEY is not set; quiz generation will fail until it is configured")
	}

	// Pipeline adapters
	pdfExtractor := extractor.NewPDFExtractor()
	completionClient := completion.NewOpenRouterClient(cfg.OpenRouter, appLogger)
	titleDeriver := titlegen.NewTitleDeriver(cfg.OpenRouter, cfg.Generation, appLogger)
	quizService := service.NewQuizService(pdfExtractor, completionClient, titleDeriver, cfg)
	appLogger.Info("QuizService initialized", zap.String("model", cfg.OpenRouter.DefaultModel))

	// Archive store
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	archiveService := service.NewArchiveService(adapter.NewRedisArchiveAdapter(redisClient))
	appLogger.Info("ArchiveService initialized", zap.String("redis", cfg.Redis.Address))

	quizHandler := handler.NewQuizHandler(quizService, cfg)
	archiveHandler := handler.NewArchiveHandler(archiveService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")
	apiGroup.Get("/health", quizHandler.Health)
	apiGroup.Post("/generate-quiz", quizHandler.GenerateQuiz)
	apiGroup.Get("/quizzes", archiveHandler.ListQuizzes)
	apiGroup.Post("/quizzes/backup", archiveHandler.BackupQuizzes)
	apiGroup.Post("/analytics", archiveHandler.RecordAnalytics)
	apiGroup.Delete("/data", archiveHandler.ClearData)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
