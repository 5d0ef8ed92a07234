package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"auralearn/internal/adapter"
	"auralearn/internal/adapter/quizgen"
	"auralearn/internal/cache"
	"auralearn/internal/config"
	"auralearn/internal/database"
	"auralearn/internal/domain"
	"auralearn/internal/handler"
	"auralearn/internal/logger"
	"auralearn/internal/middleware"
	"auralearn/internal/repository"
	"auralearn/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
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
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to the local credential store
	db, err := database.NewSQLXSQLiteDB(cfg.Database.Path)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	appLogger.Info("Credential store ready", zap.String("path", cfg.Database.Path))

	// Initialize repositories
	userRepository := repository.NewSQLXUserRepository(db)

	// Initialize the quiz generator
	var generator domain.QuizGenerator
	switch cfg.Generation.Source {
	case "static":
		generator = quizgen.NewStaticGenerator()
		appLogger.Info("Using static quiz generator")
	case "ollama":
		generator, err = quizgen.NewOllamaGenerator(cfg.Generation.ServerURL, cfg.Generation.Model, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama quiz generator", zap.Error(err))
		}
		appLogger.Info("Using Ollama quiz generator",
			zap.String("server_url", cfg.Generation.ServerURL),
			zap.String("model", cfg.Generation.Model))
	default:
		appLogger.Fatal("Unsupported generation source", zap.String("source", cfg.Generation.Source))
	}

	// Optionally wrap the generator with the Redis-backed quiz cache
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
		generator = service.NewCachingGenerator(generator, cacheAdapter, cfg.Cache.QuizTTL)
		appLogger.Info("Quiz cache enabled", zap.String("redis", cfg.Redis.Address))
	}

	// Initialize services
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository)
	generationService := service.NewGenerationService(generator, cfg.Generation.Delay, cfg.Generation.Timeout)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	generationHandler := handler.NewGenerationHandler(generationService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	// API group
	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/password-strength", authHandler.PasswordStrength)
	authGroup.Post("/logout", middleware.Protected(authService), authHandler.Logout)

	// User routes (all protected)
	userGroup := apiGroup.Group("/users", middleware.Protected(authService))
	userGroup.Get("/me", userHandler.GetMyProfile)

	// Generation workflow routes (all protected)
	generationGroup := apiGroup.Group("/generation", middleware.Protected(authService))
	generationGroup.Get("/", generationHandler.GetState)
	generationGroup.Post("/file", generationHandler.SelectFile)
	generationGroup.Post("/start", generationHandler.StartGeneration)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Error("Failed to close database", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
