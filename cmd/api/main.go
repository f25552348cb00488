package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-insights/docs"
	"github.com/johnquangdev/meeting-insights/internal/adapter/handler"
	aiuse "github.com/johnquangdev/meeting-insights/internal/usecase/ai"
	"github.com/johnquangdev/meeting-insights/internal/usecase/prompt"
	pkgai "github.com/johnquangdev/meeting-insights/pkg/ai"
	"github.com/johnquangdev/meeting-insights/pkg/config"
	pkgvalidator "github.com/johnquangdev/meeting-insights/pkg/validator"
)

// @title           Meeting Insights API
// @version         1.0
// @description     Summaries, decisions, action items, sentiment, and grounded Q&A over meeting transcripts

// @contact.name   API Support
// @contact.url    https://api-meeting.infoquang.id.vn/support
// @contact.email  support@infoquang.id.vn

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Request log through zap
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			logger.Info("request", fields...)
			return nil
		},
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// Initialize dependencies
	logger.Info("🔧 Initializing dependencies...")

	logger.Info("🤖 Initializing model backend",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
		zap.Duration("timeout", cfg.LLM.Timeout),
		zap.Int("timeout_retries", cfg.LLM.TimeoutRetries),
	)
	backend, err := pkgai.NewBackend(context.Background(), &cfg.LLM)
	if err != nil {
		logger.Fatal("Failed to initialize model backend", zap.Error(err))
	}
	gateway := pkgai.NewGateway(backend, cfg.LLM, logger)

	engine := prompt.NewEngine(cfg.LLM.MaxInputChars)
	aiService := aiuse.NewAIService(engine, gateway, cfg.LLM, logger)
	insightHandler := handler.NewInsightHandler(aiService, logger)

	// Setup router with handlers
	logger.Info("🛣️  Setting up routes...", zap.Strings("capabilities", cfg.Service.Capabilities))
	router := handler.NewRouter(cfg, insightHandler, logger)
	router.Setup(e)

	// Start server
	addr := cfg.GetServerAddr()
	go func() {
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("❌ Server forced to shutdown", zap.Error(err))
	}

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
