package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seu-repo/dogwalk-skill/internal/adapter/cache"
	"github.com/seu-repo/dogwalk-skill/internal/adapter/external/profile"
	"github.com/seu-repo/dogwalk-skill/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/dogwalk-skill/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/dogwalk-skill/internal/adapter/queue"
	"github.com/seu-repo/dogwalk-skill/internal/adapter/storage/objectstore"
	"github.com/seu-repo/dogwalk-skill/internal/adapter/vault"
	"github.com/seu-repo/dogwalk-skill/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/dogwalk-skill/internal/ports"
	"github.com/seu-repo/dogwalk-skill/internal/service/appointment"
	"github.com/seu-repo/dogwalk-skill/internal/service/email"
	"github.com/seu-repo/dogwalk-skill/internal/service/health"
	"github.com/seu-repo/dogwalk-skill/internal/service/skill"
	"github.com/seu-repo/dogwalk-skill/pkg/config"

	// Import metrics to register them
	_ "github.com/seu-repo/dogwalk-skill/internal/observability/telemetry"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// 2. Initialize Logger
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting dog walk skill",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// 3. Resolve the email provider credential
	if cfg.Email.Provider == "sendgrid" && cfg.Email.SendGridAPIKey == "" && cfg.Vault.Address != "" {
		secrets, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to create Vault client", zap.Error(err))
		}
		key, err := secrets.GetSendGridAPIKey(cfg.Vault.SendGridPath)
		if err != nil {
			logger.Fatal("Failed to read SendGrid key from Vault", zap.Error(err))
		}
		cfg.Email.SendGridAPIKey = key
	}

	// 4. Initialize Email Service
	mailer, err := email.NewService(&email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// 5. Initialize Customer Profile Client
	profileHTTP := circuitbreaker.NewHTTPClient(circuitbreaker.HTTPClientSettings{
		Name:             "customer-profile",
		Timeout:          cfg.Profile.Timeout,
		MaxRequests:      1,
		Interval:         cfg.CircuitBreaker.Interval,
		BreakerTimeout:   cfg.CircuitBreaker.Timeout,
		FailureThreshold: cfg.CircuitBreaker.FailureThreshold,
	}, logger)
	profileClient := profile.NewClient(profileHTTP, logger, cfg.Profile.ExtraAllowedHosts...)

	healthService := health.NewService(cfg.App.Version, logger)
	healthService.RegisterChecker("customer-profile", health.BreakerChecker(profileHTTP.State))

	// 6. Initialize Object Storage (optional)
	var signer ports.URLSigner
	if cfg.Storage.Bucket != "" {
		presigner, err := objectstore.NewPresigner(ctx, cfg.Storage.Bucket, cfg.Storage.Region, logger)
		if err != nil {
			logger.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		signer = presigner
	}

	// 7. Initialize Cache (Redis when configured, in-memory otherwise)
	var guard ports.Cache
	if cfg.Redis.URL != "" {
		redisCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		guard = redisCache
	} else {
		guard = cache.NewLocalCache(time.Minute, logger)
	}
	defer guard.Close()
	healthService.RegisterChecker("cache", health.PingChecker(guard.Ping, logger))

	// 8. Initialize Message Queue (optional)
	var publisher ports.Publisher
	if cfg.NATS.URL != "" {
		messageQueue, err := queue.NewNATSQueue(cfg.NATS.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		defer messageQueue.Close()
		publisher = messageQueue
		healthService.RegisterChecker("nats", health.PingChecker(messageQueue.Ping, logger))
	}

	// 9. Initialize Services
	appointments := appointment.NewService(&appointment.Config{
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		Subject:   cfg.Appointment.Subject,
		GuardTTL:  cfg.Appointment.GuardTTL,
	}, profileClient, mailer, guard, publisher, logger)

	routes := skill.Routes(&skill.Config{WelcomeAudioKey: cfg.Skill.WelcomeAudioKey}, appointments, signer, logger)
	router := skill.NewRouter(routes, skill.NewErrorHandler(logger), logger)

	// 10. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	healthHandler := handlers.NewHealthHandler(healthService)
	app.Get("/health/live", healthHandler.Live)
	app.Get("/health/ready", healthHandler.Ready)

	// Metrics endpoint for Prometheus
	metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metrics(c.Context())
		return nil
	})

	skillHandler := handlers.NewSkillHandler(router, logger)
	app.Post(cfg.HTTP.Path, middleware.SkillIDRequired(cfg.Skill.ApplicationIDs, logger), skillHandler.Handle)

	// 11. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port), zap.String("path", cfg.HTTP.Path))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 12. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}
	return zapCfg.Build()
}
