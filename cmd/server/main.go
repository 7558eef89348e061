package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/devconnect-io/devconnect/adapters/event"
	"github.com/devconnect-io/devconnect/adapters/github"
	httpAdapter "github.com/devconnect-io/devconnect/adapters/http"
	"github.com/devconnect-io/devconnect/adapters/persistence"
	authUC "github.com/devconnect-io/devconnect/internal/application/usecase/auth"
	profileUC "github.com/devconnect-io/devconnect/internal/application/usecase/profile"
	"github.com/devconnect-io/devconnect/internal/config"
	"github.com/devconnect-io/devconnect/pkg/auth"
	"github.com/devconnect-io/devconnect/pkg/logger"
	"github.com/devconnect-io/devconnect/pkg/tracing"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting DevConnect API server...")

	// Tracing is optional; without an endpoint spans are recorded but
	// never exported.
	if cfg.Jaeger.OTLPEndpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, appLogger, "devconnect-api")
		if err != nil {
			appLogger.Fatal("cannot init tracer provider", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				appLogger.Error("tracer provider shutdown", err)
			}
		}()
	}

	// Infrastructure
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		appLogger.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, appLogger)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	githubClient := github.NewClient(cfg, github.NewRedisCache(redisClient, appLogger), appLogger)

	// Use cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, kafkaClient, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	loadUserUseCase := authUC.NewLoadUserUseCase(userRepo)
	profileUseCase := profileUC.NewProfileUseCase(profileRepo, userRepo, kafkaClient, appLogger)

	// HTTP handlers
	userHandler := httpAdapter.NewUserHandler(registerUseCase)
	authHandler := httpAdapter.NewAuthHandler(loginUseCase, loadUserUseCase)
	profileHandler := httpAdapter.NewProfileHandler(profileUseCase)
	githubHandler := httpAdapter.NewGithubHandler(githubClient)

	router := httpAdapter.SetupRouter(
		jwtSvc,
		cfg.Auth.TokenHeader,
		appLogger,
		userHandler,
		authHandler,
		profileHandler,
		githubHandler,
	)

	appLogger.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		appLogger.Fatal("cannot run server", err)
	}
}
