package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/config"
	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/handler"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/cache"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/cognito"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/dynamo"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/observability"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/plaid"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/resilience"
	"github.com/thetajwar2003/SpendWiseApi/internal/port"
	"github.com/thetajwar2003/SpendWiseApi/internal/service"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("aws_region", cfg.AWSRegion),
		zap.String("plaid_env", cfg.PlaidEnv),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "spendwise-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	userCache := cache.New[*domain.UserRecord](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("plaid", logger)
	bulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- AWS clients ---
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		logger.Fatal("failed to load AWS config", zap.Error(err))
	}

	store := dynamo.NewClient(awsCfg, dynamo.Tables{
		Users:         cfg.UsersTable,
		Budgets:       cfg.BudgetsTable,
		Subscriptions: cfg.SubscriptionsTable,
	}, logger)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	idp := cognito.NewClient(awsCfg, cfg.CognitoClientID, cfg.CognitoClientSecret, logger)

	var verifier port.TokenVerifier
	if cfg.CognitoUserPoolID != "" {
		verifier = cognito.NewVerifier(httpClient, cfg.AWSRegion, cfg.CognitoUserPoolID, cfg.CognitoClientID)
	} else {
		logger.Warn("auth: no user pool configured, token verification disabled")
	}

	aggregator := plaid.NewClient(
		httpClient,
		plaid.EnvironmentURL(cfg.PlaidEnv),
		cfg.PlaidClientID,
		cfg.PlaidSecret,
		cb,
		bulkhead,
		resilienceCfg,
		logger,
	)

	// --- Services ---
	authSvc := service.NewAuthService(idp, store, metrics, logger)
	linkSvc := service.NewLinkService(aggregator, store, userCache, metrics, logger)
	txSvc := service.NewTransactionService(store, aggregator, userCache, metrics, logger)
	budgetSvc := service.NewBudgetService(store, logger)
	subSvc := service.NewSubscriptionService(store, logger)

	// --- Router ---
	router := handler.NewRouter(handler.Services{
		Auth:          authSvc,
		Link:          linkSvc,
		Transactions:  txSvc,
		Budgets:       budgetSvc,
		Subscriptions: subSvc,
		Verifier:      verifier,
		Users:         store,
	}, metrics, logger, cfg.AllowedOrigins)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
