package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prepaid-point-ledger/config"
	"prepaid-point-ledger/internal/adapter/client"
	"prepaid-point-ledger/internal/adapter/events/rabbitmq"
	httpHandler "prepaid-point-ledger/internal/adapter/http/handler"
	pgStorage "prepaid-point-ledger/internal/adapter/storage/postgres"
	redisStorage "prepaid-point-ledger/internal/adapter/storage/redis"
	"prepaid-point-ledger/internal/core/ports"
	"prepaid-point-ledger/internal/service"
	"prepaid-point-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Prepaid Point Ledger")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	walletRepo := pgStorage.NewWalletRepo(pool)
	lotRepo := pgStorage.NewLotRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	idempotencyRepo := pgStorage.NewIdempotencyRepo(pool)
	qrRepo := pgStorage.NewQrTokenRepo(pool)
	intentRepo := pgStorage.NewIntentRepo(pool)
	groupRepo := pgStorage.NewGroupRepo(pool)
	pinRepo := pgStorage.NewPinRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	replayCache := redisStorage.NewReplayCache(rdb)
	lockoutStore := redisStorage.NewLockoutStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)
	sessionStore := redisStorage.NewSessionStore(rdb)

	// Initialize event publisher (no-op when RabbitMQ is not configured)
	var publisher ports.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		rmq, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to RabbitMQ")
		}
		publisher = rmq
		log.Info().Str("exchange", cfg.RabbitMQ.Exchange).Msg("RabbitMQ connected")
	} else {
		publisher = rabbitmq.NewNopPublisher(log)
		log.Warn().Msg("RabbitMQ not configured, ledger events will not be published")
	}
	defer publisher.Close()

	// Initialize core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	hashSvc := service.NewArgon2HashService()

	// PIN verification: external service when configured, bundled otherwise
	var pinSvc ports.PinService
	if cfg.PinAuth.BaseURL != "" {
		verifier := client.NewPinAuthClient(cfg.PinAuth.BaseURL, cfg.PinAuth.Timeout)
		pinSvc = service.NewRemotePinService(verifier)
		log.Info().Str("base_url", cfg.PinAuth.BaseURL).Msg("Using remote PIN verification")
	} else {
		pinSvc = service.NewBundledPinService(
			pinRepo,
			hashSvc,
			lockoutStore,
			int64(cfg.Ledger.PinMaxFailures),
			cfg.Ledger.PinLockoutWindow,
			log,
		)
	}

	// Provider linkage: optional
	var provider ports.ProviderLinkClient = client.NopProviderLink{}
	if cfg.Provider.BaseURL != "" {
		provider = client.NewProviderLinkClient(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	}

	// Initialize business services
	ledgerSvc := service.NewLedgerService(walletRepo, lotRepo, txRepo, transactor, publisher, log)
	idemSvc := service.NewIdempotencyService(idempotencyRepo, replayCache, log)
	qrSvc := service.NewQrTokenService(qrRepo, walletRepo, transactor, log)
	intentSvc := service.NewIntentService(intentRepo, qrRepo, ledgerSvc, pinSvc, transactor, publisher, cfg.Ledger.IntentTTL, log)
	groupSvc := service.NewGroupService(groupRepo, walletRepo, txRepo, ledgerSvc, idemSvc, transactor, log)
	walletSvc := service.NewWalletService(walletRepo, provider, log)

	// Background sweep of expired QR tokens and intents
	sweepCtx, stopSweeper := context.WithCancel(ctx)
	defer stopSweeper()
	sweeper := service.NewSweeper(qrSvc, intentSvc, cfg.Ledger.QrSweepInterval, cfg.Ledger.IntentSweepInterval, log)
	go sweeper.Run(sweepCtx)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		WalletSvc:      walletSvc,
		LedgerSvc:      ledgerSvc,
		QrSvc:          qrSvc,
		IntentSvc:      intentSvc,
		GroupSvc:       groupSvc,
		PinSvc:         pinSvc,
		IdemSvc:        idemSvc,
		TokenSvc:       tokenSvc,
		Sessions:       sessionStore,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		RetryAfter:     cfg.Ledger.RetryAfterHint,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
