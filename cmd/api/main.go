package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mypayment-ledger/config"
	"mypayment-ledger/internal/adapter/checkout"
	httpHandler "mypayment-ledger/internal/adapter/http/handler"
	pgStorage "mypayment-ledger/internal/adapter/storage/postgres"
	redisStorage "mypayment-ledger/internal/adapter/storage/redis"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/internal/service"
	"mypayment-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("MYPAY_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting MyECL Pay ledger")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("jwt.secret must be set")
	}

	ctx := context.Background()

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Repositories
	repos := service.Repositories{
		Wallets:      pgStorage.NewWalletRepo(pool),
		Devices:      pgStorage.NewDeviceRepo(pool),
		UserPayments: pgStorage.NewUserPaymentRepo(pool),
		Structures:   pgStorage.NewStructureRepo(pool),
		Stores:       pgStorage.NewStoreRepo(pool),
		Memberships:  pgStorage.NewMembershipRepo(pool),
		Transactions: pgStorage.NewTransactionRepo(pool),
		Refunds:      pgStorage.NewRefundRepo(pool),
		Transfers:    pgStorage.NewTransferRepo(pool),
		Invoices:     pgStorage.NewInvoiceRepo(pool),
		Withdrawals:  pgStorage.NewWithdrawalRepo(pool),
	}
	transactor := pgStorage.NewTransactor(pool)

	auditSvc := service.NewAuditService(ctx, pgStorage.NewAuditRepo(pool), log)
	defer auditSvc.Close()

	var notifier ports.Notifier = service.NoopNotifier{}
	if cfg.Notification.URL != "" {
		notifier = service.NewHTTPNotifier(
			cfg.Notification.URL,
			cfg.Notification.Timeout,
			&http.Client{Timeout: cfg.Notification.Timeout},
			log,
		)
	} else {
		log.Warn().Msg("notification.url not set, user notifications are disabled")
	}

	provider := checkout.NewClient(cfg.Checkout, &http.Client{Timeout: cfg.Checkout.Timeout}, log)
	if !provider.Configured() {
		log.Warn().Msg("checkout provider not configured, top-ups are disabled")
	}

	// Core services
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)
	sigSvc := service.NewHMACSignatureService()
	registry := service.NewQRRegistry(
		pgStorage.NewUsedQRCodeRepo(pool),
		redisStorage.NewUsedQRCodeCache(rdb),
		log,
	)

	accountSvc := service.NewAccountService(repos, transactor, notifier, cfg.Ledger, log)
	transferSvc := service.NewTransferService(
		repos,
		registry,
		service.NewEd25519Verifier(log),
		transactor,
		auditSvc,
		notifier,
		cfg.Ledger,
		log,
	)
	topupSvc := service.NewTopupService(repos, provider, transactor, auditSvc, cfg.Ledger, cfg.Checkout, log)
	invoiceSvc := service.NewInvoiceService(repos, transactor, auditSvc, cfg.Ledger, log)
	storeSvc := service.NewStoreService(repos, transactor, log)
	historySvc := service.NewHistoryService(repos, cfg.Ledger, log)
	integritySvc := service.NewIntegrityService(repos, transactor, cfg.Ledger, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AccountSvc:        accountSvc,
		TransferEngine:    transferSvc,
		TopupSvc:          topupSvc,
		InvoiceSvc:        invoiceSvc,
		StoreSvc:          storeSvc,
		HistorySvc:        historySvc,
		IntegritySvc:      integritySvc,
		TokenSvc:          tokenSvc,
		WebhookSigner:     sigSvc,
		WebhookSecret:     cfg.Checkout.WebhookSecret,
		DataVerifierToken: cfg.Ledger.DataVerifierToken,
		RateLimitStore:    redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
		},
		Mode:   cfg.Server.Mode,
		Logger: log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
