package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundraiser-backend/config"
	"fundraiser-backend/internal/adapter/email"
	httpHandler "fundraiser-backend/internal/adapter/http/handler"
	"fundraiser-backend/internal/adapter/paystack"
	pgStorage "fundraiser-backend/internal/adapter/storage/postgres"
	redisStorage "fundraiser-backend/internal/adapter/storage/redis"
	"fundraiser-backend/internal/core/ports"
	"fundraiser-backend/internal/service"
	"fundraiser-backend/pkg/logger"
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
		Msg("Starting Fundraiser Backend")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Apply schema migrations
	if err := pgStorage.RunMigrations(pool); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Migrations applied")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	userRepo := pgStorage.NewUserRepo(pool)
	bankRepo := pgStorage.NewBankRepo(pool)
	accountRepo := pgStorage.NewBankAccountRepo(pool)
	affiliateRepo := pgStorage.NewAffiliateRepo(pool)
	walletRepo := pgStorage.NewWalletRepo(pool)
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	withdrawalRepo := pgStorage.NewWithdrawalRepo(pool)
	campaignRepo := pgStorage.NewCampaignRepo(pool)
	donationRepo := pgStorage.NewDonationRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Initialize Redis stores
	bankCache := redisStorage.NewBankCache(rdb)
	otpStore := redisStorage.NewOTPStore(rdb)
	resetStore := redisStorage.NewPasswordResetStore(rdb)
	sessionStore := redisStorage.NewSessionStore(rdb)
	webhookEvents := redisStorage.NewWebhookEventStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize external adapters
	provider := paystack.NewClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey, cfg.Paystack.Timeout, log)
	mailer := email.NewMailer(cfg.SMTP)

	// Initialize core services
	hashSvc := service.NewHashService()
	tokenSvc := service.NewTokenService(cfg.JWT)

	// Initialize business services
	authSvc := service.NewAuthService(userRepo, hashSvc, tokenSvc, otpStore, resetStore, sessionStore, mailer, log)
	bankSyncSvc := service.NewBankSyncService(provider, bankRepo, bankCache, log)
	linkingSvc := service.NewLinkingService(provider, bankRepo, accountRepo, userRepo, log)
	enrollSvc := service.NewEnrollmentService(
		provider, affiliateRepo, walletRepo, accountRepo, bankRepo, userRepo,
		transactor, cfg.Ledger.CommissionPercent, log,
	)
	ledgerSvc := service.NewLedgerService(affiliateRepo, walletRepo, ledgerRepo, withdrawalRepo, transactor, log)
	campaignSvc := service.NewCampaignService(campaignRepo, log)
	donationSvc := service.NewDonationService(
		campaignRepo, donationRepo, affiliateRepo, walletRepo, ledgerRepo,
		transactor, cfg.Ledger.CommissionPercent, log,
	)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		BankSyncSvc:    bankSyncSvc,
		LinkingSvc:     linkingSvc,
		EnrollSvc:      enrollSvc,
		LedgerSvc:      ledgerSvc,
		CampaignSvc:    campaignSvc,
		DonationSvc:    donationSvc,
		TokenSvc:       tokenSvc,
		Sessions:       sessionStore,
		WebhookEvents:  webhookEvents,
		WebhookSecret:  cfg.Paystack.SecretKey,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
