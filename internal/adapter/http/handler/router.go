package handler

import (
	"fundraiser-backend/internal/adapter/http/middleware"
	redisStore "fundraiser-backend/internal/adapter/storage/redis"
	"fundraiser-backend/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	BankSyncSvc    ports.BankSyncService
	LinkingSvc     ports.LinkingService
	EnrollSvc      ports.EnrollmentService
	LedgerSvc      ports.LedgerService
	CampaignSvc    ports.CampaignService
	DonationSvc    ports.DonationService
	TokenSvc       ports.TokenService
	Sessions       ports.SessionStore      // nil = logout revocation disabled
	WebhookEvents  ports.WebhookEventStore // nil = webhook deduplication disabled
	WebhookSecret  string
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Sessions, deps.Logger)

	// API v1 routes
	v1 := r.Group("/api/v1")

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", rl("auth_register"), authHandler.Register)
		auth.POST("/verify", rl("auth_verify"), authHandler.VerifyEmail)
		auth.POST("/resend-otp", rl("auth_resend"), authHandler.ResendOTP)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/logout", jwtAuth, authHandler.Logout)
		auth.POST("/password-reset/request", rl("auth_reset"), authHandler.RequestPasswordReset)
		auth.POST("/password-reset", rl("auth_reset"), authHandler.ResetPassword)
	}

	v1.GET("/users/me", jwtAuth, authHandler.Profile)

	bankHandler := NewBankHandler(deps.BankSyncSvc, deps.LinkingSvc)
	v1.GET("/banks", rl("banks"), bankHandler.ListBanks)

	campaignHandler := NewCampaignHandler(deps.CampaignSvc, deps.DonationSvc)
	campaigns := v1.Group("/campaigns")
	{
		campaigns.GET("", rl("campaigns"), campaignHandler.List)
		campaigns.GET("/:slug", rl("campaigns"), campaignHandler.Get)
		campaigns.POST("", jwtAuth, rl("campaigns"), campaignHandler.Create)
		campaigns.POST("/:id/donate", rl("donations"), campaignHandler.Donate)
	}

	webhookHandler := NewWebhookHandler(deps.WebhookSecret, deps.DonationSvc, deps.WebhookEvents, deps.Logger)
	v1.POST("/webhooks/paystack", webhookHandler.Handle)

	// --- JWT-authenticated routes ---
	accounts := v1.Group("/bank-accounts", jwtAuth)
	{
		accounts.POST("", rl("bank_link"), bankHandler.LinkAccount)
		accounts.GET("", rl("banks"), bankHandler.ListAccounts)
	}

	affiliateHandler := NewAffiliateHandler(deps.EnrollSvc, deps.LedgerSvc)
	affiliates := v1.Group("/affiliates", jwtAuth)
	{
		affiliates.POST("/enroll", rl("enroll"), affiliateHandler.Enroll)
		affiliates.GET("/wallet", rl("wallet"), affiliateHandler.GetWallet)
		affiliates.GET("/wallet/transactions", rl("wallet"), affiliateHandler.ListTransactions)
		affiliates.POST("/withdrawals", rl("withdrawals"), affiliateHandler.RequestWithdrawal)
		affiliates.GET("/withdrawals", rl("withdrawals"), affiliateHandler.ListWithdrawals)
	}

	// --- Operator routes. Deployed behind network-level restriction. ---
	admin := v1.Group("/admin", jwtAuth)
	{
		admin.POST("/banks/sync", bankHandler.SyncBanks)
		admin.GET("/withdrawals", affiliateHandler.ListPendingWithdrawals)
		admin.POST("/withdrawals/:id/approve", affiliateHandler.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", affiliateHandler.RejectWithdrawal)
	}

	return r
}
