package handler

import (
	"mypayment-ledger/internal/adapter/http/middleware"
	"mypayment-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AccountSvc        ports.AccountService
	TransferEngine    ports.TransferEngine
	TopupSvc          ports.TopupService
	InvoiceSvc        ports.InvoiceService
	StoreSvc          ports.StoreService
	HistorySvc        ports.HistoryService
	IntegritySvc      ports.IntegrityService
	TokenSvc          ports.TokenService
	WebhookSigner     ports.WebhookSigner
	WebhookSecret     string               // empty = top-up callbacks rejected with 503
	DataVerifierToken string               // empty = integrity feed rejected with 503
	RateLimitStore    ports.RateLimitStore // nil = rate limiting disabled
	HealthCheckers    []ports.HealthChecker
	Mode              string // gin mode, defaults to release
	Logger            zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Deep health check, pings every dependency
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
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

	accountHandler := NewAccountHandler(deps.AccountSvc)
	transferHandler := NewTransferHandler(deps.TransferEngine)
	topupHandler := NewTopupHandler(deps.TopupSvc, deps.Logger)
	historyHandler := NewHistoryHandler(deps.HistorySvc)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceSvc)
	storeHandler := NewStoreHandler(deps.StoreSvc)
	integrityHandler := NewIntegrityHandler(deps.IntegritySvc)

	api := r.Group("/api/v1/mypayment")

	// --- Public routes (no bearer token) ---
	api.GET("/devices/activate", accountHandler.ActivateDevice)
	api.GET("/transfer/redirect", topupHandler.Redirect)
	api.POST("/transfer/callback",
		rl("callback"),
		middleware.CheckoutSignature(deps.WebhookSigner, deps.WebhookSecret, deps.Logger),
		topupHandler.Callback,
	)
	api.GET("/integrity-check",
		middleware.DataVerifier(deps.DataVerifierToken, deps.Logger),
		integrityHandler.Snapshot,
	)

	// --- Bearer-token routes ---
	authed := api.Group("", middleware.JWTAuth(deps.TokenSvc, deps.Logger))

	me := authed.Group("/users/me")
	{
		me.POST("/register", accountHandler.Register)
		me.GET("/tos", accountHandler.GetTOS)
		me.POST("/tos", accountHandler.SignTOS)
		me.GET("/stores", storeHandler.ListMine)
		me.GET("/wallet", accountHandler.GetWallet)
		me.GET("/wallet/history", historyHandler.UserHistory)
		me.GET("/wallet/devices", accountHandler.ListDevices)
		me.POST("/wallet/devices", accountHandler.CreateDevice)
		me.GET("/wallet/devices/:id", accountHandler.GetDevice)
		me.POST("/wallet/devices/:id/revoke", accountHandler.RevokeDevice)
	}

	stores := authed.Group("/stores/:id")
	{
		stores.PATCH("", storeHandler.Rename)
		stores.DELETE("", storeHandler.Delete)
		stores.GET("/sellers", storeHandler.ListSellers)
		stores.POST("/sellers", storeHandler.AddSeller)
		stores.PATCH("/sellers/:user_id", storeHandler.UpdateSeller)
		stores.DELETE("/sellers/:user_id", storeHandler.RemoveSeller)
		stores.GET("/history", historyHandler.StoreHistory)
		stores.POST("/scan/check", rl("scan"), transferHandler.CheckScan)
		stores.POST("/scan", rl("scan"), transferHandler.Scan)
	}

	structures := authed.Group("/structures/:id")
	{
		structures.POST("/stores", storeHandler.Create)
		structures.POST("/administrators/:user_id", storeHandler.AddAdministrator)
		structures.DELETE("/administrators/:user_id", storeHandler.RemoveAdministrator)
	}

	transactions := authed.Group("/transactions/:id")
	{
		transactions.POST("/refund", rl("refund"), transferHandler.Refund)
		transactions.POST("/cancel", rl("cancel"), transferHandler.Cancel)
	}

	authed.POST("/transfer/init", rl("topup"), topupHandler.InitTopup)

	invoices := authed.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.List)
		invoices.GET("/structures/:id", invoiceHandler.ListByStructure)
		invoices.POST("/structures/:id", invoiceHandler.Create)
		invoices.GET("/:id", invoiceHandler.Get)
		invoices.PATCH("/:id/paid", invoiceHandler.MarkPaid)
		invoices.PATCH("/:id/received", invoiceHandler.MarkReceived)
		invoices.DELETE("/:id", invoiceHandler.Delete)
	}

	return r
}
