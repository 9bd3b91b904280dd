package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shopmanagement/portal/docs"
	"github.com/shopmanagement/portal/internal/api/handler"
	"github.com/shopmanagement/portal/internal/api/middleware"
	"github.com/shopmanagement/portal/internal/app"
	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
	"github.com/shopmanagement/portal/internal/infrastructure/http/handlers"
)

// RouterConfig carries the dependencies of the portal router. Mongo and
// Redis are optional; readiness only checks what is configured.
type RouterConfig struct {
	App      *app.App
	Sessions ports.StorageProvider
	// CookieSecure marks the session cookie HTTPS-only.
	CookieSecure bool
	SessionTTL   time.Duration
	Mongo        *mongo.Database
	Redis        *redis.Client
	Log          zerolog.Logger
	// Registry receives the HTTP metrics; nil uses the default registry.
	Registry *prometheus.Registry
}

var (
	adminRoles    = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin}
	operatorRoles = []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleManager}
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	promCfg := echoprometheus.MiddlewareConfig{
		Subsystem: "shopportal",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}
	metricsHandler := echoprometheus.NewHandler()
	if cfg.Registry != nil {
		promCfg.Registerer = cfg.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: cfg.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(promCfg))

	// --- Health probes, metrics and docs (no session) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(cfg.Mongo, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", metricsHandler)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session-scoped routes ---
	portal := e.Group("", middleware.Session(middleware.SessionConfig{
		App:      cfg.App,
		Provider: cfg.Sessions,
		Log:      cfg.Log,
		Secure:   cfg.CookieSecure,
		MaxAge:   cfg.SessionTTL,
	}))

	authHandler := handler.NewAuthHandler()
	pageHandler := handler.NewPageHandler()
	shopHandler := handler.NewShopHandler()

	auth := portal.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/resend-otp", authHandler.ResendOTP)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/change-password", authHandler.ChangePassword)
	auth.GET("/password-status", authHandler.PasswordStatus)
	auth.GET("/me", authHandler.Me)
	auth.POST("/forgot-password/send-otp", authHandler.SendResetOTP)
	auth.POST("/forgot-password/verify-otp", authHandler.VerifyResetOTP)
	auth.POST("/forgot-password/reset-password", authHandler.ResetPassword)
	auth.POST("/forgot-password/resend-otp", authHandler.ResendResetOTP)

	portal.GET("/notifications", pageHandler.Notifications)
	portal.GET("/unauthorized", pageHandler.Unauthorized)
	portal.GET("/menu", pageHandler.Menu, middleware.Auth())

	// --- Role-gated pages ---
	portal.GET("/dashboard", pageHandler.Page, middleware.RBAC(operatorRoles...))
	portal.GET("/admin/*", pageHandler.Page, middleware.RBAC(adminRoles...))
	portal.GET("/products/*", pageHandler.Page, middleware.RBAC(operatorRoles...))
	portal.GET("/delivery/partner/*", pageHandler.Page, middleware.RBAC(domain.RoleDeliveryPartner))
	portal.GET("/delivery/*", pageHandler.Page, middleware.RBAC(operatorRoles...))
	portal.GET("/customer/*", pageHandler.Page, middleware.RBAC(domain.RoleUser))

	shopOwner := portal.Group("/shop-owner", middleware.RBAC(domain.RoleShopOwner))
	shopOwner.GET("/*", pageHandler.Page)
	shopOwner.POST("/products/bulk-assign", shopHandler.BulkAssign)

	return e
}
