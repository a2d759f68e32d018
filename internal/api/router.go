package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hakwonhub/dashboard-gateway/internal/api/handler"
	"github.com/hakwonhub/dashboard-gateway/internal/api/middleware"
	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
	"github.com/hakwonhub/dashboard-gateway/internal/core/ports"
)

// Dependencies carries everything the router needs wired at startup.
type Dependencies struct {
	Gate         ports.SessionGate
	Roster       ports.RosterService
	Upstream     ports.UpstreamClient
	Audit        ports.AuditSink
	AuditRepo    ports.AuditRepository
	Mongo        *mongo.Database
	Redis        *redis.Client
	Log          zerolog.Logger
	CookieSecure bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dashboard"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Gate, deps.Upstream, deps.Audit, deps.CookieSecure)
	rosterHandler := handler.NewRosterHandler(deps.Roster)
	auditHandler := handler.NewAuditHandler(deps.AuditRepo)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/me", authHandler.Me)

	// --- Role-gated dashboard groups ---
	// One group per role; the Gate middleware redirects everything short of
	// an exact role match to /login.
	for _, role := range domain.Roles() {
		g := e.Group(role.DashboardPath(), middleware.Gate(deps.Gate, deps.Audit, role))
		g.GET("/:resource", rosterHandler.List)
		g.POST("/:resource", rosterHandler.Create)
		g.PATCH("/:resource/:id", rosterHandler.Update)
		g.DELETE("/:resource/:id", rosterHandler.Delete)

		if role == domain.RoleOwner {
			g.GET("/audit", auditHandler.Recent)
		}
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
