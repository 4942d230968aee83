package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smartstore/store-system/docs"
	"github.com/smartstore/store-system/internal/api/handler"
	"github.com/smartstore/store-system/internal/api/middleware"
	"github.com/smartstore/store-system/internal/core/domain"
	"github.com/smartstore/store-system/internal/core/ports"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Auth   ports.AuthService
	Stores ports.StoreService
	// Health lists the backends checked by the readiness probe.
	Health []handler.Pinger
	Logger zerolog.Logger
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// default Prometheus registry, which also holds the business counters.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "store",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	users := handler.NewUserHandler(deps.Auth)
	stores := handler.NewStoreHandler(deps.Stores)
	health := handler.NewHealthHandler(deps.Health...)

	authed := middleware.BasicAuth(deps.Auth)
	managers := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)
	admins := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/api/v1")

	// --- Users ---
	v1.POST("/users", users.Register, middleware.OptionalBasicAuth(deps.Auth))
	v1.GET("/users", users.List, authed)
	v1.GET("/users/:email", users.Get, authed)
	v1.PUT("/users/:email", users.Update, authed, middleware.SelfOrRole("email", domain.RoleAdmin))
	v1.DELETE("/users/:email", users.Delete, authed, middleware.SelfOrRole("email", domain.RoleAdmin))
	v1.GET("/auth/me", users.Me, authed)

	// --- Stores ---
	v1.GET("/stores", stores.ListStores, authed)
	v1.POST("/stores", stores.CreateStore, authed, managers)
	v1.GET("/stores/:id", stores.GetStore, authed)
	v1.PUT("/stores/:id", stores.UpdateStore, authed, managers)
	v1.DELETE("/stores/:id", stores.DeleteStore, authed, admins)

	// --- Catalog ---
	v1.POST("/products", stores.CreateProduct, authed, managers)
	v1.GET("/products/:id", stores.GetProduct, authed)
	v1.POST("/customers", stores.CreateCustomer, authed, managers)
	v1.GET("/customers/:id", stores.GetCustomer, authed)

	// --- Operations (no auth required) ---
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog entry per request. Headers are never
// logged, so credentials stay out of the logs.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
