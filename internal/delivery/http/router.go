package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Pesokrava/profile_reviews/internal/config"
	"github.com/Pesokrava/profile_reviews/internal/delivery/http/handler"
	"github.com/Pesokrava/profile_reviews/internal/delivery/http/middleware"
	"github.com/Pesokrava/profile_reviews/internal/delivery/http/response"
	"github.com/Pesokrava/profile_reviews/internal/domain"
	"github.com/Pesokrava/profile_reviews/internal/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handlers groups the HTTP handlers served under /api/v1
type Handlers struct {
	Product *handler.ProductHandler
	Review  *handler.ReviewHandler
	Profile *handler.ProfileHandler
}

// Router holds HTTP handlers and router configuration
type Router struct {
	handlers Handlers
	checks   []HealthCheck
	logger   *logger.Logger
	cfg      *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(handlers Handlers, cfg *config.Config, log *logger.Logger, checks ...HealthCheck) *Router {
	return &Router{
		handlers: handlers,
		checks:   checks,
		logger:   log,
		cfg:      cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Timeout(rt.cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	if rt.cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.cfg.Auth.JWTSecret, rt.cfg.Auth.JWTIssuer, rt.logger))

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", rt.handlers.Review.List)
			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", rt.handlers.Review.Get)
				r.Post("/", rt.handlers.Review.Create)
				r.Patch("/", rt.handlers.Review.Update)
				r.Delete("/", rt.handlers.Review.Delete)
				r.Get("/hidden", rt.handlers.Review.GetHidden)
				r.Delete("/hidden", rt.handlers.Review.DeleteHidden)
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", rt.handlers.Product.List)
			r.With(middleware.RequireAccountType(domain.AccountSeller)).Post("/", rt.handlers.Product.Create)
			r.Get("/{slug}", rt.handlers.Product.GetBySlug)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", rt.handlers.Profile.Get)
			r.Put("/", rt.handlers.Profile.Update)
			r.Delete("/", rt.handlers.Profile.Deactivate)

			r.Route("/shipping-addresses", func(r chi.Router) {
				r.Get("/", rt.handlers.Profile.ListAddresses)
				r.Post("/", rt.handlers.Profile.CreateAddress)
				r.Get("/{id}", rt.handlers.Profile.GetAddress)
				r.Put("/{id}", rt.handlers.Profile.UpdateAddress)
				r.Delete("/{id}", rt.handlers.Profile.DeleteAddress)
			})

			r.Get("/orders", rt.handlers.Profile.ListOrders)
			r.Get("/orders/{tx_ref}", rt.handlers.Profile.ListOrderItems)
		})
	})

	return r
}

// healthCheck handles health check requests; it reports 503 when any dependency is down
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(rt.checks))
	for _, c := range rt.checks {
		if err := c.Check(ctx); err != nil {
			rt.logger.Warnf("Health check %s failed: %v", c.Name, err)
			checks[c.Name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[c.Name] = "ok"
	}

	state := "healthy"
	if status != http.StatusOK {
		state = "unhealthy"
	}

	response.JSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
	})
}
