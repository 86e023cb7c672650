package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lavenshop/cart-service/pkg/health"
	"github.com/lavenshop/cart-service/pkg/middleware"
)

const serviceName = "cart-service"

// RouterConfig bundles the handlers and shared dependencies the router wires
// together.
type RouterConfig struct {
	Cart       *CartHandler
	Checkout   *CheckoutHandler
	Health     *health.Handler
	Logger     *slog.Logger
	CORS       middleware.CORSConfig
	APITimeout time.Duration
}

// NewRouter builds the HTTP routing tree with the standard middleware chain.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(cfg.APITimeout))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RequireSession(cfg.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.GetCart)
			r.Delete("/", cfg.Cart.ClearCart)
			r.Get("/summary", cfg.Checkout.Summary)

			r.Route("/items", func(r chi.Router) {
				r.Post("/", cfg.Cart.AddItem)
				r.Put("/{itemID}", cfg.Cart.UpdateItem)
				r.Delete("/{itemID}", cfg.Cart.RemoveItem)
			})
		})

		r.Post("/checkout", cfg.Checkout.PlaceOrder)
	})

	return r
}
