package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Taqieddin-qattousa/storefront-backend/api/controllers"
	"github.com/Taqieddin-qattousa/storefront-backend/api/middleware"
	"github.com/Taqieddin-qattousa/storefront-backend/internal/orders"
	"github.com/Taqieddin-qattousa/storefront-backend/internal/products"
	"github.com/Taqieddin-qattousa/storefront-backend/internal/users"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/config"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/db"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/logger"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/metrics"
	"github.com/Taqieddin-qattousa/storefront-backend/pkg/redis"
)

// NewRouter wires every HTTP surface of the storefront. The redis client
// may be nil; registration then runs without a rate limit and readiness
// skips the cache check.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
	userService users.Service,
	productService products.Service,
	orderService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	registerPolicy := middleware.RegisterRateLimitPolicy{}
	if redisClient != nil {
		registerPolicy = middleware.NewRegisterRateLimitPolicy(
			"register",
			cfg.RegisterLimit.Window,
			cfg.RegisterLimit.IPLimit,
		)
	}

	var cache controllers.Pinger
	if redisClient != nil {
		cache = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, database, cache, logg))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	// The catalogue read surface and registration are open. Everything
	// that mutates state sits behind the bearer token.
	r.Route("/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Get("/popular", controllers.PopularProducts(productService, logg))
		r.Get("/{id}", controllers.GetProduct(productService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Put("/{id}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{id}", controllers.DeleteProduct(productService, logg))
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.With(middleware.RegisterRateLimit(registerPolicy, redisClient, logg)).
			Post("/", controllers.RegisterUser(userService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/", controllers.ListUsers(userService, logg))
			r.Get("/{id}", controllers.GetUser(userService, logg))
			r.Delete("/{id}", controllers.DeleteUser(userService, logg))
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Post("/", controllers.CreateOrder(orderService, logg))
		r.Get("/current/{userId}", controllers.CurrentOrder(orderService, logg))
		r.Get("/completed/{userId}", controllers.CompletedOrders(orderService, logg))
		r.Get("/recent/{userId}", controllers.RecentPurchases(orderService, logg))
		r.Post("/{id}/products", controllers.AddOrderProduct(orderService, logg))
		r.Post("/{id}/complete", controllers.CompleteOrder(orderService, logg))
	})

	return r
}
