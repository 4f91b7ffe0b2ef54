package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-api/api/controllers"
	"github.com/angelmondragon/storefront-api/api/middleware"
	cartsvc "github.com/angelmondragon/storefront-api/internal/cart"
	"github.com/angelmondragon/storefront-api/internal/catalog"
	"github.com/angelmondragon/storefront-api/pkg/config"
	"github.com/angelmondragon/storefront-api/pkg/logger"
	"github.com/angelmondragon/storefront-api/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	sessionStore redis.Pinger,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	cartService cartsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, sessionStore, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	session := middleware.CartSession(logg, cfg.Cart.SessionTTL, cfg.App.IsProd())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(session)

		r.Get("/ping", controllers.Ping())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, cfg.Search, logg))
			r.Get("/categories", controllers.ProductCategories(catalogService, logg))
			r.Post("/refresh", controllers.RefreshCatalog(catalogService, logg))
			r.Get("/{productId}", controllers.GetProduct(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(cartService, logg))
			r.Delete("/", controllers.ClearCart(cartService, logg))
			r.Post("/items", controllers.AddCartItem(cartService, logg))
			r.Patch("/items/{productId}", controllers.UpdateCartItem(cartService, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(cartService, logg))
			r.Post("/checkout", controllers.Checkout(cartService, logg))
		})
	})

	return r
}
