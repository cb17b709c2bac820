package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harvestlink-app/harvestlink-backend/api/controllers"
	cartcontrollers "github.com/harvestlink-app/harvestlink-backend/api/controllers/cart"
	"github.com/harvestlink-app/harvestlink-backend/api/middleware"
	cartsvc "github.com/harvestlink-app/harvestlink-backend/internal/cart"
	checkoutsvc "github.com/harvestlink-app/harvestlink-backend/internal/checkout"
	"github.com/harvestlink-app/harvestlink-backend/pkg/config"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	CartService     cartsvc.Service
	CheckoutService checkoutsvc.Service
	Registry        *prometheus.Registry
	ReadyChecks     []controllers.Pinger
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks...))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(deps.CartService, logg))
			r.Delete("/", cartcontrollers.CartClear(deps.CartService, logg))
			r.Post("/items", cartcontrollers.CartAddItem(deps.CartService, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartUpdateQuantity(deps.CartService, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(deps.CartService, logg))
			r.Post("/items/{productId}/increment", cartcontrollers.CartIncrement(deps.CartService, logg))
			r.Post("/items/{productId}/decrement", cartcontrollers.CartDecrement(deps.CartService, logg))
			r.Put("/supplier", cartcontrollers.CartSetSupplier(deps.CartService, logg))
			r.Patch("/delivery", cartcontrollers.CartSetDelivery(deps.CartService, logg))
		})

		r.Post("/checkout", controllers.CheckoutSubmit(deps.CheckoutService, logg))
	})

	return r
}
