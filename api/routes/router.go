package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adamacoulibaly/orderdesk/api/controllers"
	"github.com/adamacoulibaly/orderdesk/api/middleware"
	"github.com/adamacoulibaly/orderdesk/internal/cart"
	"github.com/adamacoulibaly/orderdesk/internal/catalog"
	"github.com/adamacoulibaly/orderdesk/internal/orders"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
	"github.com/adamacoulibaly/orderdesk/pkg/metrics"
	pkgredis "github.com/adamacoulibaly/orderdesk/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Logger         *logger.Logger
	Redis          *pkgredis.Client
	CatalogClient  catalog.Fetcher
	OrderClient    orders.API
	CartService    cart.Service
	ServerMetrics  *metrics.ServerMetrics
	ExtraCORSHosts []string
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.ServerMetrics),
		middleware.CORS(deps.ExtraCORSHosts...),
	)

	var readiness controllers.Pinger
	if deps.Redis != nil {
		readiness = deps.Redis
	}
	health := controllers.NewHealthController(readiness, deps.Logger)
	catalogCtrl := controllers.NewCatalogController(deps.CatalogClient, deps.Logger)
	ordersCtrl := controllers.NewOrdersController(deps.OrderClient, deps.Logger)
	cartsCtrl := controllers.NewCartsController(deps.CartService, deps.Logger)

	r.Get("/health/live", health.Live)
	r.Get("/health/ready", health.Ready)
	if deps.ServerMetrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	var idemStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		idemStore = deps.Redis
	}
	idem := middleware.Idempotency(idemStore, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/products", catalogCtrl.ListProducts)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersCtrl.List)
			r.With(idem).Post("/", ordersCtrl.Create)
			r.Route("/{orderID}", func(r chi.Router) {
				r.Get("/", ordersCtrl.Get)
				r.Put("/", ordersCtrl.Update)
				r.Delete("/", ordersCtrl.Delete)
			})
		})

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", cartsCtrl.Create)
			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", cartsCtrl.Get)
				r.Post("/items", cartsCtrl.AddItem)
				r.Delete("/items/{itemKey}", cartsCtrl.RemoveItem)
				r.With(idem).Post("/checkout", cartsCtrl.Checkout)
			})
		})
	})

	return r
}
