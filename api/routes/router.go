package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artelaco/catalog-backend/api/controllers"
	"github.com/artelaco/catalog-backend/api/middleware"
	collectionsvc "github.com/artelaco/catalog-backend/internal/collections"
	productsvc "github.com/artelaco/catalog-backend/internal/products"
	statsvc "github.com/artelaco/catalog-backend/internal/stats"
	"github.com/artelaco/catalog-backend/pkg/config"
	"github.com/artelaco/catalog-backend/pkg/db"
	"github.com/artelaco/catalog-backend/pkg/logger"
	"github.com/artelaco/catalog-backend/pkg/metrics"
	"github.com/artelaco/catalog-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	promRegistry *prometheus.Registry,
	collectionService collectionsvc.Service,
	productService productsvc.Service,
	statsService statsvc.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	var redisP db.Pinger
	if redisClient != nil {
		redisP = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/collections", func(r chi.Router) {
			r.Post("/", controllers.CreateCollection(collectionService, logg))
			r.Get("/", controllers.ListCollections(collectionService, logg))
			r.Route("/{collectionID}", func(r chi.Router) {
				r.Get("/", controllers.GetCollection(collectionService, logg))
				r.Patch("/", controllers.UpdateCollection(collectionService, logg))
				r.Delete("/", controllers.DeleteCollection(collectionService, logg))
				r.Get("/products", controllers.ListCollectionProducts(collectionService, logg))
			})
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Route("/{productID}", func(r chi.Router) {
				r.Get("/", controllers.GetProduct(productService, logg))
				r.Patch("/", controllers.UpdateProduct(productService, logg))
				r.Delete("/", controllers.DeleteProduct(productService, logg))
			})
		})

		r.Get("/stats", controllers.GetStats(statsService, logg))
	})

	return r
}
