package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gradeflow/gradeflow-backend/api/controllers"
	"github.com/gradeflow/gradeflow-backend/api/middleware"
	"github.com/gradeflow/gradeflow-backend/internal/grades"
	"github.com/gradeflow/gradeflow-backend/internal/pricing"
	"github.com/gradeflow/gradeflow-backend/internal/variations"
	"github.com/gradeflow/gradeflow-backend/pkg/config"
	"github.com/gradeflow/gradeflow-backend/pkg/db"
	"github.com/gradeflow/gradeflow-backend/pkg/logger"
	"github.com/gradeflow/gradeflow-backend/pkg/metrics"
	"github.com/gradeflow/gradeflow-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	metricsHandler http.Handler,
	httpMetrics *metrics.HTTPMetrics,
	variationService variations.Service,
	gradeService grades.Service,
	pricingService pricing.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.App.CORSAllowedOrigins),
		middleware.Logging(logg, httpMetrics),
	)

	deps := map[string]controllers.Pinger{"db": nil, "redis": nil}
	if dbP != nil {
		deps["db"] = dbP
	}
	if redisP != nil {
		deps["redis"] = redisP
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api/v1/stores/{storeId}", func(r chi.Router) {
		r.Use(middleware.StoreScope(logg))

		r.Post("/variations/generate", controllers.GenerateVariations(variationService, logg))

		r.Route("/grades", func(r chi.Router) {
			r.Post("/config/validate", controllers.GradeConfigValidate(gradeService, logg))
			r.Route("/{variationId}", func(r chi.Router) {
				r.Get("/config", controllers.GradeConfigFetch(gradeService, logg))
				r.Put("/config", controllers.GradeConfigSave(gradeService, logg))
				r.Post("/custom-selection/validate", controllers.CustomSelectionValidate(gradeService, logg))
				r.Post("/quote", controllers.GradeQuote(gradeService, logg))
			})
		})

		r.Route("/products/{productId}", func(r chi.Router) {
			r.Get("/pricing", controllers.ProductPricingFetch(pricingService, logg))
			r.Put("/pricing", controllers.ProductPricingSave(pricingService, logg))
			r.Post("/price-quote", controllers.ProductPriceQuote(pricingService, logg))
		})
	})

	return r
}
