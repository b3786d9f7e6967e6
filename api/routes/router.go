package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pratoquente/pratoquente-backend/api/controllers"
	analyticscontrollers "github.com/pratoquente/pratoquente-backend/api/controllers/analytics"
	"github.com/pratoquente/pratoquente-backend/api/middleware"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	"github.com/pratoquente/pratoquente-backend/pkg/config"
	"github.com/pratoquente/pratoquente-backend/pkg/db"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
	"github.com/pratoquente/pratoquente-backend/pkg/metrics"
	"github.com/pratoquente/pratoquente-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger db.Pinger,
	redisPinger redis.Pinger,
	salesService sales.Service,
	reportMetrics *metrics.ReportMetrics,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Get("/filters", analyticscontrollers.Filters(salesService, logg))
		r.Get("/overview", analyticscontrollers.Overview(salesService, logg, reportMetrics))
		r.Get("/operational", analyticscontrollers.Operational(salesService, logg, reportMetrics))
		r.Get("/discounts", analyticscontrollers.Discounts(salesService, logg, reportMetrics))
		r.Post("/explorer", analyticscontrollers.Explorer(salesService, logg, reportMetrics))
		r.Get("/explorer/export", analyticscontrollers.ExplorerExport(salesService, logg, reportMetrics))
		r.Get("/rfm", analyticscontrollers.RFM(salesService, logg, reportMetrics))
		r.Get("/rfm/export", analyticscontrollers.RFMExport(salesService, logg, reportMetrics))
	})

	return r
}
