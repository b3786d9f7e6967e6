package analytics

import (
	"net/http"
	"time"

	"github.com/pratoquente/pratoquente-backend/api/responses"
	"github.com/pratoquente/pratoquente-backend/internal/reports"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
	"github.com/pratoquente/pratoquente-backend/pkg/metrics"
)

// Overview serves the headline KPIs and the per-day revenue series.
func Overview(service sales.Service, logg *logger.Logger, reportMetrics *metrics.ReportMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithReport(r.Context(), "overview")
		start := time.Now()

		query, err := rowsQueryFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithRange(ctx, query.Start, query.End)

		rows, err := service.Rows(ctx, query)
		if err != nil {
			reportMetrics.IncFailure("overview")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payments, err := service.PaymentsForSales(ctx, distinctSaleIDs(rows))
		if err != nil {
			reportMetrics.IncFailure("overview")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		overview := reports.BuildOverview(rows, payments)
		reportMetrics.ObserveDuration("overview", time.Since(start))
		responses.WriteSuccess(w, overview)
	}
}
