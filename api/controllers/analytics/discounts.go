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

// Discounts serves the discount decomposition report.
func Discounts(service sales.Service, logg *logger.Logger, reportMetrics *metrics.ReportMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithReport(r.Context(), "discounts")
		start := time.Now()

		query, err := rowsQueryFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithRange(ctx, query.Start, query.End)

		rows, err := service.Rows(ctx, query)
		if err != nil {
			reportMetrics.IncFailure("discounts")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		report := reports.BuildDiscounts(rows)
		reportMetrics.ObserveDuration("discounts", time.Since(start))
		responses.WriteSuccess(w, report)
	}
}
