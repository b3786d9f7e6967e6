package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/pratoquente/pratoquente-backend/api/responses"
	"github.com/pratoquente/pratoquente-backend/internal/reports"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	"github.com/pratoquente/pratoquente-backend/pkg/enums"
	pkgerrors "github.com/pratoquente/pratoquente-backend/pkg/errors"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
	"github.com/pratoquente/pratoquente-backend/pkg/metrics"
)

// Operational serves the weekday-by-hour heatmap. The metric query
// parameter defaults to mean production time.
func Operational(service sales.Service, logg *logger.Logger, reportMetrics *metrics.ReportMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithReport(r.Context(), "operational")
		start := time.Now()

		metricParam := strings.TrimSpace(r.URL.Query().Get("metric"))
		heatmapMetric := enums.HeatmapPrepSeconds
		if metricParam != "" {
			parsed, err := enums.ParseHeatmapMetric(metricParam)
			if err != nil {
				responses.WriteError(ctx, logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid heatmap metric").
						WithDetails(map[string]string{"field": "metric"}))
				return
			}
			heatmapMetric = parsed
		}

		query, err := rowsQueryFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithRange(ctx, query.Start, query.End)

		rows, err := service.Rows(ctx, query)
		if err != nil {
			reportMetrics.IncFailure("operational")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		operational := reports.BuildOperational(rows, heatmapMetric)
		reportMetrics.ObserveDuration("operational", time.Since(start))
		responses.WriteSuccess(w, operational)
	}
}
