package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/pratoquente/pratoquente-backend/api/responses"
	"github.com/pratoquente/pratoquente-backend/api/validators"
	"github.com/pratoquente/pratoquente-backend/internal/aggregate"
	"github.com/pratoquente/pratoquente-backend/internal/reports"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	"github.com/pratoquente/pratoquente-backend/pkg/enums"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
	"github.com/pratoquente/pratoquente-backend/pkg/metrics"
)

// explorerBody is the aggregation half of an explorer request. The date
// range and store/channel filters travel in the query string like every
// other report endpoint.
type explorerBody struct {
	Dimension string `json:"dimension" validate:"required"`
	Segment   string `json:"segment,omitempty"`
	Metric    string `json:"metric" validate:"required"`
	Sort      string `json:"sort,omitempty" validate:"omitempty,oneof=asc desc"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

func (b explorerBody) toRequest() (aggregate.Request, error) {
	return aggregate.NewRequest(
		enums.Dimension(b.Dimension),
		enums.Dimension(b.Segment),
		enums.Metric(b.Metric),
		enums.SortDirection(b.Sort),
		b.Limit,
	)
}

// Explorer runs an ad hoc aggregation over the filtered sale rows.
func Explorer(service sales.Service, logg *logger.Logger, reportMetrics *metrics.ReportMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithReport(r.Context(), "explorer")
		start := time.Now()

		var body explorerBody
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		req, err := body.toRequest()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query, err := rowsQueryFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithRange(ctx, query.Start, query.End)

		rows, err := service.Rows(ctx, query)
		if err != nil {
			reportMetrics.IncFailure("explorer")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result := aggregate.Run(req, rows)
		reportMetrics.ObserveDuration("explorer", time.Since(start))
		responses.WriteSuccess(w, result)
	}
}

// ExplorerExport streams the same aggregation as a CSV attachment. All
// parameters travel in the query string so the link is bookmarkable.
func ExplorerExport(service sales.Service, logg *logger.Logger, reportMetrics *metrics.ReportMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithReport(r.Context(), "explorer_export")

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, aggregate.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		query := r.URL.Query()
		req, err := aggregate.NewRequest(
			enums.Dimension(strings.TrimSpace(query.Get("dimension"))),
			enums.Dimension(strings.TrimSpace(query.Get("segment"))),
			enums.Metric(strings.TrimSpace(query.Get("metric"))),
			enums.SortDirection(strings.TrimSpace(query.Get("sort"))),
			limit,
		)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		rowsQuery, err := rowsQueryFromRequest(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		ctx = logg.WithRange(ctx, rowsQuery.Start, rowsQuery.End)

		rows, err := service.Rows(ctx, rowsQuery)
		if err != nil {
			reportMetrics.IncFailure("explorer_export")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result := aggregate.Run(req, rows)
		responses.WriteCSV(ctx, logg, w, "explorer.csv", func(w http.ResponseWriter) error {
			return reports.WriteExplorerCSV(w, result)
		})
	}
}
