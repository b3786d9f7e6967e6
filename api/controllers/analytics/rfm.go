package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pratoquente/pratoquente-backend/api/responses"
	"github.com/pratoquente/pratoquente-backend/api/validators"
	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/internal/reports"
	"github.com/pratoquente/pratoquente-backend/internal/rfm"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
	"github.com/pratoquente/pratoquente-backend/pkg/metrics"
)

const maxRFMThreshold = 10000

// RFM serves the loyal-but-lapsed customer list.
func RFM(service sales.Service, logg *logger.Logger, reportMetrics *metrics.ReportMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithReport(r.Context(), "rfm")
		start := time.Now()

		customers, err := rfmFromRequest(ctx, r, service)
		if err != nil {
			reportMetrics.IncFailure("rfm")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		reportMetrics.ObserveDuration("rfm", time.Since(start))
		responses.WriteSuccess(w, customers)
	}
}

// RFMExport streams the same customer list as a CSV attachment.
func RFMExport(service sales.Service, logg *logger.Logger, reportMetrics *metrics.ReportMetrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithReport(r.Context(), "rfm_export")

		customers, err := rfmFromRequest(ctx, r, service)
		if err != nil {
			reportMetrics.IncFailure("rfm_export")
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteCSV(ctx, logg, w, "rfm.csv", func(w http.ResponseWriter) error {
			return reports.WriteRFMCSV(w, customers)
		})
	}
}

func rfmFromRequest(ctx context.Context, r *http.Request, service sales.Service) ([]rfm.Customer, error) {
	minFrequency, err := validators.ParseQueryInt(r, "min_frequency", 0, 1, maxRFMThreshold)
	if err != nil {
		return nil, err
	}
	minRecency, err := validators.ParseQueryInt(r, "min_recency", 0, 0, maxRFMThreshold)
	if err != nil {
		return nil, err
	}

	query, err := rowsQueryFromRequest(r)
	if err != nil {
		return nil, err
	}

	// Scoring reads the whole order history so lapsed customers keep
	// their full frequency and monetary figures. The requested range
	// only anchors the recency reference date.
	rows, err := service.HistoryRows(ctx)
	if err != nil {
		return nil, err
	}

	directory, err := service.CustomerNames(ctx, distinctCustomerIDs(rows))
	if err != nil {
		return nil, err
	}

	customers := rfm.Compute(rows, directory, query.End)
	return rfm.Filter(customers, minFrequency, minRecency)
}

func distinctCustomerIDs(rows dataset.Rows) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	ids := []uuid.UUID{}
	for _, row := range rows {
		if row.CustomerID == nil {
			continue
		}
		if _, ok := seen[*row.CustomerID]; ok {
			continue
		}
		seen[*row.CustomerID] = struct{}{}
		ids = append(ids, *row.CustomerID)
	}
	return ids
}
