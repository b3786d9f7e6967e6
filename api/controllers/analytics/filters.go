package analytics

import (
	"net/http"

	"github.com/pratoquente/pratoquente-backend/api/responses"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
)

// Filters serves the selectable stores, channels, categories and the
// sale history date bounds for the dashboard filter bar.
func Filters(service sales.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logg.WithReport(r.Context(), "filters")

		filters, err := service.Filters(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, filters)
	}
}
