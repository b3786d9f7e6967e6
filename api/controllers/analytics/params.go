package analytics

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pratoquente/pratoquente-backend/api/validators"
	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	pkgerrors "github.com/pratoquente/pratoquente-backend/pkg/errors"
)

var timeNowUTC = func() time.Time {
	return time.Now().UTC()
}

// resolveRange reads either an explicit from/to RFC3339 pair or a preset
// window (7d/30d/90d, default 30d) from the query string.
func resolveRange(r *http.Request, now time.Time) (time.Time, time.Time, error) {
	query := r.URL.Query()
	from := strings.TrimSpace(query.Get("from"))
	to := strings.TrimSpace(query.Get("to"))

	if from != "" || to != "" {
		if from == "" || to == "" {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "from and to must be provided together")
		}
		start, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid from timestamp")
		}
		end, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid to timestamp")
		}
		start = start.UTC()
		end = end.UTC()
		if end.Before(start) {
			return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "end must be after start")
		}
		return start, end, nil
	}

	preset := strings.TrimSpace(query.Get("preset"))
	duration, ok := presetDuration(preset)
	if !ok {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid preset")
	}

	end := now
	start := end.Add(-duration)
	return start, end, nil
}

func presetDuration(value string) (time.Duration, bool) {
	if value == "" {
		value = "30d"
	}
	switch strings.ToLower(value) {
	case "7d":
		return 7 * 24 * time.Hour, true
	case "30d":
		return 30 * 24 * time.Hour, true
	case "90d":
		return 90 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// distinctSaleIDs collects each order ID once, in encounter order.
func distinctSaleIDs(rows dataset.Rows) []uuid.UUID {
	seen := map[uuid.UUID]struct{}{}
	ids := []uuid.UUID{}
	for _, row := range rows {
		if _, ok := seen[row.SaleID]; ok {
			continue
		}
		seen[row.SaleID] = struct{}{}
		ids = append(ids, row.SaleID)
	}
	return ids
}

// rowsQueryFromRequest assembles the date range and store/channel filters
// shared by every report endpoint.
func rowsQueryFromRequest(r *http.Request) (sales.RowsQuery, error) {
	start, end, err := resolveRange(r, timeNowUTC())
	if err != nil {
		return sales.RowsQuery{}, err
	}

	return sales.RowsQuery{
		Start:    start,
		End:      end,
		Stores:   validators.ParseQueryNameList(r, "stores"),
		Channels: validators.ParseQueryNameList(r, "channels"),
	}, nil
}
