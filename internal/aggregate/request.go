package aggregate

import (
	"fmt"

	"github.com/pratoquente/pratoquente-backend/pkg/enums"
	"github.com/pratoquente/pratoquente-backend/pkg/errors"
)

const (
	// DefaultLimit applies when a flat request omits the limit.
	DefaultLimit = 10
	// MaxLimit bounds flat requests.
	MaxLimit = 100

	// pivotRowCap bounds pivot output regardless of the requested limit.
	pivotRowCap = 20
)

// Request describes one aggregation. Segment empty means flat mode;
// set, it pivots dimension rows against segment columns.
type Request struct {
	Dimension enums.Dimension
	Segment   enums.Dimension
	Metric    enums.Metric
	Sort      enums.SortDirection
	Limit     int
}

// NewRequest validates and normalizes the aggregation parameters.
// A zero limit takes DefaultLimit, an empty sort takes descending.
func NewRequest(dimension, segment enums.Dimension, metric enums.Metric, sort enums.SortDirection, limit int) (Request, error) {
	if !dimension.IsValid() {
		return Request{}, errors.New(errors.CodeValidation, fmt.Sprintf("invalid dimension %q", dimension)).
			WithDetails(map[string]string{"field": "dimension"})
	}
	if !segment.IsNone() {
		if !segment.IsValid() {
			return Request{}, errors.New(errors.CodeValidation, fmt.Sprintf("invalid segment %q", segment)).
				WithDetails(map[string]string{"field": "segment"})
		}
		if segment == dimension {
			return Request{}, errors.New(errors.CodeValidation,
				fmt.Sprintf("dimension and segment must differ, both are %q", dimension)).
				WithDetails(map[string]string{"dimension": dimension.String(), "segment": segment.String()})
		}
	}
	if !metric.IsValid() {
		return Request{}, errors.New(errors.CodeValidation, fmt.Sprintf("invalid metric %q", metric)).
			WithDetails(map[string]string{"field": "metric"})
	}
	if sort == "" {
		sort = enums.SortDescending
	}
	if !sort.IsValid() {
		return Request{}, errors.New(errors.CodeValidation, fmt.Sprintf("invalid sort direction %q", sort)).
			WithDetails(map[string]string{"field": "sort"})
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return Request{}, errors.New(errors.CodeValidation,
			fmt.Sprintf("limit must be between 1 and %d, got %d", MaxLimit, limit)).
			WithDetails(map[string]string{"field": "limit"})
	}
	return Request{
		Dimension: dimension,
		Segment:   segment,
		Metric:    metric,
		Sort:      sort,
		Limit:     limit,
	}, nil
}

// IsPivot reports whether the request carries a segment.
func (r Request) IsPivot() bool {
	return !r.Segment.IsNone()
}
