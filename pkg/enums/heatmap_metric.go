package enums

import "fmt"

// HeatmapMetric selects the value plotted on the weekday-by-hour heatmap.
type HeatmapMetric string

const (
	// HeatmapPrepSeconds is the mean production time per cell.
	HeatmapPrepSeconds HeatmapMetric = "prep_seconds"
	// HeatmapDeliverySeconds is the mean delivery time per cell.
	HeatmapDeliverySeconds HeatmapMetric = "delivery_seconds"
	// HeatmapOrders is the distinct order count per cell.
	HeatmapOrders HeatmapMetric = "orders"
)

var validHeatmapMetrics = []HeatmapMetric{
	HeatmapPrepSeconds,
	HeatmapDeliverySeconds,
	HeatmapOrders,
}

// String implements fmt.Stringer.
func (h HeatmapMetric) String() string {
	return string(h)
}

// IsValid reports whether the value is a known HeatmapMetric.
func (h HeatmapMetric) IsValid() bool {
	for _, candidate := range validHeatmapMetrics {
		if candidate == h {
			return true
		}
	}
	return false
}

// ParseHeatmapMetric converts raw input into a HeatmapMetric.
func ParseHeatmapMetric(value string) (HeatmapMetric, error) {
	for _, candidate := range validHeatmapMetrics {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid heatmap metric %q", value)
}
