package enums

import "fmt"

// Metric is the numeric value the explorer aggregates per group.
type Metric string

const (
	// MetricRevenue sums line revenue (line-level view).
	MetricRevenue Metric = "revenue"
	// MetricOrders counts distinct sale IDs.
	MetricOrders Metric = "orders"
	// MetricQuantity sums line quantities (line-level view).
	MetricQuantity Metric = "quantity"
	// MetricAvgTicket divides deduplicated order totals by distinct orders.
	MetricAvgTicket Metric = "avg_ticket"
)

var validMetrics = []Metric{
	MetricRevenue,
	MetricOrders,
	MetricQuantity,
	MetricAvgTicket,
}

// String implements fmt.Stringer.
func (m Metric) String() string {
	return string(m)
}

// IsValid reports whether the value is a known Metric.
func (m Metric) IsValid() bool {
	for _, candidate := range validMetrics {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMetric converts raw input into a Metric.
func ParseMetric(value string) (Metric, error) {
	for _, candidate := range validMetrics {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid metric %q", value)
}
