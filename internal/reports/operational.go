package reports

import (
	"fmt"
	"sort"
	"time"

	"github.com/pratoquente/pratoquente-backend/internal/aggregate"
	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/pkg/enums"
)

// Operational bundles the per-day timing series with the weekday-by-hour
// heatmap.
type Operational struct {
	Days    []OperationalDay `json:"days"`
	Heatmap Heatmap          `json:"heatmap"`
}

// OperationalDay is one calendar day of mean kitchen and delivery times.
// Orders without a measurement are excluded from the respective mean.
type OperationalDay struct {
	Date                 string  `json:"date"`
	Orders               int     `json:"orders"`
	AvgProductionMinutes float64 `json:"avg_production_minutes"`
	AvgDeliveryMinutes   float64 `json:"avg_delivery_minutes"`
}

// BuildOperational computes the per-day series and the heatmap over the
// deduplicated order view.
func BuildOperational(rows dataset.Rows, metric enums.HeatmapMetric) Operational {
	report := Operational{
		Days:    []OperationalDay{},
		Heatmap: BuildHeatmap(rows, metric),
	}

	type accumulator struct {
		orders        int
		prepSum       float64
		prepCount     float64
		deliverySum   float64
		deliveryCount float64
	}
	byDay := map[string]*accumulator{}
	days := []string{}

	for _, order := range rows.Orders() {
		day := order.CreatedAt.Format(time.DateOnly)
		acc, ok := byDay[day]
		if !ok {
			acc = &accumulator{}
			byDay[day] = acc
			days = append(days, day)
		}
		acc.orders++
		if order.ProductionSeconds != nil {
			acc.prepSum += float64(*order.ProductionSeconds)
			acc.prepCount++
		}
		if order.DeliverySeconds != nil {
			acc.deliverySum += float64(*order.DeliverySeconds)
			acc.deliveryCount++
		}
	}

	sort.Strings(days)
	for _, day := range days {
		acc := byDay[day]
		report.Days = append(report.Days, OperationalDay{
			Date:                 day,
			Orders:               acc.orders,
			AvgProductionMinutes: aggregate.SafeDivide(acc.prepSum, acc.prepCount) / 60,
			AvgDeliveryMinutes:   aggregate.SafeDivide(acc.deliverySum, acc.deliveryCount) / 60,
		})
	}
	return report
}

// heatmapWeekdays fixes the row order of the heatmap, Monday first.
var heatmapWeekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

// Heatmap is a weekday-by-hour table. Rows follow heatmapWeekdays,
// columns are the 24 hours of the day.
type Heatmap struct {
	Metric   enums.HeatmapMetric `json:"metric"`
	Weekdays []string            `json:"weekdays"`
	Hours    []string            `json:"hours"`
	Cells    [][]float64         `json:"cells"`
}

// BuildHeatmap averages the chosen timing metric (or counts orders) per
// weekday and hour over the deduplicated order view. Cells without
// orders, and timing cells where no order carries the measurement,
// hold 0.
func BuildHeatmap(rows dataset.Rows, metric enums.HeatmapMetric) Heatmap {
	heatmap := Heatmap{
		Metric:   metric,
		Weekdays: make([]string, len(heatmapWeekdays)),
		Hours:    make([]string, 24),
		Cells:    make([][]float64, len(heatmapWeekdays)),
	}

	rowIndex := map[time.Weekday]int{}
	for i, weekday := range heatmapWeekdays {
		heatmap.Weekdays[i] = weekday.String()
		heatmap.Cells[i] = make([]float64, 24)
		rowIndex[weekday] = i
	}
	for h := 0; h < 24; h++ {
		heatmap.Hours[h] = fmt.Sprintf("%02d", h)
	}

	counts := make([][]float64, len(heatmapWeekdays))
	for i := range counts {
		counts[i] = make([]float64, 24)
	}

	for _, order := range rows.Orders() {
		i := rowIndex[order.CreatedAt.Weekday()]
		h := order.CreatedAt.Hour()

		switch metric {
		case enums.HeatmapOrders:
			heatmap.Cells[i][h]++
		case enums.HeatmapPrepSeconds:
			if order.ProductionSeconds != nil {
				heatmap.Cells[i][h] += float64(*order.ProductionSeconds)
				counts[i][h]++
			}
		case enums.HeatmapDeliverySeconds:
			if order.DeliverySeconds != nil {
				heatmap.Cells[i][h] += float64(*order.DeliverySeconds)
				counts[i][h]++
			}
		}
	}

	if metric != enums.HeatmapOrders {
		for i := range heatmap.Cells {
			for h := range heatmap.Cells[i] {
				heatmap.Cells[i][h] = aggregate.SafeDivide(heatmap.Cells[i][h], counts[i][h])
			}
		}
	}
	return heatmap
}
