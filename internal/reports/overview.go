package reports

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pratoquente/pratoquente-backend/internal/aggregate"
	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	"github.com/pratoquente/pratoquente-backend/pkg/enums"
)

const productRankSize = 10

// Overview carries the headline KPIs and the breakdowns for a date range.
type Overview struct {
	TotalRevenue         float64           `json:"total_revenue"`
	TotalOrders          int               `json:"total_orders"`
	AverageTicket        float64           `json:"average_ticket"`
	TotalQuantity        int               `json:"total_quantity"`
	TotalDeliveryFee     float64           `json:"total_delivery_fee"`
	TotalServiceFee      float64           `json:"total_service_fee"`
	UniqueCustomers      int               `json:"unique_customers"`
	AvgProductionMinutes float64           `json:"avg_production_minutes"`
	AvgDeliveryMinutes   float64           `json:"avg_delivery_minutes"`
	Series               []DayPoint        `json:"series"`
	RevenueByChannel     []aggregate.Entry `json:"revenue_by_channel"`
	RevenueByPayment     []aggregate.Entry `json:"revenue_by_payment"`
	TopProducts          []aggregate.Entry `json:"top_products"`
	BottomProducts       []aggregate.Entry `json:"bottom_products"`
}

// DayPoint is one calendar day of the overview series.
type DayPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// BuildOverview computes order-level KPIs. Revenue, fees and durations
// come from the deduplicated order view, quantity and product rankings
// from the line view, payment totals from the tender rows.
func BuildOverview(rows dataset.Rows, payments []sales.SalePayment) Overview {
	orders := rows.Orders()

	overview := Overview{
		Series:           []DayPoint{},
		RevenueByChannel: []aggregate.Entry{},
		RevenueByPayment: []aggregate.Entry{},
		TopProducts:      []aggregate.Entry{},
		BottomProducts:   []aggregate.Entry{},
	}
	byDay := map[string]*DayPoint{}
	days := []string{}
	customers := map[uuid.UUID]struct{}{}

	var prepSum, deliverySum float64
	var prepCount, deliveryCount float64

	for _, order := range orders {
		overview.TotalRevenue += order.OrderTotal.InexactFloat64()
		overview.TotalDeliveryFee += order.DeliveryFee.InexactFloat64()
		overview.TotalServiceFee += order.ServiceFee.InexactFloat64()
		overview.TotalOrders++

		if order.CustomerID != nil {
			customers[*order.CustomerID] = struct{}{}
		}
		if order.ProductionSeconds != nil {
			prepSum += float64(*order.ProductionSeconds)
			prepCount++
		}
		if order.DeliverySeconds != nil {
			deliverySum += float64(*order.DeliverySeconds)
			deliveryCount++
		}

		day := order.CreatedAt.Format(time.DateOnly)
		point, ok := byDay[day]
		if !ok {
			point = &DayPoint{Date: day}
			byDay[day] = point
			days = append(days, day)
		}
		point.Revenue += order.OrderTotal.InexactFloat64()
		point.Orders++
	}

	for _, row := range rows {
		overview.TotalQuantity += row.Quantity
	}

	overview.AverageTicket = aggregate.SafeDivide(overview.TotalRevenue, float64(overview.TotalOrders))
	overview.UniqueCustomers = len(customers)
	overview.AvgProductionMinutes = aggregate.SafeDivide(prepSum, prepCount) / 60
	overview.AvgDeliveryMinutes = aggregate.SafeDivide(deliverySum, deliveryCount) / 60

	sort.Strings(days)
	for _, day := range days {
		overview.Series = append(overview.Series, *byDay[day])
	}

	overview.RevenueByChannel = channelEntries(orders)
	overview.TopProducts = rankEntries(rows, enums.DimensionProduct, enums.SortDescending, productRankSize)
	overview.BottomProducts = rankEntries(rows, enums.DimensionProduct, enums.SortAscending, productRankSize)
	overview.RevenueByPayment = paymentEntries(payments)

	return overview
}

// channelEntries sums deduplicated order totals per channel. Line sums
// would drift from the headline revenue whenever fees or discounts make
// an order total differ from the sum of its lines.
func channelEntries(orders dataset.Rows) []aggregate.Entry {
	totals := map[string]float64{}
	names := []string{}
	for _, order := range orders {
		if _, ok := totals[order.Channel]; !ok {
			names = append(names, order.Channel)
		}
		totals[order.Channel] += order.OrderTotal.InexactFloat64()
	}

	entries := make([]aggregate.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, aggregate.Entry{Label: name, Value: totals[name]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return entries
}

func rankEntries(rows dataset.Rows, dimension enums.Dimension, direction enums.SortDirection, limit int) []aggregate.Entry {
	result := aggregate.Run(aggregate.Request{
		Dimension: dimension,
		Metric:    enums.MetricRevenue,
		Sort:      direction,
		Limit:     limit,
	}, rows)
	return result.Entries
}

func paymentEntries(payments []sales.SalePayment) []aggregate.Entry {
	totals := map[string]float64{}
	order := []string{}
	for _, payment := range payments {
		if _, ok := totals[payment.PaymentType]; !ok {
			order = append(order, payment.PaymentType)
		}
		totals[payment.PaymentType] += payment.Amount.InexactFloat64()
	}

	entries := make([]aggregate.Entry, 0, len(order))
	for _, tender := range order {
		entries = append(entries, aggregate.Entry{Label: tender, Value: totals[tender]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return entries
}
