package reports

import (
	"sort"

	"github.com/pratoquente/pratoquente-backend/internal/aggregate"
	"github.com/pratoquente/pratoquente-backend/internal/dataset"
)

// Discounts decomposes order-level revenue for a date range:
// net = gross items - discounts - (delivery + service fees). Gross,
// discounts and fees are independent column sums. Net is not clamped,
// pathological data can push it negative.
type Discounts struct {
	GrossRevenue     float64           `json:"gross_revenue"`
	TotalDiscount    float64           `json:"total_discount"`
	TotalFees        float64           `json:"total_fees"`
	NetRevenue       float64           `json:"net_revenue"`
	DiscountPercent  float64           `json:"discount_percent"`
	DiscountedOrders int               `json:"discounted_orders"`
	ByChannel        []ChannelDiscount `json:"by_channel"`
}

// ChannelDiscount is the discount share of one sales channel.
type ChannelDiscount struct {
	Channel          string  `json:"channel"`
	Discount         float64 `json:"discount"`
	Orders           int     `json:"orders"`
	DiscountPerOrder float64 `json:"discount_per_order"`
	DiscountPercent  float64 `json:"discount_percent"`
}

// BuildDiscounts aggregates discounts over the deduplicated order view.
// Gross revenue sums the items column, the percent is discount over
// gross. Channels sort by discount descending.
func BuildDiscounts(rows dataset.Rows) Discounts {
	report := Discounts{ByChannel: []ChannelDiscount{}}

	byChannel := map[string]*ChannelDiscount{}
	channelGross := map[string]float64{}
	order := []string{}

	for _, sale := range rows.Orders() {
		discount := sale.OrderDiscount.InexactFloat64()
		gross := sale.OrderItemsTotal.InexactFloat64()
		fees := sale.DeliveryFee.InexactFloat64() + sale.ServiceFee.InexactFloat64()

		report.TotalDiscount += discount
		report.GrossRevenue += gross
		report.TotalFees += fees
		if discount > 0 {
			report.DiscountedOrders++
		}

		entry, ok := byChannel[sale.Channel]
		if !ok {
			entry = &ChannelDiscount{Channel: sale.Channel}
			byChannel[sale.Channel] = entry
			order = append(order, sale.Channel)
		}
		entry.Discount += discount
		entry.Orders++
		channelGross[sale.Channel] += gross
	}

	report.NetRevenue = report.GrossRevenue - report.TotalDiscount - report.TotalFees
	report.DiscountPercent = aggregate.SafePercent(report.TotalDiscount, report.GrossRevenue)

	for _, channel := range order {
		entry := byChannel[channel]
		entry.DiscountPerOrder = aggregate.SafeDivide(entry.Discount, float64(entry.Orders))
		entry.DiscountPercent = aggregate.SafePercent(entry.Discount, channelGross[channel])
		report.ByChannel = append(report.ByChannel, *entry)
	}
	sort.SliceStable(report.ByChannel, func(i, j int) bool {
		return report.ByChannel[i].Discount > report.ByChannel[j].Discount
	})
	return report
}
