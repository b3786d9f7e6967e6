package reports

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
)

func sale(total, discount, deliveryFee float64, lines int, createdAt time.Time) dataset.Rows {
	saleID := uuid.New()
	rows := make(dataset.Rows, 0, lines)
	for i := 0; i < lines; i++ {
		rows = append(rows, dataset.Row{
			SaleID:        saleID,
			Store:         "Centro",
			Channel:       "delivery",
			Product:       "Burger",
			Quantity:      1,
			LineRevenue:   decimal.NewFromFloat(total / float64(lines)),
			OrderTotal:    decimal.NewFromFloat(total),
			OrderDiscount: decimal.NewFromFloat(discount),
			DeliveryFee:   decimal.NewFromFloat(deliveryFee),
			CreatedAt:     createdAt,
		})
	}
	return rows
}

func TestBuildOverviewKPIs(t *testing.T) {
	day1 := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 4, 2, 19, 0, 0, 0, time.UTC)

	rows := dataset.Rows{}
	rows = append(rows, sale(100, 0, 8, 2, day1)...)
	rows = append(rows, sale(60, 0, 0, 1, day1)...)
	rows = append(rows, sale(40, 0, 5, 3, day2)...)

	overview := BuildOverview(rows, nil)

	assert.InDelta(t, 200.0, overview.TotalRevenue, 1e-9)
	assert.Equal(t, 3, overview.TotalOrders)
	assert.InDelta(t, 200.0/3.0, overview.AverageTicket, 1e-9)
	assert.Equal(t, 6, overview.TotalQuantity)
	assert.InDelta(t, 13.0, overview.TotalDeliveryFee, 1e-9)

	require.Len(t, overview.Series, 2)
	assert.Equal(t, DayPoint{Date: "2024-04-01", Revenue: 160, Orders: 2}, overview.Series[0])
	assert.Equal(t, DayPoint{Date: "2024-04-02", Revenue: 40, Orders: 1}, overview.Series[1])

	require.Len(t, overview.RevenueByChannel, 1)
	assert.Equal(t, "delivery", overview.RevenueByChannel[0].Label)
	assert.InDelta(t, 200.0, overview.RevenueByChannel[0].Value, 1e-9)
	require.Len(t, overview.TopProducts, 1)
	assert.Equal(t, "Burger", overview.TopProducts[0].Label)
}

func TestRevenueByChannelUsesOrderTotals(t *testing.T) {
	at := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	saleID := uuid.New()

	// Order total 100 includes a 10 delivery fee, so the lines only sum
	// to 90. The channel figure must match the headline revenue.
	rows := dataset.Rows{
		{SaleID: saleID, Channel: "iFood", Product: "Burger", Quantity: 1,
			LineRevenue: decimal.NewFromInt(60), OrderTotal: decimal.NewFromInt(100),
			DeliveryFee: decimal.NewFromInt(10), CreatedAt: at},
		{SaleID: saleID, Channel: "iFood", Product: "Fries", Quantity: 1,
			LineRevenue: decimal.NewFromInt(30), OrderTotal: decimal.NewFromInt(100),
			DeliveryFee: decimal.NewFromInt(10), CreatedAt: at},
	}

	overview := BuildOverview(rows, nil)

	require.Len(t, overview.RevenueByChannel, 1)
	assert.Equal(t, "iFood", overview.RevenueByChannel[0].Label)
	assert.InDelta(t, 100.0, overview.RevenueByChannel[0].Value, 1e-9)
	assert.InDelta(t, overview.TotalRevenue, overview.RevenueByChannel[0].Value, 1e-9)
}

func TestBuildOverviewCustomersAndTimings(t *testing.T) {
	at := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	ana := uuid.New()
	bia := uuid.New()
	prep := 600
	delivery := 1800

	rows := dataset.Rows{
		{SaleID: uuid.New(), CustomerID: &ana, Product: "Burger", Quantity: 1,
			OrderTotal: decimal.NewFromInt(50), ProductionSeconds: &prep, CreatedAt: at},
		{SaleID: uuid.New(), CustomerID: &ana, Product: "Burger", Quantity: 1,
			OrderTotal: decimal.NewFromInt(30), DeliverySeconds: &delivery, CreatedAt: at},
		{SaleID: uuid.New(), CustomerID: &bia, Product: "Burger", Quantity: 1,
			OrderTotal: decimal.NewFromInt(20), CreatedAt: at},
		{SaleID: uuid.New(), Product: "Burger", Quantity: 1,
			OrderTotal: decimal.NewFromInt(10), CreatedAt: at},
	}

	overview := BuildOverview(rows, nil)

	assert.Equal(t, 2, overview.UniqueCustomers)
	assert.InDelta(t, 10.0, overview.AvgProductionMinutes, 1e-9)
	assert.InDelta(t, 30.0, overview.AvgDeliveryMinutes, 1e-9)
}

func TestBuildOverviewPaymentBreakdown(t *testing.T) {
	at := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	rows := sale(100, 0, 0, 1, at)

	payments := []sales.SalePayment{
		{SaleID: rows[0].SaleID, PaymentType: "pix", Amount: decimal.NewFromInt(40)},
		{SaleID: rows[0].SaleID, PaymentType: "credit_card", Amount: decimal.NewFromInt(60)},
	}

	overview := BuildOverview(rows, payments)

	require.Len(t, overview.RevenueByPayment, 2)
	assert.Equal(t, "credit_card", overview.RevenueByPayment[0].Label)
	assert.InDelta(t, 60.0, overview.RevenueByPayment[0].Value, 1e-9)
	assert.Equal(t, "pix", overview.RevenueByPayment[1].Label)
}

func TestBuildOverviewEmpty(t *testing.T) {
	overview := BuildOverview(nil, nil)
	assert.Equal(t, 0, overview.TotalOrders)
	assert.Equal(t, 0.0, overview.AverageTicket)
	assert.Equal(t, 0.0, overview.AvgProductionMinutes)
	assert.Empty(t, overview.Series)
	assert.Empty(t, overview.RevenueByPayment)
}
