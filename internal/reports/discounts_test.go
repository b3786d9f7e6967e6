package reports

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
)

func discountedSale(channel string, total, discount float64) dataset.Row {
	return dataset.Row{
		SaleID:          uuid.New(),
		Store:           "Centro",
		Channel:         channel,
		Product:         "Burger",
		Quantity:        1,
		OrderTotal:      decimal.NewFromFloat(total),
		OrderItemsTotal: decimal.NewFromFloat(total + discount),
		OrderDiscount:   decimal.NewFromFloat(discount),
		CreatedAt:       time.Now(),
	}
}

func TestBuildDiscounts(t *testing.T) {
	withFees := discountedSale("delivery", 90, 10)
	withFees.DeliveryFee = decimal.NewFromInt(8)
	withFees.ServiceFee = decimal.NewFromInt(2)

	rows := dataset.Rows{
		withFees,
		discountedSale("delivery", 100, 0),
		discountedSale("dine_in", 45, 5),
	}

	report := BuildDiscounts(rows)

	assert.InDelta(t, 15.0, report.TotalDiscount, 1e-9)
	assert.InDelta(t, 250.0, report.GrossRevenue, 1e-9)
	assert.InDelta(t, 10.0, report.TotalFees, 1e-9)
	assert.InDelta(t, 225.0, report.NetRevenue, 1e-9)
	assert.InDelta(t, 6.0, report.DiscountPercent, 1e-9)
	assert.Equal(t, 2, report.DiscountedOrders)

	require.Len(t, report.ByChannel, 2)
	assert.Equal(t, "delivery", report.ByChannel[0].Channel)
	assert.InDelta(t, 10.0, report.ByChannel[0].Discount, 1e-9)
	assert.Equal(t, 2, report.ByChannel[0].Orders)
	assert.InDelta(t, 5.0, report.ByChannel[0].DiscountPerOrder, 1e-9)
	assert.InDelta(t, 5.0, report.ByChannel[0].DiscountPercent, 1e-9)

	assert.Equal(t, "dine_in", report.ByChannel[1].Channel)
	assert.InDelta(t, 5.0, report.ByChannel[1].DiscountPerOrder, 1e-9)
	assert.InDelta(t, 10.0, report.ByChannel[1].DiscountPercent, 1e-9)
}

func TestBuildDiscountsGrossIsIndependentOfTotal(t *testing.T) {
	// The order total already folds the fee in: items 100 + fee 10.
	// Gross must come from the items column, not be derived from total.
	sale := discountedSale("delivery", 110, 0)
	sale.OrderItemsTotal = decimal.NewFromInt(100)
	sale.DeliveryFee = decimal.NewFromInt(10)

	report := BuildDiscounts(dataset.Rows{sale})

	assert.InDelta(t, 100.0, report.GrossRevenue, 1e-9)
	assert.InDelta(t, 10.0, report.TotalFees, 1e-9)
	assert.InDelta(t, 90.0, report.NetRevenue, 1e-9)
}

func TestBuildDiscountsEmpty(t *testing.T) {
	report := BuildDiscounts(nil)
	assert.Equal(t, 0.0, report.TotalDiscount)
	assert.Equal(t, 0.0, report.DiscountPercent)
	assert.Empty(t, report.ByChannel)
}
