package dataset

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pratoquente/pratoquente-backend/pkg/enums"
)

// Row is one denormalized sale line: sale-level columns are repeated on
// every line of the same sale. Sales without recorded lines still produce
// one row, with empty product columns.
type Row struct {
	SaleID            uuid.UUID       `json:"sale_id"`
	StoreID           uuid.UUID       `json:"store_id"`
	Store             string          `json:"store"`
	ChannelID         uuid.UUID       `json:"channel_id"`
	Channel           string          `json:"channel"`
	CustomerID        *uuid.UUID      `json:"customer_id,omitempty"`
	ProductID         uuid.UUID       `json:"product_id"`
	Product           string          `json:"product"`
	Category          string          `json:"category"`
	Quantity          int             `json:"quantity"`
	LineRevenue       decimal.Decimal `json:"line_revenue"`
	LineDiscount      decimal.Decimal `json:"line_discount"`
	OrderTotal        decimal.Decimal `json:"order_total"`
	OrderItemsTotal   decimal.Decimal `json:"order_items_total"`
	OrderDiscount     decimal.Decimal `json:"order_discount"`
	DeliveryFee       decimal.Decimal `json:"delivery_fee"`
	ServiceFee        decimal.Decimal `json:"service_fee"`
	ProductionSeconds *int            `json:"production_seconds,omitempty"`
	DeliverySeconds   *int            `json:"delivery_seconds,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Weekday returns the English weekday name derived from the sale timestamp.
func (r Row) Weekday() string {
	return r.CreatedAt.Weekday().String()
}

// Hour returns the zero-padded sale hour, "00" through "23". Zero padding
// keeps lexicographic and chronological order identical.
func (r Row) Hour() string {
	return fmt.Sprintf("%02d", r.CreatedAt.Hour())
}

// DimensionValue returns the label of this row under the given dimension.
func (r Row) DimensionValue(dim enums.Dimension) string {
	switch dim {
	case enums.DimensionProduct:
		return r.Product
	case enums.DimensionCategory:
		return r.Category
	case enums.DimensionStore:
		return r.Store
	case enums.DimensionChannel:
		return r.Channel
	case enums.DimensionWeekday:
		return r.Weekday()
	case enums.DimensionHour:
		return r.Hour()
	default:
		return ""
	}
}
