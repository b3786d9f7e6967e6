package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is one closed order. Monetary columns are order-level; line detail
// lives on ProductSale.
type Sale struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID           uuid.UUID       `gorm:"column:store_id;type:uuid;not null"`
	ChannelID         uuid.UUID       `gorm:"column:channel_id;type:uuid;not null"`
	CustomerID        *uuid.UUID      `gorm:"column:customer_id;type:uuid"`
	TotalAmount       decimal.Decimal `gorm:"column:total_amount;type:numeric(12,2);not null"`
	TotalAmountItems  decimal.Decimal `gorm:"column:total_amount_items;type:numeric(12,2);not null;default:0"`
	DiscountAmount    decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	DeliveryFee       decimal.Decimal `gorm:"column:delivery_fee;type:numeric(12,2);not null;default:0"`
	ServiceFee        decimal.Decimal `gorm:"column:service_fee;type:numeric(12,2);not null;default:0"`
	ProductionSeconds *int            `gorm:"column:production_seconds"`
	DeliverySeconds   *int            `gorm:"column:delivery_seconds"`
	Items             []ProductSale   `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Payments          []Payment       `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
