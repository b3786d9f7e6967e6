package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductSale is one line of a sale.
type ProductSale struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SaleID         uuid.UUID       `gorm:"column:sale_id;type:uuid;not null"`
	ProductID      uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
