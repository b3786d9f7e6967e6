package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment records a tender applied to a sale. Split payments produce
// multiple rows per sale.
type Payment struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SaleID        uuid.UUID       `gorm:"column:sale_id;type:uuid;not null"`
	PaymentTypeID uuid.UUID       `gorm:"column:payment_type_id;type:uuid;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
