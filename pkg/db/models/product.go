package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a menu item.
type Product struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string          `gorm:"column:name;not null"`
	CategoryID uuid.UUID       `gorm:"column:category_id;type:uuid;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Active     bool            `gorm:"column:active;not null;default:true"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
