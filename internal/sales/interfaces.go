package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/pkg/db/models"
)

// DateLimits bounds the sale history. Zero values mean no sales exist.
type DateLimits struct {
	Min time.Time `json:"min"`
	Max time.Time `json:"max"`
}

// SalePayment is one tender row joined with its payment type name.
type SalePayment struct {
	SaleID      uuid.UUID       `json:"sale_id"`
	PaymentType string          `json:"payment_type"`
	Amount      decimal.Decimal `json:"amount"`
}

// Filters lists the selectable values for the dashboard filter bar.
type Filters struct {
	Stores     []models.Store    `json:"stores"`
	Channels   []models.Channel  `json:"channels"`
	Categories []models.Category `json:"categories"`
	DateLimits DateLimits        `json:"date_limits"`
}

// Repository reads denormalized sale data.
type Repository interface {
	RowsForRange(ctx context.Context, start, end time.Time) (dataset.Rows, error)
	AllRows(ctx context.Context) (dataset.Rows, error)
	PaymentsForSales(ctx context.Context, saleIDs []uuid.UUID) ([]SalePayment, error)
	DateLimits(ctx context.Context) (DateLimits, error)
	ListStores(ctx context.Context) ([]models.Store, error)
	ListChannels(ctx context.Context) ([]models.Channel, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	CustomerNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}
