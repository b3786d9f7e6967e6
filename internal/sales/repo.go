package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// rowsQuery denormalizes sales against their lines and catalog names.
// Order-level columns repeat on every line of the same sale. The line
// joins are LEFT JOINs so a sale without recorded lines still yields one
// row; its product columns coalesce to empty.
const rowsQuery = `
SELECT
  s.id AS sale_id,
  s.store_id,
  st.name AS store,
  s.channel_id,
  ch.name AS channel,
  s.customer_id,
  ps.product_id,
  COALESCE(p.name, '') AS product,
  COALESCE(c.name, '') AS category,
  COALESCE(ps.quantity, 0) AS quantity,
  COALESCE(ps.total_price, 0) AS line_revenue,
  COALESCE(ps.discount_amount, 0) AS line_discount,
  s.total_amount AS order_total,
  s.total_amount_items AS order_items_total,
  s.discount_amount AS order_discount,
  s.delivery_fee,
  s.service_fee,
  s.production_seconds,
  s.delivery_seconds,
  s.created_at
FROM sales s
JOIN stores st ON st.id = s.store_id
JOIN channels ch ON ch.id = s.channel_id
LEFT JOIN product_sales ps ON ps.sale_id = s.id
LEFT JOIN products p ON p.id = ps.product_id
LEFT JOIN categories c ON c.id = p.category_id
`

func (r *repository) RowsForRange(ctx context.Context, start, end time.Time) (dataset.Rows, error) {
	query := rowsQuery +
		"WHERE s.created_at >= ? AND s.created_at < ? ORDER BY s.created_at ASC, ps.created_at ASC"

	var rows dataset.Rows
	if err := r.db.WithContext(ctx).Raw(query, start, end).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// AllRows reads the entire sale history. Customer recurrence scoring
// needs every order a customer ever placed, not just the dashboard window.
func (r *repository) AllRows(ctx context.Context) (dataset.Rows, error) {
	query := rowsQuery + "ORDER BY s.created_at ASC, ps.created_at ASC"

	var rows dataset.Rows
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) PaymentsForSales(ctx context.Context, saleIDs []uuid.UUID) ([]SalePayment, error) {
	if len(saleIDs) == 0 {
		return []SalePayment{}, nil
	}

	const query = `
SELECT pay.sale_id, pt.name AS payment_type, pay.amount
FROM payments pay
JOIN payment_types pt ON pt.id = pay.payment_type_id
WHERE pay.sale_id IN ?
ORDER BY pay.created_at ASC`

	var payments []SalePayment
	if err := r.db.WithContext(ctx).Raw(query, saleIDs).Scan(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repository) DateLimits(ctx context.Context) (DateLimits, error) {
	var bounds struct {
		Min *time.Time
		Max *time.Time
	}
	err := r.db.WithContext(ctx).
		Raw("SELECT MIN(created_at) AS min, MAX(created_at) AS max FROM sales").
		Scan(&bounds).Error
	if err != nil {
		return DateLimits{}, err
	}

	limits := DateLimits{}
	if bounds.Min != nil {
		limits.Min = *bounds.Min
	}
	if bounds.Max != nil {
		limits.Max = *bounds.Max
	}
	return limits, nil
}

func (r *repository) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *repository) ListChannels(ctx context.Context) ([]models.Channel, error) {
	var channels []models.Channel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&channels).Error; err != nil {
		return nil, err
	}
	return channels, nil
}

func (r *repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) CustomerNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(customers))
	for _, customer := range customers {
		names[customer.ID] = customer.Name
	}
	return names, nil
}
