package analytics

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/internal/sales"
	"github.com/pratoquente/pratoquente-backend/pkg/logger"
)

type testSalesService struct {
	rows         dataset.Rows
	rowsErr      error
	history      dataset.Rows
	historyCalls int
	lastQuery    sales.RowsQuery
	rowsCalls    int
	names        map[uuid.UUID]string
	filters      sales.Filters
}

func (s *testSalesService) Rows(ctx context.Context, query sales.RowsQuery) (dataset.Rows, error) {
	s.lastQuery = query
	s.rowsCalls++
	// Mirrors the production service: windowed rows only.
	out := dataset.Rows{}
	for _, row := range s.rows {
		if row.CreatedAt.Before(query.Start) || !row.CreatedAt.Before(query.End) {
			continue
		}
		out = append(out, row)
	}
	return out, s.rowsErr
}

func (s *testSalesService) HistoryRows(ctx context.Context) (dataset.Rows, error) {
	s.historyCalls++
	if s.history != nil {
		return s.history, nil
	}
	return s.rows, s.rowsErr
}

func (s *testSalesService) PaymentsForSales(ctx context.Context, saleIDs []uuid.UUID) ([]sales.SalePayment, error) {
	return []sales.SalePayment{}, nil
}

func (s *testSalesService) DateLimits(ctx context.Context) (sales.DateLimits, error) {
	return s.filters.DateLimits, nil
}

func (s *testSalesService) Filters(ctx context.Context) (sales.Filters, error) {
	return s.filters, nil
}

func (s *testSalesService) CustomerNames(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if s.names == nil {
		return map[uuid.UUID]string{}, nil
	}
	return s.names, nil
}

func (s *testSalesService) called() bool {
	return s.rowsCalls > 0
}

func (s *testSalesService) period() time.Duration {
	return s.lastQuery.End.Sub(s.lastQuery.Start)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "analytics-test", Output: io.Discard})
}

// testLine builds one sale line with sale-level amounts repeated on the row.
func testLine(sale uuid.UUID, product, channel string, lineRevenue, orderTotal float64, createdAt time.Time) dataset.Row {
	return dataset.Row{
		SaleID:          sale,
		StoreID:         uuid.New(),
		Store:           "Centro",
		ChannelID:       uuid.New(),
		Channel:         channel,
		ProductID:       uuid.New(),
		Product:         product,
		Category:        "Lanches",
		Quantity:        1,
		LineRevenue:     decimal.NewFromFloat(lineRevenue),
		OrderTotal:      decimal.NewFromFloat(orderTotal),
		OrderItemsTotal: decimal.NewFromFloat(orderTotal),
		CreatedAt:       createdAt,
	}
}
