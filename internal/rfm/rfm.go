package rfm

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/pkg/errors"
)

const (
	// DefaultMinFrequency applies when a filter omits the order count floor.
	DefaultMinFrequency = 3
	// DefaultMinRecency applies when a filter omits the days-silent floor.
	DefaultMinRecency = 30

	// placeholderName labels customers missing from the directory.
	placeholderName = "Unknown customer"
)

// Customer is one scored customer: how often they ordered, how much they
// spent and how long they have been silent.
type Customer struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	Name        string    `json:"name"`
	Frequency   int       `json:"frequency"`
	Monetary    float64   `json:"monetary"`
	LastOrderAt time.Time `json:"last_order_at"`
	RecencyDays int       `json:"recency_days"`
}

// Compute scores customers from sale rows. Lines are deduplicated to one
// row per sale, rows without a customer are skipped. Recency counts whole
// days between the date of the last order and the reference date. Results
// sort by frequency descending, ties keep encounter order.
func Compute(rows dataset.Rows, directory map[uuid.UUID]string, referenceDate time.Time) []Customer {
	type accumulator struct {
		frequency int
		monetary  float64
		lastOrder time.Time
	}

	byCustomer := map[uuid.UUID]*accumulator{}
	order := []uuid.UUID{}

	for _, row := range rows.Orders() {
		if row.CustomerID == nil {
			continue
		}
		id := *row.CustomerID
		acc, ok := byCustomer[id]
		if !ok {
			acc = &accumulator{}
			byCustomer[id] = acc
			order = append(order, id)
		}
		acc.frequency++
		acc.monetary += row.OrderTotal.InexactFloat64()
		if row.CreatedAt.After(acc.lastOrder) {
			acc.lastOrder = row.CreatedAt
		}
	}

	customers := make([]Customer, 0, len(order))
	for _, id := range order {
		acc := byCustomer[id]
		name, ok := directory[id]
		if !ok || name == "" {
			name = placeholderName
		}
		customers = append(customers, Customer{
			CustomerID:  id,
			Name:        name,
			Frequency:   acc.frequency,
			Monetary:    acc.monetary,
			LastOrderAt: acc.lastOrder,
			RecencyDays: wholeDaysBetween(acc.lastOrder, referenceDate),
		})
	}

	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].Frequency > customers[j].Frequency
	})
	return customers
}

// Filter keeps loyal-but-lapsed customers: at least minFrequency orders
// and at least minRecency days of silence. Zero arguments take the
// package defaults.
func Filter(customers []Customer, minFrequency, minRecency int) ([]Customer, error) {
	if minFrequency == 0 {
		minFrequency = DefaultMinFrequency
	}
	if minRecency == 0 {
		minRecency = DefaultMinRecency
	}
	if minFrequency < 1 {
		return nil, errors.New(errors.CodeValidation,
			fmt.Sprintf("min frequency must be at least 1, got %d", minFrequency)).
			WithDetails(map[string]string{"field": "min_frequency"})
	}
	if minRecency < 0 {
		return nil, errors.New(errors.CodeValidation,
			fmt.Sprintf("min recency must not be negative, got %d", minRecency)).
			WithDetails(map[string]string{"field": "min_recency"})
	}

	out := make([]Customer, 0, len(customers))
	for _, customer := range customers {
		if customer.Frequency >= minFrequency && customer.RecencyDays >= minRecency {
			out = append(out, customer)
		}
	}
	return out, nil
}

// wholeDaysBetween floors both timestamps to their date before diffing,
// so a late-night order on day N and a reference early on day N+1 still
// count as one day.
func wholeDaysBetween(from, to time.Time) int {
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	days := int(toDate.Sub(fromDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
