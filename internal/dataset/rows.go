package dataset

import "github.com/google/uuid"

// FilterAll is the sentinel meaning "do not filter on this field".
const FilterAll = "all"

// Rows is a denormalized sale-line collection. The zero value is usable.
type Rows []Row

// Lines returns the line-level view: rows with a product attached, suited
// to revenue and quantity metrics. Sales without recorded lines are
// represented by a single product-less row and drop out here.
func (rs Rows) Lines() Rows {
	out := make(Rows, 0, len(rs))
	for _, row := range rs {
		if row.Product == "" {
			continue
		}
		out = append(out, row)
	}
	return out
}

// Orders returns the order-level view: the first encountered line of each
// sale, preserving encounter order. Order-level columns (totals, fees,
// timings) are identical across the lines of a sale, so one line stands
// in for the whole order.
func (rs Rows) Orders() Rows {
	seen := make(map[uuid.UUID]struct{}, len(rs))
	out := make(Rows, 0, len(rs))
	for _, row := range rs {
		if _, ok := seen[row.SaleID]; ok {
			continue
		}
		seen[row.SaleID] = struct{}{}
		out = append(out, row)
	}
	return out
}

// FilterStores keeps rows whose store name is in names. An empty list or
// the FilterAll sentinel keeps everything.
func (rs Rows) FilterStores(names []string) Rows {
	return rs.filterBy(names, func(r Row) string { return r.Store })
}

// FilterChannels keeps rows whose channel name is in names. An empty list
// or the FilterAll sentinel keeps everything.
func (rs Rows) FilterChannels(names []string) Rows {
	return rs.filterBy(names, func(r Row) string { return r.Channel })
}

func (rs Rows) filterBy(names []string, value func(Row) string) Rows {
	if len(names) == 0 {
		return rs
	}
	allowed := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == FilterAll {
			return rs
		}
		allowed[name] = struct{}{}
	}
	out := make(Rows, 0, len(rs))
	for _, row := range rs {
		if _, ok := allowed[value(row)]; ok {
			out = append(out, row)
		}
	}
	return out
}
