package aggregate

import (
	"sort"

	"github.com/pratoquente/pratoquente-backend/internal/dataset"
	"github.com/pratoquente/pratoquente-backend/pkg/enums"
)

// Entry is one label/value pair of a flat aggregation.
type Entry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PivotRow is one dimension row of a pivoted aggregation. Values line up
// with Pivot.Columns and Total aggregates the whole row.
type PivotRow struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
	Total  float64   `json:"total"`
}

// Pivot is a rectangular dimension-by-segment table. Cells without
// matching rows hold exactly 0.
type Pivot struct {
	Columns []string   `json:"columns"`
	Rows    []PivotRow `json:"rows"`
}

// Result holds either flat entries or a pivot table, never both.
type Result struct {
	Entries []Entry `json:"entries,omitempty"`
	Pivot   *Pivot  `json:"pivot,omitempty"`
}

// Run aggregates rows according to the request. Empty input yields an
// empty result of the matching shape.
func Run(req Request, rows dataset.Rows) Result {
	if req.IsPivot() {
		return Result{Pivot: runPivot(req, rows)}
	}
	return Result{Entries: runFlat(req, rows)}
}

func runFlat(req Request, rows dataset.Rows) []Entry {
	groups, order := groupBy(rows, req.Dimension)

	entries := make([]Entry, 0, len(order))
	for _, label := range order {
		entries = append(entries, Entry{
			Label: label,
			Value: metricValue(req.Metric, groups[label]),
		})
	}

	// Stable keeps first-encounter order on ties.
	sort.SliceStable(entries, func(i, j int) bool {
		if req.Sort == enums.SortAscending {
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Value > entries[j].Value
	})

	if len(entries) > req.Limit {
		entries = entries[:req.Limit]
	}
	return entries
}

func runPivot(req Request, rows dataset.Rows) *Pivot {
	dimGroups, dimOrder := groupBy(rows, req.Dimension)

	columnSet := map[string]struct{}{}
	cells := map[string]map[string]dataset.Rows{}
	for _, label := range dimOrder {
		cells[label] = map[string]dataset.Rows{}
		for _, row := range dimGroups[label] {
			segLabel := row.DimensionValue(req.Segment)
			if segLabel == "" {
				continue
			}
			columnSet[segLabel] = struct{}{}
			cells[label][segLabel] = append(cells[label][segLabel], row)
		}
	}

	columns := make([]string, 0, len(columnSet))
	for column := range columnSet {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	pivotRows := make([]PivotRow, 0, len(dimOrder))
	for _, label := range dimOrder {
		values := make([]float64, len(columns))
		for i, column := range columns {
			if cell, ok := cells[label][column]; ok {
				values[i] = metricValue(req.Metric, cell)
			}
		}
		pivotRows = append(pivotRows, PivotRow{
			Label:  label,
			Values: values,
			Total:  metricValue(req.Metric, dimGroups[label]),
		})
	}

	sort.SliceStable(pivotRows, func(i, j int) bool {
		return pivotRows[i].Total > pivotRows[j].Total
	})
	if len(pivotRows) > pivotRowCap {
		pivotRows = pivotRows[:pivotRowCap]
	}

	return &Pivot{Columns: columns, Rows: pivotRows}
}

func groupBy(rows dataset.Rows, dim enums.Dimension) (map[string]dataset.Rows, []string) {
	groups := map[string]dataset.Rows{}
	order := []string{}
	for _, row := range rows {
		label := row.DimensionValue(dim)
		// Sales without lines carry no product or category label.
		if label == "" {
			continue
		}
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], row)
	}
	return groups, order
}

// metricValue computes the metric over one group. Line metrics read every
// line, order metrics deduplicate to one row per sale first.
func metricValue(metric enums.Metric, group dataset.Rows) float64 {
	switch metric {
	case enums.MetricRevenue:
		total := 0.0
		for _, row := range group {
			total += row.LineRevenue.InexactFloat64()
		}
		return total
	case enums.MetricQuantity:
		total := 0.0
		for _, row := range group {
			total += float64(row.Quantity)
		}
		return total
	case enums.MetricOrders:
		return float64(len(group.Orders()))
	case enums.MetricAvgTicket:
		orders := group.Orders()
		total := 0.0
		for _, row := range orders {
			total += row.OrderTotal.InexactFloat64()
		}
		return SafeDivide(total, float64(len(orders)))
	default:
		return 0
	}
}
