package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pratoquente/pratoquente-backend/internal/aggregate"
	"github.com/pratoquente/pratoquente-backend/internal/rfm"
	"github.com/pratoquente/pratoquente-backend/pkg/errors"
)

// WriteExplorerCSV streams a flat or pivoted aggregation as CSV. Flat
// results write label/value pairs, pivots write one column per segment
// plus a trailing total.
func WriteExplorerCSV(w io.Writer, result aggregate.Result) error {
	cw := csv.NewWriter(w)

	if result.Pivot != nil {
		header := append([]string{"label"}, result.Pivot.Columns...)
		header = append(header, "total")
		if err := cw.Write(header); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "writing csv header")
		}
		for _, row := range result.Pivot.Rows {
			record := make([]string, 0, len(row.Values)+2)
			record = append(record, row.Label)
			for _, value := range row.Values {
				record = append(record, formatCSVNumber(value))
			}
			record = append(record, formatCSVNumber(row.Total))
			if err := cw.Write(record); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "writing csv row")
			}
		}
	} else {
		if err := cw.Write([]string{"label", "value"}); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "writing csv header")
		}
		for _, entry := range result.Entries {
			if err := cw.Write([]string{entry.Label, formatCSVNumber(entry.Value)}); err != nil {
				return errors.Wrap(errors.CodeInternal, err, "writing csv row")
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "flushing csv")
	}
	return nil
}

// WriteRFMCSV streams scored customers as CSV in the order given.
func WriteRFMCSV(w io.Writer, customers []rfm.Customer) error {
	cw := csv.NewWriter(w)

	header := []string{"customer_id", "name", "frequency", "monetary", "last_order_at", "recency_days"}
	if err := cw.Write(header); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "writing csv header")
	}

	for _, customer := range customers {
		record := []string{
			customer.CustomerID.String(),
			customer.Name,
			strconv.Itoa(customer.Frequency),
			formatCSVNumber(customer.Monetary),
			customer.LastOrderAt.Format(time.RFC3339),
			strconv.Itoa(customer.RecencyDays),
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrap(errors.CodeInternal, err, "writing csv row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "flushing csv")
	}
	return nil
}

// formatCSVNumber prints whole values without a decimal point and keeps
// two decimals otherwise.
func formatCSVNumber(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return fmt.Sprintf("%.2f", value)
}
