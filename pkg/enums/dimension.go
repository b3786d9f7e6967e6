package enums

import "fmt"

// Dimension is a categorical field the explorer can group sales by.
type Dimension string

const (
	// DimensionNone marks an unset optional segment.
	DimensionNone     Dimension = ""
	DimensionProduct  Dimension = "product"
	DimensionCategory Dimension = "category"
	DimensionStore    Dimension = "store"
	DimensionChannel  Dimension = "channel"
	DimensionWeekday  Dimension = "weekday"
	DimensionHour     Dimension = "hour"
)

var validDimensions = []Dimension{
	DimensionProduct,
	DimensionCategory,
	DimensionStore,
	DimensionChannel,
	DimensionWeekday,
	DimensionHour,
}

// String implements fmt.Stringer.
func (d Dimension) String() string {
	return string(d)
}

// IsValid reports whether the value is a known Dimension.
func (d Dimension) IsValid() bool {
	for _, candidate := range validDimensions {
		if candidate == d {
			return true
		}
	}
	return false
}

// IsNone reports whether the dimension is the unset sentinel.
func (d Dimension) IsNone() bool {
	return d == DimensionNone
}

// ParseDimension converts raw input into a Dimension.
func ParseDimension(value string) (Dimension, error) {
	for _, candidate := range validDimensions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dimension %q", value)
}
