package aggregate

// SafeDivide divides numerator by denominator and returns 0 when the
// denominator is 0. Ratio metrics over empty groups stay finite.
func SafeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// SafePercent returns part over whole as a percentage, 0 when whole is 0.
func SafePercent(part, whole float64) float64 {
	return SafeDivide(part, whole) * 100
}
