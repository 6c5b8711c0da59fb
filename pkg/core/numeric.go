package core

import "math"

// RoundFloat rounds a float to n decimal places. Infinities and NaN are
// returned unchanged.
func RoundFloat(val float64, precision int) float64 {
	if math.IsInf(val, 0) || math.IsNaN(val) {
		return val
	}
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
