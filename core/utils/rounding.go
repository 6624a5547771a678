package utils

import "math"

func Round(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}

// RoundMap rounds all values of a labeled-percentile map to a specified
// number of decimal places
func RoundMap(m map[string]float64, places int) map[string]float64 {
	rounded := make(map[string]float64, len(m))
	for k, v := range m {
		rounded[k] = Round(v, places)
	}
	return rounded
}
