package common

import "math"

// Round2 rounds v to 2 decimal places. Used for synthesized series values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round3 rounds v to 3 decimal places. Used for values parsed from upstream
// delimited-text payloads.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
