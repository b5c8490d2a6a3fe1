package repository

import "math"

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
