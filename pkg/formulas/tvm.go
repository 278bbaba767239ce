// Package formulas provides time-value-of-money primitives shared by the
// projection engine and the report renderers.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// CompoundGrowth returns principal grown at rate for the given number of periods.
//
// Formula: FV = principal * (1 + rate)^periods
func CompoundGrowth(principal, rate, periods float64) float64 {
	return principal * math.Pow(1+rate, periods)
}

// MonthlyEquivalentRate converts an annual rate into the monthly rate that
// compounds to the same annual growth.
//
// Formula: m = (1 + annual)^(1/12) - 1
func MonthlyEquivalentRate(annual float64) float64 {
	return math.Pow(1+annual, 1.0/12.0) - 1
}

// SinkingFundPayment returns the level end-of-period payment whose future value
// after the given number of periods equals target.
//
// Formula: PMT = target * r / ((1 + r)^n - 1)
//
// A non-positive periodic rate falls back to straight-line accumulation
// (target / n). Returns 0 when there are no periods to save over.
func SinkingFundPayment(target, periodicRate float64, periods int) float64 {
	if periods <= 0 {
		return 0
	}
	if periodicRate <= 0 {
		return target / float64(periods)
	}
	return target * periodicRate / (math.Pow(1+periodicRate, float64(periods)) - 1)
}

// Round rounds x to the given number of decimal places (half away from zero).
func Round(x float64, places int) float64 {
	return scalar.Round(x, places)
}

// Clamp limits x to the closed interval [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
