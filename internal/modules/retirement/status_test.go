package retirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUrgency(t *testing.T) {
	tests := []struct {
		name        string
		savingsRate float64
		years       int
		want        Urgency
	}{
		{"very high savings rate", 40.01, 30, UrgencyCritical},
		{"short horizon", 0, 4, UrgencyCritical},
		{"savings rate at 40 is not critical", 40, 30, UrgencyHigh},
		{"high savings rate", 25.5, 30, UrgencyHigh},
		{"under a decade", 0, 9, UrgencyHigh},
		{"moderate savings rate", 15.1, 30, UrgencyModerate},
		{"savings rate at 15 is low", 15, 30, UrgencyLow},
		{"comfortable", 5, 10, UrgencyLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyUrgency(tt.savingsRate, tt.years))
		})
	}
}

func TestClassifyUrgency_MonotonicInSavingsRate(t *testing.T) {
	for _, years := range []int{0, 3, 5, 7, 10, 20, 40} {
		prev := -1
		for rate := 0.0; rate <= 120; rate += 0.25 {
			severity := ClassifyUrgency(rate, years).Severity()
			assert.GreaterOrEqual(t, severity, prev, "years=%d rate=%.2f", years, rate)
			prev = severity
		}
	}
}

func TestUrgency_SeverityAndTitle(t *testing.T) {
	assert.Equal(t, 0, UrgencyLow.Severity())
	assert.Equal(t, 1, UrgencyModerate.Severity())
	assert.Equal(t, 2, UrgencyHigh.Severity())
	assert.Equal(t, 3, UrgencyCritical.Severity())

	assert.Equal(t, "Critical", UrgencyCritical.Title())
	assert.Equal(t, "Low", Urgency("unknown").Title())
}

func TestFeasibilityScore(t *testing.T) {
	tests := []struct {
		name    string
		rate    float64
		years   int
		wealth  float64
		corpus  float64
		want    float64
	}{
		{"baseline", 10, 15, 300000, 1000000, 100},
		{"severe savings penalty", 50.5, 15, 300000, 1000000, 60},
		{"high savings penalty", 31, 15, 300000, 1000000, 80},
		{"elevated savings penalty", 21, 15, 300000, 1000000, 90},
		{"long horizon bonus", 10, 21, 300000, 1000000, 100},
		{"short horizon penalty", 10, 4, 300000, 1000000, 80},
		{"weak wealth penalty", 10, 15, 50000, 1000000, 90},
		{"strong wealth clamps at 100", 10, 30, 600000, 1000000, 100},
		{"worst case", 500, 0, 0, 1000000, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FeasibilityScore(tt.rate, tt.years, tt.wealth, tt.corpus))
		})
	}
}

func TestFeasibilityScore_AlwaysClamped(t *testing.T) {
	rates := []float64{-100, 0, 20.5, 30.5, 50.5, 500, 1e9}
	years := []int{-10, 0, 4, 5, 20, 21, 100}
	wealths := []float64{-1e9, 0, 1, 1e6, 1e12}

	for _, r := range rates {
		for _, y := range years {
			for _, w := range wealths {
				score := FeasibilityScore(r, y, w, 1e6)
				assert.GreaterOrEqual(t, score, 0.0)
				assert.LessOrEqual(t, score, 100.0)
			}
		}
	}
}
