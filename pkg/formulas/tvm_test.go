package formulas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompoundGrowth(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		periods   float64
		expected  float64
	}{
		{"zero periods", 1000, 0.05, 0, 1000},
		{"one period", 1000, 0.05, 1, 1050},
		{"zero rate", 1000, 0, 10, 1000},
		{"zero principal", 0, 0.05, 30, 0},
		{"after-tax default over 35 years", 50000, 0.0325, 35, 50000 * math.Pow(1.0325, 35)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CompoundGrowth(tt.principal, tt.rate, tt.periods), 1e-9)
		})
	}
}

func TestMonthlyEquivalentRate(t *testing.T) {
	m := MonthlyEquivalentRate(0.0325)
	// Twelve months of the monthly rate compound back to the annual rate
	assert.InDelta(t, 1.0325, math.Pow(1+m, 12), 1e-12)
	assert.Greater(t, m, 0.0)

	assert.Equal(t, 0.0, MonthlyEquivalentRate(0))
	assert.Less(t, MonthlyEquivalentRate(-0.02), 0.0)
}

func TestSinkingFundPayment(t *testing.T) {
	t.Run("future value of payments equals target", func(t *testing.T) {
		r := MonthlyEquivalentRate(0.0325)
		n := 420
		pmt := SinkingFundPayment(1_000_000, r, n)

		fv := pmt * (math.Pow(1+r, float64(n)) - 1) / r
		assert.InDelta(t, 1_000_000, fv, 1e-6)
	})

	t.Run("zero rate is straight line", func(t *testing.T) {
		assert.Equal(t, 2500.0, SinkingFundPayment(300_000, 0, 120))
	})

	t.Run("negative rate is straight line", func(t *testing.T) {
		assert.Equal(t, 2500.0, SinkingFundPayment(300_000, -0.001, 120))
	})

	t.Run("no periods", func(t *testing.T) {
		assert.Equal(t, 0.0, SinkingFundPayment(300_000, 0.003, 0))
		assert.Equal(t, 0.0, SinkingFundPayment(300_000, 0.003, -12))
	})
}

func TestRound(t *testing.T) {
	assert.Equal(t, 153147.12, Round(153147.1234, 2))
	assert.Equal(t, 26.15, Round(26.149999, 2))
	assert.Equal(t, 35.0, Round(35, 1))
	assert.Equal(t, -1.35, Round(-1.345001, 2))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 100.0, Clamp(120, 0, 100))
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1, 0, -3.5))
	assert.True(t, IsFinite())
	assert.False(t, IsFinite(1, math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1), 2))
}
