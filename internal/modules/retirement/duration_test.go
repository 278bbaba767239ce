package retirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatePortfolioDuration(t *testing.T) {
	tests := []struct {
		name       string
		corpus     float64
		withdrawal float64
		growth     float64
		want       int
	}{
		{"zero withdrawal lasts indefinitely", 1000000, 0, 0.02, MaxPortfolioYears},
		{"negative withdrawal lasts indefinitely", 1000000, -500, 0.02, MaxPortfolioYears},
		{"growth above draw ratio", 1000000, 40000, 0.05, MaxPortfolioYears},
		{"growth equal to draw ratio", 1000000, 40000, 0.04, MaxPortfolioYears},
		{"no growth depletes linearly", 100000, 10000, 0, 10},
		{"no growth partial final year", 100000, 30000, 0, 4},
		{"default post-retirement growth", 1500000, 60000, 0.0195, 35},
		{"empty corpus", 0, 1000, 0.02, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimatePortfolioDuration(tt.corpus, tt.withdrawal, tt.growth))
		})
	}
}

func TestEstimatePortfolioDuration_CappedAtMax(t *testing.T) {
	// Growth just under the draw ratio keeps the balance positive far beyond the cap
	got := EstimatePortfolioDuration(1000000, 40000, 0.0399999)
	assert.Equal(t, MaxPortfolioYears, got)
}
