package retirement

// MaxPortfolioYears is both the simulation cap and the "lasts indefinitely" marker.
const MaxPortfolioYears = 100

// UnfundedPortfolioYears is reported when no corpus is required at all.
const UnfundedPortfolioYears = 30

// EstimatePortfolioDuration returns how many whole years a corpus sustains a
// fixed annual withdrawal while the remainder grows at growthRate.
//
// Each simulated year applies growth to the balance and then takes the
// withdrawal. The count stops at the first year the balance reaches zero or
// below, or at MaxPortfolioYears. A non-positive withdrawal, or growth at or
// above the draw ratio, returns MaxPortfolioYears without simulating.
func EstimatePortfolioDuration(initialCorpus, annualWithdrawal, growthRate float64) int {
	if annualWithdrawal <= 0 {
		return MaxPortfolioYears
	}
	if growthRate >= annualWithdrawal/initialCorpus {
		return MaxPortfolioYears
	}

	corpus := initialCorpus
	years := 0
	for corpus > 0 && years < MaxPortfolioYears {
		corpus = corpus*(1+growthRate) - annualWithdrawal
		years++
	}

	return years
}
