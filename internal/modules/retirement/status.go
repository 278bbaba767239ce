package retirement

import "github.com/aristath/pension/pkg/formulas"

// Urgency is the severity tier attached to an analysis.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyModerate Urgency = "moderate"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// Severity orders urgency tiers from 0 (low) to 3 (critical).
func (u Urgency) Severity() int {
	switch u {
	case UrgencyModerate:
		return 1
	case UrgencyHigh:
		return 2
	case UrgencyCritical:
		return 3
	default:
		return 0
	}
}

// Title returns the capitalised tier name for display.
func (u Urgency) Title() string {
	switch u {
	case UrgencyModerate:
		return "Moderate"
	case UrgencyHigh:
		return "High"
	case UrgencyCritical:
		return "Critical"
	default:
		return "Low"
	}
}

// ClassifyUrgency maps the required savings rate (percent of income) and the
// years left before retirement onto an urgency tier. The first matching tier wins.
func ClassifyUrgency(savingsRate float64, yearsToRetirement int) Urgency {
	switch {
	case savingsRate > 40 || yearsToRetirement < 5:
		return UrgencyCritical
	case savingsRate > 25 || yearsToRetirement < 10:
		return UrgencyHigh
	case savingsRate > 15:
		return UrgencyModerate
	default:
		return UrgencyLow
	}
}

// Score adjustments applied by FeasibilityScore.
const (
	feasibilityBase          = 100.0
	penaltySavingsSevere     = 40.0 // savings rate above 50%
	penaltySavingsHigh       = 20.0 // savings rate above 30%
	penaltySavingsElevated   = 10.0 // savings rate above 20%
	bonusLongHorizon         = 10.0 // more than 20 years to go
	penaltyShortHorizon      = 20.0 // fewer than 5 years to go
	bonusStrongWealth        = 10.0 // wealth above half the corpus
	penaltyWeakWealth        = 10.0 // wealth below a tenth of the corpus
	strongWealthCorpusFactor = 0.5
	weakWealthCorpusFactor   = 0.1
)

// FeasibilityScore summarises how achievable a plan is on a 0-100 scale.
func FeasibilityScore(savingsRate float64, yearsToRetirement int, currentWealth, requiredCorpus float64) float64 {
	score := feasibilityBase

	switch {
	case savingsRate > 50:
		score -= penaltySavingsSevere
	case savingsRate > 30:
		score -= penaltySavingsHigh
	case savingsRate > 20:
		score -= penaltySavingsElevated
	}

	switch {
	case yearsToRetirement > 20:
		score += bonusLongHorizon
	case yearsToRetirement < 5:
		score -= penaltyShortHorizon
	}

	switch {
	case currentWealth > requiredCorpus*strongWealthCorpusFactor:
		score += bonusStrongWealth
	case currentWealth < requiredCorpus*weakWealthCorpusFactor:
		score -= penaltyWeakWealth
	}

	return formulas.Clamp(score, 0, 100)
}
