package reports

import (
	"math"
	"strconv"

	"github.com/aristath/pension/internal/modules/retirement"
	"github.com/aristath/pension/pkg/formulas"
)

// Disclaimer closes every report.
const Disclaimer = "This analysis is for educational purposes only and should not be considered " +
	"financial advice. Please consult with a certified financial planner before making " +
	"significant financial decisions."

// view is the presentation model shared by the email and PDF renderers.
type view struct {
	OnTrack          bool
	StatusText       string
	FeasibilityScore string
	Urgency          string

	RequiredCorpus  string
	ProjectedWealth string
	GapLabel        string
	GapAmount       string
	MonthlySavings  string
	SavingsRate     string

	CurrentAge        int
	RetirementAge     int
	YearsToRetirement int

	Recommendations []string

	WithdrawalRate string
	GrowthPre      string
	GrowthPost     string
	InflationRate  string
	TaxRate        string

	Disclaimer string
}

func newView(a retirement.AnalysisResult) view {
	v := view{
		OnTrack:          a.Status.IsOnTrack,
		StatusText:       "Action Required",
		FeasibilityScore: trimScore(a.Status.FeasibilityScore),
		Urgency:          a.Status.UrgencyLevel.Title(),

		RequiredCorpus:  FormatCurrency(a.Projections.RequiredCorpus),
		ProjectedWealth: FormatCurrency(a.Projections.ProjectedWealthAtRetirement),
		GapLabel:        "Surplus",
		GapAmount:       FormatCurrency(math.Abs(a.Projections.WealthGap)),
		MonthlySavings:  FormatCurrency(a.Projections.RequiredMonthlySavings),
		SavingsRate:     FormatPercent(a.Projections.SavingsRatePercentage),

		CurrentAge:        a.Inputs.CurrentAge,
		RetirementAge:     a.Inputs.RetirementAge,
		YearsToRetirement: a.Projections.YearsToRetirement,

		Recommendations: a.Recommendations,

		WithdrawalRate: FormatRate(a.Assumptions.WithdrawalRate),
		GrowthPre:      FormatRate(a.Assumptions.GrowthRatePreRetirement),
		GrowthPost:     FormatRate(a.Assumptions.GrowthRatePostRetirement),
		InflationRate:  FormatRate(a.Assumptions.InflationRate),
		TaxRate:        FormatRate(a.Assumptions.TaxRate),

		Disclaimer: Disclaimer,
	}
	if v.OnTrack {
		v.StatusText = "On Track"
	}
	if a.Projections.WealthGap > 0 {
		v.GapLabel = "Wealth Gap"
	}
	return v
}

// trimScore prints 90 as "90" and 72.5 as "72.5".
func trimScore(score float64) string {
	return strconv.FormatFloat(formulas.Round(score, 2), 'f', -1, 64)
}
