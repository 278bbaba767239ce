// Package retirement implements the retirement feasibility projection engine
// and the request-level service around it.
package retirement

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/aristath/pension/pkg/formulas"
)

// Profile is the personal financial situation an analysis is computed for.
type Profile struct {
	CurrentAge            int     `json:"current_age"`
	RetirementAge         int     `json:"retirement_age"`
	CurrentWealth         float64 `json:"current_wealth"`
	CurrentIncome         float64 `json:"current_income"`
	MonthlyPayoutRequired float64 `json:"monthly_payout_required"`
}

// Inputs echoes the analysed profile.
type Inputs struct {
	CurrentAge            int     `json:"current_age"`
	RetirementAge         int     `json:"retirement_age"`
	CurrentWealth         float64 `json:"current_wealth"`
	CurrentIncome         float64 `json:"current_income"`
	MonthlyPayoutRequired float64 `json:"monthly_payout_required"`
	AnnualPayoutRequired  float64 `json:"annual_payout_required"`
}

// Projections holds the computed corpus, gap and savings figures.
type Projections struct {
	YearsToRetirement             int     `json:"years_to_retirement"`
	RequiredCorpus                float64 `json:"required_corpus"`
	ProjectedWealthAtRetirement   float64 `json:"projected_wealth_at_retirement"`
	WealthGap                     float64 `json:"wealth_gap"`
	RequiredMonthlySavings        float64 `json:"required_monthly_savings"`
	RequiredAnnualSavings         float64 `json:"required_annual_savings"`
	SavingsRatePercentage         float64 `json:"savings_rate_percentage"`
	EstimatedYearsMoneyLasts      float64 `json:"estimated_years_money_lasts"`
	InflationAdjustedAnnualPayout float64 `json:"inflation_adjusted_annual_payout"`
}

// Status summarises whether the plan works and how pressing action is.
type Status struct {
	IsOnTrack        bool    `json:"is_on_track"`
	FeasibilityScore float64 `json:"feasibility_score"`
	UrgencyLevel     Urgency `json:"urgency_level"`
}

// Assumptions echoes the rates used, including the derived after-tax growth.
type Assumptions struct {
	Rates
	AfterTaxGrowthPreRetirement  float64 `json:"after_tax_growth_pre_retirement"`
	AfterTaxGrowthPostRetirement float64 `json:"after_tax_growth_post_retirement"`
}

// AnalysisResult is the complete output of one analysis.
type AnalysisResult struct {
	Inputs          Inputs      `json:"inputs"`
	Projections     Projections `json:"projections"`
	Status          Status      `json:"status"`
	Assumptions     Assumptions `json:"assumptions"`
	Recommendations []string    `json:"recommendations"`
}

// Calculator runs analyses under a fixed set of rate assumptions.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	rates              Rates
	afterTaxGrowthPre  float64
	afterTaxGrowthPost float64
}

// NewCalculator creates a calculator with the derived after-tax rates precomputed.
// Rates are not range checked; an unusable withdrawal rate is reported by Analyze.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{
		rates:              rates,
		afterTaxGrowthPre:  rates.AfterTaxGrowthPre(),
		afterTaxGrowthPost: rates.AfterTaxGrowthPost(),
	}
}

// Rates returns the configured rate assumptions.
func (c *Calculator) Rates() Rates {
	return c.rates
}

// Assumptions returns the rate assumptions together with the derived rates.
func (c *Calculator) Assumptions() Assumptions {
	return Assumptions{
		Rates:                        c.rates,
		AfterTaxGrowthPreRetirement:  c.afterTaxGrowthPre,
		AfterTaxGrowthPostRetirement: c.afterTaxGrowthPost,
	}
}

// Analyze computes a full analysis with English recommendations.
func (c *Calculator) Analyze(p Profile) (AnalysisResult, error) {
	return c.AnalyzeLocalized(p, language.English)
}

// AnalyzeLocalized computes a full analysis with recommendations in the given language.
// Either a complete result or an error is returned, never a partial result.
func (c *Calculator) AnalyzeLocalized(p Profile, tag language.Tag) (AnalysisResult, error) {
	if !(c.rates.WithdrawalRate > 0) {
		return AnalysisResult{}, fmt.Errorf("%w: got %v", ErrInvalidWithdrawalRate, c.rates.WithdrawalRate)
	}

	years := p.RetirementAge - p.CurrentAge
	if years <= 0 {
		return AnalysisResult{}, fmt.Errorf("%w: current age %d, retirement age %d",
			ErrInvalidHorizon, p.CurrentAge, p.RetirementAge)
	}

	annualPayout := p.MonthlyPayoutRequired * 12
	requiredCorpus := annualPayout / c.rates.WithdrawalRate
	projectedWealth := formulas.CompoundGrowth(p.CurrentWealth, c.afterTaxGrowthPre, float64(years))
	wealthGap := requiredCorpus - projectedWealth

	monthlySavings := 0.0
	if wealthGap > 0 {
		monthlyRate := formulas.MonthlyEquivalentRate(c.afterTaxGrowthPre)
		monthlySavings = formulas.SinkingFundPayment(wealthGap, monthlyRate, years*12)
	}
	annualSavings := monthlySavings * 12

	savingsRate := 0.0
	if p.CurrentIncome > 0 {
		savingsRate = annualSavings / p.CurrentIncome * 100
	}

	duration := UnfundedPortfolioYears
	if requiredCorpus > 0 {
		duration = EstimatePortfolioDuration(requiredCorpus, annualPayout, c.afterTaxGrowthPost)
	}
	inflatedPayout := formulas.CompoundGrowth(annualPayout, c.rates.InflationRate, float64(years))

	onTrack := wealthGap <= 0
	score := FeasibilityScore(savingsRate, years, p.CurrentWealth, requiredCorpus)

	if !formulas.IsFinite(requiredCorpus, projectedWealth, wealthGap, monthlySavings,
		savingsRate, inflatedPayout, score, c.afterTaxGrowthPre, c.afterTaxGrowthPost) {
		return AnalysisResult{}, ErrNonFiniteResult
	}

	recs := Recommend(Figures{
		OnTrack:               onTrack,
		WealthGap:             wealthGap,
		SavingsRatePercentage: savingsRate,
		YearsToRetirement:     years,
		CurrentWealth:         p.CurrentWealth,
		RequiredCorpus:        requiredCorpus,
		MonthlyPayoutRequired: p.MonthlyPayoutRequired,
	}, tag)

	texts := make([]string, len(recs))
	for i, r := range recs {
		texts[i] = r.String()
	}

	return AnalysisResult{
		Inputs: Inputs{
			CurrentAge:            p.CurrentAge,
			RetirementAge:         p.RetirementAge,
			CurrentWealth:         money(p.CurrentWealth),
			CurrentIncome:         money(p.CurrentIncome),
			MonthlyPayoutRequired: money(p.MonthlyPayoutRequired),
			AnnualPayoutRequired:  money(annualPayout),
		},
		Projections: Projections{
			YearsToRetirement:             years,
			RequiredCorpus:                money(requiredCorpus),
			ProjectedWealthAtRetirement:   money(projectedWealth),
			WealthGap:                     money(wealthGap),
			RequiredMonthlySavings:        money(monthlySavings),
			RequiredAnnualSavings:         money(annualSavings),
			SavingsRatePercentage:         formulas.Round(savingsRate, 2),
			EstimatedYearsMoneyLasts:      formulas.Round(float64(duration), 1),
			InflationAdjustedAnnualPayout: money(inflatedPayout),
		},
		Status: Status{
			IsOnTrack:        onTrack,
			FeasibilityScore: formulas.Round(score, 2),
			UrgencyLevel:     ClassifyUrgency(savingsRate, years),
		},
		Assumptions:     c.Assumptions(),
		Recommendations: texts,
	}, nil
}

func money(v float64) float64 {
	return formulas.Round(v, 2)
}
