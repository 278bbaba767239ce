package retirement

// Default assumption values used when a request does not supply its own.
const (
	DefaultWithdrawalRate           = 0.04
	DefaultGrowthRatePreRetirement  = 0.05
	DefaultGrowthRatePostRetirement = 0.03
	DefaultInflationRate            = 0.03
	DefaultTaxRate                  = 0.35
)

// Rates is the set of annual rate assumptions a Calculator is built from.
// All values are fractions (0.04 = 4%). No bounds are enforced here.
type Rates struct {
	WithdrawalRate           float64 `json:"withdrawal_rate"`
	GrowthRatePreRetirement  float64 `json:"growth_rate_pre_retirement"`
	GrowthRatePostRetirement float64 `json:"growth_rate_post_retirement"`
	InflationRate            float64 `json:"inflation_rate"`
	TaxRate                  float64 `json:"tax_rate"`
}

// DefaultRates returns the standard assumption set.
func DefaultRates() Rates {
	return Rates{
		WithdrawalRate:           DefaultWithdrawalRate,
		GrowthRatePreRetirement:  DefaultGrowthRatePreRetirement,
		GrowthRatePostRetirement: DefaultGrowthRatePostRetirement,
		InflationRate:            DefaultInflationRate,
		TaxRate:                  DefaultTaxRate,
	}
}

// AfterTaxGrowthPre is the pre-retirement growth rate net of tax on gains.
func (r Rates) AfterTaxGrowthPre() float64 {
	return r.GrowthRatePreRetirement * (1 - r.TaxRate)
}

// AfterTaxGrowthPost is the post-retirement growth rate net of tax on gains.
func (r Rates) AfterTaxGrowthPost() float64 {
	return r.GrowthRatePostRetirement * (1 - r.TaxRate)
}

// Overrides carries optional per-request replacements for individual rates.
type Overrides struct {
	WithdrawalRate           *float64 `json:"withdrawal_rate,omitempty"`
	GrowthRatePreRetirement  *float64 `json:"growth_rate_pre_retirement,omitempty"`
	GrowthRatePostRetirement *float64 `json:"growth_rate_post_retirement,omitempty"`
	InflationRate            *float64 `json:"inflation_rate,omitempty"`
	TaxRate                  *float64 `json:"tax_rate,omitempty"`
}

// Apply returns base with every non-nil override substituted.
func (o Overrides) Apply(base Rates) Rates {
	if o.WithdrawalRate != nil {
		base.WithdrawalRate = *o.WithdrawalRate
	}
	if o.GrowthRatePreRetirement != nil {
		base.GrowthRatePreRetirement = *o.GrowthRatePreRetirement
	}
	if o.GrowthRatePostRetirement != nil {
		base.GrowthRatePostRetirement = *o.GrowthRatePostRetirement
	}
	if o.InflationRate != nil {
		base.InflationRate = *o.InflationRate
	}
	if o.TaxRate != nil {
		base.TaxRate = *o.TaxRate
	}
	return base
}
