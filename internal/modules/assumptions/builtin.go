package assumptions

import "github.com/aristath/pension/internal/modules/retirement"

// DefaultProfileName names the profile used when a request does not pick one.
const DefaultProfileName = "Standard"

// Explanation describes each rate field for API clients.
var Explanation = map[string]string{
	"withdrawal_rate":             "The percentage of your retirement corpus you can safely withdraw each year (4% rule)",
	"growth_rate_pre_retirement":  "Expected compound annual growth rate (CAGR) before retirement (before taxes)",
	"growth_rate_post_retirement": "Expected growth rate after retirement (before taxes, usually more conservative)",
	"inflation_rate":              "Expected annual inflation affecting purchasing power",
	"tax_rate":                    "Tax rate applied to investment gains (35% reduces effective CAGR)",
}

// BuiltinProfiles returns the profiles shipped with the service, default first.
func BuiltinProfiles() []Profile {
	return []Profile{
		{
			Name:        DefaultProfileName,
			Description: "Conservative assumptions based on historical market data with 35% tax rate",
			RiskProfile: RiskModerate,
			IsDefault:   true,
			IsActive:    true,
			Rates:       retirement.DefaultRates(),
		},
		{
			Name:        "Conservative",
			Description: "Lower risk, lower return expectations with 35% tax rate",
			RiskProfile: RiskConservative,
			IsActive:    true,
			Rates: retirement.Rates{
				WithdrawalRate:           0.035,
				GrowthRatePreRetirement:  0.04,
				GrowthRatePostRetirement: 0.025,
				InflationRate:            0.03,
				TaxRate:                  0.35,
			},
		},
		{
			Name:        "Moderate",
			Description: "Balanced approach with standard assumptions and 35% tax rate",
			RiskProfile: RiskModerate,
			IsActive:    true,
			Rates:       retirement.DefaultRates(),
		},
		{
			Name:        "Aggressive",
			Description: "Higher risk, higher return expectations with 35% tax rate",
			RiskProfile: RiskAggressive,
			IsActive:    true,
			Rates: retirement.Rates{
				WithdrawalRate:           0.045,
				GrowthRatePreRetirement:  0.07,
				GrowthRatePostRetirement: 0.04,
				InflationRate:            0.03,
				TaxRate:                  0.35,
			},
		},
	}
}

// BuiltinCatalog assembles the catalog response from the built-in profiles.
func BuiltinCatalog() Catalog {
	return newCatalog(BuiltinProfiles())
}

// newCatalog splits profiles into the default and the selectable alternatives.
// Without a flagged default the first profile is used.
func newCatalog(profiles []Profile) Catalog {
	c := Catalog{Explanation: Explanation, Profiles: []Profile{}}
	defaultIdx := 0
	for i, p := range profiles {
		if p.IsDefault {
			defaultIdx = i
			break
		}
	}
	for i, p := range profiles {
		if i == defaultIdx {
			c.DefaultProfile = p
			continue
		}
		c.Profiles = append(c.Profiles, p)
	}
	return c
}
