package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aristath/pension/internal/modules/reports"
	"github.com/aristath/pension/internal/modules/retirement"
	"github.com/aristath/pension/internal/utils"
)

// analysisFlags are the profile and assumption inputs shared by analyze and render.
type analysisFlags struct {
	Age           int     `json:"age" validate:"gte=18,lte=100"`
	RetirementAge int     `json:"retirement-age" validate:"gte=18,lte=100"`
	Wealth        float64 `json:"wealth" validate:"gte=0"`
	Income        float64 `json:"income" validate:"gt=0"`
	Payout        float64 `json:"payout" validate:"gt=0"`
	Profile       string  `json:"profile" validate:"omitempty,max=64"`
	Language      string  `json:"lang" validate:"omitempty,bcp47_language_tag"`

	withdrawal float64
	growthPre  float64
	growthPost float64
	inflation  float64
	tax        float64
}

// rateOverrides holds the rate flags given explicitly, bounded like the
// matching fields of the analyze API.
type rateOverrides struct {
	WithdrawalRate *float64 `json:"withdrawal-rate" validate:"omitempty,gt=0,lte=1"`
	GrowthPre      *float64 `json:"growth-pre" validate:"omitempty,gte=-1,lte=1"`
	GrowthPost     *float64 `json:"growth-post" validate:"omitempty,gte=-1,lte=1"`
	Inflation      *float64 `json:"inflation" validate:"omitempty,gte=-1,lte=1"`
	Tax            *float64 `json:"tax" validate:"omitempty,gte=0,lte=1"`
}

func (f *analysisFlags) register(cmd *cobra.Command) {
	defaults := retirement.DefaultRates()
	flags := cmd.Flags()

	flags.IntVar(&f.Age, "age", 0, "Current age")
	flags.IntVar(&f.RetirementAge, "retirement-age", 0, "Age at retirement")
	flags.Float64Var(&f.Wealth, "wealth", 0, "Current invested wealth")
	flags.Float64Var(&f.Income, "income", 0, "Current annual income")
	flags.Float64Var(&f.Payout, "payout", 0, "Required monthly payout in retirement, in today's money")
	flags.StringVar(&f.Profile, "profile", "", "Assumption profile (Standard, Conservative, Moderate, Aggressive)")
	flags.StringVar(&f.Language, "lang", "", "Recommendation language (en, es)")

	flags.Float64Var(&f.withdrawal, "withdrawal-rate", defaults.WithdrawalRate, "Override the profile's safe withdrawal rate")
	flags.Float64Var(&f.growthPre, "growth-pre", defaults.GrowthRatePreRetirement, "Override the pre-retirement growth rate")
	flags.Float64Var(&f.growthPost, "growth-post", defaults.GrowthRatePostRetirement, "Override the post-retirement growth rate")
	flags.Float64Var(&f.inflation, "inflation", defaults.InflationRate, "Override the inflation rate")
	flags.Float64Var(&f.tax, "tax", defaults.TaxRate, "Override the tax rate on returns")
}

// request validates the flags and builds an analysis request. Rate flags
// only override the profile when given explicitly.
func (f *analysisFlags) request(cmd *cobra.Command) (retirement.Request, error) {
	var rates rateOverrides
	flags := cmd.Flags()
	for name, target := range map[string]**float64{
		"withdrawal-rate": &rates.WithdrawalRate,
		"growth-pre":      &rates.GrowthPre,
		"growth-post":     &rates.GrowthPost,
		"inflation":       &rates.Inflation,
		"tax":             &rates.Tax,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetFloat64(name)
		if err != nil {
			return retirement.Request{}, err
		}
		*target = &v
	}

	validate := utils.NewValidator()
	fields := make(map[string]string)
	for _, v := range []interface{}{f, &rates} {
		err := validate.Struct(v)
		if err == nil {
			continue
		}
		msgs := utils.ValidationMessages(err)
		if msgs == nil {
			return retirement.Request{}, err
		}
		for name, msg := range msgs {
			fields[name] = msg
		}
	}
	if len(fields) > 0 {
		return retirement.Request{}, fieldError(fields)
	}

	overrides := retirement.Overrides{
		WithdrawalRate:           rates.WithdrawalRate,
		GrowthRatePreRetirement:  rates.GrowthPre,
		GrowthRatePostRetirement: rates.GrowthPost,
		InflationRate:            rates.Inflation,
		TaxRate:                  rates.Tax,
	}

	return retirement.Request{
		Profile: retirement.Profile{
			CurrentAge:            f.Age,
			RetirementAge:         f.RetirementAge,
			CurrentWealth:         f.Wealth,
			CurrentIncome:         f.Income,
			MonthlyPayoutRequired: f.Payout,
		},
		AssumptionProfile: f.Profile,
		Overrides:         overrides,
		Language:          f.Language,
	}, nil
}

func fieldError(fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("--%s %s", name, fields[name]))
	}
	return errors.New("invalid input: " + strings.Join(parts, "; "))
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		flags  analysisFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a retirement feasibility analysis",
		Example: "  pensionctl analyze --age 30 --retirement-age 65 --wealth 50000 --income 80000 --payout 5000\n" +
			"  pensionctl analyze --age 30 --retirement-age 65 --wealth 50000 --income 80000 --payout 5000 --profile aggressive --json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := flags.request(cmd)
			if err != nil {
				return err
			}

			analysis, err := a.analyzer.Analyze(cmd.Context(), req)
			if err != nil {
				return err
			}

			if asJSON {
				return writeIndentedJSON(cmd.OutOrStdout(), analysis)
			}
			return printAnalysis(cmd.OutOrStdout(), analysis)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full analysis as JSON")
	return cmd
}

func printAnalysis(w io.Writer, a retirement.AnalysisResult) error {
	status := "Action Required"
	if a.Status.IsOnTrack {
		status = "On Track"
	}
	gapLabel := "Wealth gap"
	if a.Projections.WealthGap <= 0 {
		gapLabel = "Surplus"
	}
	gap := a.Projections.WealthGap
	if gap < 0 {
		gap = -gap
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Status:\t%s\n", status)
	fmt.Fprintf(tw, "Feasibility score:\t%g/100\n", a.Status.FeasibilityScore)
	fmt.Fprintf(tw, "Urgency:\t%s\n", a.Status.UrgencyLevel.Title())
	fmt.Fprintf(tw, "Years to retirement:\t%d\n", a.Projections.YearsToRetirement)
	fmt.Fprintf(tw, "Required corpus:\t%s\n", reports.FormatCurrency(a.Projections.RequiredCorpus))
	fmt.Fprintf(tw, "Projected wealth:\t%s\n", reports.FormatCurrency(a.Projections.ProjectedWealthAtRetirement))
	fmt.Fprintf(tw, "%s:\t%s\n", gapLabel, reports.FormatCurrency(gap))
	fmt.Fprintf(tw, "Required monthly savings:\t%s\n", reports.FormatCurrency(a.Projections.RequiredMonthlySavings))
	fmt.Fprintf(tw, "Savings rate:\t%s\n", reports.FormatPercent(a.Projections.SavingsRatePercentage))
	fmt.Fprintf(tw, "Money lasts:\t%g years\n", a.Projections.EstimatedYearsMoneyLasts)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Recommendations:")
	for i, rec := range a.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, rec)
	}
	return nil
}

func writeIndentedJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
