package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aristath/pension/internal/modules/assumptions"
	"github.com/aristath/pension/internal/modules/reports"
)

func newProfilesCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the assumption profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := a.profiles.Catalog(cmd.Context())
			if asJSON {
				return writeIndentedJSON(cmd.OutOrStdout(), catalog)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tRISK\tWITHDRAWAL\tGROWTH PRE\tGROWTH POST\tINFLATION\tTAX")
			printProfileRow(tw, catalog.DefaultProfile.Name+" (default)", catalog.DefaultProfile)
			for _, p := range catalog.Profiles {
				printProfileRow(tw, p.Name, p)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the catalog with field explanations as JSON")
	return cmd
}

func printProfileRow(w io.Writer, name string, p assumptions.Profile) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		name,
		p.RiskProfile,
		reports.FormatRate(p.WithdrawalRate),
		reports.FormatRate(p.GrowthRatePreRetirement),
		reports.FormatRate(p.GrowthRatePostRetirement),
		reports.FormatRate(p.InflationRate),
		reports.FormatRate(p.TaxRate),
	)
}
