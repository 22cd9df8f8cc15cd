package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/scrolldash/internal/analytics"
	"github.com/Iron-Ham/scrolldash/internal/sheet"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file>",
	Short: "Print the dashboard figures for a spreadsheet",
	Long: `Print premium metrics, renewals for this month and next, and sales targets
without starting the dashboard.

Examples:
  # Human-readable summary
  scrolldash summary policies.xlsx

  # Machine-readable output
  scrolldash summary policies.csv --format yaml

  # Renewal windows relative to another date
  scrolldash summary policies.csv --as-of 2026-03-01`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

var (
	summaryFormat string
	summaryAsOf   string
)

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVarP(&summaryFormat, "format", "o", "text", "Output format (text/yaml)")
	summaryCmd.Flags().StringVar(&summaryAsOf, "as-of", "", "Compute renewal windows relative to this date (default: today)")
}

func runSummary(cmd *cobra.Command, args []string) error {
	if summaryFormat != "text" && summaryFormat != "yaml" {
		return fmt.Errorf("invalid format %q: expected text or yaml", summaryFormat)
	}

	now := time.Now()
	if summaryAsOf != "" {
		t, ok := analytics.ParseDate(summaryAsOf, time.Local)
		if !ok {
			return fmt.Errorf("invalid --as-of date: %q", summaryAsOf)
		}
		now = t
	}

	path, err := spreadsheetPath(args[0])
	if err != nil {
		return err
	}
	records, err := sheet.NewLoader().Load(path)
	if err != nil {
		return err
	}
	summary := analytics.Compute(records, now)

	out := cmd.OutOrStdout()
	if summaryFormat == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(summary); err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		return enc.Close()
	}
	printSummary(out, summary)
	return nil
}

func printSummary(w io.Writer, s analytics.Summary) {
	m := s.Metrics
	fmt.Fprintf(w, "Policies:       %d\n", m.TotalPolicies)
	fmt.Fprintf(w, "Total premium:  %s\n", analytics.FormatINR(m.TotalPremium))
	fmt.Fprintf(w, "Gross premium:  %s\n", analytics.FormatINR(m.GrossPremium))
	fmt.Fprintf(w, "Avg premium:    %s\n", analytics.FormatINR(m.AvgPremium))

	for _, month := range s.Renewals {
		fmt.Fprintf(w, "\n%s %d renewals (%d)\n", month.Month, month.Year, len(month.Items))
		if len(month.Items) == 0 {
			fmt.Fprintln(w, "  none")
		}
		for _, item := range month.Items {
			fmt.Fprintf(w, "  %s  %12s  %s  [%s]\n", item.Date, analytics.FormatINR(item.Premium), item.Client, item.Policy)
		}
	}

	fmt.Fprintf(w, "\nSales targets (%d)\n", len(s.SalesTargets))
	if len(s.SalesTargets) == 0 {
		fmt.Fprintln(w, "  none")
	}
	for _, t := range s.SalesTargets {
		fmt.Fprintf(w, "  %s\n", t)
	}
}
