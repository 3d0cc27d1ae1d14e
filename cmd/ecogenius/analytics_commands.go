package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"ecogenius/internal/analytics"
)

func newAnalyticsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Victorian waste statistics",
	}
	cmd.AddCommand(newAnalyticsTrendsCommand(ctx))
	cmd.AddCommand(newAnalyticsMaterialsCommand(ctx))
	return cmd
}

func newAnalyticsTrendsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Waste generation and diversion by financial year",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := ctx.analyticsSource().Load(cmd.Context())
			if jsonOut {
				return writeJSON(cmd, struct {
					Trends   []analytics.YearTrend `json:"trends"`
					Summary  analytics.Summary     `json:"summary"`
					Fallback bool                  `json:"fallback"`
				}{report.Trends, report.Summary, report.Fallback})
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(report.Trends))
			for _, t := range report.Trends {
				rows = append(rows, []string{
					t.Year,
					fmt.Sprintf("%.2f", t.TotalGeneration),
					fmt.Sprintf("%.2f", t.Recovered),
					fmt.Sprintf("%.2f", t.Disposal),
					fmt.Sprintf("%.2f", t.Exports),
					fmt.Sprintf("%.1f%%", t.DiversionRate),
				})
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				title:   "Waste trends (million tonnes)",
				headers: []string{"Year", "Generated", "Recovered", "Disposal", "Exports", "Diversion"},
				rows:    rows,
				aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			}))
			printSummary(out, report.Summary)
			printFallbackNote(out, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newAnalyticsMaterialsCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Waste generated by material and sector for the latest year",
		RunE: func(cmd *cobra.Command, args []string) error {
			report := ctx.analyticsSource().Load(cmd.Context())
			if jsonOut {
				return writeJSON(cmd, struct {
					Year      string                    `json:"year"`
					Materials []analytics.MaterialTotal `json:"materials"`
					Fallback  bool                      `json:"fallback"`
				}{report.MaterialYear, report.Materials, report.Fallback})
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(report.Materials))
			for _, m := range report.Materials {
				rows = append(rows, []string{
					m.Material,
					fmt.Sprintf("%.3f", m.MSW),
					fmt.Sprintf("%.3f", m.CND),
					fmt.Sprintf("%.3f", m.CNI),
					fmt.Sprintf("%.3f", m.Total),
				})
			}
			fmt.Fprintln(out, renderTable(tableSpec{
				title:   fmt.Sprintf("Materials %s (million tonnes)", report.MaterialYear),
				headers: []string{"Material", "Municipal", "C&D", "C&I", "Total"},
				rows:    rows,
				aligns:  []columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
			}))
			printFallbackNote(out, report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func printSummary(out io.Writer, s analytics.Summary) {
	if s.Year == "" {
		return
	}
	fmt.Fprintf(out, "%s: %s tonnes generated, %.1f%% diverted (target %.0f%%)\n",
		s.Year, analytics.FormatQuantity(s.WasteGenerated*1_000_000), s.DiversionRate, s.DiversionTarget)
	fmt.Fprintf(out, "Landfill emissions about %s t CO2e, like %s cars driven for a year\n",
		analytics.FormatQuantity(s.CO2Tonnes), analytics.FormatQuantity(s.CarsEquivalent))
}

func printFallbackNote(out io.Writer, report analytics.Report) {
	if report.Fallback {
		fmt.Fprintln(out, "Note: showing built-in figures; configure [analytics] CSV paths for live data.")
	}
}
