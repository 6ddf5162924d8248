// Package report renders financial summaries over a data user's history.
package report

import (
	"fmt"

	"github.com/spf13/cobra"

	"pvillar/hogarfin/cmd/root"
	"pvillar/hogarfin/internal/fileutils"
	"pvillar/hogarfin/internal/validation"
)

var (
	reportType string
	format     string
	year       int
	outputFile string
)

// Cmd represents the report command.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Render a financial summary",
	Long: `Build a summary over the data user's stored history (kpis, categories,
monthly or annual) and render it as JSON or XML, to stdout or a file.`,
	RunE: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&reportType, "type", "t", "kpis", "Summary type: kpis, categories, monthly, annual")
	Cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json, xml")
	Cmd.Flags().IntVarP(&year, "year", "y", 0, "Restrict the monthly summary to one year")
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the report to a file instead of stdout")
}

func reportFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := validation.ValidateOutputFormat(format); err != nil {
		return err
	}

	c, err := root.App(ctx)
	if err != nil {
		return err
	}
	key, err := root.DataKey(ctx, c)
	if err != nil {
		return err
	}

	transactions, err := c.GetHistory().Load(ctx, key)
	if err != nil {
		return err
	}

	generator := c.GetReportGenerator()
	var summary interface{}
	switch reportType {
	case "kpis":
		summary = generator.KPIs(transactions)
	case "categories":
		summary = generator.CategoryBreakdown(transactions)
	case "monthly":
		summary = generator.MonthlySummary(transactions, year)
	case "annual":
		summary = generator.AnnualSummary(transactions)
	default:
		return fmt.Errorf("unknown report type: %s (kpis, categories, monthly, annual)", reportType)
	}

	data, err := generator.Render(summary, format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := fileutils.WriteReport(outputFile, data); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", outputFile)
		return nil
	}
	fmt.Println(string(data))
	return nil
}
