// Package ingest imports one statement file into a data user's history.
package ingest

import (
	"fmt"

	"github.com/spf13/cobra"

	"pvillar/hogarfin/cmd/root"
	"pvillar/hogarfin/internal/factory"
	"pvillar/hogarfin/internal/validation"
)

var inputFile string

// Cmd represents the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import a statement file",
	Long: `Parse a bank statement (CSV, Excel, camt.053 XML or PDF), categorize its
rows and merge them into the data user's history. Re-running the same file
is a no-op.`,
	RunE: ingestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Statement file to import (required)")
	_ = Cmd.MarkFlagRequired("file")
}

func ingestFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := validation.ValidateInputFile(inputFile); err != nil {
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

	p, err := factory.GetParserForFile(inputFile, c.GetLogger())
	if err != nil {
		return err
	}
	parsed, err := p.ParseFile(inputFile)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", inputFile, err)
	}

	result, err := c.GetPipeline().Ingest(ctx, parsed, key, root.DataUserID(c))
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d, skipped %d duplicates, rejected %d rows, updated %d\n",
		result.Stats.Imported, result.Stats.SkippedDuplicate,
		result.Stats.Rejected, result.Stats.Updated)
	for _, rejection := range result.Rejections {
		fmt.Printf("  rejected: %v\n", rejection)
	}
	return nil
}
