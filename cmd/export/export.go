// Package export writes a data user's history to a standalone CSV file.
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"pvillar/hogarfin/cmd/root"
	"pvillar/hogarfin/internal/common"
)

var outputFile string

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored history as CSV",
	Long: `Write the data user's full transaction history to a CSV file using the
configured delimiter. The output is the same canonical layout the history is
stored in, so it re-imports cleanly.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Destination CSV file (required)")
	_ = Cmd.MarkFlagRequired("output")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

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
	if len(transactions) == 0 {
		return fmt.Errorf("no stored history for this data user")
	}

	if err := common.WriteTransactionsToCSV(transactions, outputFile); err != nil {
		return err
	}
	fmt.Printf("Exported %d transactions to %s\n", len(transactions), outputFile)
	return nil
}
