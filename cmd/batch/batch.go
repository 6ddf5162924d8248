// Package batch imports every statement file found in a directory.
package batch

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"pvillar/hogarfin/cmd/root"
	"pvillar/hogarfin/internal/validation"
)

var inputDir string

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Import a directory of statement files",
	Long: `Scan a directory for statement files and import each one into the data
user's history. A file that fails to parse is reported and skipped.`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "dir", "d", "", "Directory containing statement files (required)")
	_ = Cmd.MarkFlagRequired("dir")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := validation.ValidateDirectory(inputDir); err != nil {
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

	summary, err := c.GetBatchRunner().Run(ctx, inputDir, key, root.DataUserID(c))
	if err != nil {
		return err
	}

	for _, fr := range summary.Results {
		if fr.Err != nil {
			fmt.Printf("  %s: FAILED (%v)\n", filepath.Base(fr.File), fr.Err)
			continue
		}
		fmt.Printf("  %s: imported %d, skipped %d, rejected %d\n",
			filepath.Base(fr.File), fr.Stats.Imported,
			fr.Stats.SkippedDuplicate, fr.Stats.Rejected)
	}
	fmt.Printf("Total: imported %d, skipped %d duplicates, rejected %d rows, %d files failed\n",
		summary.Stats.Imported, summary.Stats.SkippedDuplicate,
		summary.Stats.Rejected, summary.Failed)
	return nil
}
