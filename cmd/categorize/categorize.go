// Package categorize classifies a description or re-runs categorization
// over stored history.
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"pvillar/hogarfin/cmd/root"
)

var (
	description  string
	recategorize bool
)

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Classify a description or re-run categorization",
	Long: `Classify a single transaction description through the learned mappings and
the keyword table, or re-run classification over the data user's stored
history so newly learned corrections reach old rows.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Description to classify")
	Cmd.Flags().BoolVar(&recategorize, "stored", false, "Re-categorize uncategorized rows of the stored history")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := root.App(ctx)
	if err != nil {
		return err
	}

	if recategorize {
		key, err := root.DataKey(ctx, c)
		if err != nil {
			return err
		}
		changed, err := c.GetPipeline().Recategorize(ctx, key)
		if err != nil {
			return err
		}
		fmt.Printf("Re-categorized %d stored rows\n", changed)
		return nil
	}

	if description == "" {
		return fmt.Errorf("either --description or --stored is required")
	}
	category, err := c.GetCategorizer().Classify(ctx, description)
	if err != nil {
		return err
	}
	fmt.Printf("%s → %s\n", description, category)
	return nil
}
