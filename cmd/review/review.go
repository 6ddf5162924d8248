// Package review lists transactions needing a category and records
// corrections.
package review

import (
	"fmt"

	"github.com/spf13/cobra"

	"pvillar/hogarfin/cmd/root"
	"pvillar/hogarfin/internal/currencyutils"
)

var (
	suggest     bool
	correctDesc string
	category    string
)

// Cmd represents the review command.
var Cmd = &cobra.Command{
	Use:   "review",
	Short: "Review uncategorized expenses",
	Long: `List the stored expenses still uncategorized. With --suggest, ask the
configured suggester for a candidate category per row. With --correct and
--category, record a correction: it updates the matching stored rows and is
learned for future imports.`,
	RunE: reviewFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&suggest, "suggest", "s", false, "Ask for category suggestions")
	Cmd.Flags().StringVar(&correctDesc, "correct", "", "Description to correct")
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Category for the correction")
}

func reviewFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := root.App(ctx)
	if err != nil {
		return err
	}
	key, err := root.DataKey(ctx, c)
	if err != nil {
		return err
	}

	if correctDesc != "" {
		if category == "" {
			return fmt.Errorf("--category is required with --correct")
		}
		updated, err := c.GetReviewer().Correct(ctx, key, correctDesc, category)
		if err != nil {
			return err
		}
		fmt.Printf("Recorded %q → %s (%d stored rows updated)\n", correctDesc, category, updated)
		return nil
	}

	pending, err := c.GetReviewer().Pending(ctx, key)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("Nothing to review")
		return nil
	}

	for _, tx := range pending {
		line := fmt.Sprintf("%s  %10s  %s", tx.Date.ISO(), currencyutils.FormatAmount(tx.Amount), tx.Description)
		if suggest {
			candidate, err := c.GetReviewer().SuggestFor(ctx, tx.Description)
			if err != nil {
				line += fmt.Sprintf("  (suggestion unavailable: %v)", err)
			} else {
				line += fmt.Sprintf("  → %s?", candidate)
			}
		}
		fmt.Println(line)
	}
	fmt.Printf("%d transactions need review\n", len(pending))
	return nil
}
