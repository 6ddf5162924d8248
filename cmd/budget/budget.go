// Package budget manages monthly category budgets and savings goals.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"pvillar/hogarfin/cmd/root"
	internalbudget "pvillar/hogarfin/internal/budget"
)

var (
	category    string
	amountStr   string
	month       string
	goalName    string
	goalTarget  string
	goalID      string
	deadline    string
	description string
)

// Cmd represents the budget command.
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage monthly budgets and savings goals",
	Long: `Set monthly budgets per expense category, check how much of each budget a
month consumed, and track savings goals.`,
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the monthly budget for a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *internalbudget.Service) error {
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}
			if err := svc.SetBudget(ctx, category, amount); err != nil {
				return err
			}
			fmt.Printf("Budget for %s set to %s/month\n", category, amount.StringFixed(2))
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a category's monthly budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *internalbudget.Service) error {
			if err := svc.RemoveBudget(ctx, category); err != nil {
				return err
			}
			fmt.Printf("Budget for %s removed\n", category)
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show budget consumption for a month",
	RunE:  statusFunc,
}

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage savings goals",
}

var goalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a savings goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *internalbudget.Service) error {
			target, err := decimal.NewFromString(goalTarget)
			if err != nil {
				return fmt.Errorf("invalid target %q: %w", goalTarget, err)
			}
			goal, err := svc.AddGoal(ctx, goalName, target, deadline, description)
			if err != nil {
				return err
			}
			fmt.Printf("Goal %q created (id %s, target %s)\n", goal.Name, goal.ID, goal.TargetAmount.StringFixed(2))
			return nil
		})
	},
}

var goalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List savings goals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *internalbudget.Service) error {
			goals, err := svc.Goals(ctx)
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Println("No savings goals")
				return nil
			}
			for _, g := range goals {
				state := "in progress"
				if g.Completed {
					state = "completed"
				}
				fmt.Printf("%s  %s: %s of %s (%s%%, %s)\n",
					g.ID, g.Name, g.CurrentAmount.StringFixed(2),
					g.TargetAmount.StringFixed(2), g.ProgressPercent().StringFixed(0), state)
			}
			return nil
		})
	},
}

var goalProgressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Update a goal's saved amount",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *internalbudget.Service) error {
			amount, err := decimal.NewFromString(amountStr)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amountStr, err)
			}
			goal, err := svc.UpdateGoalProgress(ctx, goalID, amount)
			if err != nil {
				return err
			}
			if goal.Completed {
				fmt.Printf("Goal %q completed!\n", goal.Name)
			} else {
				fmt.Printf("Goal %q at %s%% (%s remaining)\n",
					goal.Name, goal.ProgressPercent().StringFixed(0), goal.Remaining().StringFixed(2))
			}
			return nil
		})
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a savings goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd.Context(), func(ctx context.Context, svc *internalbudget.Service) error {
			if err := svc.DeleteGoal(ctx, goalID); err != nil {
				return err
			}
			fmt.Printf("Goal %s deleted\n", goalID)
			return nil
		})
	},
}

func init() {
	setCmd.Flags().StringVarP(&category, "category", "c", "", "Expense category (required)")
	setCmd.Flags().StringVarP(&amountStr, "amount", "m", "", "Monthly amount (required)")
	_ = setCmd.MarkFlagRequired("category")
	_ = setCmd.MarkFlagRequired("amount")

	removeCmd.Flags().StringVarP(&category, "category", "c", "", "Expense category (required)")
	_ = removeCmd.MarkFlagRequired("category")

	statusCmd.Flags().StringVarP(&month, "month", "m", "", "Month as YYYY-MM (default: current month)")

	goalAddCmd.Flags().StringVarP(&goalName, "name", "n", "", "Goal name (required)")
	goalAddCmd.Flags().StringVarP(&goalTarget, "target", "t", "", "Target amount (required)")
	goalAddCmd.Flags().StringVar(&deadline, "deadline", "", "Optional deadline (YYYY-MM-DD)")
	goalAddCmd.Flags().StringVar(&description, "description", "", "Optional description")
	_ = goalAddCmd.MarkFlagRequired("name")
	_ = goalAddCmd.MarkFlagRequired("target")

	goalProgressCmd.Flags().StringVar(&goalID, "id", "", "Goal id (required)")
	goalProgressCmd.Flags().StringVarP(&amountStr, "amount", "m", "", "Saved amount (required)")
	_ = goalProgressCmd.MarkFlagRequired("id")
	_ = goalProgressCmd.MarkFlagRequired("amount")

	goalDeleteCmd.Flags().StringVar(&goalID, "id", "", "Goal id (required)")
	_ = goalDeleteCmd.MarkFlagRequired("id")

	goalCmd.AddCommand(goalAddCmd, goalListCmd, goalProgressCmd, goalDeleteCmd)
	Cmd.AddCommand(setCmd, removeCmd, statusCmd, goalCmd)
}

func withService(ctx context.Context, fn func(context.Context, *internalbudget.Service) error) error {
	c, err := root.App(ctx)
	if err != nil {
		return err
	}
	key, err := root.DataKey(ctx, c)
	if err != nil {
		return err
	}
	return fn(ctx, c.BudgetService(key))
}

func statusFunc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := root.App(ctx)
	if err != nil {
		return err
	}
	key, err := root.DataKey(ctx, c)
	if err != nil {
		return err
	}

	if month == "" {
		month = time.Now().Format("2006-01")
	}

	transactions, err := c.GetHistory().Load(ctx, key)
	if err != nil {
		return err
	}

	statuses, err := c.BudgetService(key).Status(ctx, transactions, month)
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Println("No budgets set")
		return nil
	}

	fmt.Printf("Budget status for %s:\n", month)
	for _, st := range statuses {
		fmt.Printf("  %-25s %8s of %8s (%s%%, %s)\n",
			st.Category, st.Spent.StringFixed(2), st.Budget.StringFixed(2),
			st.Percent.StringFixed(0), st.Level)
	}

	alerts := internalbudget.Alerts(statuses)
	if len(alerts) > 0 {
		fmt.Println("Needs attention:")
		for _, st := range alerts {
			fmt.Printf("  %s at %s%%\n", st.Category, st.Percent.StringFixed(0))
		}
	}
	return nil
}
