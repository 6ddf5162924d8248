package budget_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvillar/hogarfin/cmd/budget"
)

func findSub(t *testing.T, parent *cobra.Command, use string) *cobra.Command {
	t.Helper()
	for _, sub := range parent.Commands() {
		if sub.Use == use {
			return sub
		}
	}
	t.Fatalf("subcommand %q not found under %q", use, parent.Use)
	return nil
}

func TestBudgetCommand_Metadata(t *testing.T) {
	assert.Equal(t, "budget", budget.Cmd.Use)
	assert.Contains(t, budget.Cmd.Short, "budgets")
	assert.Contains(t, budget.Cmd.Long, "savings goals")
}

func TestBudgetCommand_Subcommands(t *testing.T) {
	findSub(t, budget.Cmd, "set")
	findSub(t, budget.Cmd, "remove")
	findSub(t, budget.Cmd, "status")

	goal := findSub(t, budget.Cmd, "goal")
	findSub(t, goal, "add")
	findSub(t, goal, "list")
	findSub(t, goal, "progress")
	findSub(t, goal, "delete")
}

func TestSetCommand_Flags(t *testing.T) {
	set := findSub(t, budget.Cmd, "set")

	categoryFlag := set.Flags().Lookup("category")
	require.NotNil(t, categoryFlag)
	assert.Equal(t, "c", categoryFlag.Shorthand)

	amountFlag := set.Flags().Lookup("amount")
	require.NotNil(t, amountFlag)
	assert.Equal(t, "m", amountFlag.Shorthand)
}

func TestStatusCommand_Flags(t *testing.T) {
	status := findSub(t, budget.Cmd, "status")
	monthFlag := status.Flags().Lookup("month")
	require.NotNil(t, monthFlag)
	assert.Equal(t, "", monthFlag.DefValue)
}

func TestGoalAddCommand_Flags(t *testing.T) {
	goal := findSub(t, budget.Cmd, "goal")
	add := findSub(t, goal, "add")

	assert.NotNil(t, add.Flags().Lookup("name"))
	assert.NotNil(t, add.Flags().Lookup("target"))
	assert.NotNil(t, add.Flags().Lookup("deadline"))
	assert.NotNil(t, add.Flags().Lookup("description"))
}
