package budget_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pvillar/hogarfin/internal/budget"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/storage"
)

const dataKey = "a1b2c3d4_pablo"

func newService() (*budget.Service, *storage.MemoryBackend) {
	backend := storage.NewMemoryBackend()
	return budget.NewService(backend, dataKey, &logging.MockLogger{}), backend
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(date, category, value string) models.Transaction {
	var d models.ISODate
	if err := d.UnmarshalCSV(date); err != nil {
		panic(err)
	}
	return models.Transaction{
		Date:        d,
		Description: "SAMPLE",
		Amount:      amount(value),
		Category:    category,
	}
}

func TestSetAndListBudgets(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetBudget(ctx, models.CategoryGroceries, amount("400")))
	require.NoError(t, svc.SetBudget(ctx, models.CategoryDining, amount("150")))

	budgets, err := svc.Budgets(ctx)
	require.NoError(t, err)
	require.Len(t, budgets, 2)
	assert.True(t, budgets[models.CategoryGroceries].Equal(amount("400")))
	assert.True(t, budgets[models.CategoryDining].Equal(amount("150")))
}

func TestSetBudgetRejectsBadInput(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	// Income is not budgetable, neither is a made-up category.
	assert.Error(t, svc.SetBudget(ctx, models.CategoryIncome, amount("100")))
	assert.Error(t, svc.SetBudget(ctx, "Yachts", amount("100")))
	assert.Error(t, svc.SetBudget(ctx, models.CategoryGroceries, amount("0")))
	assert.Error(t, svc.SetBudget(ctx, models.CategoryGroceries, amount("-50")))
}

func TestRemoveBudget(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetBudget(ctx, models.CategoryGroceries, amount("400")))
	require.NoError(t, svc.RemoveBudget(ctx, models.CategoryGroceries))

	budgets, err := svc.Budgets(ctx)
	require.NoError(t, err)
	assert.Empty(t, budgets)

	assert.Error(t, svc.RemoveBudget(ctx, models.CategoryGroceries))
}

func TestStatusLevels(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetBudget(ctx, models.CategoryGroceries, amount("100")))
	require.NoError(t, svc.SetBudget(ctx, models.CategoryDining, amount("100")))
	require.NoError(t, svc.SetBudget(ctx, models.CategoryTransport, amount("100")))
	require.NoError(t, svc.SetBudget(ctx, models.CategoryLeisure, amount("100")))

	transactions := []models.Transaction{
		expense("2025-01-05", models.CategoryGroceries, "-30.00"),  // 30% good
		expense("2025-01-06", models.CategoryDining, "-60.00"),     // 60% caution
		expense("2025-01-07", models.CategoryTransport, "-85.00"),  // 85% warning
		expense("2025-01-08", models.CategoryLeisure, "-120.00"),   // 120% exceeded
		expense("2024-12-30", models.CategoryGroceries, "-500.00"), // other month, ignored
		expense("2025-01-09", models.CategoryIncome, "1000.00"),    // income, ignored
	}

	statuses, err := svc.Status(ctx, transactions, "2025-01")
	require.NoError(t, err)
	require.Len(t, statuses, 4)

	byCategory := make(map[string]budget.CategoryStatus)
	for _, st := range statuses {
		byCategory[st.Category] = st
	}

	assert.Equal(t, budget.LevelGood, byCategory[models.CategoryGroceries].Level)
	assert.Equal(t, budget.LevelCaution, byCategory[models.CategoryDining].Level)
	assert.Equal(t, budget.LevelWarning, byCategory[models.CategoryTransport].Level)
	assert.Equal(t, budget.LevelExceeded, byCategory[models.CategoryLeisure].Level)

	groceries := byCategory[models.CategoryGroceries]
	assert.True(t, groceries.Spent.Equal(amount("30")))
	assert.True(t, groceries.Remaining.Equal(amount("70")))
}

func TestStatusBoundaries(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	require.NoError(t, svc.SetBudget(ctx, models.CategoryGroceries, amount("100")))

	cases := []struct {
		spent string
		level budget.StatusLevel
	}{
		{"-49.99", budget.LevelGood},
		{"-50.00", budget.LevelCaution},
		{"-79.99", budget.LevelCaution},
		{"-80.00", budget.LevelWarning},
		{"-99.99", budget.LevelWarning},
		{"-100.00", budget.LevelExceeded},
	}
	for _, tc := range cases {
		statuses, err := svc.Status(ctx, []models.Transaction{
			expense("2025-01-05", models.CategoryGroceries, tc.spent),
		}, "2025-01")
		require.NoError(t, err)
		require.Len(t, statuses, 1)
		assert.Equal(t, tc.level, statuses[0].Level, "spent %s", tc.spent)
	}
}

func TestStatusWithoutBudgetsIsEmpty(t *testing.T) {
	svc, _ := newService()

	statuses, err := svc.Status(context.Background(), []models.Transaction{
		expense("2025-01-05", models.CategoryGroceries, "-30.00"),
	}, "2025-01")
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestAlertsOrderedByConsumption(t *testing.T) {
	statuses := []budget.CategoryStatus{
		{Category: models.CategoryGroceries, Percent: amount("30"), Level: budget.LevelGood},
		{Category: models.CategoryDining, Percent: amount("85"), Level: budget.LevelWarning},
		{Category: models.CategoryLeisure, Percent: amount("120"), Level: budget.LevelExceeded},
		{Category: models.CategoryTransport, Percent: amount("55"), Level: budget.LevelCaution},
	}

	alerts := budget.Alerts(statuses)
	require.Len(t, alerts, 3)
	assert.Equal(t, models.CategoryLeisure, alerts[0].Category)
	assert.Equal(t, models.CategoryDining, alerts[1].Category)
	assert.Equal(t, models.CategoryTransport, alerts[2].Category)
}

func TestAddGoal(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	goal, err := svc.AddGoal(ctx, "Vacaciones", amount("2000"), "2025-08-01", "Verano en Galicia")
	require.NoError(t, err)
	assert.NoError(t, uuid.Validate(goal.ID))
	assert.Equal(t, "Vacaciones", goal.Name)
	assert.False(t, goal.Completed)
	assert.NotEmpty(t, goal.Created)

	goals, err := svc.Goals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, goal.ID, goals[0].ID)
}

func TestAddGoalRejectsBadInput(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.AddGoal(ctx, "", amount("2000"), "", "")
	assert.Error(t, err)
	_, err = svc.AddGoal(ctx, "Vacaciones", amount("0"), "", "")
	assert.Error(t, err)
}

func TestUpdateGoalProgress(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	goal, err := svc.AddGoal(ctx, "Vacaciones", amount("2000"), "", "")
	require.NoError(t, err)

	updated, err := svc.UpdateGoalProgress(ctx, goal.ID, amount("500"))
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.True(t, updated.ProgressPercent().Equal(amount("25")))
	assert.True(t, updated.Remaining().Equal(amount("1500")))

	completed, err := svc.UpdateGoalProgress(ctx, goal.ID, amount("2500"))
	require.NoError(t, err)
	assert.True(t, completed.Completed)
	assert.True(t, completed.ProgressPercent().Equal(amount("100")))
	assert.True(t, completed.Remaining().IsZero())

	_, err = svc.UpdateGoalProgress(ctx, "missing-id", amount("10"))
	assert.Error(t, err)
}

func TestDeleteGoal(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	goal, err := svc.AddGoal(ctx, "Vacaciones", amount("2000"), "", "")
	require.NoError(t, err)
	keep, err := svc.AddGoal(ctx, "Coche", amount("8000"), "", "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGoal(ctx, goal.ID))

	goals, err := svc.Goals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, keep.ID, goals[0].ID)

	assert.Error(t, svc.DeleteGoal(ctx, goal.ID))
}

func TestBudgetsPersistAcrossInstances(t *testing.T) {
	backend := storage.NewMemoryBackend()
	ctx := context.Background()

	first := budget.NewService(backend, dataKey, &logging.MockLogger{})
	require.NoError(t, first.SetBudget(ctx, models.CategoryGroceries, amount("400")))
	_, err := first.AddGoal(ctx, "Vacaciones", amount("2000"), "", "")
	require.NoError(t, err)

	second := budget.NewService(backend, dataKey, &logging.MockLogger{})
	budgets, err := second.Budgets(ctx)
	require.NoError(t, err)
	assert.True(t, budgets[models.CategoryGroceries].Equal(amount("400")))

	goals, err := second.Goals(ctx)
	require.NoError(t, err)
	assert.Len(t, goals, 1)
}

func TestStorageErrorsPropagate(t *testing.T) {
	svc, backend := newService()
	ctx := context.Background()

	backend.ReadConfigError = storage.ErrUnavailable
	_, err := svc.Budgets(ctx)
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	backend.ReadConfigError = nil
	backend.WriteConfigError = storage.ErrUnavailable
	err = svc.SetBudget(ctx, models.CategoryGroceries, amount("400"))
	assert.ErrorIs(t, err, storage.ErrUnavailable)
}

func TestCorruptBlobFails(t *testing.T) {
	svc, backend := newService()
	ctx := context.Background()

	require.NoError(t, backend.WriteConfig(ctx, dataKey+"_budgets", []byte("{not json")))

	_, err := svc.Budgets(ctx)
	assert.ErrorContains(t, err, "corrupt")
}
