// Package budget manages per-data-user monthly category budgets and savings
// goals, persisted as one JSON config blob per data user on the storage
// collaborator.
package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
	"pvillar/hogarfin/internal/storage"
)

// budgetSuffix names the per-data-user budget blob.
const budgetSuffix = "budgets"

// StatusLevel grades how consumed a category budget is.
type StatusLevel string

const (
	LevelGood     StatusLevel = "good"     // under half
	LevelCaution  StatusLevel = "caution"  // 50–79%
	LevelWarning  StatusLevel = "warning"  // 80–99%
	LevelExceeded StatusLevel = "exceeded" // spent at or past the budget
)

var (
	thresholdCaution  = decimal.NewFromInt(50)
	thresholdWarning  = decimal.NewFromInt(80)
	thresholdExceeded = decimal.NewFromInt(100)
	hundred           = decimal.NewFromInt(100)
)

// Goal is one savings goal. Progress is updated explicitly; a goal whose
// current amount reaches its target is marked completed and stays completed.
type Goal struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline,omitempty"`
	Description   string          `json:"description,omitempty"`
	Created       string          `json:"created"`
	Completed     bool            `json:"completed"`
}

// ProgressPercent returns goal completion as a percentage, capped at 100.
func (g Goal) ProgressPercent() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	percent := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if percent.GreaterThan(hundred) {
		return hundred
	}
	return percent
}

// Remaining returns the amount still missing to reach the target.
func (g Goal) Remaining() decimal.Decimal {
	remaining := g.TargetAmount.Sub(g.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// CategoryStatus is one category's budget consumption for a month.
type CategoryStatus struct {
	Category  string          `json:"category"`
	Budget    decimal.Decimal `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Percent   decimal.Decimal `json:"percent"`
	Level     StatusLevel     `json:"level"`
}

type budgetFile struct {
	MonthlyBudgets map[string]decimal.Decimal `json:"monthly_budgets"`
	Goals          []Goal                     `json:"goals"`
}

// Service reads and writes one data user's budgets and goals.
type Service struct {
	backend storage.Backend
	key     string
	logger  logging.Logger
	now     func() time.Time
}

// NewService creates a budget service for the data user stored under dataKey.
func NewService(backend storage.Backend, dataKey string, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &Service{
		backend: backend,
		key:     fmt.Sprintf("%s_%s", dataKey, budgetSuffix),
		logger:  logger,
		now:     time.Now,
	}
}

// SetBudget sets the monthly budget for an expense category.
func (s *Service) SetBudget(ctx context.Context, category string, amount decimal.Decimal) error {
	if !isExpenseCategory(category) {
		return fmt.Errorf("not a budgetable category: %s", category)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("budget amount must be positive, got %s", amount)
	}

	file, err := s.load(ctx)
	if err != nil {
		return err
	}
	file.MonthlyBudgets[category] = amount
	return s.save(ctx, file)
}

// RemoveBudget removes a category's monthly budget.
func (s *Service) RemoveBudget(ctx context.Context, category string) error {
	file, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := file.MonthlyBudgets[category]; !ok {
		return fmt.Errorf("no budget set for category: %s", category)
	}
	delete(file.MonthlyBudgets, category)
	return s.save(ctx, file)
}

// Budgets returns the configured monthly budgets.
func (s *Service) Budgets(ctx context.Context) (map[string]decimal.Decimal, error) {
	file, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return file.MonthlyBudgets, nil
}

// Status computes budget consumption per budgeted category for one month
// (YYYY-MM). Only expenses count as spending; results follow the canonical
// category order.
func (s *Service) Status(ctx context.Context, transactions []models.Transaction, month string) ([]CategoryStatus, error) {
	file, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(file.MonthlyBudgets) == 0 {
		return nil, nil
	}

	spent := make(map[string]decimal.Decimal)
	for _, tx := range transactions {
		if !tx.IsExpense() || tx.MonthKey() != month {
			continue
		}
		spent[tx.Category] = spent[tx.Category].Add(tx.Amount.Abs())
	}

	var statuses []CategoryStatus
	for _, category := range models.ExpenseCategories() {
		budget, ok := file.MonthlyBudgets[category]
		if !ok {
			continue
		}
		used := spent[category]
		percent := decimal.Zero
		if budget.IsPositive() {
			percent = used.Div(budget).Mul(hundred)
		}
		statuses = append(statuses, CategoryStatus{
			Category:  category,
			Budget:    budget,
			Spent:     used,
			Remaining: budget.Sub(used),
			Percent:   percent,
			Level:     levelFor(percent),
		})
	}
	return statuses, nil
}

// Alerts filters statuses down to the ones needing attention, most consumed
// first.
func Alerts(statuses []CategoryStatus) []CategoryStatus {
	var alerts []CategoryStatus
	for _, st := range statuses {
		if st.Level != LevelGood {
			alerts = append(alerts, st)
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Percent.GreaterThan(alerts[j].Percent)
	})
	return alerts
}

// AddGoal creates a savings goal. Deadline is an optional ISO date.
func (s *Service) AddGoal(ctx context.Context, name string, target decimal.Decimal, deadline, description string) (Goal, error) {
	if name == "" {
		return Goal{}, fmt.Errorf("goal name is required")
	}
	if !target.IsPositive() {
		return Goal{}, fmt.Errorf("goal target must be positive, got %s", target)
	}

	file, err := s.load(ctx)
	if err != nil {
		return Goal{}, err
	}

	goal := Goal{
		ID:           uuid.NewString(),
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
		Description:  description,
		Created:      s.now().UTC().Format(time.RFC3339),
	}
	file.Goals = append(file.Goals, goal)
	if err := s.save(ctx, file); err != nil {
		return Goal{}, err
	}
	return goal, nil
}

// Goals returns the savings goals in creation order.
func (s *Service) Goals(ctx context.Context) ([]Goal, error) {
	file, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return file.Goals, nil
}

// UpdateGoalProgress sets a goal's saved amount, marking it completed when
// the target is reached.
func (s *Service) UpdateGoalProgress(ctx context.Context, id string, amount decimal.Decimal) (Goal, error) {
	file, err := s.load(ctx)
	if err != nil {
		return Goal{}, err
	}

	for i := range file.Goals {
		if file.Goals[i].ID != id {
			continue
		}
		file.Goals[i].CurrentAmount = amount
		if amount.GreaterThanOrEqual(file.Goals[i].TargetAmount) {
			file.Goals[i].Completed = true
		}
		if err := s.save(ctx, file); err != nil {
			return Goal{}, err
		}
		return file.Goals[i], nil
	}
	return Goal{}, fmt.Errorf("no goal with id %s", id)
}

// DeleteGoal removes a savings goal.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	file, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i := range file.Goals {
		if file.Goals[i].ID == id {
			file.Goals = append(file.Goals[:i:i], file.Goals[i+1:]...)
			return s.save(ctx, file)
		}
	}
	return fmt.Errorf("no goal with id %s", id)
}

func levelFor(percent decimal.Decimal) StatusLevel {
	switch {
	case percent.GreaterThanOrEqual(thresholdExceeded):
		return LevelExceeded
	case percent.GreaterThanOrEqual(thresholdWarning):
		return LevelWarning
	case percent.GreaterThanOrEqual(thresholdCaution):
		return LevelCaution
	default:
		return LevelGood
	}
}

func isExpenseCategory(category string) bool {
	for _, c := range models.ExpenseCategories() {
		if c == category {
			return true
		}
	}
	return false
}

func (s *Service) load(ctx context.Context) (budgetFile, error) {
	file := budgetFile{MonthlyBudgets: make(map[string]decimal.Decimal)}

	data, err := s.backend.ReadConfig(ctx, s.key)
	if storage.IsNotFound(err) {
		return file, nil
	}
	if err != nil {
		return budgetFile{}, err
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return budgetFile{}, fmt.Errorf("budget blob %s is corrupt: %w", s.key, err)
	}
	if file.MonthlyBudgets == nil {
		file.MonthlyBudgets = make(map[string]decimal.Decimal)
	}
	return file, nil
}

func (s *Service) save(ctx context.Context, file budgetFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}
	return s.backend.WriteConfig(ctx, s.key, data)
}
