// Package report builds financial summaries over a transaction set and
// renders them as JSON or XML.
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/models"
)

var hundred = decimal.NewFromInt(100)

// KPIs are the headline numbers for a transaction set. Expenses are reported
// as positive magnitudes; balance is income minus expenses.
type KPIs struct {
	XMLName       xml.Name        `json:"-" xml:"kpis"`
	TotalIncome   decimal.Decimal `json:"total_income" xml:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses" xml:"total_expenses"`
	Balance       decimal.Decimal `json:"balance" xml:"balance"`
	SavingsRate   decimal.Decimal `json:"savings_rate" xml:"savings_rate"`
	Count         int             `json:"transaction_count" xml:"transaction_count"`
	FirstDate     string          `json:"first_date,omitempty" xml:"first_date,omitempty"`
	LastDate      string          `json:"last_date,omitempty" xml:"last_date,omitempty"`
	TopCategory   string          `json:"top_category,omitempty" xml:"top_category,omitempty"`
}

// CategoryEntry is one category's share of total expenses.
type CategoryEntry struct {
	Category string          `json:"category" xml:"category"`
	Amount   decimal.Decimal `json:"amount" xml:"amount"`
	Percent  decimal.Decimal `json:"percent" xml:"percent"`
	Count    int             `json:"transaction_count" xml:"transaction_count"`
}

// CategoryBreakdown lists expense categories, largest first.
type CategoryBreakdown struct {
	XMLName xml.Name        `json:"-" xml:"categories"`
	Entries []CategoryEntry `json:"categories" xml:"category"`
}

// MonthlyEntry is one month's totals, with the running balance across the
// summarized months.
type MonthlyEntry struct {
	Month      string          `json:"month" xml:"month"`
	Income     decimal.Decimal `json:"income" xml:"income"`
	Expenses   decimal.Decimal `json:"expenses" xml:"expenses"`
	Balance    decimal.Decimal `json:"balance" xml:"balance"`
	Cumulative decimal.Decimal `json:"cumulative" xml:"cumulative"`
}

// MonthlySummary lists months in chronological order.
type MonthlySummary struct {
	XMLName xml.Name       `json:"-" xml:"monthly"`
	Entries []MonthlyEntry `json:"months" xml:"month_entry"`
}

// AnnualEntry is one year's totals.
type AnnualEntry struct {
	Year     int             `json:"year" xml:"year"`
	Income   decimal.Decimal `json:"income" xml:"income"`
	Expenses decimal.Decimal `json:"expenses" xml:"expenses"`
	Balance  decimal.Decimal `json:"balance" xml:"balance"`
}

// AnnualSummary lists years in chronological order.
type AnnualSummary struct {
	XMLName xml.Name      `json:"-" xml:"annual"`
	Entries []AnnualEntry `json:"years" xml:"year_entry"`
}

// Generator builds summaries and renders them.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a report generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(logging.GetLogger())
	}
	return &Generator{logger: logger}
}

// KPIs computes the headline numbers for a transaction set.
func (g *Generator) KPIs(transactions []models.Transaction) KPIs {
	var kpis KPIs
	kpis.Count = len(transactions)

	byCategory := make(map[string]decimal.Decimal)
	for i := range transactions {
		tx := &transactions[i]
		if kpis.FirstDate == "" || tx.Date.ISO() < kpis.FirstDate {
			kpis.FirstDate = tx.Date.ISO()
		}
		if tx.Date.ISO() > kpis.LastDate {
			kpis.LastDate = tx.Date.ISO()
		}
		if isExpense(tx) {
			kpis.TotalExpenses = kpis.TotalExpenses.Add(tx.Amount.Abs())
			byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount.Abs())
		} else if tx.Amount.IsPositive() {
			kpis.TotalIncome = kpis.TotalIncome.Add(tx.Amount)
		}
	}

	kpis.Balance = kpis.TotalIncome.Sub(kpis.TotalExpenses)
	if kpis.TotalIncome.IsPositive() {
		kpis.SavingsRate = kpis.Balance.Div(kpis.TotalIncome).Mul(hundred).Round(1)
	}

	top := decimal.Zero
	for category, amount := range byCategory {
		if amount.GreaterThan(top) || (amount.Equal(top) && category < kpis.TopCategory) {
			kpis.TopCategory = category
			top = amount
		}
	}
	return kpis
}

// CategoryBreakdown sums expenses per category, largest share first.
func (g *Generator) CategoryBreakdown(transactions []models.Transaction) CategoryBreakdown {
	totals := make(map[string]*CategoryEntry)
	total := decimal.Zero
	for i := range transactions {
		tx := &transactions[i]
		if !isExpense(tx) {
			continue
		}
		entry, ok := totals[tx.Category]
		if !ok {
			entry = &CategoryEntry{Category: tx.Category}
			totals[tx.Category] = entry
		}
		entry.Amount = entry.Amount.Add(tx.Amount.Abs())
		entry.Count++
		total = total.Add(tx.Amount.Abs())
	}

	var breakdown CategoryBreakdown
	for _, entry := range totals {
		if total.IsPositive() {
			entry.Percent = entry.Amount.Div(total).Mul(hundred).Round(1)
		}
		breakdown.Entries = append(breakdown.Entries, *entry)
	}
	sort.Slice(breakdown.Entries, func(i, j int) bool {
		a, b := breakdown.Entries[i], breakdown.Entries[j]
		if !a.Amount.Equal(b.Amount) {
			return a.Amount.GreaterThan(b.Amount)
		}
		return a.Category < b.Category
	})
	return breakdown
}

// MonthlySummary sums income and expenses per month. A non-zero year keeps
// only that year's months; the cumulative column runs over the months kept.
func (g *Generator) MonthlySummary(transactions []models.Transaction, year int) MonthlySummary {
	byMonth := make(map[string]*MonthlyEntry)
	for i := range transactions {
		tx := &transactions[i]
		if year != 0 && tx.Date.Year() != year {
			continue
		}
		month := tx.MonthKey()
		entry, ok := byMonth[month]
		if !ok {
			entry = &MonthlyEntry{Month: month}
			byMonth[month] = entry
		}
		if isExpense(tx) {
			entry.Expenses = entry.Expenses.Add(tx.Amount.Abs())
		} else if tx.Amount.IsPositive() {
			entry.Income = entry.Income.Add(tx.Amount)
		}
	}

	var summary MonthlySummary
	for _, entry := range byMonth {
		entry.Balance = entry.Income.Sub(entry.Expenses)
		summary.Entries = append(summary.Entries, *entry)
	}
	sort.Slice(summary.Entries, func(i, j int) bool {
		return summary.Entries[i].Month < summary.Entries[j].Month
	})

	running := decimal.Zero
	for i := range summary.Entries {
		running = running.Add(summary.Entries[i].Balance)
		summary.Entries[i].Cumulative = running
	}
	return summary
}

// AnnualSummary sums income and expenses per year.
func (g *Generator) AnnualSummary(transactions []models.Transaction) AnnualSummary {
	byYear := make(map[int]*AnnualEntry)
	for i := range transactions {
		tx := &transactions[i]
		entry, ok := byYear[tx.Date.Year()]
		if !ok {
			entry = &AnnualEntry{Year: tx.Date.Year()}
			byYear[tx.Date.Year()] = entry
		}
		if isExpense(tx) {
			entry.Expenses = entry.Expenses.Add(tx.Amount.Abs())
		} else if tx.Amount.IsPositive() {
			entry.Income = entry.Income.Add(tx.Amount)
		}
	}

	var summary AnnualSummary
	for _, entry := range byYear {
		entry.Balance = entry.Income.Sub(entry.Expenses)
		summary.Entries = append(summary.Entries, *entry)
	}
	sort.Slice(summary.Entries, func(i, j int) bool {
		return summary.Entries[i].Year < summary.Entries[j].Year
	})
	return summary
}

// Render serializes a summary in the requested format (json or xml).
func (g *Generator) Render(report interface{}, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
		}
		return data, nil
	case "xml":
		data, err := xml.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal XML report: %w", err)
		}
		return []byte(xml.Header + string(data)), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// isExpense reports whether tx counts as spending. Negative rows carrying the
// income category (refund of a salary overpayment) stay out of the expense
// totals.
func isExpense(tx *models.Transaction) bool {
	return tx.IsExpense() && tx.Category != models.CategoryIncome
}
