package models

// Categories assigned by the rule engine and by user corrections. Income is
// reserved for positive amounts; Uncategorized is the fallback for expenses
// nothing matched.
const (
	CategoryIncome        = "Income"
	CategoryHousing       = "Housing & Bills"
	CategoryGroceries     = "Groceries"
	CategoryDining        = "Food & Dining"
	CategorySubscriptions = "Subscriptions"
	CategoryTransport     = "Transport"
	CategoryLeisure       = "Leisure & Entertainment"
	CategoryShopping      = "Shopping"
	CategoryHealth        = "Health & Wellness"
	CategoryFinancial     = "Financial"
	CategoryUncategorized = "Uncategorized"
)

// AllCategories returns every selectable category, expense categories first.
func AllCategories() []string {
	return append(ExpenseCategories(), CategoryIncome, CategoryUncategorized)
}

// ExpenseCategories returns the categories a budget can be set for.
func ExpenseCategories() []string {
	return []string{
		CategoryHousing,
		CategoryGroceries,
		CategoryDining,
		CategorySubscriptions,
		CategoryTransport,
		CategoryLeisure,
		CategoryShopping,
		CategoryHealth,
		CategoryFinancial,
	}
}

// IsKnownCategory reports whether name is one of the selectable categories.
func IsKnownCategory(name string) bool {
	for _, c := range AllCategories() {
		if c == name {
			return true
		}
	}
	return false
}

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
