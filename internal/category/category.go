package category

import "github.com/MrJamesThe3rd/pennywise/internal/transaction"

// Category describes how a transaction category is displayed.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var expense = []Category{
	{ID: "food", Label: "Food", Icon: "🍔", Color: "#f59e0b"},
	{ID: "housing", Label: "Housing", Icon: "🏠", Color: "#3b82f6"},
	{ID: "transport", Label: "Travel", Icon: "🚗", Color: "#8b5cf6"},
	{ID: "entertainment", Label: "Fun", Icon: "🎮", Color: "#ec4899"},
	{ID: "health", Label: "Health", Icon: "💊", Color: "#10b981"},
	{ID: "shopping", Label: "Shop", Icon: "🛍️", Color: "#f97316"},
	{ID: "bills", Label: "Bills", Icon: "📄", Color: "#6b7280"},
	{ID: "other", Label: "Other", Icon: "📦", Color: "#9ca3af"},
}

var income = []Category{
	{ID: "salary", Label: "Salary", Icon: "💼", Color: "#4ade80"},
	{ID: "freelance", Label: "Freelance", Icon: "💻", Color: "#34d399"},
	{ID: "investment", Label: "Invest", Icon: "📈", Color: "#6ee7b7"},
	{ID: "gift", Label: "Gift", Icon: "🎁", Color: "#a7f3d0"},
	{ID: "other_inc", Label: "Other", Icon: "💰", Color: "#4ade80"},
}

// Fallback is returned by Lookup for ids that are not registered.
var Fallback = Category{ID: "other", Label: "Other", Icon: "📦", Color: "#9ca3af"}

// Expense returns the expense categories in display order.
func Expense() []Category {
	return append([]Category(nil), expense...)
}

// Income returns the income categories in display order.
func Income() []Category {
	return append([]Category(nil), income...)
}

// ForType returns the categories a transaction of the given type may use.
func ForType(t transaction.Type) []Category {
	if t == transaction.TypeIncome {
		return Income()
	}

	return Expense()
}

// Lookup never fails: unknown ids resolve to Fallback.
func Lookup(id string) Category {
	for _, c := range expense {
		if c.ID == id {
			return c
		}
	}

	for _, c := range income {
		if c.ID == id {
			return c
		}
	}

	return Fallback
}
