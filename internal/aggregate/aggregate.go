// Package aggregate derives totals and series from a transaction collection.
// Every function is pure.
package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pennywise/internal/month"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// MonthPrefixMatch reports whether date falls in key by text prefix.
// Malformed dates sharing the prefix match too.
func MonthPrefixMatch(date string, key month.Key) bool {
	return key.Contains(date)
}

// InMonth keeps the transactions dated in key, preserving order.
func InMonth(txs []transaction.Transaction, key month.Key) []transaction.Transaction {
	var out []transaction.Transaction

	for _, tx := range txs {
		if MonthPrefixMatch(tx.Date, key) {
			out = append(out, tx)
		}
	}

	return out
}

func TotalsByType(txs []transaction.Transaction) Totals {
	t := Totals{Income: decimal.Zero, Expense: decimal.Zero}

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			t.Income = t.Income.Add(tx.Amount)
		case transaction.TypeExpense:
			t.Expense = t.Expense.Add(tx.Amount)
		}
	}

	t.Balance = t.Income.Sub(t.Expense)

	return t
}

// TotalsByCategory sums expenses per category, largest first. Ties keep the
// order in which the categories were first seen.
func TotalsByCategory(txs []transaction.Transaction) []CategoryTotal {
	index := make(map[string]int)

	var totals []CategoryTotal

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		i, ok := index[tx.Category]
		if !ok {
			i = len(totals)
			index[tx.Category] = i
			totals = append(totals, CategoryTotal{Category: tx.Category, Amount: decimal.Zero})
		}

		totals[i].Amount = totals[i].Amount.Add(tx.Amount)
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Amount.Cmp(a.Amount)
	})

	return totals
}

// PercentageOfIncome returns expense as a whole percentage of income capped
// at 100, and whether expense exceeds income. It is 0 when income is zero.
func PercentageOfIncome(expense, income decimal.Decimal) (int, bool) {
	over := expense.GreaterThan(income)

	if !income.IsPositive() {
		return 0, over
	}

	pct := expense.Div(income).Mul(hundred).Round(0).IntPart()

	return int(min(max(pct, 0), 100)), over
}

// Share is amount as a rounded percentage of total, 0 when total is zero.
func Share(amount, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}

	return int(amount.Div(total).Mul(hundred).Round(0).IntPart())
}

func TrailingMonths(n int, ref time.Time) []month.Key {
	return month.Trailing(n, ref)
}

// MonthlySeries sums amounts of type t for each key in months.
func MonthlySeries(txs []transaction.Transaction, months []month.Key, t transaction.Type) []decimal.Decimal {
	series := make([]decimal.Decimal, len(months))

	for i, key := range months {
		sum := decimal.Zero

		for _, tx := range txs {
			if tx.Type == t && MonthPrefixMatch(tx.Date, key) {
				sum = sum.Add(tx.Amount)
			}
		}

		series[i] = sum
	}

	return series
}

// Recent returns up to n transactions, newest date first.
func Recent(txs []transaction.Transaction, n int) []transaction.Transaction {
	sorted := byDateDesc(txs)
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

type DateGroup struct {
	Date         string
	Transactions []transaction.Transaction
}

// GroupByDate buckets transactions by date, newest date first.
func GroupByDate(txs []transaction.Transaction) []DateGroup {
	var groups []DateGroup

	for _, tx := range byDateDesc(txs) {
		if n := len(groups); n > 0 && groups[n-1].Date == tx.Date {
			groups[n-1].Transactions = append(groups[n-1].Transactions, tx)
			continue
		}

		groups = append(groups, DateGroup{Date: tx.Date, Transactions: []transaction.Transaction{tx}})
	}

	return groups
}

func byDateDesc(txs []transaction.Transaction) []transaction.Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b transaction.Transaction) int {
		return cmp.Compare(b.Date, a.Date)
	})

	return sorted
}
