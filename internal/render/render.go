// Package render maps the application state onto plain view models. It has
// no knowledge of the surface drawing them.
package render

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pennywise/internal/aggregate"
	"github.com/MrJamesThe3rd/pennywise/internal/category"
	"github.com/MrJamesThe3rd/pennywise/internal/month"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
	"github.com/MrJamesThe3rd/pennywise/internal/viewstate"
)

const (
	recentLimit  = 5
	trendMonths  = 6
	emptyMessage = "No transactions this month"
	noData       = "No data for this month"
)

type Screen struct {
	View         string            `json:"view"`
	MonthLabel   string            `json:"month_label"`
	Home         *Home             `json:"home,omitempty"`
	Add          *Add              `json:"add,omitempty"`
	Transactions *TransactionsList `json:"transactions,omitempty"`
	Reports      *Reports          `json:"reports,omitempty"`
}

type Row struct {
	ID     string `json:"id"`
	Icon   string `json:"icon"`
	Title  string `json:"title"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Income bool   `json:"income"`
	Color  string `json:"color"`
}

type Progress struct {
	Visible bool `json:"visible"`
	Percent int  `json:"percent"`
	Over    bool `json:"over"`
}

type Home struct {
	Balance         string   `json:"balance"`
	BalanceNegative bool     `json:"balance_negative"`
	Income          string   `json:"income"`
	Expense         string   `json:"expense"`
	Progress        Progress `json:"progress"`
	Recent          []Row    `json:"recent"`
	Empty           string   `json:"empty,omitempty"`
}

type CategoryOption struct {
	category.Category
	Selected bool `json:"selected"`
}

type Add struct {
	Type        transaction.Type `json:"type"`
	Categories  []CategoryOption `json:"categories"`
	Amount      string           `json:"amount"`
	Description string           `json:"description"`
	Date        string           `json:"date"`
	SaveLabel   string           `json:"save_label"`
}

type Group struct {
	Label string `json:"label"`
	Rows  []Row  `json:"rows"`
}

type TransactionsList struct {
	Groups []Group `json:"groups"`
	Empty  string  `json:"empty,omitempty"`
}

type BreakdownRow struct {
	Category category.Category `json:"category"`
	Amount   string            `json:"amount"`
	Percent  int               `json:"percent"`
}

// Series is one chart's data. Labels, Values and Colors are parallel.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

type Trend struct {
	Labels  []string  `json:"labels"`
	Income  []float64 `json:"income"`
	Expense []float64 `json:"expense"`
}

type Reports struct {
	Breakdown []BreakdownRow `json:"breakdown"`
	Donut     Series         `json:"donut"`
	Trend     Trend          `json:"trend"`
	Empty     string         `json:"empty,omitempty"`
}

// Build produces the view model for the current view of s. now anchors the
// trailing-month trend.
func Build(s viewstate.State, txs []transaction.Transaction, now time.Time) Screen {
	screen := Screen{View: s.View.String(), MonthLabel: s.Month.Label()}

	switch s.View {
	case viewstate.ViewHome:
		screen.Home = new(BuildHome(s.Month, txs))
	case viewstate.ViewAdd:
		screen.Add = new(BuildAdd(s.Draft))
	case viewstate.ViewTransactions:
		screen.Transactions = new(BuildTransactions(s.Month, txs))
	case viewstate.ViewReports:
		screen.Reports = new(BuildReports(s.Month, txs, now))
	}

	return screen
}

func BuildHome(key month.Key, txs []transaction.Transaction) Home {
	inMonth := aggregate.InMonth(txs, key)
	totals := aggregate.TotalsByType(inMonth)
	pct, over := aggregate.PercentageOfIncome(totals.Expense, totals.Income)

	home := Home{
		Balance:         Money(totals.Balance),
		BalanceNegative: totals.Balance.IsNegative(),
		Income:          Money(totals.Income),
		Expense:         Money(totals.Expense),
		Progress: Progress{
			Visible: totals.Income.IsPositive(),
			Percent: pct,
			Over:    over,
		},
		Recent: rows(aggregate.Recent(inMonth, recentLimit)),
	}

	if len(inMonth) == 0 {
		home.Empty = emptyMessage
	}

	return home
}

func BuildAdd(d transaction.Draft) Add {
	cats := category.ForType(d.Type)
	options := make([]CategoryOption, 0, len(cats))

	for _, c := range cats {
		options = append(options, CategoryOption{Category: c, Selected: c.ID == d.Category})
	}

	label := "Save Expense"
	if d.Type == transaction.TypeIncome {
		label = "Save Income"
	}

	return Add{
		Type:        d.Type,
		Categories:  options,
		Amount:      d.Amount,
		Description: d.Description,
		Date:        d.Date,
		SaveLabel:   label,
	}
}

func BuildTransactions(key month.Key, txs []transaction.Transaction) TransactionsList {
	list := TransactionsList{}

	for _, g := range aggregate.GroupByDate(aggregate.InMonth(txs, key)) {
		list.Groups = append(list.Groups, Group{
			Label: DateLabel(g.Date),
			Rows:  rows(g.Transactions),
		})
	}

	if len(list.Groups) == 0 {
		list.Empty = emptyMessage
	}

	return list
}

func BuildReports(key month.Key, txs []transaction.Transaction, now time.Time) Reports {
	inMonth := aggregate.InMonth(txs, key)
	ranked := aggregate.TotalsByCategory(inMonth)
	total := aggregate.TotalsByType(inMonth).Expense

	r := Reports{}

	for _, ct := range ranked {
		c := category.Lookup(ct.Category)

		r.Breakdown = append(r.Breakdown, BreakdownRow{
			Category: c,
			Amount:   Money(ct.Amount),
			Percent:  aggregate.Share(ct.Amount, total),
		})

		r.Donut.Labels = append(r.Donut.Labels, c.Label)
		r.Donut.Values = append(r.Donut.Values, ct.Amount.InexactFloat64())
		r.Donut.Colors = append(r.Donut.Colors, c.Color)
	}

	if len(inMonth) == 0 {
		r.Empty = noData
	}

	months := aggregate.TrailingMonths(trendMonths, now)
	for _, m := range months {
		r.Trend.Labels = append(r.Trend.Labels, m.Short())
	}

	r.Trend.Income = floats(aggregate.MonthlySeries(txs, months, transaction.TypeIncome))
	r.Trend.Expense = floats(aggregate.MonthlySeries(txs, months, transaction.TypeExpense))

	return r
}

func rows(txs []transaction.Transaction) []Row {
	out := make([]Row, 0, len(txs))

	for _, tx := range txs {
		c := category.Lookup(tx.Category)

		title := tx.Description
		if title == "" {
			title = c.Label
		}

		sign := "+"
		if tx.Type == transaction.TypeExpense {
			sign = "-"
		}

		out = append(out, Row{
			ID:     tx.ID,
			Icon:   c.Icon,
			Title:  title,
			Date:   DateLabel(tx.Date),
			Amount: sign + Money(tx.Amount),
			Income: tx.Type == transaction.TypeIncome,
			Color:  c.Color,
		})
	}

	return out
}

func floats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = d.InexactFloat64()
	}

	return out
}
