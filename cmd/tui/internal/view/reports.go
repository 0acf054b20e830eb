package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pennywise/internal/render"
)

const (
	barWidth   = 30
	trendWidth = 24
)

type ReportsModel struct {
	CommonModel
}

func NewReportsModel() ReportsModel {
	return ReportsModel{}
}

func (m ReportsModel) Render(r *render.Reports) string {
	if r == nil {
		return ""
	}

	if r.Empty != "" {
		return lipgloss.NewStyle().Padding(2).Render(faint.Render(r.Empty))
	}

	breakdown := make([]string, 0, len(r.Breakdown))
	for _, b := range r.Breakdown {
		filled := b.Percent * barWidth / 100
		bar := colored(b.Category.Color).Render(strings.Repeat("█", filled)) +
			faint.Render(strings.Repeat("░", barWidth-filled))

		breakdown = append(breakdown, fmt.Sprintf("%s %-10s %s %3d%%  %s",
			b.Category.Icon, b.Category.Label, bar, b.Percent, b.Amount))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		heading.Render("Spending by category"),
		card.Render(strings.Join(breakdown, "\n")),
		"",
		heading.Render("Last 6 months"),
		card.Render(trendChart(r.Trend)),
	)
}

// trendChart draws one income and one expense bar per month, scaled to the
// largest value in the series.
func trendChart(t render.Trend) string {
	peak := 0.0
	for i := range t.Labels {
		peak = math.Max(peak, math.Max(t.Income[i], t.Expense[i]))
	}

	scale := func(v float64) int {
		if peak == 0 {
			return 0
		}

		return int(math.Round(v / peak * trendWidth))
	}

	lines := make([]string, 0, 2*len(t.Labels))
	for i, label := range t.Labels {
		lines = append(lines,
			fmt.Sprintf("%-4s %s %.2f", label, incomeFg.Render(strings.Repeat("▇", scale(t.Income[i]))), t.Income[i]),
			fmt.Sprintf("%-4s %s %.2f", "", expenseFg.Render(strings.Repeat("▇", scale(t.Expense[i]))), t.Expense[i]),
		)
	}

	return strings.Join(lines, "\n")
}
