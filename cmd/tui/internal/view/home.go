package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pennywise/internal/render"
)

type HomeModel struct {
	CommonModel
	within progress.Model
	over   progress.Model
}

func NewHomeModel() HomeModel {
	return HomeModel{
		within: progress.New(progress.WithSolidFill("#4ade80"), progress.WithoutPercentage(), progress.WithWidth(40)),
		over:   progress.New(progress.WithSolidFill("#f87171"), progress.WithoutPercentage(), progress.WithWidth(40)),
	}
}

func (m HomeModel) Render(h *render.Home) string {
	if h == nil {
		return ""
	}

	balance := incomeFg
	if h.BalanceNegative {
		balance = expenseFg
	}

	summary := []string{
		faint.Render("Balance"),
		balance.Bold(true).Render(h.Balance),
		"",
		fmt.Sprintf("%s %s   %s %s", faint.Render("Income"), incomeFg.Render(h.Income),
			faint.Render("Expenses"), expenseFg.Render(h.Expense)),
	}

	if h.Progress.Visible {
		bar := m.within
		if h.Progress.Over {
			bar = m.over
		}

		summary = append(summary, "", fmt.Sprintf("%s %d%% of income spent",
			bar.ViewAs(float64(h.Progress.Percent)/100), h.Progress.Percent))
	}

	recent := faint.Render(h.Empty)
	if h.Empty == "" {
		lines := make([]string, 0, len(h.Recent))
		for _, r := range h.Recent {
			lines = append(lines, rowLine(r))
		}

		recent = strings.Join(lines, "\n")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		card.Render(strings.Join(summary, "\n")),
		"",
		heading.Render("Recent"),
		recent,
	)
}

func rowLine(r render.Row) string {
	return fmt.Sprintf("%s %-24s %s %s",
		colored(r.Color).Render(r.Icon),
		r.Title,
		faint.Render(fmt.Sprintf("%-13s", r.Date)),
		amountStyle(r.Income).Render(r.Amount),
	)
}
