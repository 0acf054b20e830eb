package view

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dbTimeout = 5 * time.Second

var (
	faint     = lipgloss.NewStyle().Faint(true)
	heading   = lipgloss.NewStyle().Bold(true)
	incomeFg  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	expenseFg = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	selected  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	card      = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

func amountStyle(income bool) lipgloss.Style {
	if income {
		return incomeFg
	}

	return expenseFg
}

func colored(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
