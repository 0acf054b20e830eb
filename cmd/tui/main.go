package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pennywise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/pennywise/internal/config"
	"github.com/MrJamesThe3rd/pennywise/internal/render"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
	txStore "github.com/MrJamesThe3rd/pennywise/internal/transaction/store"
	"github.com/MrJamesThe3rd/pennywise/internal/viewstate"
)

type model struct {
	txService *transaction.Service
	machine   *viewstate.Machine

	keys   view.KeyMap
	help   help.Model
	screen render.Screen

	homeView         view.HomeModel
	addView          view.AddModel
	transactionsView view.TransactionsModel
	reportsView      view.ReportsModel
}

func newModel(txSvc *transaction.Service) model {
	machine := viewstate.New(txSvc)

	m := model{
		txService:        txSvc,
		machine:          machine,
		keys:             view.DefaultKeyMap(),
		help:             help.New(),
		homeView:         view.NewHomeModel(),
		addView:          view.NewAddModel(machine),
		transactionsView: view.NewTransactionsModel(machine),
		reportsView:      view.NewReportsModel(),
	}
	m.refresh()

	return m
}

// refresh rebuilds the view model from the current state and transactions.
func (m *model) refresh() {
	m.screen = render.Build(m.machine.State(), m.txService.All(), time.Now())
	m.transactionsView.SetData(m.screen.Transactions)
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	current := m.machine.State().View

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.transactionsView.SetSize(msg.Width, msg.Height)

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		if current != viewstate.ViewAdd && !m.transactionsView.Busy() {
			if handled, next, cmd := m.globalKey(msg); handled {
				next.refresh()
				return next, cmd
			}
		}

	case view.BackMsg:
		_ = m.machine.NavigateTo(context.Background(), viewstate.ViewHome)
		m.refresh()

		return m, nil
	}

	switch current {
	case viewstate.ViewAdd:
		m.addView, cmd = m.addView.Update(msg)
	case viewstate.ViewTransactions:
		m.transactionsView, cmd = m.transactionsView.Update(msg)
	}

	m.refresh()

	return m, cmd
}

func (m model) globalKey(msg tea.KeyMsg) (bool, model, tea.Cmd) {
	ctx := context.Background()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m, tea.Quit
	case key.Matches(msg, m.keys.Home):
		_ = m.machine.NavigateTo(ctx, viewstate.ViewHome)
	case key.Matches(msg, m.keys.Add):
		_ = m.machine.NavigateTo(ctx, viewstate.ViewAdd)
		m.addView = m.addView.Reset()

		return true, m, m.addView.Init()
	case key.Matches(msg, m.keys.Transactions):
		_ = m.machine.NavigateTo(ctx, viewstate.ViewTransactions)
	case key.Matches(msg, m.keys.Reports):
		_ = m.machine.NavigateTo(ctx, viewstate.ViewReports)
	case key.Matches(msg, m.keys.PrevMonth):
		_ = m.machine.ChangeMonth(ctx, -1)
	case key.Matches(msg, m.keys.NextMonth):
		_ = m.machine.ChangeMonth(ctx, 1)
	default:
		return false, m, nil
	}

	return true, m, nil
}

func (m model) View() string {
	title := lipgloss.NewStyle().Bold(true).Render("Pennywise") + "  " +
		lipgloss.NewStyle().Faint(true).Render("‹ "+m.screen.MonthLabel+" ›")

	var body string

	switch m.machine.State().View {
	case viewstate.ViewHome:
		body = m.homeView.Render(m.screen.Home)
	case viewstate.ViewAdd:
		body = m.addView.View(m.screen.Add)
	case viewstate.ViewTransactions:
		body = m.transactionsView.View()
	case viewstate.ViewReports:
		body = m.reportsView.Render(m.screen.Reports)
	}

	footer := ""
	if m.machine.State().View != viewstate.ViewAdd {
		footer = m.help.View(m.keys)
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer),
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.Logger())

	slot, closeSlot, err := txStore.Open(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err, "backend", cfg.Storage.Backend)
		os.Exit(1)
	}
	defer closeSlot()

	txSvc := transaction.NewService(slot)
	txSvc.Load(context.Background())

	p := tea.NewProgram(newModel(txSvc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
