package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pennywise/internal/render"
	"github.com/MrJamesThe3rd/pennywise/internal/viewstate"
)

type txState int

const (
	txStateList txState = iota
	txStateConfirm
)

// txItem wraps a rendered row to implement list.Item.
type txItem struct {
	row   render.Row
	group string
}

func (i txItem) Title() string {
	return fmt.Sprintf("%s  %-24s %s",
		colored(i.row.Color).Render(i.row.Icon), i.row.Title, amountStyle(i.row.Income).Render(i.row.Amount))
}

func (i txItem) Description() string {
	return i.group
}

func (i txItem) FilterValue() string {
	return i.row.Title
}

type TransactionsModel struct {
	CommonModel
	machine *viewstate.Machine

	state   txState
	list    list.Model
	form    *huh.Form
	confirm *bool
	target  txItem
	empty   string
	status  string
}

func NewTransactionsModel(machine *viewstate.Machine) TransactionsModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Transactions"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return TransactionsModel{
		machine: machine,
		list:    l,
	}
}

// SetData replaces the listed rows, keeping date groups in order.
func (m *TransactionsModel) SetData(t *render.TransactionsList) {
	if t == nil {
		return
	}

	m.empty = t.Empty

	items := make([]list.Item, 0)
	for _, g := range t.Groups {
		for _, r := range g.Rows {
			items = append(items, txItem{row: r, group: g.Label})
		}
	}

	m.list.SetItems(items)
}

func (m *TransactionsModel) SetSize(width, height int) {
	m.Width, m.Height = width, height
	m.list.SetSize(width-4, height-8)
}

// Busy reports whether the view is consuming keys itself.
func (m TransactionsModel) Busy() bool {
	return m.state == txStateConfirm || m.list.FilterState() == list.Filtering
}

func (m TransactionsModel) Update(msg tea.Msg) (TransactionsModel, tea.Cmd) {
	if msg, ok := msg.(deletedMsg); ok {
		m.status = ""
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		}

		return m, nil
	}

	switch m.state {
	case txStateList:
		return m.updateList(msg)
	case txStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m TransactionsModel) updateList(msg tea.Msg) (TransactionsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if keyMsg.String() == "d" {
			return m.startConfirm()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m TransactionsModel) startConfirm() (TransactionsModel, tea.Cmd) {
	item, ok := m.list.SelectedItem().(txItem)
	if !ok {
		return m, nil
	}

	m.target = item
	m.confirm = new(bool)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(viewstate.DeletePrompt).
				Description(fmt.Sprintf("%s %s on %s", item.row.Title, item.row.Amount, item.row.Date)).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirm),
		),
	).WithWidth(50).WithShowHelp(false)
	m.state = txStateConfirm

	return m, m.form.Init()
}

func (m TransactionsModel) updateConfirm(msg tea.Msg) (TransactionsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = txStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = txStateList
		m.form = nil

		return m, m.deleteCmd(m.target.row.ID, viewstate.Answer(*m.confirm))
	case huh.StateAborted:
		m.state = txStateList
		m.form = nil

		return m, nil
	}

	return m, cmd
}

func (m TransactionsModel) View() string {
	if m.state == txStateConfirm && m.form != nil {
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	}

	if m.empty != "" {
		return lipgloss.NewStyle().Padding(2).Render(faint.Render(m.empty))
	}

	statusLine := ""
	if m.status != "" {
		statusLine = faint.Render(m.status) + "\n"
	}

	return statusLine + m.list.View() + "\n" + faint.Render("d: delete | /: filter")
}

// Messages

type deletedMsg struct {
	err error
}

func (m TransactionsModel) deleteCmd(id string, answer viewstate.Confirmer) tea.Cmd {
	machine := m.machine

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deletedMsg{err: machine.DeleteTransaction(ctx, id, answer)}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = selected.Render("> ") + title
	} else {
		title = "  " + title
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "      %s\n", faint.Render(i.Description()))
}
