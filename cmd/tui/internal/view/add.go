package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/pennywise/internal/category"
	"github.com/MrJamesThe3rd/pennywise/internal/render"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
	"github.com/MrJamesThe3rd/pennywise/internal/viewstate"
)

const noticeTTL = 3 * time.Second

type addField int

const (
	fieldAmount addField = iota
	fieldCategory
	fieldDescription
	fieldDate
	fieldCount
)

type AddModel struct {
	CommonModel
	machine *viewstate.Machine

	keys   addKeyMap
	help   help.Model
	focus  addField
	cursor int

	amount      textinput.Model
	description textinput.Model
	date        textinput.Model

	notice   string
	noticeID int
}

func NewAddModel(machine *viewstate.Machine) AddModel {
	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.Prompt = "Amount      "

	description := textinput.New()
	description.Placeholder = "What was it for?"
	description.Prompt = "Description "

	date := textinput.New()
	date.Placeholder = time.DateOnly
	date.Prompt = "Date        "
	date.CharLimit = len(time.DateOnly)

	m := AddModel{
		machine:     machine,
		keys:        defaultAddKeyMap(),
		help:        help.New(),
		amount:      amount,
		description: description,
		date:        date,
	}

	return m.Reset()
}

// Reset loads the machine's draft into the inputs, focuses the amount and
// drops any pending notice.
func (m AddModel) Reset() AddModel {
	d := m.machine.State().Draft

	m.amount.SetValue(d.Amount)
	m.description.SetValue(d.Description)
	m.date.SetValue(d.Date)
	m.cursor = 0
	m.focus = fieldAmount
	m.notice = ""
	m.noticeID++

	return m.applyFocus()
}

func (m AddModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m AddModel) Update(msg tea.Msg) (AddModel, tea.Cmd) {
	switch msg := msg.(type) {
	case addSavedMsg:
		if msg.err != nil {
			return m.flash(noticeFor(msg.err))
		}

		return m.Reset(), nil

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, Back
		case key.Matches(msg, m.keys.Save):
			return m, m.saveCmd()
		case key.Matches(msg, m.keys.ToggleType):
			return m.toggleType()
		case key.Matches(msg, m.keys.Next):
			step := addField(1)
			if msg.String() == "shift+tab" {
				step = fieldCount - 1
			}

			m.focus = (m.focus + step) % fieldCount

			return m.applyFocus(), nil
		}

		if m.focus == fieldCategory {
			return m.updateCategory(msg)
		}
	}

	return m.updateInput(msg)
}

func (m AddModel) updateCategory(msg tea.KeyMsg) (AddModel, tea.Cmd) {
	cats := category.ForType(m.machine.State().Draft.Type)

	switch msg.String() {
	case "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right":
		if m.cursor < len(cats)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(cats) {
			_ = m.machine.SelectCategory(context.Background(), cats[m.cursor].ID)
		}
	}

	return m, nil
}

func (m AddModel) updateInput(msg tea.Msg) (AddModel, tea.Cmd) {
	var (
		cmd    tea.Cmd
		ctx    = context.Background()
		action viewstate.Action
	)

	switch m.focus {
	case fieldAmount:
		m.amount, cmd = m.amount.Update(msg)
		action = viewstate.SetAmount{Text: m.amount.Value()}
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
		action = viewstate.SetDescription{Text: m.description.Value()}
	case fieldDate:
		m.date, cmd = m.date.Update(msg)
		action = viewstate.SetDate{Date: m.date.Value()}
	default:
		return m, nil
	}

	_ = m.machine.Dispatch(ctx, action)

	return m, cmd
}

func (m AddModel) toggleType() (AddModel, tea.Cmd) {
	next := transaction.TypeIncome
	if m.machine.State().Draft.Type == transaction.TypeIncome {
		next = transaction.TypeExpense
	}

	_ = m.machine.SetFormType(context.Background(), next)
	m.cursor = 0

	return m, nil
}

func (m AddModel) applyFocus() AddModel {
	inputs := map[addField]*textinput.Model{
		fieldAmount:      &m.amount,
		fieldDescription: &m.description,
		fieldDate:        &m.date,
	}

	for f, in := range inputs {
		if f == m.focus {
			in.Focus()
			continue
		}

		in.Blur()
	}

	return m
}

func (m AddModel) flash(notice string) (AddModel, tea.Cmd) {
	m.noticeID++
	m.notice = notice
	id := m.noticeID

	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg{id: id}
	})
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, transaction.ErrInvalidAmount):
		return "Enter an amount greater than zero"
	case errors.Is(err, transaction.ErrMissingCategory):
		return "Pick a category"
	case errors.Is(err, transaction.ErrMissingDate):
		return "Enter a date"
	}

	return fmt.Sprintf("Error saving: %v", err)
}

func (m AddModel) View(a *render.Add) string {
	if a == nil {
		return ""
	}

	expense, income := "Expense", "Income"
	if a.Type == transaction.TypeIncome {
		income = selected.Render("[" + income + "]")
		expense = faint.Render(" " + expense + " ")
	} else {
		expense = selected.Render("[" + expense + "]")
		income = faint.Render(" " + income + " ")
	}

	chips := make([]string, 0, len(a.Categories))
	for i, c := range a.Categories {
		label := c.Icon + " " + c.Label

		style := colored(c.Color)
		if c.Selected {
			style = style.Bold(true).Underline(true)
		}

		if m.focus == fieldCategory && i == m.cursor {
			label = "›" + label
		} else {
			label = " " + label
		}

		chips = append(chips, style.Render(label))
	}

	categoryPrompt := "Category    "
	if m.focus == fieldCategory {
		categoryPrompt = selected.Render(categoryPrompt)
	}

	form := []string{
		expense + "  " + income,
		"",
		m.amount.View(),
		categoryPrompt + strings.Join(chips, " "),
		m.description.View(),
		m.date.View(),
		"",
		heading.Render("ctrl+s: " + a.SaveLabel),
	}

	if m.notice != "" {
		form = append(form, "", expenseFg.Render(m.notice))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		card.Render(strings.Join(form, "\n")),
		m.help.View(m.keys),
	)
}

// Messages

type addSavedMsg struct {
	err error
}

type clearNoticeMsg struct {
	id int
}

func (m AddModel) saveCmd() tea.Cmd {
	machine := m.machine

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return addSavedMsg{err: machine.SaveTransaction(ctx)}
	}
}
