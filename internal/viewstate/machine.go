package viewstate

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pennywise/internal/month"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

// Store is the part of the transaction service the machine mutates.
//
//go:generate mockgen -source=machine.go -destination=store_mock.go -package=viewstate
type Store interface {
	Append(ctx context.Context, tx transaction.Transaction) error
	RemoveByID(ctx context.Context, id string) error
}

type Option func(*Machine)

// WithClock replaces time.Now, used for the initial month and draft date.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithIDs replaces the id generator used when saving.
func WithIDs(next func() string) Option {
	return func(m *Machine) { m.newID = next }
}

// Machine owns the State. All changes go through Dispatch.
type Machine struct {
	store Store
	now   func() time.Time
	newID func() string

	mu        sync.Mutex
	state     State
	listeners []func(State)
}

func New(store Store, opts ...Option) *Machine {
	m := &Machine{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(m)
	}

	today := m.now()
	m.state = State{
		View:  ViewHome,
		Month: month.Of(today),
		Draft: transaction.NewDraft(today.Format(time.DateOnly)),
	}

	return m
}

// State returns a snapshot.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Subscribe registers fn to run after every state change.
func (m *Machine) Subscribe(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)
}

// Dispatch applies a to the state. Validation errors from Save leave the
// state untouched and are returned as-is. A Delete is asked of its
// Confirmer before anything is locked; a refusal is a silent no-op.
func (m *Machine) Dispatch(ctx context.Context, a Action) error {
	if d, ok := a.(Delete); ok && (d.Confirm == nil || !d.Confirm.Confirm(DeletePrompt)) {
		slog.Debug("deletion not confirmed", "id", d.ID)
		return nil
	}

	m.mu.Lock()

	next, changed, err := m.reduce(ctx, m.state, a)
	if err != nil || !changed {
		m.mu.Unlock()
		return err
	}

	m.state = next
	listeners := slices.Clone(m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}

	return nil
}

func (m *Machine) reduce(ctx context.Context, s State, a Action) (State, bool, error) {
	switch a := a.(type) {
	case Navigate:
		s.View = a.View
	case ChangeMonth:
		s.Month = s.Month.Shift(a.Delta)
	case SetMonth:
		s.Month = a.Month
	case SetFormType:
		s.Draft.Type = a.Type
		s.Draft.Category = ""
	case SelectCategory:
		s.Draft.Category = a.ID
	case SetAmount:
		s.Draft.Amount = a.Text
	case SetDescription:
		s.Draft.Description = a.Text
	case SetDate:
		s.Draft.Date = a.Date
	case Save:
		valid, err := s.Draft.Validate()
		if err != nil {
			return s, false, err
		}

		tx := valid.Transaction(m.newID())
		if err := m.store.Append(ctx, tx); err != nil {
			return s, false, fmt.Errorf("saving transaction: %w", err)
		}

		s.Draft = transaction.NewDraft(m.now().Format(time.DateOnly))
		s.View = ViewHome
	case Delete:
		if err := m.store.RemoveByID(ctx, a.ID); err != nil {
			return s, false, fmt.Errorf("deleting transaction: %w", err)
		}
	default:
		return s, false, fmt.Errorf("unknown action %T", a)
	}

	return s, true, nil
}

func (m *Machine) NavigateTo(ctx context.Context, v View) error {
	return m.Dispatch(ctx, Navigate{View: v})
}

func (m *Machine) ChangeMonth(ctx context.Context, delta int) error {
	return m.Dispatch(ctx, ChangeMonth{Delta: delta})
}

func (m *Machine) SetFormType(ctx context.Context, t transaction.Type) error {
	return m.Dispatch(ctx, SetFormType{Type: t})
}

func (m *Machine) SelectCategory(ctx context.Context, id string) error {
	return m.Dispatch(ctx, SelectCategory{ID: id})
}

func (m *Machine) SaveTransaction(ctx context.Context) error {
	return m.Dispatch(ctx, Save{})
}

func (m *Machine) DeleteTransaction(ctx context.Context, id string, c Confirmer) error {
	return m.Dispatch(ctx, Delete{ID: id, Confirm: c})
}
