package viewstate

import (
	"github.com/MrJamesThe3rd/pennywise/internal/month"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

// Action is a user intent handled by Machine.Dispatch.
type Action interface {
	action()
}

type (
	Navigate       struct{ View View }
	ChangeMonth    struct{ Delta int }
	SetMonth       struct{ Month month.Key }
	SetFormType    struct{ Type transaction.Type }
	SelectCategory struct{ ID string }
	SetAmount      struct{ Text string }
	SetDescription struct{ Text string }
	SetDate        struct{ Date string }
	Save           struct{}
	Delete         struct {
		ID      string
		Confirm Confirmer
	}
)

func (Navigate) action()       {}
func (ChangeMonth) action()    {}
func (SetMonth) action()       {}
func (SetFormType) action()    {}
func (SelectCategory) action() {}
func (SetAmount) action()      {}
func (SetDescription) action() {}
func (SetDate) action()        {}
func (Save) action()           {}
func (Delete) action()         {}

const DeletePrompt = "Delete this transaction?"

// Confirmer answers a yes/no question before a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Answer is a Confirmer that always returns the same answer, for callers
// that already asked.
type Answer bool

func (a Answer) Confirm(string) bool {
	return bool(a)
}
