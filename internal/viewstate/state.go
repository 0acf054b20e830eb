package viewstate

import (
	"github.com/MrJamesThe3rd/pennywise/internal/month"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

// View is the screen currently shown.
type View int

const (
	ViewHome View = iota
	ViewAdd
	ViewTransactions
	ViewReports
)

func (v View) String() string {
	switch v {
	case ViewHome:
		return "home"
	case ViewAdd:
		return "add"
	case ViewTransactions:
		return "transactions"
	case ViewReports:
		return "reports"
	}

	return "unknown"
}

// ParseView is the inverse of View.String.
func ParseView(s string) (View, bool) {
	for _, v := range []View{ViewHome, ViewAdd, ViewTransactions, ViewReports} {
		if v.String() == s {
			return v, true
		}
	}

	return ViewHome, false
}

// State is everything the UI needs besides the transactions themselves.
// It lives in memory only.
type State struct {
	View  View
	Month month.Key
	Draft transaction.Draft
}
