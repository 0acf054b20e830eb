package transaction

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one recorded income or expense. Amount is always positive;
// the sign is implied by Type. Date is kept as YYYY-MM-DD text.
type Transaction struct {
	ID          string
	Type        Type
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        string
}

// Validate checks the fields every stored transaction relies on.
func (t Transaction) Validate() error {
	switch {
	case t.ID == "":
		return ErrMissingID
	case !t.Type.Valid():
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	case !t.Amount.IsPositive():
		return fmt.Errorf("%w: %s", ErrInvalidAmount, t.Amount)
	}

	return nil
}

// Signed returns the amount negated for expenses.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}

	return t.Amount
}

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrMissingID          = errors.New("missing id")
	ErrInvalidType        = errors.New("invalid type")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrMissingCategory    = errors.New("missing category")
	ErrMissingDate        = errors.New("missing date")
	ErrPersistenceCorrupt = errors.New("persisted transactions are corrupt")
	ErrSlotEmpty          = errors.New("slot is empty")
)
