package transaction

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Draft is a transaction under construction. Any field may be empty or
// invalid until Validate is called.
type Draft struct {
	Type        Type   `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// NewDraft returns the default form: an expense dated today.
func NewDraft(today string) Draft {
	return Draft{Type: TypeExpense, Date: today}
}

// Valid is a draft that passed validation. It can only be obtained from
// Draft.Validate.
type Valid struct {
	typ         Type
	amount      decimal.Decimal
	category    string
	description string
	date        string
}

// Validate checks amount, category and date in that order.
func (d Draft) Validate() (Valid, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(d.Amount))
	if err != nil || !amount.IsPositive() {
		return Valid{}, ErrInvalidAmount
	}

	if d.Category == "" {
		return Valid{}, ErrMissingCategory
	}

	if strings.TrimSpace(d.Date) == "" {
		return Valid{}, ErrMissingDate
	}

	typ := d.Type
	if !typ.Valid() {
		typ = TypeExpense
	}

	return Valid{
		typ:         typ,
		amount:      amount,
		category:    d.Category,
		description: strings.TrimSpace(d.Description),
		date:        strings.TrimSpace(d.Date),
	}, nil
}

func (v Valid) Transaction(id string) Transaction {
	return Transaction{
		ID:          id,
		Type:        v.typ,
		Amount:      v.amount,
		Category:    v.category,
		Description: v.description,
		Date:        v.date,
	}
}
