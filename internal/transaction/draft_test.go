package transaction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

func TestDraft_Validate(t *testing.T) {
	valid := transaction.Draft{
		Type:     transaction.TypeExpense,
		Amount:   "42.50",
		Category: "food",
		Date:     "2024-03-01",
	}

	type testCase struct {
		name    string
		mutate  func(d *transaction.Draft)
		wantErr error
	}

	tests := []testCase{
		{name: "Valid", mutate: func(*transaction.Draft) {}},
		{name: "EmptyAmount", mutate: func(d *transaction.Draft) { d.Amount = "" }, wantErr: transaction.ErrInvalidAmount},
		{name: "ZeroAmount", mutate: func(d *transaction.Draft) { d.Amount = "0" }, wantErr: transaction.ErrInvalidAmount},
		{name: "NegativeAmount", mutate: func(d *transaction.Draft) { d.Amount = "-3" }, wantErr: transaction.ErrInvalidAmount},
		{name: "NonNumericAmount", mutate: func(d *transaction.Draft) { d.Amount = "abc" }, wantErr: transaction.ErrInvalidAmount},
		{name: "MissingCategory", mutate: func(d *transaction.Draft) { d.Category = "" }, wantErr: transaction.ErrMissingCategory},
		{name: "MissingDate", mutate: func(d *transaction.Draft) { d.Date = "" }, wantErr: transaction.ErrMissingDate},
		{
			name: "AmountCheckedFirst",
			mutate: func(d *transaction.Draft) {
				d.Amount = "0"
				d.Category = ""
				d.Date = ""
			},
			wantErr: transaction.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)

			_, err := d.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValid_Transaction(t *testing.T) {
	d := transaction.Draft{
		Type:        transaction.TypeIncome,
		Amount:      " 1200 ",
		Category:    "salary",
		Description: "  March pay  ",
		Date:        "2024-03-01",
	}

	v, err := d.Validate()
	require.NoError(t, err)

	tx := v.Transaction("id-1")
	assert.Equal(t, "id-1", tx.ID)
	assert.Equal(t, transaction.TypeIncome, tx.Type)
	assert.Equal(t, "1200", tx.Amount.String())
	assert.Equal(t, "salary", tx.Category)
	assert.Equal(t, "March pay", tx.Description)
	assert.Equal(t, "2024-03-01", tx.Date)
	assert.Equal(t, "1200", tx.Signed().String())
}

func TestNewDraft(t *testing.T) {
	d := transaction.NewDraft("2024-03-09")

	assert.Equal(t, transaction.Draft{Type: transaction.TypeExpense, Date: "2024-03-09"}, d)
}
