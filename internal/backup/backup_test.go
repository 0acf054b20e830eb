package backup_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pennywise/internal/backup"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction/store"
)

func fixture() []transaction.Transaction {
	return []transaction.Transaction{
		{ID: "a", Type: transaction.TypeIncome, Amount: decimal.RequireFromString("3000"), Category: "salary", Date: "2024-03-01"},
		{ID: "b", Type: transaction.TypeExpense, Amount: decimal.RequireFromString("12.5"), Category: "food", Description: "Café, lunch", Date: "2024-03-02"},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	for _, f := range []backup.Format{backup.FormatJSON, backup.FormatCSV} {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, backup.Write(&buf, fixture(), f))

			got, err := backup.Read(&buf)
			require.NoError(t, err)
			require.Len(t, got, 2)

			for i, want := range fixture() {
				assert.Equal(t, want.ID, got[i].ID)
				assert.Equal(t, want.Type, got[i].Type)
				assert.True(t, want.Amount.Equal(got[i].Amount))
				assert.Equal(t, want.Category, got[i].Category)
				assert.Equal(t, want.Description, got[i].Description)
				assert.Equal(t, want.Date, got[i].Date)
			}
		})
	}
}

func TestWrite_CSVSignsExpenses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, backup.Write(&buf, fixture(), backup.FormatCSV))

	assert.Equal(t,
		"id,date,type,category,description,amount\n"+
			"a,2024-03-01,income,salary,,3000\n"+
			"b,2024-03-02,expense,food,\"Café, lunch\",-12.5\n",
		buf.String())
}

func TestRead_Encodings(t *testing.T) {
	type testCase struct {
		name  string
		input []byte
	}

	plain := "id,date,category,description,amount\nx,2024-03-02,food,Café,-4\n"

	tests := []testCase{
		{name: "UTF8", input: []byte(plain)},
		{name: "UTF8BOM", input: append([]byte{0xEF, 0xBB, 0xBF}, plain...)},
		{
			name:  "Windows1252",
			input: []byte("id,date,category,description,amount\nx,2024-03-02,food,Caf\xe9,-4\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := backup.Read(bytes.NewReader(tt.input))
			require.NoError(t, err)
			require.Len(t, got, 1)

			assert.Equal(t, "Café", got[0].Description)
			assert.Equal(t, transaction.TypeExpense, got[0].Type, "type inferred from sign")
			assert.Equal(t, "4", got[0].Amount.String())
		})
	}
}

func TestRead_Invalid(t *testing.T) {
	type testCase struct {
		name  string
		input string
	}

	tests := []testCase{
		{name: "BrokenJSON", input: `[{"id":`},
		{name: "ZeroAmount", input: `[{"id":"a","type":"expense","amount":0,"category":"food","date":"2024-03-01"}]`},
		{name: "BadType", input: `[{"id":"a","type":"transfer","amount":1,"category":"food","date":"2024-03-01"}]`},
		{name: "MissingID", input: `[{"type":"expense","amount":1,"category":"food","date":"2024-03-01"}]`},
		{name: "CSVMissingColumn", input: "id,date,amount\na,2024-03-01,4\n"},
		{name: "CSVBadAmount", input: "id,date,category,amount\na,2024-03-01,food,lots\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := backup.Read(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, backup.ErrInvalidBackup)
		})
	}
}

func TestService_Restore(t *testing.T) {
	ctx := context.Background()
	txs := transaction.NewService(store.NewMemory())
	require.NoError(t, txs.Append(ctx, fixture()[0]))

	svc := backup.NewService(txs)

	var buf bytes.Buffer
	require.NoError(t, backup.Write(&buf, fixture(), backup.FormatJSON))

	result, err := svc.Restore(ctx, &buf)
	require.NoError(t, err)

	assert.Len(t, result.Imported, 1)
	assert.Len(t, result.Skipped, 1)
	assert.Len(t, txs.All(), 2)

	var out bytes.Buffer
	require.NoError(t, svc.Export(&out, backup.FormatJSON))
	assert.Contains(t, out.String(), `"id":"b"`)
}

func TestParseFormat(t *testing.T) {
	f, err := backup.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, backup.FormatJSON, f)

	f, err = backup.ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", f.ContentType())

	_, err = backup.ParseFormat("xml")
	assert.Error(t, err)
}
