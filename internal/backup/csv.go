package backup

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

var header = []string{"id", "date", "type", "category", "description", "amount"}

// writeCSV writes one row per transaction. Amounts are signed so the column
// sums to the balance in a spreadsheet.
func writeCSV(w io.Writer, txs []transaction.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, tx := range txs {
		row := []string{tx.ID, tx.Date, string(tx.Type), tx.Category, tx.Description, tx.Signed().String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// readCSV accepts columns in any order as long as the header names them.
// A missing type column is inferred from the amount's sign.
func readCSV(r io.Reader) ([]transaction.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %w", ErrInvalidBackup, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	cols := make(map[string]int)
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, name := range []string{"id", "date", "category", "amount"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidBackup, name)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}

		return strings.TrimSpace(row[i])
	}

	txs := make([]transaction.Transaction, 0, len(rows)-1)

	for i, row := range rows[1:] {
		amount, err := decimal.NewFromString(cell(row, "amount"))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: amount: %w", ErrInvalidBackup, i+2, err)
		}

		typ := transaction.Type(cell(row, "type"))
		if typ == "" {
			typ = transaction.TypeIncome
			if amount.IsNegative() {
				typ = transaction.TypeExpense
			}
		}

		txs = append(txs, transaction.Transaction{
			ID:          cell(row, "id"),
			Type:        typ,
			Amount:      amount.Abs(),
			Category:    cell(row, "category"),
			Description: cell(row, "description"),
			Date:        cell(row, "date"),
		})
	}

	return txs, nil
}
