package transaction

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// record is the persisted shape. Amount is written as a bare JSON number.
type record struct {
	ID          string      `json:"id"`
	Type        Type        `json:"type"`
	Amount      json.Number `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

// Encode serialises a collection as a JSON array.
func Encode(txs []Transaction) ([]byte, error) {
	records := make([]record, 0, len(txs))
	for _, tx := range txs {
		records = append(records, record{
			ID:          tx.ID,
			Type:        tx.Type,
			Amount:      json.Number(tx.Amount.String()),
			Category:    tx.Category,
			Description: tx.Description,
			Date:        tx.Date,
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding transactions: %w", err)
	}

	return data, nil
}

// Decode parses a JSON array produced by Encode. Amounts may be numbers or
// numeric strings. A record that fails Validate corrupts the whole array.
func Decode(data []byte) ([]Transaction, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceCorrupt, err)
	}

	txs := make([]Transaction, 0, len(records))
	for i, r := range records {
		amount, err := decimal.NewFromString(string(r.Amount))
		if err != nil {
			return nil, fmt.Errorf("%w: record %d amount: %w", ErrPersistenceCorrupt, i, err)
		}

		tx := Transaction{
			ID:          r.ID,
			Type:        r.Type,
			Amount:      amount,
			Category:    r.Category,
			Description: r.Description,
			Date:        r.Date,
		}

		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrPersistenceCorrupt, i, err)
		}

		txs = append(txs, tx)
	}

	return txs, nil
}
