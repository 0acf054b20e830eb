package transaction

import (
	"github.com/MrJamesThe3rd/pennywise/internal/category"
	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

type transactionResponse struct {
	ID          string            `json:"id"`
	Type        transaction.Type  `json:"type"`
	Amount      string            `json:"amount"`
	Category    category.Category `json:"category"`
	Description string            `json:"description,omitempty"`
	Date        string            `json:"date"`
}

func toResponse(tx transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Type:        tx.Type,
		Amount:      tx.Amount.StringFixed(2),
		Category:    category.Lookup(tx.Category),
		Description: tx.Description,
		Date:        tx.Date,
	}
}

func toResponseList(txs []transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		resp = append(resp, toResponse(tx))
	}

	return resp
}
