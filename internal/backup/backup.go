// Package backup exports the transaction collection and restores it from a
// previous export.
package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrInvalidBackup = errors.New("invalid backup")

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, "":
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	}

	return "", fmt.Errorf("unknown backup format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}

	return "application/json"
}

// Write serialises txs in format f.
func Write(w io.Writer, txs []transaction.Transaction, f Format) error {
	if f == FormatCSV {
		return writeCSV(w, txs)
	}

	data, err := transaction.Encode(txs)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing backup: %w", err)
	}

	return nil
}

// Read parses a JSON or CSV backup in any supported text encoding. Every
// record is validated; one bad record rejects the whole backup.
func Read(r io.Reader) ([]transaction.Transaction, error) {
	decoded, err := utf8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}

	var txs []transaction.Transaction

	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		txs, err = transaction.Decode(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
		}
	} else {
		txs, err = readCSV(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
	}

	for i, tx := range txs {
		if err := check(tx); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrInvalidBackup, i+1, err)
		}
	}

	return txs, nil
}

func check(tx transaction.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	switch {
	case tx.Category == "":
		return transaction.ErrMissingCategory
	case tx.Date == "":
		return transaction.ErrMissingDate
	}

	return nil
}

// Service exports and restores the live collection.
type Service struct {
	txs *transaction.Service
}

func NewService(txs *transaction.Service) *Service {
	return &Service{txs: txs}
}

func (s *Service) Export(w io.Writer, f Format) error {
	return Write(w, s.txs.All(), f)
}

// Restore adds every backed-up transaction not already present.
func (s *Service) Restore(ctx context.Context, r io.Reader) (*transaction.ImportResult, error) {
	txs, err := Read(r)
	if err != nil {
		return nil, err
	}

	result, err := s.txs.Import(ctx, txs)
	if err != nil {
		return nil, fmt.Errorf("restoring backup: %w", err)
	}

	return result, nil
}
