package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Slot is a single persisted key-value entry holding the encoded collection.
//
//go:generate mockgen -source=service.go -destination=slot_mock.go -package=transaction
type Slot interface {
	// Read returns ErrSlotEmpty when nothing has been written yet.
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Service owns the ordered transaction collection. Every mutation rewrites
// the whole slot before returning.
type Service struct {
	slot Slot

	mu  sync.RWMutex
	txs []Transaction
}

func NewService(slot Slot) *Service {
	return &Service{slot: slot}
}

// Load replaces the in-memory collection with the persisted one. Missing or
// unreadable data leaves an empty collection.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = nil

	data, err := s.slot.Read(ctx)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			slog.Warn("failed to read transactions, starting empty", "error", fmt.Errorf("%w: %w", ErrPersistenceCorrupt, err))
		}

		return
	}

	txs, err := Decode(data)
	if err != nil {
		slog.Warn("discarding unreadable transactions", "error", err)
		return
	}

	s.txs = txs
}

func (s *Service) Append(ctx context.Context, tx Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clip(s.txs), tx)
	if err := s.persist(ctx, next); err != nil {
		return fmt.Errorf("appending transaction: %w", err)
	}

	s.txs = next

	return nil
}

// RemoveByID deletes the first record with the given id. Unknown ids are
// ignored.
func (s *Service) RemoveByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.txs, func(tx Transaction) bool { return tx.ID == id })
	if idx < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(s.txs), idx, idx+1)
	if err := s.persist(ctx, next); err != nil {
		return fmt.Errorf("removing transaction: %w", err)
	}

	s.txs = next

	return nil
}

// All returns a copy of the collection in insertion order.
func (s *Service) All() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.txs)
}

func (s *Service) Get(id string) (Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.txs {
		if tx.ID == id {
			return tx, nil
		}
	}

	return Transaction{}, ErrNotFound
}

type ImportResult struct {
	Imported []Transaction
	Skipped  []Transaction
}

// Import appends every record whose id is not already stored and persists
// once. Records with a known id are reported as skipped.
func (s *Service) Import(ctx context.Context, txs []Transaction) (*ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]struct{}, len(s.txs))
	for _, tx := range s.txs {
		known[tx.ID] = struct{}{}
	}

	result := &ImportResult{}
	next := slices.Clip(s.txs)

	for _, tx := range txs {
		if _, found := known[tx.ID]; found {
			result.Skipped = append(result.Skipped, tx)
			continue
		}

		known[tx.ID] = struct{}{}
		next = append(next, tx)
		result.Imported = append(result.Imported, tx)
	}

	if len(result.Imported) == 0 {
		return result, nil
	}

	if err := s.persist(ctx, next); err != nil {
		return nil, fmt.Errorf("importing transactions: %w", err)
	}

	s.txs = next

	return result, nil
}

func (s *Service) persist(ctx context.Context, txs []Transaction) error {
	data, err := Encode(txs)
	if err != nil {
		return err
	}

	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("writing slot: %w", err)
	}

	return nil
}
