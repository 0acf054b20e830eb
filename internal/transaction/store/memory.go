package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/pennywise/internal/transaction"
)

type Memory struct {
	mu   sync.Mutex
	data []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, transaction.ErrSlotEmpty
	}

	return slices.Clone(m.data), nil
}

func (m *Memory) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = slices.Clone(data)

	return nil
}
