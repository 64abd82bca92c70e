// Package store provides ledger.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/split-engine/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu          sync.RWMutex
	expenses    []ledger.Expense
	settlements []ledger.Settlement
}

// Compile-time check that Memory implements ledger.Store
var _ ledger.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

// AppendExpense adds an expense record. Append-only.
func (m *Memory) AppendExpense(_ context.Context, exp ledger.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Defensive copy so later caller mutations cannot reach the log.
	exp.Splits = append([]ledger.Split(nil), exp.Splits...)
	m.expenses = append(m.expenses, exp)
	return nil
}

func (m *Memory) Expenses(_ context.Context) ([]ledger.Expense, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ledger.Expense, len(m.expenses))
	copy(result, m.expenses)
	return result, nil
}

func (m *Memory) CountExpenses(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.expenses), nil
}

// AppendSettlement adds a settlement record. Append-only.
func (m *Memory) AppendSettlement(_ context.Context, st ledger.Settlement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settlements = append(m.settlements, st)
	return nil
}

func (m *Memory) Settlements(_ context.Context) ([]ledger.Settlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]ledger.Settlement, len(m.settlements))
	copy(result, m.settlements)
	return result, nil
}
