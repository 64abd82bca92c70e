/*
store.go - Persistence interface for the expense and settlement logs

PURPOSE:
  Defines the interface between the engine and storage. The logs are
  APPEND-ONLY: expenses and settlements are written once and never
  updated or deleted. Balances are derived incrementally by the engine,
  never replayed from these logs.

IMPLEMENTATIONS:
  - ledger/store/memory.go: In-memory (tests, default)
  - store/sqlite/sqlite.go: SQLite-backed

SEE ALSO:
  - engine.go: The only writer
*/
package ledger

import "context"

// =============================================================================
// STORE - Append-only expense and settlement logs
// =============================================================================

// Store persists expenses and settlements.
// IMPORTANT: Store is APPEND-ONLY. No Update, No Delete. Ever.
type Store interface {
	// AppendExpense persists an immutable expense record.
	AppendExpense(ctx context.Context, exp Expense) error

	// Expenses returns all recorded expenses, ordered by ID.
	Expenses(ctx context.Context) ([]Expense, error)

	// CountExpenses returns the number of recorded expenses.
	CountExpenses(ctx context.Context) (int, error)

	// AppendSettlement persists an immutable settlement record.
	AppendSettlement(ctx context.Context, st Settlement) error

	// Settlements returns all recorded settlements, ordered by creation.
	Settlements(ctx context.Context) ([]Settlement, error)
}
