/*
Package sqlite provides a SQLite-backed implementation of ledger.Store.

PURPOSE:
  Persists the append-only expense and settlement logs. The engine never
  requires persistence; this store is what a deployment plugs in when it
  wants the logs to survive restarts. The same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on expenses, expense_splits, or settlements
  - No DELETE statements on those tables

KEY TABLES:
  expenses:       Immutable expense records
  expense_splits: Ordered allocation lines per expense
  settlements:    Immutable settlement records

AMOUNTS:
  Monetary values are stored as decimal strings at currency precision,
  never as floats, and parsed back through the Money constructor.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened in WAL mode so
  readers don't block each other.

USAGE:
  store, err := sqlite.New("./data/split.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := ledger.NewExpenseEngine(dir, store, ledger.NewLedger())

SEE ALSO:
  - ledger/store.go: Interface definition
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/split-engine/ledger"
)

// Store implements ledger.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Compile-time check that Store implements ledger.Store
var _ ledger.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Expenses (append-only)
	CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY,
		group_id INTEGER,
		payer_id INTEGER NOT NULL,
		total TEXT NOT NULL,
		note TEXT,
		created_at TEXT NOT NULL
	);

	-- Allocation lines, ordered per expense
	CREATE TABLE IF NOT EXISTS expense_splits (
		expense_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		user_id INTEGER NOT NULL,
		amount TEXT NOT NULL,
		PRIMARY KEY (expense_id, position),
		FOREIGN KEY (expense_id) REFERENCES expenses(id)
	);

	CREATE INDEX IF NOT EXISTS idx_expenses_payer
		ON expenses(payer_id);
	CREATE INDEX IF NOT EXISTS idx_splits_user
		ON expense_splits(user_id);

	-- Settlements (append-only)
	CREATE TABLE IF NOT EXISTS settlements (
		id TEXT PRIMARY KEY,
		payer_id INTEGER NOT NULL,
		payee_id INTEGER NOT NULL,
		amount TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_settlements_payer
		ON settlements(payer_id);
	CREATE INDEX IF NOT EXISTS idx_settlements_payee
		ON settlements(payee_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EXPENSE LOG
// =============================================================================

// AppendExpense writes the expense row and its splits atomically.
func (s *Store) AppendExpense(ctx context.Context, exp ledger.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID any
	if exp.GroupID != nil {
		groupID = int64(*exp.GroupID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO expenses (id, group_id, payer_id, total, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		int64(exp.ID), groupID, int64(exp.PayerID), exp.Total.String(),
		exp.Note, exp.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, split := range exp.Splits {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO expense_splits (expense_id, position, user_id, amount)
			VALUES (?, ?, ?, ?)`,
			int64(exp.ID), i, int64(split.UserID), split.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}

	return tx.Commit()
}

// Expenses loads all expenses with their splits, ordered by ID.
func (s *Store) Expenses(ctx context.Context) ([]ledger.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, group_id, payer_id, total, note, created_at
		FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []ledger.Expense
	index := make(map[ledger.ExpenseID]int)
	for rows.Next() {
		var (
			id, payerID int64
			groupID     sql.NullInt64
			total, note string
			createdAt   string
		)
		if err := rows.Scan(&id, &groupID, &payerID, &total, &note, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		exp := ledger.Expense{
			ID:      ledger.ExpenseID(id),
			PayerID: ledger.UserID(payerID),
			Note:    note,
		}
		if groupID.Valid {
			g := ledger.GroupID(groupID.Int64)
			exp.GroupID = &g
		}
		if exp.Total, err = ledger.NewMoneyFromString(total); err != nil {
			return nil, fmt.Errorf("failed to parse expense total: %w", err)
		}
		if exp.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse expense timestamp: %w", err)
		}

		index[exp.ID] = len(expenses)
		expenses = append(expenses, exp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	splitRows, err := s.db.QueryContext(ctx, `
		SELECT expense_id, user_id, amount
		FROM expense_splits ORDER BY expense_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var (
			expenseID, userID int64
			amount            string
		)
		if err := splitRows.Scan(&expenseID, &userID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}

		i, ok := index[ledger.ExpenseID(expenseID)]
		if !ok {
			continue
		}
		m, err := ledger.NewMoneyFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse split amount: %w", err)
		}
		expenses[i].Splits = append(expenses[i].Splits, ledger.Split{
			UserID: ledger.UserID(userID),
			Amount: m,
		})
	}
	return expenses, splitRows.Err()
}

// CountExpenses returns the number of recorded expenses.
func (s *Store) CountExpenses(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&count)
	return count, err
}

// =============================================================================
// SETTLEMENT LOG
// =============================================================================

// AppendSettlement writes a settlement record.
func (s *Store) AppendSettlement(ctx context.Context, st ledger.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settlements (id, payer_id, payee_id, amount, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		st.ID.String(), int64(st.PayerID), int64(st.PayeeID),
		st.Amount.String(), st.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}
	return nil
}

// Settlements loads all settlements in insertion order.
func (s *Store) Settlements(ctx context.Context) ([]ledger.Settlement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payer_id, payee_id, amount, created_at
		FROM settlements ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settlements: %w", err)
	}
	defer rows.Close()

	var settlements []ledger.Settlement
	for rows.Next() {
		var (
			id, amount, createdAt string
			payerID, payeeID      int64
		)
		if err := rows.Scan(&id, &payerID, &payeeID, &amount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}

		st := ledger.Settlement{
			PayerID: ledger.UserID(payerID),
			PayeeID: ledger.UserID(payeeID),
		}
		if st.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("failed to parse settlement id: %w", err)
		}
		if st.Amount, err = ledger.NewMoneyFromString(amount); err != nil {
			return nil, fmt.Errorf("failed to parse settlement amount: %w", err)
		}
		if st.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse settlement timestamp: %w", err)
		}
		settlements = append(settlements, st)
	}
	return settlements, rows.Err()
}
