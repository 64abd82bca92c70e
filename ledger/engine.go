/*
engine.go - Expense validation and recording pipeline

PURPOSE:
  The ExpenseEngine is the write path of the system. It validates incoming
  expenses and settlements, stores them in the append-only log, and derives
  the per-pair balance deltas applied to the Ledger.

VALIDATION BEFORE MUTATION:
  Every check happens before anything is written. A rejected expense leaves
  both the log and the ledger untouched (all-or-nothing). There is no
  partial application and no internal retry; failures are surfaced to the
  immediate caller.

BALANCE DERIVATION:
  For every split whose participant is not the payer, the payer is the
  creditor and the participant the debtor, by the share amount. The payer's
  own split contributes no adjustment (an allocation to oneself nets to
  nothing). A settlement is the inverse: a negative adjustment paying down
  what the payer owes the payee.

CONCURRENCY:
  A single engine mutex makes log-append plus ledger-adjust one critical
  section per expense or settlement, so the two stay consistent as a unit
  under concurrent callers.

SEE ALSO:
  - split.go: Equal and percentage split calculators
  - ledger.go: The balance store this engine mutates
  - store.go: The append-only log interface
*/
package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY - External identity collaborator
// =============================================================================

// Directory answers referential-integrity lookups. Identity management
// (creation, naming) lives outside this package; the engine only asks
// whether identifiers are known.
type Directory interface {
	UserExists(id UserID) bool
	GroupExists(id GroupID) bool
}

// =============================================================================
// EXPENSE ENGINE
// =============================================================================

// ExpenseEngine validates and records expenses and settlements against a
// Ledger. Safe for concurrent use.
type ExpenseEngine struct {
	mu        sync.Mutex
	directory Directory
	store     Store
	ledger    *Ledger
	nextID    ExpenseID
}

func NewExpenseEngine(directory Directory, store Store, ledger *Ledger) *ExpenseEngine {
	return &ExpenseEngine{
		directory: directory,
		store:     store,
		ledger:    ledger,
		nextID:    1,
	}
}

// CreateExpense validates the splits against the stated total, stores the
// immutable Expense, and applies one ledger adjustment per non-payer split.
// groupID may be nil for expenses outside any group.
//
// Failure modes: ErrInvalidAmount (total not positive, split negative),
// ErrUnknownParticipant / ErrUnknownGroup (directory lookups),
// ErrSplitMismatch (rounded split sum != rounded total, both reported).
func (e *ExpenseEngine) CreateExpense(ctx context.Context, groupID *GroupID, payerID UserID, total Money, note string, splits []Split) (Expense, error) {
	// Normalize amounts to currency precision before validation, so the
	// checks apply to exactly the values that will be stored and adjusted.
	recorded := make([]Split, len(splits))
	for i, s := range splits {
		recorded[i] = Split{UserID: s.UserID, Amount: s.Amount.Round()}
	}

	if err := e.validateExpense(groupID, payerID, total, recorded); err != nil {
		return Expense{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	exp := Expense{
		ID:        e.nextID,
		GroupID:   groupID,
		PayerID:   payerID,
		Total:     total.Round(),
		Note:      note,
		CreatedAt: time.Now().UTC(),
		Splits:    recorded,
	}

	if err := e.store.AppendExpense(ctx, exp); err != nil {
		return Expense{}, err
	}
	e.nextID++

	for _, s := range exp.Splits {
		if s.UserID == payerID || s.Amount.IsZero() {
			continue
		}
		e.ledger.Adjust(payerID, s.UserID, s.Amount)
	}
	return exp, nil
}

// CreateEqualExpense splits total evenly across participants and records
// the expense. Same failure modes as CreateExpense plus those of EqualSplit.
func (e *ExpenseEngine) CreateEqualExpense(ctx context.Context, groupID *GroupID, payerID UserID, total Money, note string, participants []UserID) (Expense, error) {
	splits, err := EqualSplit(total.Round(), participants)
	if err != nil {
		return Expense{}, err
	}
	return e.CreateExpense(ctx, groupID, payerID, total, note, splits)
}

// CreatePercentageExpense splits total by percentage shares and records
// the expense. Same failure modes as CreateExpense plus those of
// PercentageSplit.
func (e *ExpenseEngine) CreatePercentageExpense(ctx context.Context, groupID *GroupID, payerID UserID, total Money, note string, shares []PercentShare) (Expense, error) {
	splits, err := PercentageSplit(total.Round(), shares)
	if err != nil {
		return Expense{}, err
	}
	return e.CreateExpense(ctx, groupID, payerID, total, note, splits)
}

// RecordSettlement records a payment from payerID to payeeID, paying down
// what the payer owes the payee. Fails with ErrInvalidAmount if amount is
// not positive, ErrInvalidPair if payer == payee, ErrUnknownParticipant if
// either party fails the directory lookup.
func (e *ExpenseEngine) RecordSettlement(ctx context.Context, payerID, payeeID UserID, amount Money) (Settlement, error) {
	if !amount.Round().IsPositive() {
		return Settlement{}, &InvalidAmountError{Reason: "settlement amount must be positive"}
	}
	if payerID == payeeID {
		return Settlement{}, ErrInvalidPair
	}
	if !e.directory.UserExists(payerID) {
		return Settlement{}, &UnknownParticipantError{UserID: payerID}
	}
	if !e.directory.UserExists(payeeID) {
		return Settlement{}, &UnknownParticipantError{UserID: payeeID}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	st := Settlement{
		ID:        uuid.New(),
		PayerID:   payerID,
		PayeeID:   payeeID,
		Amount:    amount.Round(),
		CreatedAt: time.Now().UTC(),
	}
	if err := e.store.AppendSettlement(ctx, st); err != nil {
		return Settlement{}, err
	}

	e.ledger.Adjust(payeeID, payerID, st.Amount.Neg())
	return st, nil
}

// NetBalancesFor reports the signed net balance between userID and each
// counterparty. Read-only.
func (e *ExpenseEngine) NetBalancesFor(userID UserID) map[UserID]Money {
	return e.ledger.NetBalances(userID)
}

// LedgerEntries returns a snapshot of all non-zero pairwise balances.
func (e *ExpenseEngine) LedgerEntries() []Entry {
	return e.ledger.Entries()
}

// Expenses returns the append-only expense log.
func (e *ExpenseEngine) Expenses(ctx context.Context) ([]Expense, error) {
	return e.store.Expenses(ctx)
}

// Settlements returns the append-only settlement log.
func (e *ExpenseEngine) Settlements(ctx context.Context) ([]Settlement, error) {
	return e.store.Settlements(ctx)
}

// validateExpense runs every check that must pass before any mutation.
// Split amounts are expected at currency precision already; the sum check
// therefore holds for the stored values, not just the raw inputs.
func (e *ExpenseEngine) validateExpense(groupID *GroupID, payerID UserID, total Money, splits []Split) error {
	if !total.Round().IsPositive() {
		return &InvalidAmountError{Reason: "expense total must be positive"}
	}
	if !e.directory.UserExists(payerID) {
		return &UnknownParticipantError{UserID: payerID}
	}
	if groupID != nil && !e.directory.GroupExists(*groupID) {
		return &UnknownGroupError{GroupID: *groupID}
	}

	sum := Money{}
	for _, s := range splits {
		if s.Amount.IsNegative() {
			return &InvalidAmountError{Reason: "split amounts must not be negative"}
		}
		if !e.directory.UserExists(s.UserID) {
			return &UnknownParticipantError{UserID: s.UserID}
		}
		sum = sum.Add(s.Amount)
	}

	if !sum.Equal(total) {
		return &SplitMismatchError{SplitSum: sum.Round(), Total: total.Round()}
	}
	return nil
}
