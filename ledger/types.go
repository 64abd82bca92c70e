/*
Package ledger provides the core expense-splitting and debt-tracking engine.

PURPOSE:
  This package contains the value types and algorithms for maintaining a
  consistent record of who owes whom across shared expenses. Expenses are
  validated and logged immutably; pairwise debts are kept as net balances
  keyed by a canonical participant pair.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A fixed-precision currency amount (2 fractional digits)
  - Split: One allocation line of an expense (participant, amount owed)
  - Expense: An immutable record of a paid amount, its payer, and its splits
  - Settlement: An immutable record of a debt repayment
  - User/Group/Expense IDs: Type-safe identifiers

DESIGN PRINCIPLES:
  1. Immutability: Expenses and settlements are never modified once logged
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Exactness: Remainder arithmetic is done in integer minor units (cents),
     so split sums always reconcile to the expense total to the cent
  4. Type Safety: Strong typing for IDs prevents mixing user/group IDs

USAGE:
  total, err := ledger.NewMoneyFromString("300.00")
  splits, err := ledger.EqualSplit(total, []ledger.UserID{1, 2, 3})

SEE ALSO:
  - pair.go: Canonical balance pair keys
  - ledger.go: Net pairwise balance store
  - engine.go: Expense validation and recording
*/
package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Fixed-precision currency amount
// =============================================================================

// Money is a currency amount. Arithmetic is exact (decimal based); all
// amounts are rounded to 2 fractional digits, half-up, at the point they
// are stored or returned.
type Money struct {
	Value decimal.Decimal
}

// moneyScale is the number of fractional digits every stored amount carries.
const moneyScale = 2

// NewMoneyFromString parses a decimal string such as "120.00".
// Fails with ErrInvalidAmount on malformed input.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, &InvalidAmountError{Reason: "malformed amount " + s}
	}
	return Money{Value: d}, nil
}

// MustMoney parses a decimal string, returning zero on error.
// Intended for literals in tests and demos.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		return Money{}
	}
	return m
}

// FromCents builds a Money from a whole number of minor units.
func FromCents(cents int64) Money {
	return Money{Value: decimal.New(cents, -moneyScale)}
}

func (m Money) Add(b Money) Money    { return Money{Value: m.Value.Add(b.Value)} }
func (m Money) Sub(b Money) Money    { return Money{Value: m.Value.Sub(b.Value)} }
func (m Money) Neg() Money           { return Money{Value: m.Value.Neg()} }
func (m Money) MulInt(n int64) Money { return Money{Value: m.Value.Mul(decimal.NewFromInt(n))} }
func (m Money) Cmp(b Money) int      { return m.Round().Value.Cmp(b.Round().Value) }
func (m Money) Equal(b Money) bool   { return m.Cmp(b) == 0 }
func (m Money) IsZero() bool         { return m.Round().Value.IsZero() }
func (m Money) IsNegative() bool     { return m.Value.IsNegative() }
func (m Money) IsPositive() bool     { return m.Value.IsPositive() }

// Round returns the amount at currency precision (2 digits, half-up).
func (m Money) Round() Money {
	return Money{Value: m.Value.Round(moneyScale)}
}

// Cents returns the rounded amount as a whole number of minor units.
func (m Money) Cents() int64 {
	return m.Round().Value.Shift(moneyScale).IntPart()
}

// DivideIntoShares splits the amount into n equal shares rounded down to
// currency precision, returning the per-share amount and the residual
// remainder as a count of one-cent units (0 <= remainder < n). Division
// never silently drops currency: callers redistribute the remainder.
// Fails with ErrInvalidAmount if n <= 0 or the amount is negative.
func (m Money) DivideIntoShares(n int) (Money, int64, error) {
	if n <= 0 {
		return Money{}, 0, &InvalidAmountError{Reason: "share count must be positive"}
	}
	if m.IsNegative() {
		return Money{}, 0, &InvalidAmountError{Reason: "cannot divide a negative amount"}
	}
	cents := m.Cents()
	return FromCents(cents / int64(n)), cents % int64(n), nil
}

// String renders the rounded amount, e.g. "33.34".
func (m Money) String() string {
	return m.Round().Value.StringFixed(moneyScale)
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID int64
type GroupID int64
type ExpenseID int64

// =============================================================================
// SPLIT - One allocation line of an expense
// =============================================================================

// Split assigns a share of an expense's total to one participant.
// Amount must be >= 0; a zero amount records a participant who owes nothing.
type Split struct {
	UserID UserID
	Amount Money
}

// =============================================================================
// EXPENSE - Immutable record of a paid amount and its splits
// =============================================================================

// Expense is created once by the ExpenseEngine and never mutated or deleted.
// Invariant: the split amounts, rounded to currency precision, sum exactly
// to the rounded total.
type Expense struct {
	ID        ExpenseID
	GroupID   *GroupID // nil for expenses outside any group
	PayerID   UserID
	Total     Money
	Note      string
	CreatedAt time.Time
	Splits    []Split
}

// =============================================================================
// SETTLEMENT - Immutable record of a debt repayment
// =============================================================================

// Settlement records a payment from PayerID to PayeeID that pays down what
// the payer owes the payee. Applied to the ledger as a negative adjustment.
type Settlement struct {
	ID        uuid.UUID
	PayerID   UserID
	PayeeID   UserID
	Amount    Money
	CreatedAt time.Time
}
