/*
split.go - Split calculators with exact remainder distribution

PURPOSE:
  Produces Split lists for equal and percentage splits. Shares are computed
  in integer minor units so the split sum always equals the total exactly;
  the rounding remainder is distributed deterministically, one cent each,
  to the first participants in iteration order.

WHY INTEGER CENTS?
  Comparing a fractional remainder against a scaled threshold can
  mis-distribute when totals are not integral. Working in whole cents makes
  the remainder an exact count of one-cent units, at most one per
  participant, and the reconciliation provable.

SEE ALSO:
  - types.go: Money.DivideIntoShares
  - engine.go: CreateEqualExpense / CreatePercentageExpense compose these
*/
package ledger

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL SPLIT
// =============================================================================

// EqualSplit divides total evenly across participants. Every participant
// gets the base share rounded down to currency precision; the first
// remainder-many participants get one extra cent. The returned shares sum
// to total exactly, and no two shares differ by more than one cent.
// Fails with ErrInvalidAmount on an empty participant list or negative total.
func EqualSplit(total Money, participants []UserID) ([]Split, error) {
	if len(participants) == 0 {
		return nil, &InvalidAmountError{Reason: "equal split requires at least one participant"}
	}

	base, remainderCents, err := total.DivideIntoShares(len(participants))
	if err != nil {
		return nil, err
	}

	cent := FromCents(1)
	splits := make([]Split, len(participants))
	for i, id := range participants {
		amount := base
		if int64(i) < remainderCents {
			amount = amount.Add(cent)
		}
		splits[i] = Split{UserID: id, Amount: amount}
	}
	return splits, nil
}

// =============================================================================
// PERCENTAGE SPLIT
// =============================================================================

// PercentShare allocates a percentage of an expense total to one participant.
type PercentShare struct {
	UserID  UserID
	Percent decimal.Decimal
}

// PercentageSplit divides total according to percentage shares. Percentages
// must be non-negative and sum to exactly 100 (ErrInvalidPercentage
// otherwise). Each share is floored to whole cents; leftover cents are
// distributed one each to the first participants in order, so the returned
// shares sum to total exactly.
func PercentageSplit(total Money, shares []PercentShare) ([]Split, error) {
	if len(shares) == 0 {
		return nil, &InvalidAmountError{Reason: "percentage split requires at least one share"}
	}
	if total.IsNegative() {
		return nil, &InvalidAmountError{Reason: "cannot split a negative amount"}
	}

	sum := decimal.Zero
	for _, s := range shares {
		if s.Percent.IsNegative() {
			return nil, ErrInvalidPercentage
		}
		sum = sum.Add(s.Percent)
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return nil, ErrInvalidPercentage
	}

	totalCents := total.Cents()
	hundred := decimal.NewFromInt(100)

	splits := make([]Split, len(shares))
	assigned := int64(0)
	for i, s := range shares {
		cents := decimal.NewFromInt(totalCents).Mul(s.Percent).Div(hundred).Floor().IntPart()
		splits[i] = Split{UserID: s.UserID, Amount: FromCents(cents)}
		assigned += cents
	}

	// Each floored share loses under one cent, so the leftover is strictly
	// fewer cents than there are shares.
	cent := FromCents(1)
	for i := 0; assigned < totalCents; i++ {
		splits[i].Amount = splits[i].Amount.Add(cent)
		assigned++
	}
	return splits, nil
}
