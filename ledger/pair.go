package ledger

// =============================================================================
// BALANCE PAIR - Canonical key for a pairwise net balance
// =============================================================================

// BalancePair is the unordered pair of two distinct participants normalized
// to a fixed order (Low < High). For any two distinct identifiers there is
// exactly one BalancePair value, so every debt between two participants
// lands on the same ledger entry regardless of argument order.
type BalancePair struct {
	Low  UserID
	High UserID
}

// CanonicalPair normalizes (a, b) into a BalancePair.
// Fails with ErrInvalidPair when a == b: a participant cannot owe themself.
func CanonicalPair(a, b UserID) (BalancePair, error) {
	if a == b {
		return BalancePair{}, ErrInvalidPair
	}
	if a < b {
		return BalancePair{Low: a, High: b}, nil
	}
	return BalancePair{Low: b, High: a}, nil
}
