/*
ledger.go - Canonical pairwise balance store

PURPOSE:
  The Ledger holds the net amount owed between every pair of participants.
  It is the sole mutable shared state of the engine. All balance changes,
  whether from expenses or settlements, funnel through a single mutation
  point (Adjust), which upholds the canonical-key invariant uniformly.

CRITICAL INVARIANTS:
  1. CANONICAL KEYS: One entry per unordered participant pair, keyed by
     the normalized (Low, High) order. Stored value v means "Low is owed
     v by High"; v may be negative (Low owes High).
  2. NO ZERO ENTRIES: An entry whose value rounds to exactly zero is
     removed. The map holds only non-zero net balances; an entry comes
     into existence lazily on the first non-zero adjustment and is
     destroyed when the net reaches zero.
  3. CONSERVATION: For a closed set of transactions that nets every pair
     to zero, Entries() is empty.

CONCURRENCY:
  A single mutex guards the whole balance map. Adjustments are serialized,
  so the read-modify-write on a stored value is atomic with respect to
  other adjustments on the same pair. Contention is expected to be low;
  per-pair locking would be an optimization, not a requirement.

SEE ALSO:
  - pair.go: Canonical key construction
  - engine.go: The only caller that mutates the ledger
*/
package ledger

import (
	"sort"
	"sync"
)

// =============================================================================
// LEDGER - Net pairwise balances
// =============================================================================

// Entry is one non-zero net balance: Pair.Low is owed Amount by Pair.High
// (negative Amount means Pair.Low owes Pair.High).
type Entry struct {
	Pair   BalancePair
	Amount Money
}

// Ledger maps canonical balance pairs to signed net amounts.
// Mutated exclusively through Adjust.
type Ledger struct {
	mu       sync.RWMutex
	balances map[BalancePair]Money
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[BalancePair]Money)}
}

// Adjust increases the debtor's obligation to the creditor by delta.
// A negative delta pays debt down. The pair is canonicalized, the delta
// signed according to which slot the creditor occupies, and the result
// rounded to currency precision; a zero result removes the entry.
// No-op when creditor == debtor (self-pairs are rejected upstream).
func (l *Ledger) Adjust(creditor, debtor UserID, delta Money) {
	pair, err := CanonicalPair(creditor, debtor)
	if err != nil {
		return
	}

	signed := delta
	if pair.Low != creditor {
		signed = delta.Neg()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	updated := l.balances[pair].Add(signed).Round()
	if updated.IsZero() {
		delete(l.balances, pair)
	} else {
		l.balances[pair] = updated
	}
}

// NetBalances reports, for every counterparty with a non-zero balance
// against userID, the amount the counterparty owes userID (positive) or
// userID owes the counterparty (negative). Read-only.
func (l *Ledger) NetBalances(userID UserID) map[UserID]Money {
	l.mu.RLock()
	defer l.mu.RUnlock()

	res := make(map[UserID]Money)
	for pair, amount := range l.balances {
		switch userID {
		case pair.Low:
			res[pair.High] = amount
		case pair.High:
			// Stored amount means Low is owed by High; flip the sign
			// for the High side's point of view.
			res[pair.Low] = amount.Neg()
		}
	}
	return res
}

// Entries returns a snapshot of all non-zero balances, sorted by pair for
// deterministic reporting. Ordering carries no semantic meaning; only the
// set of entries does.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, 0, len(l.balances))
	for pair, amount := range l.balances {
		entries = append(entries, Entry{Pair: pair, Amount: amount})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Pair.Low != entries[j].Pair.Low {
			return entries[i].Pair.Low < entries[j].Pair.Low
		}
		return entries[i].Pair.High < entries[j].Pair.High
	})
	return entries
}
