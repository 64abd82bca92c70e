package ledger_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/split-engine/ledger"
)

// =============================================================================
// ADJUSTMENT SEMANTICS
// =============================================================================

func TestLedger_Adjust_Accumulates(t *testing.T) {
	// GIVEN: Two adjustments on the same pair
	// THEN: The net stored value equals a single combined adjustment
	l := ledger.NewLedger()
	l.Adjust(1, 2, ledger.MustMoney("10.00"))
	l.Adjust(1, 2, ledger.MustMoney("5.00"))

	single := ledger.NewLedger()
	single.Adjust(1, 2, ledger.MustMoney("15.00"))

	assert.Equal(t, single.Entries(), l.Entries())
}

func TestLedger_Adjust_SignedByCreditorSlot(t *testing.T) {
	// GIVEN: The creditor is the high side of the canonical pair
	// THEN: The stored value is negative (low owes high)
	l := ledger.NewLedger()
	l.Adjust(2, 1, ledger.MustMoney("10.00"))

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.UserID(1), entries[0].Pair.Low)
	assert.Equal(t, ledger.UserID(2), entries[0].Pair.High)
	assert.Equal(t, "-10.00", entries[0].Amount.String())
}

func TestLedger_Adjust_ZeroNetRemovesEntry(t *testing.T) {
	// An entry whose value rounds to zero is not represented.
	l := ledger.NewLedger()
	l.Adjust(1, 2, ledger.MustMoney("25.00"))
	l.Adjust(1, 2, ledger.MustMoney("-25.00"))

	assert.Empty(t, l.Entries())
}

func TestLedger_Adjust_SelfPairIsNoOp(t *testing.T) {
	l := ledger.NewLedger()
	l.Adjust(3, 3, ledger.MustMoney("10.00"))

	assert.Empty(t, l.Entries())
}

func TestLedger_Adjust_OppositeOrdersCancel(t *testing.T) {
	// GIVEN: Equal debts in both directions between the same two users
	// THEN: They cancel and the entry disappears
	l := ledger.NewLedger()
	l.Adjust(1, 2, ledger.MustMoney("40.00"))
	l.Adjust(2, 1, ledger.MustMoney("40.00"))

	assert.Empty(t, l.Entries())
}

// =============================================================================
// QUERIES
// =============================================================================

func TestLedger_NetBalances_BothSides(t *testing.T) {
	// GIVEN: User 1 is owed by 2 and owes 3
	l := ledger.NewLedger()
	l.Adjust(1, 2, ledger.MustMoney("100.00"))
	l.Adjust(3, 1, ledger.MustMoney("30.00"))

	// WHEN: Querying from each participant's point of view
	forOne := l.NetBalances(1)
	forTwo := l.NetBalances(2)
	forThree := l.NetBalances(3)

	// THEN: Signs flip with the point of view
	require.Len(t, forOne, 2)
	assert.Equal(t, "100.00", forOne[2].String())
	assert.Equal(t, "-30.00", forOne[3].String())
	assert.Equal(t, "-100.00", forTwo[1].String())
	assert.Equal(t, "30.00", forThree[1].String())
}

func TestLedger_NetBalances_UninvolvedUserIsEmpty(t *testing.T) {
	l := ledger.NewLedger()
	l.Adjust(1, 2, ledger.MustMoney("100.00"))

	assert.Empty(t, l.NetBalances(9))
}

func TestLedger_Entries_SortedByPair(t *testing.T) {
	l := ledger.NewLedger()
	l.Adjust(5, 6, ledger.MustMoney("1.00"))
	l.Adjust(1, 2, ledger.MustMoney("1.00"))
	l.Adjust(1, 4, ledger.MustMoney("1.00"))

	entries := l.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, ledger.BalancePair{Low: 1, High: 2}, entries[0].Pair)
	assert.Equal(t, ledger.BalancePair{Low: 1, High: 4}, entries[1].Pair)
	assert.Equal(t, ledger.BalancePair{Low: 5, High: 6}, entries[2].Pair)
}

// =============================================================================
// CONSERVATION
// =============================================================================

func TestLedger_ClosedSequenceNetsToEmpty(t *testing.T) {
	// GIVEN: A sequence of debts and settlements that nets every pair to zero
	l := ledger.NewLedger()
	l.Adjust(1, 2, ledger.MustMoney("100.00")) // 2 owes 1
	l.Adjust(1, 3, ledger.MustMoney("100.00")) // 3 owes 1
	l.Adjust(1, 2, ledger.MustMoney("-60.00")) // 2 pays down 60
	l.Adjust(1, 2, ledger.MustMoney("-40.00")) // 2 pays the rest
	l.Adjust(1, 3, ledger.MustMoney("-100.00"))

	// THEN: No balances remain
	assert.Empty(t, l.Entries())
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestLedger_ConcurrentAdjustments_NoneLost(t *testing.T) {
	// GIVEN: Many goroutines adjusting the same pair
	// THEN: Every read-modify-write lands; the net is exact
	l := ledger.NewLedger()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Adjust(1, 2, ledger.MustMoney("1.00"))
		}()
	}
	wg.Wait()

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "100.00", entries[0].Amount.String())
}
