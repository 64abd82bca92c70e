package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/split-engine/ledger"
)

// =============================================================================
// CONSTRUCTION AND ROUNDING
// =============================================================================

func TestMoney_FromString_Valid(t *testing.T) {
	m, err := ledger.NewMoneyFromString("120.00")
	require.NoError(t, err)
	assert.Equal(t, "120.00", m.String())
}

func TestMoney_FromString_Malformed(t *testing.T) {
	_, err := ledger.NewMoneyFromString("twelve")
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestMoney_Round_HalfUp(t *testing.T) {
	// GIVEN: An amount with a half-cent fraction
	// THEN: It rounds up at currency precision
	m := ledger.MustMoney("33.335")
	assert.Equal(t, "33.34", m.Round().String())
}

func TestMoney_Equal_AcrossRepresentations(t *testing.T) {
	// Two Money values are equal iff their rounded representations match.
	assert.True(t, ledger.MustMoney("10.5").Equal(ledger.MustMoney("10.50")))
	assert.True(t, ledger.MustMoney("10.501").Equal(ledger.MustMoney("10.50")))
	assert.False(t, ledger.MustMoney("10.50").Equal(ledger.MustMoney("10.51")))
}

func TestMoney_Cents_RoundTrip(t *testing.T) {
	assert.Equal(t, int64(10000), ledger.MustMoney("100.00").Cents())
	assert.Equal(t, "0.01", ledger.FromCents(1).String())
	assert.Equal(t, "33.34", ledger.FromCents(3334).String())
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestMoney_Arithmetic(t *testing.T) {
	a := ledger.MustMoney("10.00")
	b := ledger.MustMoney("2.50")

	assert.Equal(t, "12.50", a.Add(b).String())
	assert.Equal(t, "7.50", a.Sub(b).String())
	assert.Equal(t, "-10.00", a.Neg().String())
	assert.Equal(t, "7.50", b.MulInt(3).String())
	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.True(t, a.Sub(a).IsZero())
}

// =============================================================================
// SHARE DIVISION
// =============================================================================

func TestMoney_DivideIntoShares_WithRemainder(t *testing.T) {
	// GIVEN: 100.00 divided into 3 shares
	// THEN: Base share is 33.33 with a 1-cent remainder, so nothing is lost
	share, remainder, err := ledger.MustMoney("100.00").DivideIntoShares(3)
	require.NoError(t, err)

	assert.Equal(t, "33.33", share.String())
	assert.Equal(t, int64(1), remainder)
	assert.Equal(t, "100.00", share.MulInt(3).Add(ledger.FromCents(remainder)).String())
}

func TestMoney_DivideIntoShares_Exact(t *testing.T) {
	share, remainder, err := ledger.MustMoney("300.00").DivideIntoShares(3)
	require.NoError(t, err)

	assert.Equal(t, "100.00", share.String())
	assert.Zero(t, remainder)
}

func TestMoney_DivideIntoShares_InvalidCount(t *testing.T) {
	_, _, err := ledger.MustMoney("100.00").DivideIntoShares(0)
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)

	_, _, err = ledger.MustMoney("100.00").DivideIntoShares(-2)
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}

func TestMoney_DivideIntoShares_NegativeAmount(t *testing.T) {
	_, _, err := ledger.MustMoney("-1.00").DivideIntoShares(2)
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}
