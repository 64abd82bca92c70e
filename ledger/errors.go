/*
errors.go - Centralized error types for the split engine

PURPOSE:
  All error kinds in one place for consistency and discoverability.
  Every failure here is a local validation failure surfaced to the
  immediate caller before any mutation; nothing is retried internally.

ERROR CATEGORIES:
  1. Amount errors - Malformed or non-positive monetary values
  2. Referential errors - Unknown users or groups
  3. Reconciliation errors - Splits that do not sum to the stated total

USAGE:
  Callers match with errors.Is and pull diagnostics with errors.As:

    var mismatch *ledger.SplitMismatchError
    if errors.As(err, &mismatch) {
        log.Printf("sum=%s total=%s", mismatch.SplitSum, mismatch.Total)
    }

SEE ALSO:
  - engine.go: Raises these during expense validation
  - types.go: Raises ErrInvalidAmount from Money constructors
*/
package ledger

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidAmount is returned for non-positive or malformed monetary
	// values where the call site requires a positive (or non-negative) amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidPair is returned when a balance pair would be self-referential.
	ErrInvalidPair = errors.New("invalid pair: participants must differ")

	// ErrUnknownParticipant is returned when a referenced user is not known
	// to the directory collaborator.
	ErrUnknownParticipant = errors.New("unknown participant")

	// ErrUnknownGroup is returned when a referenced group is not known
	// to the directory collaborator.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrSplitMismatch is returned when split amounts do not sum to the
	// stated expense total at currency precision.
	ErrSplitMismatch = errors.New("splits do not sum to expense total")

	// ErrInvalidPercentage is returned when percentage shares are negative
	// or do not sum to exactly 100.
	ErrInvalidPercentage = errors.New("percentages must be non-negative and sum to 100")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidAmountError explains why an amount was rejected.
type InvalidAmountError struct {
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %s", e.Reason)
}

func (e *InvalidAmountError) Unwrap() error {
	return ErrInvalidAmount
}

// UnknownParticipantError identifies which user failed the directory lookup.
type UnknownParticipantError struct {
	UserID UserID
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("unknown participant: user %d", e.UserID)
}

func (e *UnknownParticipantError) Unwrap() error {
	return ErrUnknownParticipant
}

// UnknownGroupError identifies which group failed the directory lookup.
type UnknownGroupError struct {
	GroupID GroupID
}

func (e *UnknownGroupError) Error() string {
	return fmt.Sprintf("unknown group: group %d", e.GroupID)
}

func (e *UnknownGroupError) Unwrap() error {
	return ErrUnknownGroup
}

// SplitMismatchError reports both sums for diagnostics.
type SplitMismatchError struct {
	SplitSum Money
	Total    Money
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("splits do not sum to amount: sum=%s amount=%s", e.SplitSum, e.Total)
}

func (e *SplitMismatchError) Unwrap() error {
	return ErrSplitMismatch
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPair) ||
		errors.Is(err, ErrUnknownParticipant) ||
		errors.Is(err, ErrUnknownGroup) ||
		errors.Is(err, ErrSplitMismatch) ||
		errors.Is(err, ErrInvalidPercentage)
}
