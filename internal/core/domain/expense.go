package domain

import (
	"time"

	"github.com/google/uuid"
)

// SplitMethod is the rule used to divide an expense's total among participants.
type SplitMethod string

const (
	SplitMethodEqual      SplitMethod = "equal"
	SplitMethodExact      SplitMethod = "exact"
	SplitMethodPercentage SplitMethod = "percentage"
)

// Valid reports whether m is one of the supported split methods.
func (m SplitMethod) Valid() bool {
	switch m {
	case SplitMethodEqual, SplitMethodExact, SplitMethodPercentage:
		return true
	}
	return false
}

// PercentTotalBps is a full 100% expressed in basis points.
// All percentages in the engine are integer basis points so that the
// sum-to-100 check is an exact comparison, never a float one.
const PercentTotalBps int64 = 10000

// ShareInput is the raw per-participant input to the split calculator.
// Amount (minor units) is read only for the exact method, PercentBps only
// for percentage; neither is read for equal.
type ShareInput struct {
	UserID     uuid.UUID
	Amount     *int64
	PercentBps *int64
}

// ParticipantShare is one participant's computed portion of an expense.
// Amount is in minor units. It is always populated by the split calculator;
// nil occurs only in legacy stored rows, which the balance aggregator
// tolerates with an equal-split approximation.
type ParticipantShare struct {
	UserID uuid.UUID `json:"user_id"`
	Amount *int64    `json:"amount,omitempty"`
}

// Expense represents an immutable recorded expense with its computed shares.
// There is no update or delete path: balances are always recomputed from the
// full expense snapshot.
type Expense struct {
	ID           uuid.UUID          `json:"id"`
	Description  string             `json:"description"`
	Amount       int64              `json:"amount"` // In minor units (e.g. cents)
	SplitMethod  SplitMethod        `json:"split_method"`
	Participants []ParticipantShare `json:"participants"`
	CreatedBy    uuid.UUID          `json:"created_by"`
	CreatedAt    time.Time          `json:"created_at"`
}

// ShareAmount returns the effective amount of one of the expense's shares.
// A nil stored amount falls back to an equal split of the expense total,
// tolerating legacy records written before shares were always materialized.
func (e *Expense) ShareAmount(s ParticipantShare) int64 {
	if s.Amount != nil {
		return *s.Amount
	}
	return e.Amount / int64(len(e.Participants))
}
