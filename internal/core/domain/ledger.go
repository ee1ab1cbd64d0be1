package domain

import (
	"sort"

	"github.com/google/uuid"
)

// Ledger maps a counterparty user to the net amount owed relative to one
// viewpoint user, in minor units.
//
// Sign invariant: ledger[U] > 0 means the viewpoint user is owed that amount
// by U; ledger[U] < 0 means the viewpoint user owes U. Both aggregation
// branches below derive from this single rule. Net-zero entries are retained
// so a caller can see a reconciled relationship.
type Ledger map[uuid.UUID]int64

// LedgerEntry is one counterparty row of a ledger.
type LedgerEntry struct {
	UserID uuid.UUID `json:"user_id"`
	Net    int64     `json:"net"`
}

// Entries returns the ledger rows ordered by user ID for stable output.
func (l Ledger) Entries() []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(l))
	for id, net := range l {
		entries = append(entries, LedgerEntry{UserID: id, Net: net})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].UserID.String() < entries[j].UserID.String()
	})
	return entries
}

// ComputeBalances walks the given expenses and accumulates net balances
// between the viewpoint user and every other participant encountered.
// The expense set is expected to be pre-filtered to those where viewpoint
// appears as creator or participant; expenses where it appears as neither
// contribute nothing.
//
// Pure: the input is never mutated and a fresh ledger is built per call, so
// re-aggregating the same snapshot yields the same ledger, and the result
// over a union of disjoint sets equals the entrywise sum of the parts.
func ComputeBalances(viewpoint uuid.UUID, expenses []Expense) Ledger {
	ledger := make(Ledger)

	for i := range expenses {
		exp := &expenses[i]
		for _, share := range exp.Participants {
			switch {
			case exp.CreatedBy == viewpoint && share.UserID != viewpoint:
				// Viewpoint paid; the participant owes their share.
				ledger[share.UserID] += exp.ShareAmount(share)
			case share.UserID == viewpoint && exp.CreatedBy != viewpoint:
				// Someone else paid for viewpoint's share.
				ledger[exp.CreatedBy] -= exp.ShareAmount(share)
			}
		}
	}

	return ledger
}
