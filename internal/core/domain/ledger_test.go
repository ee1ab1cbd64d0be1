package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equalExpense(createdBy uuid.UUID, total int64, participants ...uuid.UUID) Expense {
	inputs := make([]ShareInput, len(participants))
	for i, id := range participants {
		inputs[i] = ShareInput{UserID: id}
	}
	shares, err := ComputeShares(total, SplitMethodEqual, inputs)
	if err != nil {
		panic(err)
	}
	return Expense{
		ID:           uuid.New(),
		Description:  "test expense",
		Amount:       total,
		SplitMethod:  SplitMethodEqual,
		Participants: shares,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestComputeBalances_ViewpointIsCreator(t *testing.T) {
	v, x, y := uuid.New(), uuid.New(), uuid.New()

	// V paid 90 split equally among V, X, Y: X and Y each owe V 30.
	ledger := ComputeBalances(v, []Expense{equalExpense(v, 90, v, x, y)})

	assert.Equal(t, int64(30), ledger[x])
	assert.Equal(t, int64(30), ledger[y])
	_, hasSelf := ledger[v]
	assert.False(t, hasSelf, "viewpoint's own share must not produce a self entry")
}

func TestComputeBalances_ViewpointIsParticipant(t *testing.T) {
	v, creator, other := uuid.New(), uuid.New(), uuid.New()

	// Creator paid 90 for creator, V, other: V owes creator 30.
	ledger := ComputeBalances(v, []Expense{equalExpense(creator, 90, creator, v, other)})

	assert.Equal(t, int64(-30), ledger[creator])
	_, hasOther := ledger[other]
	assert.False(t, hasOther, "shares between two other users are not viewpoint's business")
}

func TestComputeBalances_AccumulatesAcrossExpenses(t *testing.T) {
	v, u := uuid.New(), uuid.New()

	ledger := ComputeBalances(v, []Expense{
		equalExpense(v, 100, v, u), // u owes v 50
		equalExpense(v, 60, v, u),  // u owes v 30
		equalExpense(u, 40, u, v),  // v owes u 20
	})

	assert.Equal(t, int64(60), ledger[u], "entries must sum, not overwrite")
}

func TestComputeBalances_NetZeroRetained(t *testing.T) {
	v, u := uuid.New(), uuid.New()

	ledger := ComputeBalances(v, []Expense{
		equalExpense(v, 60, v, u), // u owes v 30
		equalExpense(u, 60, u, v), // v owes u 30
	})

	net, ok := ledger[u]
	require.True(t, ok, "reconciled counterparty must stay in the ledger")
	assert.Equal(t, int64(0), net)
}

func TestComputeBalances_Additivity(t *testing.T) {
	v, a, b := uuid.New(), uuid.New(), uuid.New()

	e1 := []Expense{equalExpense(v, 100, v, a), equalExpense(a, 90, a, v, b)}
	e2 := []Expense{equalExpense(v, 40, v, b), equalExpense(b, 80, b, v)}

	union := ComputeBalances(v, append(append([]Expense{}, e1...), e2...))
	part1 := ComputeBalances(v, e1)
	part2 := ComputeBalances(v, e2)

	summed := make(Ledger)
	for id, net := range part1 {
		summed[id] += net
	}
	for id, net := range part2 {
		summed[id] += net
	}

	assert.Equal(t, summed, union)
}

func TestComputeBalances_ReaggregationIdempotent(t *testing.T) {
	v, u := uuid.New(), uuid.New()
	snapshot := []Expense{equalExpense(v, 90, v, u, uuid.New())}

	first := ComputeBalances(v, snapshot)
	second := ComputeBalances(v, snapshot)

	assert.Equal(t, first, second, "same snapshot must yield the same ledger, not doubled")
}

func TestComputeBalances_NilAmountFallback(t *testing.T) {
	v, u, w := uuid.New(), uuid.New(), uuid.New()

	// Legacy record: stored shares without amounts fall back to total/count.
	exp := Expense{
		ID:          uuid.New(),
		Amount:      90,
		SplitMethod: SplitMethodEqual,
		Participants: []ParticipantShare{
			{UserID: v}, {UserID: u}, {UserID: w},
		},
		CreatedBy: v,
	}

	ledger := ComputeBalances(v, []Expense{exp})
	assert.Equal(t, int64(30), ledger[u])
	assert.Equal(t, int64(30), ledger[w])
}

func TestComputeBalances_DoesNotMutateInput(t *testing.T) {
	v, u := uuid.New(), uuid.New()
	exp := equalExpense(v, 100, v, u)
	originalShare := *exp.Participants[1].Amount

	_ = ComputeBalances(v, []Expense{exp})

	assert.Equal(t, originalShare, *exp.Participants[1].Amount)
	assert.Len(t, exp.Participants, 2)
}

func TestComputeBalances_EmptySet(t *testing.T) {
	ledger := ComputeBalances(uuid.New(), nil)
	assert.Empty(t, ledger)
	assert.NotNil(t, ledger)
}

func TestLedger_Entries_SortedStable(t *testing.T) {
	l := make(Ledger)
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, id := range ids {
		l[id] = int64(i * 10)
	}

	entries := l.Entries()
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].UserID.String(), entries[i].UserID.String())
	}
}

func TestExpense_ShareAmount(t *testing.T) {
	amount := int64(1234)
	exp := Expense{
		Amount: 300,
		Participants: []ParticipantShare{
			{UserID: uuid.New(), Amount: &amount},
			{UserID: uuid.New()},
			{UserID: uuid.New()},
		},
	}

	assert.Equal(t, int64(1234), exp.ShareAmount(exp.Participants[0]))
	assert.Equal(t, int64(100), exp.ShareAmount(exp.Participants[1]), "nil amount falls back to equal split")
}
