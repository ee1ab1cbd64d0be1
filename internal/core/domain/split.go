package domain

import (
	"splitledger/pkg/apperror"
)

// ComputeShares turns an expense total, a split method, and raw participant
// input into per-participant shares. It is a pure function: no I/O, no state,
// safe for concurrent calls. It either returns a full set of shares whose
// amounts sum exactly to total, or an error before any share is produced.
//
// Duplicate participant IDs are not deduplicated: a user listed twice
// receives two separate shares.
func ComputeShares(total int64, method SplitMethod, inputs []ShareInput) ([]ParticipantShare, error) {
	if total <= 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if !method.Valid() {
		return nil, apperror.ErrInvalidSplitMethod(string(method))
	}
	if len(inputs) == 0 {
		return nil, apperror.ErrNoParticipants()
	}

	switch method {
	case SplitMethodEqual:
		return splitEqual(total, inputs), nil
	case SplitMethodExact:
		return splitExact(total, inputs)
	default:
		return splitPercentage(total, inputs)
	}
}

// splitEqual gives every participant total/n, handing the remaining
// total%n minor units out one at a time in input order so the shares
// always sum to the total.
func splitEqual(total int64, inputs []ShareInput) []ParticipantShare {
	n := int64(len(inputs))
	base := total / n
	rem := total % n

	shares := make([]ParticipantShare, len(inputs))
	for i, in := range inputs {
		amount := base
		if int64(i) < rem {
			amount++
		}
		shares[i] = ParticipantShare{UserID: in.UserID, Amount: &amount}
	}
	return shares
}

// splitExact passes the supplied amounts through unchanged after verifying
// they sum exactly to the total. A miss smaller than one minor unit per
// participant is reported as a rounding residue rather than a plain
// mismatch, since it usually means per-share rounding on the caller's side.
func splitExact(total int64, inputs []ShareInput) ([]ParticipantShare, error) {
	var sum int64
	for _, in := range inputs {
		if in.Amount == nil {
			return nil, apperror.ErrMissingShareField("amount")
		}
		if *in.Amount < 0 {
			return nil, apperror.ErrNegativeShare()
		}
		sum += *in.Amount
	}

	if sum != total {
		if residue := abs(sum - total); residue < int64(len(inputs)) {
			return nil, apperror.ErrPrecisionResidue(residue)
		}
		return nil, apperror.ErrExactSumMismatch(sum, total)
	}

	shares := make([]ParticipantShare, len(inputs))
	for i, in := range inputs {
		amount := *in.Amount
		shares[i] = ParticipantShare{UserID: in.UserID, Amount: &amount}
	}
	return shares, nil
}

// splitPercentage computes total*bps/10000 per participant after verifying
// the basis points sum to exactly 10000. Integer truncation can leave a few
// minor units unassigned; those are handed out one at a time in input order.
func splitPercentage(total int64, inputs []ShareInput) ([]ParticipantShare, error) {
	var sumBps int64
	for _, in := range inputs {
		if in.PercentBps == nil {
			return nil, apperror.ErrMissingShareField("percentage")
		}
		if *in.PercentBps < 0 {
			return nil, apperror.ErrNegativeShare()
		}
		sumBps += *in.PercentBps
	}

	if sumBps != PercentTotalBps {
		if residue := abs(sumBps - PercentTotalBps); residue < int64(len(inputs)) {
			return nil, apperror.ErrPrecisionResidue(residue)
		}
		return nil, apperror.ErrPercentageMismatch(sumBps)
	}

	shares := make([]ParticipantShare, len(inputs))
	var assigned int64
	for i, in := range inputs {
		amount := total * *in.PercentBps / PercentTotalBps
		assigned += amount
		shares[i] = ParticipantShare{UserID: in.UserID, Amount: &amount}
	}

	// Truncation leftover, at most len(inputs)-1 minor units.
	for i := 0; assigned < total; i++ {
		*shares[i%len(shares)].Amount++
		assigned++
	}

	return shares, nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
