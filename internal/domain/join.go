package domain

import (
	"fmt"
	"math"
)

// JoinRecovery left-joins the destroyed property set against the recovered
// address set. Every destroyed record produces exactly one output row;
// records are marked StatusRecovered when their address appears in the
// recovered set and StatusDestroyed otherwise. Rows present only in the
// recovered set are ignored; the destroyed set is authoritative.
//
// Duplicate addresses in the recovered set are harmless (membership is all
// that matters). Duplicate addresses in the destroyed set each produce their
// own row; use CheckUniqueAddresses to surface them as a data-quality issue.
//
// Assessed values are rounded to the nearest whole dollar here, before any
// summation, matching the upstream report's pre-rounding.
func JoinRecovery(destroyed, recovered []PropertyRecord) []JoinedProperty {
	rebuilt := make(map[string]struct{}, len(recovered))
	for _, r := range recovered {
		rebuilt[r.Address] = struct{}{}
	}

	out := make([]JoinedProperty, len(destroyed))
	for i, d := range destroyed {
		status := StatusDestroyed
		if _, ok := rebuilt[d.Address]; ok {
			status = StatusRecovered
		}
		d.AssessedValue = math.Round(d.AssessedValue)
		out[i] = JoinedProperty{PropertyRecord: d, Status: status}
	}
	return out
}

// SumByStatus totals assessed value per recovery status.
func SumByStatus(joined []JoinedProperty) map[RecoveryStatus]float64 {
	sums := make(map[RecoveryStatus]float64, 2)
	for _, j := range joined {
		sums[j.Status] += j.AssessedValue
	}
	return sums
}

// CheckUniqueAddresses returns ErrDuplicateKey (wrapped with the offending
// address) if any address appears more than once in the set.
func CheckUniqueAddresses(records []PropertyRecord) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, ok := seen[r.Address]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, r.Address)
		}
		seen[r.Address] = struct{}{}
	}
	return nil
}
