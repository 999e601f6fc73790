package domain

// FilterByCause selects fire records matching the given cause code,
// preserving input order. CauseAll returns the input slice unchanged.
// An empty result is valid and flows through aggregation as an empty series.
func FilterByCause(records []FireRecord, cause Cause) []FireRecord {
	if cause == CauseAll {
		return records
	}
	var out []FireRecord
	for _, r := range records {
		if r.Cause == cause {
			out = append(out, r)
		}
	}
	return out
}
