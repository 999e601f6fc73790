package domain

import (
	"sort"
	"time"
)

// AnnualBurnedAcres groups fire records by year and sums burned acreage,
// returning one point per distinct year in ascending order. Years at or
// below minYear are dropped after grouping (the historical-data-quality
// cutoff, not a property of the summation). Records with a zero year are
// skipped, mirroring the source's drop-blank-year behavior. Only years
// present in the input appear; gaps are not backfilled.
func AnnualBurnedAcres(records []FireRecord, minYear int) Series {
	sums := make(map[int]float64)
	for _, r := range records {
		if r.Year == 0 {
			continue
		}
		// Accumulation follows input order within each year, so the
		// floating-point sum is reproducible for a given input.
		sums[r.Year] += r.BurnedAcres
	}

	years := make([]int, 0, len(sums))
	for y := range sums {
		if y > minYear {
			years = append(years, y)
		}
	}
	sort.Ints(years)

	out := make(Series, len(years))
	for i, y := range years {
		out[i] = Point{Time: yearTime(y), Value: sums[y]}
	}
	return out
}

// DailyClimate groups climate observations by calendar day and sums the
// selected variable per day, returning points in ascending date order.
// Source files are per-year CSVs with no ordering guarantee, so the series
// is keyed and sorted by date rather than by input position. Zero dates
// are skipped.
func DailyClimate(obs []ClimateObservation, v ClimateVariable) Series {
	sums := make(map[time.Time]float64)
	for _, o := range obs {
		if o.Date.IsZero() {
			continue
		}
		day := o.Date.UTC().Truncate(24 * time.Hour)
		sums[day] += o.Value(v)
	}

	days := make([]time.Time, 0, len(sums))
	for d := range sums {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	out := make(Series, len(days))
	for i, d := range days {
		out[i] = Point{Time: d, Value: sums[d]}
	}
	return out
}
