package domain

import "time"

// Point is one (time, value) observation in a derived series.
type Point struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// Series is an ordered sequence of points. After aggregation the times are
// strictly increasing with no duplicates; a smoothed series keeps the exact
// time sequence of its source.
type Series []Point

// Values returns the value column of the series.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Times returns the time column of the series.
func (s Series) Times() []time.Time {
	out := make([]time.Time, len(s))
	for i, p := range s {
		out[i] = p.Time
	}
	return out
}

// Sum returns the sum of the series' values.
func (s Series) Sum() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// yearTime converts a calendar year to its series key, the year-start
// instant in UTC.
func yearTime(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
