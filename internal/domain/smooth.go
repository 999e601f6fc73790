package domain

// Smooth computes a rolling mean over the series. For each index i the
// output value is the arithmetic mean of the values at indices
// [i-before, i+after], clipped to the series bounds. There is no padding
// and no truncation, so the output has the same length and time sequence
// as the input. Partial windows at the edges average whatever points fall
// inside.
//
// The two report modes are a trailing window (before=w, after=0) for the
// annual acreage series and a symmetric window (before=after=n) for the
// daily climate series. before=after=0 is the identity. A series of length
// 0 or 1 is returned unchanged.
func Smooth(s Series, before, after int) Series {
	if len(s) <= 1 {
		return s
	}
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}

	out := make(Series, len(s))
	for i := range s {
		lo := i - before
		if lo < 0 {
			lo = 0
		}
		hi := i + after
		if hi > len(s)-1 {
			hi = len(s) - 1
		}

		var sum float64
		for j := lo; j <= hi; j++ {
			sum += s[j].Value
		}
		out[i] = Point{Time: s[i].Time, Value: sum / float64(hi-lo+1)}
	}
	return out
}
