package video

import "math"

// sampleEpsilon absorbs float rounding at the end of the range so that an end
// time landing exactly on a step is still sampled.
const sampleEpsilon = 1e-6

// SampleRange describes the timestamps at which frames are requested: Start,
// Start+Interval, Start+2*Interval, ... up to and including End. The end of
// the range is inclusive (within epsilon).
//
// Timestamps are computed as Start + i*Interval rather than by repeated
// addition, so Count matches what Each yields exactly.
type SampleRange struct {
	Start    float64
	End      float64
	Interval float64
}

// Count returns the number of timestamps in the range:
// floor((End-Start)/Interval) + 1
func (r SampleRange) Count() int {
	if r.Interval <= 0 || r.End < r.Start {
		return 0
	}
	return int(math.Floor((r.End-r.Start+sampleEpsilon)/r.Interval)) + 1
}

// Each calls fn for every timestamp in the range, in order, until fn returns
// false. The sequence is generated lazily; nothing is retained between calls,
// so Each may be invoked more than once.
func (r SampleRange) Each(fn func(atSeconds float64) bool) {
	if r.Interval <= 0 {
		return
	}
	for i := 0; ; i++ {
		t := r.Start + float64(i)*r.Interval
		if t > r.End+sampleEpsilon {
			return
		}
		if !fn(t) {
			return
		}
	}
}
