package video

import (
	"math"
	"testing"
)

func TestSampleRangeCount(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		end      float64
		interval float64
		want     int
	}{
		{name: "unit interval zero to five", start: 0, end: 5, interval: 1, want: 6},
		{name: "single sample", start: 0, end: 0.5, interval: 1, want: 1},
		{name: "end not on a step", start: 0, end: 5.5, interval: 2, want: 3},
		{name: "fractional interval", start: 0, end: 1, interval: 0.25, want: 5},
		{name: "offset start", start: 5, end: 15, interval: 5, want: 3},
		{name: "end before start", start: 10, end: 5, interval: 1, want: 0},
		{name: "zero interval", start: 0, end: 5, interval: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := SampleRange{Start: tt.start, End: tt.end, Interval: tt.interval}
			if got := r.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSampleRangeEach(t *testing.T) {
	r := SampleRange{Start: 0, End: 5, Interval: 1}

	var got []float64
	r.Each(func(at float64) bool {
		got = append(got, at)
		return true
	})

	want := []float64{0, 1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("yielded %d timestamps, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("timestamp[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}

func TestSampleRangeEachInclusiveEnd(t *testing.T) {
	// End landing exactly on a step is included despite float rounding.
	r := SampleRange{Start: 0, End: 0.3, Interval: 0.1}

	var got []float64
	r.Each(func(at float64) bool {
		got = append(got, at)
		return true
	})

	if len(got) != 4 {
		t.Fatalf("yielded %d timestamps, want 4: %v", len(got), got)
	}
	if math.Abs(got[3]-0.3) > 1e-9 {
		t.Errorf("last timestamp = %g, want 0.3", got[3])
	}
}

func TestSampleRangeEachStopsEarly(t *testing.T) {
	r := SampleRange{Start: 0, End: 100, Interval: 1}

	count := 0
	r.Each(func(at float64) bool {
		count++
		return count < 3
	})

	if count != 3 {
		t.Errorf("yielded %d timestamps after early stop, want 3", count)
	}
}

func TestSampleRangeCountMatchesEach(t *testing.T) {
	ranges := []SampleRange{
		{Start: 0, End: 5, Interval: 1},
		{Start: 0, End: 10, Interval: 3},
		{Start: 2.5, End: 9.1, Interval: 0.7},
		{Start: 5, End: 15, Interval: 5},
	}

	for _, r := range ranges {
		yielded := 0
		r.Each(func(float64) bool {
			yielded++
			return true
		})
		if yielded != r.Count() {
			t.Errorf("range %+v: Each yielded %d, Count() = %d", r, yielded, r.Count())
		}
	}
}
