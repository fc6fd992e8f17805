package mon

import (
	"math"
	"sort"
	"sync/atomic"
	"time"
)

const (
	bufferShift = 8 // 256 elements
	bufferElems = 1 << bufferShift
	bufferMask  = bufferElems - 1
)

// Capacity is the number of most recent observations a Histogram keeps.
const Capacity = bufferElems

// Histogram is a ring histogram of durations that have been observed. The
// zero value is ready to use.
type Histogram struct {
	total int64
	durs  [bufferElems]int64
}

// Observe stores the duration in the ring buffer, incrementing the count.
func (h *Histogram) Observe(dur time.Duration) {
	loc := &h.durs[(atomic.AddInt64(&h.total, 1)-1)&bufferMask]
	atomic.StoreInt64(loc, int64(dur))
}

// Total returns the amount of times a duration has been added to the histogram.
func (h *Histogram) Total() int64 { return atomic.LoadInt64(&h.total) }

// dursLen returns the number of valid entries in the durs buffer.
func (h *Histogram) dursLen() int {
	n := h.Total()
	if n >= bufferElems {
		return bufferElems
	}
	return int(n)
}

// Durations returns a copy of observed durations in nanoseconds.
func (h *Histogram) Durations() []int64 {
	out := make([]int64, h.dursLen())
	for i := range out {
		out[i] = atomic.LoadInt64(&h.durs[i])
	}
	return out
}

// Summary describes the retained durations. All times are in nanoseconds.
type Summary struct {
	N      int     `json:"n"`
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Stddev float64 `json:"stddev"`
}

// Summary computes order statistics over the retained durations. It returns
// the zero Summary if nothing has been observed.
func (h *Histogram) Summary() Summary {
	durs := h.Durations()
	if len(durs) == 0 {
		return Summary{}
	}
	sort.Slice(durs, func(i, j int) bool { return durs[i] < durs[j] })

	var sum float64
	for _, d := range durs {
		sum += float64(d)
	}
	mean := sum / float64(len(durs))

	var sq float64
	for _, d := range durs {
		diff := float64(d) - mean
		sq += diff * diff
	}

	median := float64(durs[len(durs)/2])
	if len(durs)%2 == 0 {
		median = (float64(durs[len(durs)/2-1]) + float64(durs[len(durs)/2])) / 2
	}

	// sample standard deviation; a single sample has none.
	var stddev float64
	if len(durs) > 1 {
		stddev = math.Sqrt(sq / float64(len(durs)-1))
	}

	return Summary{
		N:      len(durs),
		Min:    durs[0],
		Max:    durs[len(durs)-1],
		Mean:   mean,
		Median: median,
		Stddev: stddev,
	}
}
