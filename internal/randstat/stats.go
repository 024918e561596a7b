package randstat

import (
	"fmt"
	"math"
	"math/bits"
)

// Summary accumulates count, mean, standard deviation and extrema of a sample.
type Summary struct {
	Count int
	Mean  float64
	Min   float64
	Max   float64
	m2    float64
}

func (s *Summary) Add(v float64) {
	if s.Count == 0 {
		s.Min, s.Max = v, v
	}
	s.Count++
	s.Min = min(s.Min, v)
	s.Max = max(s.Max, v)
	// Welford's online update.
	d := v - s.Mean
	s.Mean += d / float64(s.Count)
	s.m2 += d * (v - s.Mean)
}

func (s Summary) StdDev() float64 {
	if s.Count < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.Count-1))
}

// Histogram counts samples per bucket and compares them against the expected bucket
// probabilities.
type Histogram struct {
	Counts      []int
	probs       []float64
	floatBucket func(v float64) (int, bool)
	intBucket   func(v int) (int, bool)
	total       int
	outside     int
}

// NewFloatHistogram splits [min, max] into equal-width buckets. Samples beyond the bounds by
// no more than rounding error count towards the edge buckets.
func NewFloatHistogram(min, max float64, buckets int) (*Histogram, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("non-positive buckets")
	}
	if !(max > min) {
		return nil, fmt.Errorf("empty range [%v, %v]", min, max)
	}
	probs := make([]float64, buckets)
	for i := range probs {
		probs[i] = 1.0 / float64(buckets)
	}
	width := max - min
	eps := 1e-12 * math.Max(1, math.Max(math.Abs(min), math.Abs(max)))
	return &Histogram{
		Counts: make([]int, buckets),
		probs:  probs,
		floatBucket: func(v float64) (int, bool) {
			if v < min-eps || v > max+eps || math.IsNaN(v) {
				return 0, false
			}
			idx := int(float64(buckets) * ((v - min) / width))
			return clamp(idx, buckets), true
		},
	}, nil
}

// NewIntHistogram splits [min, max) into buckets holding as equal a number of integers as
// possible. The number of buckets is reduced to the range width if needed.
func NewIntHistogram(min, max, buckets int) (*Histogram, error) {
	if buckets <= 0 {
		return nil, fmt.Errorf("non-positive buckets")
	}
	if max <= min {
		return nil, fmt.Errorf("empty range [%v, %v)", min, max)
	}
	span := uint64(max) - uint64(min)
	b := uint64(buckets)
	if span < b {
		b = span
	}
	// lower(i) is the first integer offset that falls into bucket i.
	lower := func(i uint64) uint64 {
		hi, lo := bits.Mul64(i, span)
		lo, c := bits.Add64(lo, b-1, 0)
		q, _ := bits.Div64(hi+c, lo, b)
		return q
	}
	probs := make([]float64, b)
	for i := range b {
		probs[i] = float64(lower(i+1)-lower(i)) / float64(span)
	}
	return &Histogram{
		Counts: make([]int, b),
		probs:  probs,
		intBucket: func(v int) (int, bool) {
			if v < min || v >= max {
				return 0, false
			}
			hi, lo := bits.Mul64(uint64(v)-uint64(min), b)
			q, _ := bits.Div64(hi, lo, span)
			return int(q), true
		},
	}, nil
}

func clamp(idx, n int) int {
	return max(0, min(idx, n-1))
}

// Add records v and reports whether it was inside the histogram range. It panics on integer
// histograms.
func (h *Histogram) Add(v float64) bool {
	if h.floatBucket == nil {
		panic("float sample added to integer histogram")
	}
	return h.record(h.floatBucket(v))
}

// AddInt records v and reports whether it was inside the histogram range. It panics on float
// histograms.
func (h *Histogram) AddInt(v int) bool {
	if h.intBucket == nil {
		panic("integer sample added to float histogram")
	}
	return h.record(h.intBucket(v))
}

func (h *Histogram) record(idx int, ok bool) bool {
	if !ok {
		h.outside++
		return false
	}
	h.Counts[idx]++
	h.total++
	return true
}

func (h *Histogram) Total() int   { return h.total }
func (h *Histogram) Outside() int { return h.outside }

// ChiSquare returns Pearson's statistic and its degrees of freedom.
func (h *Histogram) ChiSquare() (float64, int) {
	if h.total == 0 {
		return 0, 0
	}
	var stat float64
	df := -1
	for i, c := range h.Counts {
		if h.probs[i] == 0 {
			continue
		}
		df++
		exp := float64(h.total) * h.probs[i]
		d := float64(c) - exp
		stat += d * d / exp
	}
	return stat, max(df, 0)
}

// PValue returns the probability that a uniform source yields a chi-square statistic at
// least as large as the observed one.
func (h *Histogram) PValue() float64 {
	stat, df := h.ChiSquare()
	return chiSquareUpperTail(stat, df)
}

// chiSquareUpperTail uses the Wilson-Hilferty normal approximation, which is accurate to a
// few parts in a thousand for df >= 3.
func chiSquareUpperTail(x float64, df int) float64 {
	if df <= 0 {
		return 1
	}
	if x <= 0 {
		return 1
	}
	k := float64(df)
	v := 2.0 / (9.0 * k)
	z := (math.Cbrt(x/k) - (1 - v)) / math.Sqrt(v)
	return 0.5 * math.Erfc(z/math.Sqrt2)
}
