package randstat

import (
	"fmt"

	"github.com/alex65536/tsrand/internal/randsrc"
)

type Report struct {
	Summary   Summary
	Histogram *Histogram
	// Number of samples outside the requested range.
	Violations int
}

func (r Report) PValue() float64 {
	return r.Histogram.PValue()
}

// Uniform reports whether the sample stayed inside its range and uniformity is not rejected
// at significance level alpha.
func (r Report) Uniform(alpha float64) bool {
	return r.Violations == 0 && r.PValue() >= alpha
}

// CheckInts draws samples from src.IntRange(min, max).
func CheckInts(src randsrc.Source, min, max, samples, buckets int) (Report, error) {
	h, err := NewIntHistogram(min, max, buckets)
	if err != nil {
		return Report{}, fmt.Errorf("histogram: %w", err)
	}
	r := Report{Histogram: h}
	for range samples {
		v, err := src.IntRange(min, max)
		if err != nil {
			return Report{}, fmt.Errorf("sample: %w", err)
		}
		r.Summary.Add(float64(v))
		if !h.AddInt(v) {
			r.Violations++
		}
	}
	return r, nil
}

// CheckFloats draws samples from src.Float64Range(min, max).
func CheckFloats(src randsrc.Source, min, max float64, samples, buckets int) (Report, error) {
	h, err := NewFloatHistogram(min, max, buckets)
	if err != nil {
		return Report{}, fmt.Errorf("histogram: %w", err)
	}
	r := Report{Histogram: h}
	for range samples {
		v, err := src.Float64Range(min, max)
		if err != nil {
			return Report{}, fmt.Errorf("sample: %w", err)
		}
		r.Summary.Add(v)
		if !h.Add(v) {
			r.Violations++
		}
	}
	return r, nil
}
