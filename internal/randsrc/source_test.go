package randsrc

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const (
	repeatTests          = 997
	integerInterval      = 9_973
	integerComboInterval = 9_999_991
	doubleComboInterval  = 9_999_991_000.0 + 1.0/7.0
	minDoubleValue       = -1_000_000_000_000.0
	maxDoubleValue       = 1_000_000_000_000.0
)

type sourceFactory struct {
	name string
	new  func(t testing.TB) Source
}

func sourceFactories() []sourceFactory {
	return []sourceFactory{
		{name: "uniform", new: func(testing.TB) Source { return NewUniform() }},
		{name: "seeded", new: func(testing.TB) Source { return NewSeededUniform(42) }},
		{name: "secure", new: func(t testing.TB) Source {
			s, err := NewSecure()
			require.NoError(t, err)
			return s
		}},
	}
}

// forEachSource runs f as a subtest against every implementation.
func forEachSource(t *testing.T, f func(t *testing.T, src Source)) {
	for _, fac := range sourceFactories() {
		t.Run(fac.name, func(t *testing.T) {
			src := fac.new(t)
			t.Cleanup(func() { _ = src.Close() })
			f(t, src)
		})
	}
}

// slack is the rounding tolerance for float ranges.
func slack(min, max float64) float64 {
	return 1e-12 * math.Max(1, math.Max(math.Abs(min), math.Abs(max)))
}

func TestInt(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for range repeatTests {
			v, err := src.Int()
			require.NoError(t, err)
			require.GreaterOrEqual(t, v, 0)
			require.Less(t, v, math.MaxInt)
		}
	})
}

func TestIntNNegative(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		_, err := src.IntN(-13)
		require.ErrorIs(t, err, ErrRange)
	})
}

func TestIntNZero(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for range repeatTests {
			v, err := src.IntN(0)
			require.NoError(t, err)
			require.Equal(t, 0, v)
		}
	})
}

func TestIntN(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for max := 1; max <= math.MaxInt32-integerInterval; max += integerInterval {
			v, err := src.IntN(max)
			require.NoError(t, err)
			if v < 0 || v >= max {
				t.Fatalf("value out of range: max = %v, got = %v", max, v)
			}
		}
		for _, max := range []int{1 << 32, 1<<32 + 1, 1 << 40, 3 << 50, math.MaxInt} {
			for range repeatTests {
				v, err := src.IntN(max)
				require.NoError(t, err)
				if v < 0 || v >= max {
					t.Fatalf("value out of range: max = %v, got = %v", max, v)
				}
			}
		}
	})
}

func TestIntRangeInvalid(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		_, err := src.IntRange(9, 8)
		require.ErrorIs(t, err, ErrRange)
		_, err = src.IntRange(math.MaxInt, math.MinInt)
		require.ErrorIs(t, err, ErrRange)
	})
}

func TestIntRangeSame(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for minMax := math.MinInt32; minMax <= math.MaxInt32-integerInterval; minMax += integerInterval * 101 {
			v, err := src.IntRange(minMax, minMax)
			require.NoError(t, err)
			require.Equal(t, minMax, v)
		}
		for _, minMax := range []int{math.MinInt, -1, 0, 5, math.MaxInt} {
			v, err := src.IntRange(minMax, minMax)
			require.NoError(t, err)
			require.Equal(t, minMax, v)
		}
	})
}

func TestIntRange(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		const maxValue = math.MaxInt32 - 2*integerComboInterval
		for min := math.MinInt32; min <= maxValue; min += integerComboInterval {
			for max := min + integerComboInterval; max <= maxValue; max += integerComboInterval {
				v, err := src.IntRange(min, max)
				require.NoError(t, err)
				if v < min || v >= max {
					t.Fatalf("value out of range: min = %v, max = %v, got = %v", min, max, v)
				}
			}
		}
	})
}

func TestIntRangeFullWidth(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		var neg, pos bool
		for range repeatTests {
			v, err := src.IntRange(math.MinInt, math.MaxInt)
			require.NoError(t, err)
			require.Less(t, v, math.MaxInt)
			neg = neg || v < 0
			pos = pos || v > 0
		}
		require.True(t, neg, "no negative values in full range")
		require.True(t, pos, "no positive values in full range")
	})
}

func TestFloat64(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for range repeatTests {
			v, err := src.Float64()
			require.NoError(t, err)
			if v < 0 || v > 1 {
				t.Fatalf("value out of range: got = %v", v)
			}
		}
	})
}

func TestFloat64N(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for max := 0.0; max <= maxDoubleValue; max += doubleComboInterval / 1000 {
			v, err := src.Float64N(max)
			require.NoError(t, err)
			if v < 0 || v > max+slack(0, max) {
				t.Fatalf("value out of range: max = %v, got = %v", max, v)
			}
		}
		_, err := src.Float64N(-1)
		require.ErrorIs(t, err, ErrRange)
	})
}

func TestFloat64RangeInvalid(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for _, r := range [][2]float64{
			{99, 88},
			{math.NaN(), 1},
			{0, math.NaN()},
			{math.Inf(-1), 0},
			{0, math.Inf(1)},
		} {
			_, err := src.Float64Range(r[0], r[1])
			require.ErrorIs(t, err, ErrRange, "range [%v, %v]", r[0], r[1])
		}
	})
}

func TestFloat64Range(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for min := minDoubleValue; min <= maxDoubleValue; min += doubleComboInterval {
			for max := min; max <= maxDoubleValue; max += doubleComboInterval {
				v, err := src.Float64Range(min, max)
				require.NoError(t, err)
				eps := slack(min, max)
				if v < min-eps || v > max+eps {
					t.Fatalf("value out of range: min = %v, max = %v, got = %v", min, max, v)
				}
			}
		}
	})
}

func TestFloat64RangeHuge(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for range repeatTests {
			v, err := src.Float64Range(-math.MaxFloat64, math.MaxFloat64)
			require.NoError(t, err)
			require.False(t, math.IsInf(v, 0) || math.IsNaN(v), "got = %v", v)
		}
	})
}

func TestRead(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		for _, n := range []int{0, 1, 7, 8, 9, 33, 1000} {
			buf := make([]byte, n)
			got, err := src.Read(buf)
			require.NoError(t, err)
			require.Equal(t, n, got)
		}

		buf := make([]byte, 1000)
		_, err := src.Read(buf)
		require.NoError(t, err)
		counts := make(map[byte]int)
		for _, b := range buf {
			counts[b]++
		}
		if len(counts) < 200 {
			t.Errorf("poor distribution: only %d unique values out of 256 possible", len(counts))
		}
	})
}

func TestConcurrent(t *testing.T) {
	const (
		workers = 16
		calls   = 2_000
	)
	forEachSource(t, func(t *testing.T, src Source) {
		var produced atomic.Int64
		var eg errgroup.Group
		for w := range workers {
			eg.Go(func() error {
				buf := make([]byte, 16)
				for i := range calls {
					var err error
					switch (w + i) % 4 {
					case 0:
						_, err = src.IntRange(-100, 100)
					case 1:
						_, err = src.IntN(1 << 40)
					case 2:
						_, err = src.Float64Range(-1, 1)
					case 3:
						_, err = src.Read(buf)
					}
					if err != nil {
						return err
					}
					produced.Add(1)
				}
				return nil
			})
		}
		require.NoError(t, eg.Wait())
		require.Equal(t, int64(workers*calls), produced.Load())
	})
}

func TestClose(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		require.NoError(t, src.Close())

		_, err := src.Int()
		require.ErrorIs(t, err, ErrReleased)
		_, err = src.IntN(10)
		require.ErrorIs(t, err, ErrReleased)
		_, err = src.IntRange(5, 5)
		require.ErrorIs(t, err, ErrReleased)
		_, err = src.IntRange(9, 8)
		require.ErrorIs(t, err, ErrReleased)
		_, err = src.Float64()
		require.ErrorIs(t, err, ErrReleased)
		_, err = src.Float64N(10)
		require.ErrorIs(t, err, ErrReleased)
		_, err = src.Float64Range(1, 2)
		require.ErrorIs(t, err, ErrReleased)
		n, err := src.Read(make([]byte, 8))
		require.ErrorIs(t, err, ErrReleased)
		require.Equal(t, 0, n)

		require.NoError(t, src.Close())
	})
}

func TestCloseWhileSampling(t *testing.T) {
	forEachSource(t, func(t *testing.T, src Source) {
		const workers = 8
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		start := make(chan struct{})
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				for {
					_, err := src.IntN(1000)
					if err != nil {
						errs <- err
						return
					}
				}
			}()
		}
		close(start)
		require.NoError(t, src.Close())
		require.NoError(t, src.Close())
		wg.Wait()
		close(errs)
		for err := range errs {
			if !errors.Is(err, ErrReleased) {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	})
}
