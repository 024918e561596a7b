package randsrc

import (
	"math"
	"sync"
)

// Secure is a cryptographically secure source. It cannot be seeded.
type Secure struct {
	mu sync.Mutex
	ks *keystream
}

var _ Source = (*Secure)(nil)

// NewSecure returns a Secure keyed from crypto/rand. It fails only if the operating system
// cannot provide entropy.
func NewSecure() (*Secure, error) {
	ks, err := newKeystream()
	if err != nil {
		return nil, err
	}
	return &Secure{ks: ks}, nil
}

func (s *Secure) with(f func(ks *keystream) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ks == nil {
		return ErrReleased
	}
	return f(s.ks)
}

func (s *Secure) Int() (int, error) {
	return s.IntRange(0, math.MaxInt)
}

func (s *Secure) IntN(max int) (int, error) {
	return s.IntRange(0, max)
}

func (s *Secure) IntRange(min, max int) (int, error) {
	var res int
	err := s.with(func(ks *keystream) error {
		span, err := intSpan(min, max)
		if err != nil {
			return err
		}
		if span == 0 {
			res = min
			return nil
		}
		res = offset(min, ks.bounded(span))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return res, nil
}

// bounded returns a uniform value in [0, n) for n > 0. Spans that fit in 32 bits consume
// four bytes per draw, wider spans consume eight. Draws below 2^w mod n are rejected so that
// the reduction modulo n carries no bias.
func (k *keystream) bounded(n uint64) uint64 {
	if n <= 1<<32 {
		thresh := (1 << 32) % n
		for {
			v := uint64(k.uint32())
			if v >= thresh {
				return v % n
			}
		}
	}
	thresh := -n % n
	for {
		v := k.uint64()
		if v >= thresh {
			return v % n
		}
	}
}

// unitFloat returns a value in [0, 1) carrying the full 53-bit mantissa.
func (k *keystream) unitFloat() float64 {
	return float64(k.uint64()>>11) / (1 << 53)
}

func (s *Secure) Float64() (float64, error) {
	return s.Float64Range(0, 1)
}

func (s *Secure) Float64N(max float64) (float64, error) {
	return s.Float64Range(0, max)
}

func (s *Secure) Float64Range(min, max float64) (float64, error) {
	var res float64
	err := s.with(func(ks *keystream) error {
		if err := checkFloatRange(min, max); err != nil {
			return err
		}
		res = scale(ks.unitFloat(), min, max)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return res, nil
}

// Read fills p with random bytes. It never returns a short read.
func (s *Secure) Read(p []byte) (int, error) {
	err := s.with(func(ks *keystream) error {
		ks.fill(p)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close wipes the key material. Subsequent sampling calls return ErrReleased.
func (s *Secure) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ks != nil {
		s.ks.wipe()
		s.ks = nil
	}
	return nil
}
