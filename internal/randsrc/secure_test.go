package randsrc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecureNonDeterministic(t *testing.T) {
	a, err := NewSecure()
	require.NoError(t, err)
	defer a.Close()
	b, err := NewSecure()
	require.NoError(t, err)
	defer b.Close()

	require.NotEqual(t, sampleInts(t, a, 256, 0, 1<<30), sampleInts(t, b, 256, 0, 1<<30))
}

func TestSecureRejectsSeed(t *testing.T) {
	seed := int64(42)
	_, err := New(Options{Kind: KindSecure, Seed: &seed})
	require.ErrorIs(t, err, ErrSeedUnsupported)
}

func TestSecureZeroWidthDrawsNothing(t *testing.T) {
	s, err := NewSecure()
	require.NoError(t, err)
	defer s.Close()

	before := s.ks.read
	for range 10 {
		v, err := s.IntRange(5, 5)
		require.NoError(t, err)
		require.Equal(t, 5, v)
	}
	require.Equal(t, before, s.ks.read)

	_, err = s.IntRange(0, 10)
	require.NoError(t, err)
	require.Greater(t, s.ks.read, before)
}

func TestSecureCloseWipesKey(t *testing.T) {
	s, err := NewSecure()
	require.NoError(t, err)
	ks := s.ks
	require.NoError(t, s.Close())
	require.Nil(t, s.ks)
	require.Equal(t, [32]byte{}, ks.key)
	require.Nil(t, ks.cipher)
}

func TestNonceInc(t *testing.T) {
	var n nonce
	n.inc()
	require.Equal(t, nonce{1}, n)

	n = nonce{0xff, 0xff, 0xff, 0xff}
	n.inc()
	require.Equal(t, nonce{0, 0, 0, 0, 1}, n)

	n = nonce{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	n.inc()
	require.Equal(t, nonce{0, 0, 0, 0, 0, 0, 0, 0, 1}, n)
}

func TestKeystreamReseedsByVolume(t *testing.T) {
	k, err := newKeystream()
	require.NoError(t, err)
	require.Equal(t, nonce{1}, k.nonce)

	buf := make([]byte, maxKeystreamRead+10)
	k.fill(buf)
	require.Equal(t, nonce{2}, k.nonce)
	require.Equal(t, 10, k.read)
}

func TestKeystreamBounded(t *testing.T) {
	k, err := newKeystream()
	require.NoError(t, err)

	const (
		buckets = 7
		samples = 70_000
	)
	var counts [buckets]int
	for range samples {
		v := k.bounded(buckets)
		require.Less(t, v, uint64(buckets))
		counts[v]++
	}
	for i, c := range counts {
		if c < samples/buckets*9/10 || c > samples/buckets*11/10 {
			t.Errorf("bucket %v is skewed: got = %v, expected about %v", i, c, samples/buckets)
		}
	}

	for _, n := range []uint64{1, 2, 1 << 32, 1<<32 + 1, 1 << 63, 1<<64 - 1} {
		for range 100 {
			require.Less(t, k.bounded(n), n)
		}
	}
}

func TestKeystreamUnitFloat(t *testing.T) {
	k, err := newKeystream()
	require.NoError(t, err)
	for range repeatTests {
		f := k.unitFloat()
		require.True(t, f >= 0 && f < 1, "got = %v", f)
	}
}
