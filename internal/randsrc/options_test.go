package randsrc

import (
	"math/rand/v2"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("secure")
	require.NoError(t, err)
	require.Equal(t, KindSecure, k)
	k, err = ParseKind("")
	require.NoError(t, err)
	require.Equal(t, KindUniform, k)
	_, err = ParseKind("mersenne")
	require.Error(t, err)
}

func TestOptionsFromTOML(t *testing.T) {
	var o Options
	_, err := toml.Decode("kind = \"uniform\"\nseed = 42\n", &o)
	require.NoError(t, err)
	require.Equal(t, KindUniform, o.Kind)
	require.NotNil(t, o.Seed)
	require.Equal(t, int64(42), *o.Seed)

	src, err := New(o)
	require.NoError(t, err)
	defer src.Close()
	ref := NewSeededUniform(42)
	defer ref.Close()
	require.Equal(t, sampleInts(t, ref, 5, 0, 10), sampleInts(t, src, 5, 0, 10))

	_, err = toml.Decode("kind = \"quantum\"\n", &o)
	require.Error(t, err)
}

func TestNewSecure(t *testing.T) {
	src, err := New(Options{Kind: KindSecure})
	require.NoError(t, err)
	defer src.Close()
	require.IsType(t, (*Secure)(nil), src)
}

func TestOptionsClone(t *testing.T) {
	seed := int64(3)
	o := Options{Seed: &seed}
	c := o.Clone()
	*c.Seed = 4
	require.Equal(t, int64(3), *o.Seed)
}

func TestStdSource(t *testing.T) {
	a := rand.New(StdSource(NewSeededUniform(11)))
	b := rand.New(StdSource(NewSeededUniform(11)))
	for range 100 {
		require.Equal(t, a.NormFloat64(), b.NormFloat64())
	}

	src := NewSeededUniform(11)
	r := rand.New(StdSource(src))
	require.Len(t, r.Perm(10), 10)
	require.NoError(t, src.Close())
	require.Panics(t, func() { r.Uint64() })
}
