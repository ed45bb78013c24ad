package poseidon

import (
	"testing"

	"github.com/consensys/gnark/constraint"
	"github.com/stretchr/testify/require"

	"github.com/zkstack/circuitx/field/goldilocks"
)

func elems(vals ...uint64) []constraint.Element {
	f := &goldilocks.Field{}
	out := make([]constraint.Element, len(vals))
	for i, v := range vals {
		out[i] = f.FromInterface(v)
	}
	return out
}

func TestHashDeterministic(t *testing.T) {
	p := NewParams()
	a := Hash(p, elems(1, 2, 3))
	b := Hash(p, elems(1, 2, 3))
	require.Equal(t, a, b)

	c := Hash(p, elems(1, 2, 4))
	require.NotEqual(t, a, c)
}

func TestHashInputLengths(t *testing.T) {
	p := NewParams()
	empty := Hash(p, nil)
	one := Hash(p, elems(7))
	long := Hash(p, elems(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13))
	require.NotEqual(t, empty, one)
	require.NotEqual(t, one, long)
}

func TestSpongeStream(t *testing.T) {
	p := NewParams()
	s1 := NewSponge(p)
	s2 := NewSponge(p)
	for _, e := range elems(9, 8, 7) {
		s1.Absorb(e)
		s2.Absorb(e)
	}
	for i := 0; i < 20; i++ {
		require.Equal(t, s1.Squeeze(), s2.Squeeze(), "position %d", i)
	}

	s3 := NewSponge(p)
	for _, e := range elems(9, 8, 6) {
		s3.Absorb(e)
	}
	require.NotEqual(t, s1.Squeeze(), s3.Squeeze())
}
