package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkstack/circuitx/builder"
	"github.com/zkstack/circuitx/fri"
	"github.com/zkstack/circuitx/test"
)

func TestArithmetic(t *testing.T) {
	b := builder.NewBuilder()
	x := b.Read()
	y := b.Read()
	b.Write(b.Sub(b.Mul(x, y), b.Constant(5)))
	c, err := b.Build()
	require.NoError(t, err)

	assert := test.NewAssert(t)
	in := c.Input()
	in.Write(3)
	in.Write(4)
	_, out := assert.ProveSucceeded(c, in)
	require.Equal(t, "7", c.Data.Field.String(out.Read()))
}

func TestAssertIsEqual(t *testing.T) {
	b := builder.NewBuilder()
	x := b.Read()
	y := b.Read()
	b.AssertIsEqual(x, y)
	b.Write(b.Add(x, y))
	c, err := b.Build()
	require.NoError(t, err)

	assert := test.NewAssert(t)
	good := c.Input()
	good.Write(6)
	good.Write(6)
	assert.ProveSucceeded(c, good)

	bad := c.Input()
	bad.Write(6)
	bad.Write(7)
	assert.ProveFailed(c, bad)
}

func TestMixedIOPanics(t *testing.T) {
	b := builder.NewBuilder()
	b.Read()
	require.Panics(t, func() { b.ReadByte() })
}

func TestAddVirtualFriProof(t *testing.T) {
	params := &fri.Params{
		Config: fri.Config{
			RateBits:        1,
			CapHeight:       1,
			ProofOfWorkBits: 8,
			NumQueryRounds:  2,
		},
		DegreeBits:         3,
		ReductionArityBits: []int{1, 1},
	}
	leafCounts := []int{2, 3}

	b := builder.NewBuilder()
	before := len(b.VirtualSlots(0))
	require.Equal(t, 0, before)

	pt, err := b.AddVirtualFriProof(leafCounts, params)
	require.NoError(t, err)
	require.Len(t, pt.CommitPhaseMerkleCaps, 2)
	require.Len(t, pt.QueryRoundProofs, params.Config.NumQueryRounds)
	require.Len(t, pt.FinalPoly.Coeffs, params.FinalPolyLen())

	// the proof occupies exactly its computed slot count
	n, err := fri.ProofSlotCount(leafCounts, params)
	require.NoError(t, err)
	next := b.VirtualSlots(1)[0]
	require.Equal(t, n, next.Index)

	// target and variable forms are interconvertible without loss
	require.Equal(t, pt, fri.ProofTargetOf(pt.Variable()))
}

func TestMalformedFriParams(t *testing.T) {
	params := &fri.Params{
		Config:             fri.Config{RateBits: 0, CapHeight: 8, NumQueryRounds: 1},
		DegreeBits:         2,
		ReductionArityBits: []int{1},
	}
	b := builder.NewBuilder()
	_, err := b.AddVirtualFriProof([]int{1}, params)
	require.ErrorIs(t, err, fri.ErrGeometry)
}
