package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkstack/circuitx"
	"github.com/zkstack/circuitx/builder"
	"github.com/zkstack/circuitx/circuit"
	"github.com/zkstack/circuitx/test"
)

type addCircuit struct{}

func (addCircuit) Define(api *builder.Builder) error {
	a := api.Read()
	b := api.Read()
	api.Write(api.Add(a, b))
	return nil
}

type xorCircuit struct{}

func (xorCircuit) Define(api *builder.Builder) error {
	x := api.ReadByte()
	y := api.ReadByte()
	api.WriteByte(api.Xor(x, y))
	return nil
}

func compileAdd(t *testing.T) *circuit.Circuit {
	t.Helper()
	c, err := circuitx.Compile(addCircuit{})
	require.NoError(t, err)
	return c
}

func TestAddScenario(t *testing.T) {
	assert := test.NewAssert(t)
	c := compileAdd(t)

	in := c.Input()
	in.Write(2)
	in.Write(2)
	proof, out := assert.ProveSucceeded(c, in)
	require.Equal(t, "4", c.Data.Field.String(out.Read()))

	// the same proof must verify against a deserialized copy
	copied := assert.RoundTrip(c)
	require.NoError(t, copied.Verify(proof, in, out))
	require.Equal(t, c.ID(), copied.ID())
}

func TestIdentity(t *testing.T) {
	c := compileAdd(t)
	id := c.ID()
	require.Len(t, id, circuit.IDLen)
	for _, r := range id {
		require.Contains(t, "0123456789abcdef", string(r))
	}
	// identity is structural, not witness dependent
	require.Equal(t, id, compileAdd(t).ID())
}

func TestValueMismatch(t *testing.T) {
	c := compileAdd(t)
	in := c.Input()
	in.Write(2)
	in.Write(2)
	proof, out, err := c.Prove(in)
	require.NoError(t, err)

	wrongIn := c.Input()
	wrongIn.Write(2)
	wrongIn.Write(3)
	require.ErrorIs(t, c.Verify(proof, wrongIn, out), circuit.ErrValueMismatch)

	shortIn := c.Input()
	shortIn.Write(2)
	require.ErrorIs(t, c.Verify(proof, shortIn, out), circuit.ErrValueMismatch)
}

func TestProofRejected(t *testing.T) {
	c := compileAdd(t)
	in := c.Input()
	in.Write(2)
	in.Write(2)
	proof, out, err := c.Prove(in)
	require.NoError(t, err)

	bad := *proof
	bad.OpeningProof.PowWitness = c.Data.Field.FromInterface(12345)
	require.ErrorIs(t, c.Verify(&bad, in, out), circuit.ErrProofRejected)
}

func TestInputArity(t *testing.T) {
	c := compileAdd(t)
	in := c.Input()
	in.Write(2)
	_, _, err := c.Prove(in)
	require.Error(t, err)
}

func TestByteIO(t *testing.T) {
	assert := test.NewAssert(t)
	c, err := circuitx.Compile(xorCircuit{})
	require.NoError(t, err)

	in := c.Input()
	require.NoError(t, in.WriteByte(0xa5))
	require.NoError(t, in.WriteByte(0x3c))
	proof, out := assert.ProveSucceeded(c, in)

	got, err := out.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xa5^0x3c), got)

	copied := assert.RoundTrip(c)
	require.NoError(t, copied.Verify(proof, in, out))
}
