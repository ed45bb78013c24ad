package backend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkstack/circuitx/field/goldilocks"
	"github.com/zkstack/circuitx/fri"
	"github.com/zkstack/circuitx/vars"
)

func testFriParams() fri.Params {
	return fri.Params{
		Config: fri.Config{
			RateBits:        1,
			CapHeight:       1,
			ProofOfWorkBits: 8,
			NumQueryRounds:  2,
		},
		DegreeBits:         3,
		ReductionArityBits: []int{1, 1},
	}
}

// addSystem wires out = a + b with all three wires public.
func addSystem() *System {
	return &System{
		Field:    &goldilocks.Field{},
		NumWires: 3,
		Gates: []Gate{
			&AddGate{A: vars.Slot{Index: 0}, B: vars.Slot{Index: 1}, Out: vars.Slot{Index: 2}},
		},
		Generators: []Generator{
			&AddGenerator{A: vars.Slot{Index: 0}, B: vars.Slot{Index: 1}, Out: vars.Slot{Index: 2}},
		},
		PublicWires:      []int{0, 1, 2},
		FriParams:        testFriParams(),
		OracleLeafCounts: []int{2, 3},
	}
}

func TestCompileDigestIsStructural(t *testing.T) {
	be := NewPlain()
	a, err := be.Compile(addSystem())
	require.NoError(t, err)
	b, err := be.Compile(addSystem())
	require.NoError(t, err)
	require.Equal(t, a.Verifier.CircuitDigest, b.Verifier.CircuitDigest)

	sys := addSystem()
	sys.NumWires = 4
	c, err := be.Compile(sys)
	require.NoError(t, err)
	require.NotEqual(t, a.Verifier.CircuitDigest, c.Verifier.CircuitDigest)
}

func TestArtifactRoundTrip(t *testing.T) {
	be := NewPlain()
	data, err := be.Compile(addSystem())
	require.NoError(t, err)

	gates, gens := be.Registries()
	buf, err := data.Serialize(gates, gens)
	require.NoError(t, err)
	got, err := DeserializeArtifactData(buf, gates, gens)
	require.NoError(t, err)
	require.Equal(t, data, got)

	// same bytes again
	buf2, err := got.Serialize(gates, gens)
	require.NoError(t, err)
	require.Equal(t, buf, buf2)
}

func TestArtifactTruncated(t *testing.T) {
	be := NewPlain()
	data, err := be.Compile(addSystem())
	require.NoError(t, err)
	gates, gens := be.Registries()
	buf, err := data.Serialize(gates, gens)
	require.NoError(t, err)

	for _, n := range []int{0, 4, len(buf) / 2, len(buf) - 1} {
		_, err := DeserializeArtifactData(buf[:n], gates, gens)
		require.Error(t, err, "prefix length %d", n)
	}
}

func TestUnknownGateKind(t *testing.T) {
	be := NewPlain()
	data, err := be.Compile(addSystem())
	require.NoError(t, err)
	gates, gens := be.Registries()

	empty := NewGateRegistry()
	_, err = data.Serialize(empty, gens)
	require.ErrorIs(t, err, ErrUnknownKind)

	buf, err := data.Serialize(gates, gens)
	require.NoError(t, err)
	_, err = DeserializeArtifactData(buf, empty, gens)
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestProveVerify(t *testing.T) {
	f := &goldilocks.Field{}
	be := NewPlain()
	data, err := be.Compile(addSystem())
	require.NoError(t, err)

	w := NewWitness(f, data.NumWires)
	require.NoError(t, w.Set(vars.Slot{Index: 0}, f.FromInterface(2)))
	require.NoError(t, w.Set(vars.Slot{Index: 1}, f.FromInterface(2)))

	proof, err := be.Prove(data, w)
	require.NoError(t, err)
	require.Len(t, proof.PublicInputs, 3)
	require.Equal(t, "4", f.String(proof.PublicInputs[2]))
	require.NoError(t, be.Verify(data, proof))
}

func TestVerifyRejectsTampering(t *testing.T) {
	f := &goldilocks.Field{}
	be := NewPlain()
	data, err := be.Compile(addSystem())
	require.NoError(t, err)

	w := NewWitness(f, data.NumWires)
	require.NoError(t, w.Set(vars.Slot{Index: 0}, f.FromInterface(2)))
	require.NoError(t, w.Set(vars.Slot{Index: 1}, f.FromInterface(2)))
	proof, err := be.Prove(data, w)
	require.NoError(t, err)

	bad := *proof
	bad.PublicInputs = append(bad.PublicInputs[:0:0], bad.PublicInputs...)
	bad.PublicInputs[2] = f.FromInterface(5)
	require.ErrorIs(t, be.Verify(data, &bad), ErrUnsatisfied)

	bad2 := *proof
	bad2.CircuitDigest[0] = f.FromInterface(99)
	require.ErrorIs(t, be.Verify(data, &bad2), ErrUnsatisfied)

	bad3 := *proof
	bad3.PublicInputs = bad3.PublicInputs[:2]
	require.ErrorIs(t, be.Verify(data, &bad3), ErrUnsatisfied)
}

func TestProveUnsatisfied(t *testing.T) {
	f := &goldilocks.Field{}
	be := NewPlain()
	sys := addSystem()
	sys.Gates = append(sys.Gates, &EqualGate{A: vars.Slot{Index: 0}, B: vars.Slot{Index: 1}})
	data, err := be.Compile(sys)
	require.NoError(t, err)

	w := NewWitness(f, data.NumWires)
	require.NoError(t, w.Set(vars.Slot{Index: 0}, f.FromInterface(2)))
	require.NoError(t, w.Set(vars.Slot{Index: 1}, f.FromInterface(3)))
	_, err = be.Prove(data, w)
	require.ErrorIs(t, err, ErrUnsatisfied)
}

func TestWitness(t *testing.T) {
	f := &goldilocks.Field{}
	w := NewWitness(f, 2)

	_, err := w.Get(vars.Slot{Index: 0})
	require.Error(t, err)
	require.False(t, w.IsSet(vars.Slot{Index: 0}))

	require.NoError(t, w.Set(vars.Slot{Index: 0}, f.FromInterface(1)))
	require.True(t, w.IsSet(vars.Slot{Index: 0}))
	v, err := w.Get(vars.Slot{Index: 0})
	require.NoError(t, err)
	require.True(t, f.IsOne(v))

	require.Error(t, w.Set(vars.Slot{Index: 2}, f.FromInterface(1)))
	require.Error(t, w.Set(vars.Slot{Index: -1}, f.FromInterface(1)))
}
