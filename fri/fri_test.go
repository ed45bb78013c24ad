package fri

import (
	"testing"

	"github.com/consensys/gnark/constraint"
	"github.com/stretchr/testify/require"

	"github.com/zkstack/circuitx/vars"
)

func testParams() *Params {
	return &Params{
		Config: Config{
			RateBits:        1,
			CapHeight:       1,
			ProofOfWorkBits: 8,
			NumQueryRounds:  2,
		},
		DegreeBits:         3,
		ReductionArityBits: []int{1, 1},
	}
}

func testLeafCounts() []int { return []int{2, 3} }

func slotRun(n int) []vars.Slot {
	out := make([]vars.Slot, n)
	for i := range out {
		out[i] = vars.Slot{Index: i}
	}
	return out
}

func TestProofSlotCount(t *testing.T) {
	params := testParams()
	n, err := ProofSlotCount(testLeafCounts(), params)
	require.NoError(t, err)

	// caps: 2 caps of 2 hashes; per round: initial trees (2+3 leaves, two
	// depth-3 proofs), steps of depth 2 and 1; final poly of 2 extensions;
	// one pow witness.
	capSlots := 2 * 2 * vars.HashOutSize
	perRound := (2 + 3*vars.HashOutSize) + (3 + 3*vars.HashOutSize) +
		2*vars.ExtensionDegree + 2*vars.HashOutSize +
		2*vars.ExtensionDegree + 1*vars.HashOutSize
	want := capSlots + 2*perRound + 2*vars.ExtensionDegree + 1
	require.Equal(t, want, n)
}

func TestReadProofShape(t *testing.T) {
	params := testParams()
	n, err := ProofSlotCount(testLeafCounts(), params)
	require.NoError(t, err)

	s := vars.NewVariableStream(slotRun(n))
	proof, err := ReadProof(s, testLeafCounts(), params)
	require.NoError(t, err)
	require.Equal(t, 0, s.Remaining())

	require.Len(t, proof.CommitPhaseMerkleCaps, 2)
	for _, c := range proof.CommitPhaseMerkleCaps {
		require.Len(t, c, 1<<params.Config.CapHeight)
	}
	require.Len(t, proof.QueryRoundProofs, params.Config.NumQueryRounds)
	for _, round := range proof.QueryRoundProofs {
		require.Len(t, round.InitialTreesProof.EvalsProofs, 2)
		require.Len(t, round.InitialTreesProof.EvalsProofs[0].Elements, 2)
		require.Len(t, round.InitialTreesProof.EvalsProofs[1].Elements, 3)
		for _, ep := range round.InitialTreesProof.EvalsProofs {
			require.Len(t, ep.MerkleProof.Siblings, 3)
		}
		require.Len(t, round.Steps, 2)
		require.Len(t, round.Steps[0].Evals, 2)
		require.Len(t, round.Steps[0].MerkleProof.Siblings, 2)
		require.Len(t, round.Steps[1].Evals, 2)
		require.Len(t, round.Steps[1].MerkleProof.Siblings, 1)
	}
	require.Len(t, proof.FinalPoly.Coeffs, params.FinalPolyLen())
}

func TestReadProofDeterministicLayout(t *testing.T) {
	params := testParams()
	n, err := ProofSlotCount(testLeafCounts(), params)
	require.NoError(t, err)

	a, err := ReadProof(vars.NewVariableStream(slotRun(n)), testLeafCounts(), params)
	require.NoError(t, err)
	b, err := ReadProof(vars.NewVariableStream(slotRun(n)), testLeafCounts(), params)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestReadProofExhaustion(t *testing.T) {
	params := testParams()
	n, err := ProofSlotCount(testLeafCounts(), params)
	require.NoError(t, err)

	_, err = ReadProof(vars.NewVariableStream(slotRun(n-1)), testLeafCounts(), params)
	require.ErrorIs(t, err, vars.ErrStreamExhausted)
}

func TestMalformedParams(t *testing.T) {
	params := testParams()
	params.DegreeBits = 0
	params.Config.RateBits = 0
	params.Config.CapHeight = 4
	_, err := ProofSlotCount(testLeafCounts(), params)
	require.ErrorIs(t, err, ErrGeometry)

	params = testParams()
	params.ReductionArityBits = []int{2, 2}
	_, err = ProofSlotCount(testLeafCounts(), params)
	require.ErrorIs(t, err, ErrGeometry)

	params = testParams()
	_, err = ProofSlotCount([]int{2, -1}, params)
	require.ErrorIs(t, err, ErrGeometry)

	// schedule folds past the polynomial degree; must error, not panic on
	// the negative final-poly shift
	params = &Params{
		Config:             Config{RateBits: 3, CapHeight: 0, NumQueryRounds: 1},
		DegreeBits:         1,
		ReductionArityBits: []int{2},
	}
	_, err = ProofSlotCount(testLeafCounts(), params)
	require.ErrorIs(t, err, ErrGeometry)
	_, err = ReadProof(vars.NewVariableStream(slotRun(64)), testLeafCounts(), params)
	require.ErrorIs(t, err, ErrGeometry)
}

func TestWriteReadRoundTrip(t *testing.T) {
	params := testParams()
	n, err := ProofSlotCount(testLeafCounts(), params)
	require.NoError(t, err)

	proof, err := ReadProof(vars.NewVariableStream(slotRun(n)), testLeafCounts(), params)
	require.NoError(t, err)

	s := vars.NewEmptyStream()
	WriteProof(s, proof)
	require.Equal(t, n, s.Len())

	got, err := ReadProof(vars.NewVariableStream(s.Slots()), testLeafCounts(), params)
	require.NoError(t, err)
	require.Equal(t, proof, got)
}

func TestTargetVariableConversion(t *testing.T) {
	params := testParams()
	n, err := ProofSlotCount(testLeafCounts(), params)
	require.NoError(t, err)

	proof, err := ReadProof(vars.NewVariableStream(slotRun(n)), testLeafCounts(), params)
	require.NoError(t, err)

	target := ProofTargetOf(proof)
	require.Equal(t, proof, target.Variable())
	require.Equal(t, target, ProofTargetOf(target.Variable()))
}

func TestBuildProofMatchesSlotCount(t *testing.T) {
	params := testParams()
	n, err := ProofSlotCount(testLeafCounts(), params)
	require.NoError(t, err)

	calls := 0
	next := func() constraint.Element {
		calls++
		return constraint.Element{uint64(calls)}
	}
	proof, err := BuildProof(testLeafCounts(), params, next)
	require.NoError(t, err)
	require.Equal(t, n, calls)
	require.Len(t, proof.CommitPhaseMerkleCaps, 2)
	require.Len(t, proof.QueryRoundProofs, params.Config.NumQueryRounds)
	require.Len(t, proof.FinalPoly.Coeffs, params.FinalPolyLen())
}

func TestBuildProofDeterministic(t *testing.T) {
	params := testParams()
	mk := func() Proof {
		c := uint64(0)
		p, err := BuildProof(testLeafCounts(), params, func() constraint.Element {
			c++
			return constraint.Element{c}
		})
		require.NoError(t, err)
		return p
	}
	require.Equal(t, mk(), mk())
}
