package fri

import (
	"fmt"

	"github.com/zkstack/circuitx/vars"
)

// geometry is the resolved per-round layout of a proof: the initial Merkle
// proof depth and the shrunk depth after each reduction step. Resolving it
// performs every parameter-consistency check of the protocol; all structuring
// paths go through it so a malformed schedule can never be silently truncated.
type geometry struct {
	initialProofLen int
	stepProofLens   []int
}

func newGeometry(numLeavesPerOracle []int, params *Params) (geometry, error) {
	capHeight := params.Config.CapHeight
	if params.LdeBits() < capHeight {
		return geometry{}, fmt.Errorf("%w: lde bits %d is less than cap height %d",
			ErrGeometry, params.LdeBits(), capHeight)
	}
	for o, n := range numLeavesPerOracle {
		if n < 0 {
			return geometry{}, fmt.Errorf("%w: oracle %d has negative leaf count %d", ErrGeometry, o, n)
		}
	}
	if params.FinalPolyBits() < 0 {
		return geometry{}, fmt.Errorf("%w: reduction schedule arity %d exceeds degree bits %d",
			ErrGeometry, params.TotalArities(), params.DegreeBits)
	}
	merkleProofLen := params.LdeBits() - capHeight
	g := geometry{
		initialProofLen: merkleProofLen,
		stepProofLens:   make([]int, len(params.ReductionArityBits)),
	}
	for i, arityBits := range params.ReductionArityBits {
		if merkleProofLen < arityBits {
			return geometry{}, fmt.Errorf("%w: reduction step %d arity bits %d exceeds remaining proof depth %d",
				ErrGeometry, i, arityBits, merkleProofLen)
		}
		merkleProofLen -= arityBits
		g.stepProofLens[i] = merkleProofLen
	}
	return g, nil
}

// ProofSlotCount returns the exact number of slots a proof with the given
// parameters occupies in a variable stream.
func ProofSlotCount(numLeavesPerOracle []int, params *Params) (int, error) {
	g, err := newGeometry(numLeavesPerOracle, params)
	if err != nil {
		return 0, err
	}

	hashSlots := vars.HashOutSize
	capSlots := (1 << params.Config.CapHeight) * hashSlots

	total := len(params.ReductionArityBits) * capSlots

	perRound := 0
	for _, leaves := range numLeavesPerOracle {
		perRound += leaves + g.initialProofLen*hashSlots
	}
	for i, arityBits := range params.ReductionArityBits {
		perRound += (1<<arityBits)*vars.ExtensionDegree + g.stepProofLens[i]*hashSlots
	}
	total += params.Config.NumQueryRounds * perRound

	total += params.FinalPolyLen() * vars.ExtensionDegree
	total++ // proof-of-work witness
	return total, nil
}
