package fri

import (
	"github.com/zkstack/circuitx/vars"
)

// Structuring a flat slot stream into a proof. Every read length is computed
// from the caller-supplied parameters, never inferred from the stream; the
// layout must match the one the backend used when it wrote the concrete
// proof, or the resulting recursive circuit is silently wrong. That is why
// parameter inconsistencies fail hard here instead of being clamped.

// ReadProof reads a full opening proof from the stream.
func ReadProof(s *vars.VariableStream, numLeavesPerOracle []int, params *Params) (ProofVariable, error) {
	var proof ProofVariable
	g, err := newGeometry(numLeavesPerOracle, params)
	if err != nil {
		return proof, err
	}

	capHeight := params.Config.CapHeight
	proof.CommitPhaseMerkleCaps = make([]vars.MerkleCapVariable, len(params.ReductionArityBits))
	for i := range proof.CommitPhaseMerkleCaps {
		c, err := s.ReadMerkleCap(capHeight)
		if err != nil {
			return proof, err
		}
		proof.CommitPhaseMerkleCaps[i] = c
	}

	proof.QueryRoundProofs = make([]QueryRoundVariable, params.Config.NumQueryRounds)
	for i := range proof.QueryRoundProofs {
		round, err := readQueryRound(s, numLeavesPerOracle, params, g)
		if err != nil {
			return proof, err
		}
		proof.QueryRoundProofs[i] = round
	}

	proof.FinalPoly, err = ReadPolyCoeffExt(s, params.FinalPolyLen())
	if err != nil {
		return proof, err
	}
	proof.PowWitness, err = s.ReadVariable()
	if err != nil {
		return proof, err
	}
	return proof, nil
}

// ReadPolyCoeffExt reads length extension-field coefficients.
func ReadPolyCoeffExt(s *vars.VariableStream, length int) (PolynomialCoeffsExtVariable, error) {
	coeffs, err := s.ReadExtensions(length)
	if err != nil {
		return PolynomialCoeffsExtVariable{}, err
	}
	return PolynomialCoeffsExtVariable{Coeffs: coeffs}, nil
}

// ReadQueryRound reads one query round: the initial-trees proof followed by
// one step per entry of the reduction schedule, with the Merkle proof depth
// shrinking by each step's arity.
func ReadQueryRound(s *vars.VariableStream, numLeavesPerOracle []int, params *Params) (QueryRoundVariable, error) {
	g, err := newGeometry(numLeavesPerOracle, params)
	if err != nil {
		return QueryRoundVariable{}, err
	}
	return readQueryRound(s, numLeavesPerOracle, params, g)
}

func readQueryRound(s *vars.VariableStream, numLeavesPerOracle []int, params *Params, g geometry) (QueryRoundVariable, error) {
	var round QueryRoundVariable
	var err error

	round.InitialTreesProof, err = ReadInitialTreesProof(s, numLeavesPerOracle, g.initialProofLen)
	if err != nil {
		return round, err
	}

	round.Steps = make([]QueryStepVariable, len(params.ReductionArityBits))
	for i, arityBits := range params.ReductionArityBits {
		round.Steps[i], err = ReadQueryStep(s, arityBits, g.stepProofLens[i])
		if err != nil {
			return round, err
		}
	}
	return round, nil
}

// ReadInitialTreesProof reads, per oracle, that oracle's leaf values followed
// by one Merkle proof of the given depth. The result order matches
// numLeavesPerOracle.
func ReadInitialTreesProof(s *vars.VariableStream, numLeavesPerOracle []int, proofLen int) (InitialTreeProofVariable, error) {
	evalsProofs := make([]EvalsProofVariable, len(numLeavesPerOracle))
	for i, numLeaves := range numLeavesPerOracle {
		leaves, err := s.ReadVariables(numLeaves)
		if err != nil {
			return InitialTreeProofVariable{}, err
		}
		merkleProof, err := s.ReadMerkleProof(proofLen)
		if err != nil {
			return InitialTreeProofVariable{}, err
		}
		evalsProofs[i] = EvalsProofVariable{Elements: leaves, MerkleProof: merkleProof}
	}
	return InitialTreeProofVariable{EvalsProofs: evalsProofs}, nil
}

// ReadQueryStep reads 1<<arityBits extension evaluations plus one Merkle proof
// of the given depth.
func ReadQueryStep(s *vars.VariableStream, arityBits, proofLen int) (QueryStepVariable, error) {
	evals, err := s.ReadExtensions(1 << arityBits)
	if err != nil {
		return QueryStepVariable{}, err
	}
	merkleProof, err := s.ReadMerkleProof(proofLen)
	if err != nil {
		return QueryStepVariable{}, err
	}
	return QueryStepVariable{Evals: evals, MerkleProof: merkleProof}, nil
}

// WriteProof appends the proof's slots to the stream in the exact layout
// ReadProof consumes.
func WriteProof(s *vars.VariableStream, proof ProofVariable) {
	for _, c := range proof.CommitPhaseMerkleCaps {
		s.WriteMerkleCap(c)
	}
	for _, round := range proof.QueryRoundProofs {
		for _, ep := range round.InitialTreesProof.EvalsProofs {
			s.WriteVariables(ep.Elements)
			s.WriteMerkleProof(ep.MerkleProof)
		}
		for _, step := range round.Steps {
			for _, e := range step.Evals {
				s.WriteExtension(e)
			}
			s.WriteMerkleProof(step.MerkleProof)
		}
	}
	for _, c := range proof.FinalPoly.Coeffs {
		s.WriteExtension(c)
	}
	s.WriteVariable(proof.PowWitness)
}
