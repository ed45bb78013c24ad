package fri

import (
	"github.com/consensys/gnark/constraint"
	"github.com/zkstack/circuitx/vars"
)

// Valued proof forms, as produced by the proving backend. Every sequence
// length is a pure function of the protocol parameters.

type HashOut [vars.HashOutSize]constraint.Element

type Extension [vars.ExtensionDegree]constraint.Element

type MerkleCap []HashOut

type MerkleProof struct {
	Siblings []HashOut
}

type EvalsProof struct {
	Elements    []constraint.Element
	MerkleProof MerkleProof
}

type InitialTreeProof struct {
	EvalsProofs []EvalsProof
}

type QueryStep struct {
	Evals       []Extension
	MerkleProof MerkleProof
}

type QueryRound struct {
	InitialTreesProof InitialTreeProof
	Steps             []QueryStep
}

type PolynomialCoeffsExt struct {
	Coeffs []Extension
}

type Proof struct {
	CommitPhaseMerkleCaps []MerkleCap
	QueryRoundProofs      []QueryRound
	FinalPoly             PolynomialCoeffsExt
	PowWitness            constraint.Element
}

// BuildProof constructs a valued proof with the exact geometry dictated by the
// parameters, with every leaf element drawn from next in layout order. The
// backend supplies next from its transcript; tests may supply a counter.
func BuildProof(numLeavesPerOracle []int, params *Params, next func() constraint.Element) (Proof, error) {
	g, err := newGeometry(numLeavesPerOracle, params)
	if err != nil {
		return Proof{}, err
	}

	nextHash := func() HashOut {
		var h HashOut
		for i := range h {
			h[i] = next()
		}
		return h
	}
	nextCap := func() MerkleCap {
		c := make(MerkleCap, 1<<params.Config.CapHeight)
		for i := range c {
			c[i] = nextHash()
		}
		return c
	}
	nextMerkleProof := func(length int) MerkleProof {
		siblings := make([]HashOut, length)
		for i := range siblings {
			siblings[i] = nextHash()
		}
		return MerkleProof{Siblings: siblings}
	}
	nextExt := func() Extension {
		var e Extension
		for i := range e {
			e[i] = next()
		}
		return e
	}

	var proof Proof
	proof.CommitPhaseMerkleCaps = make([]MerkleCap, len(params.ReductionArityBits))
	for i := range proof.CommitPhaseMerkleCaps {
		proof.CommitPhaseMerkleCaps[i] = nextCap()
	}

	proof.QueryRoundProofs = make([]QueryRound, params.Config.NumQueryRounds)
	for q := range proof.QueryRoundProofs {
		round := QueryRound{}
		round.InitialTreesProof.EvalsProofs = make([]EvalsProof, len(numLeavesPerOracle))
		for o, leaves := range numLeavesPerOracle {
			elems := make([]constraint.Element, leaves)
			for i := range elems {
				elems[i] = next()
			}
			round.InitialTreesProof.EvalsProofs[o] = EvalsProof{
				Elements:    elems,
				MerkleProof: nextMerkleProof(g.initialProofLen),
			}
		}
		round.Steps = make([]QueryStep, len(params.ReductionArityBits))
		for i, arityBits := range params.ReductionArityBits {
			evals := make([]Extension, 1<<arityBits)
			for j := range evals {
				evals[j] = nextExt()
			}
			round.Steps[i] = QueryStep{
				Evals:       evals,
				MerkleProof: nextMerkleProof(g.stepProofLens[i]),
			}
		}
		proof.QueryRoundProofs[q] = round
	}

	proof.FinalPoly.Coeffs = make([]Extension, params.FinalPolyLen())
	for i := range proof.FinalPoly.Coeffs {
		proof.FinalPoly.Coeffs[i] = nextExt()
	}
	proof.PowWitness = next()
	return proof, nil
}
