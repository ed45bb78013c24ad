package fri

import "github.com/zkstack/circuitx/vars"

// Structural conversion between the variable and target proof forms. The
// mapping is elementwise and order-preserving in both directions, so
// converting there and back is the identity. This is the bridge that lets a
// recursive verification circuit built on variables be handed to the
// backend's in-circuit verifier gadget.

func (h HashOutTarget) Variable() vars.HashOutVariable {
	var out vars.HashOutVariable
	for i, s := range h.Elements {
		out.Elements[i] = vars.Variable{Slot: s}
	}
	return out
}

func HashOutTargetOf(h vars.HashOutVariable) HashOutTarget {
	var out HashOutTarget
	for i, v := range h.Elements {
		out.Elements[i] = v.Slot
	}
	return out
}

func (c MerkleCapTarget) Variable() vars.MerkleCapVariable {
	out := make(vars.MerkleCapVariable, len(c))
	for i, h := range c {
		out[i] = h.Variable()
	}
	return out
}

func MerkleCapTargetOf(c vars.MerkleCapVariable) MerkleCapTarget {
	out := make(MerkleCapTarget, len(c))
	for i, h := range c {
		out[i] = HashOutTargetOf(h)
	}
	return out
}

func (p MerkleProofTarget) Variable() vars.MerkleProofVariable {
	siblings := make([]vars.HashOutVariable, len(p.Siblings))
	for i, h := range p.Siblings {
		siblings[i] = h.Variable()
	}
	return vars.MerkleProofVariable{Siblings: siblings}
}

func MerkleProofTargetOf(p vars.MerkleProofVariable) MerkleProofTarget {
	siblings := make([]HashOutTarget, len(p.Siblings))
	for i, h := range p.Siblings {
		siblings[i] = HashOutTargetOf(h)
	}
	return MerkleProofTarget{Siblings: siblings}
}

func (e ExtensionTarget) Variable() vars.ExtensionVariable {
	var out vars.ExtensionVariable
	for i, s := range e.Elements {
		out.Elements[i] = vars.Variable{Slot: s}
	}
	return out
}

func ExtensionTargetOf(e vars.ExtensionVariable) ExtensionTarget {
	var out ExtensionTarget
	for i, v := range e.Elements {
		out.Elements[i] = v.Slot
	}
	return out
}

func (p InitialTreeProofTarget) Variable() InitialTreeProofVariable {
	evalsProofs := make([]EvalsProofVariable, len(p.EvalsProofs))
	for i, ep := range p.EvalsProofs {
		elements := make([]vars.Variable, len(ep.Elements))
		for j, s := range ep.Elements {
			elements[j] = vars.Variable{Slot: s}
		}
		evalsProofs[i] = EvalsProofVariable{
			Elements:    elements,
			MerkleProof: ep.MerkleProof.Variable(),
		}
	}
	return InitialTreeProofVariable{EvalsProofs: evalsProofs}
}

func InitialTreeProofTargetOf(p InitialTreeProofVariable) InitialTreeProofTarget {
	evalsProofs := make([]EvalsProofTarget, len(p.EvalsProofs))
	for i, ep := range p.EvalsProofs {
		elements := make([]vars.Slot, len(ep.Elements))
		for j, v := range ep.Elements {
			elements[j] = v.Slot
		}
		evalsProofs[i] = EvalsProofTarget{
			Elements:    elements,
			MerkleProof: MerkleProofTargetOf(ep.MerkleProof),
		}
	}
	return InitialTreeProofTarget{EvalsProofs: evalsProofs}
}

func (q QueryStepTarget) Variable() QueryStepVariable {
	evals := make([]vars.ExtensionVariable, len(q.Evals))
	for i, e := range q.Evals {
		evals[i] = e.Variable()
	}
	return QueryStepVariable{Evals: evals, MerkleProof: q.MerkleProof.Variable()}
}

func QueryStepTargetOf(q QueryStepVariable) QueryStepTarget {
	evals := make([]ExtensionTarget, len(q.Evals))
	for i, e := range q.Evals {
		evals[i] = ExtensionTargetOf(e)
	}
	return QueryStepTarget{Evals: evals, MerkleProof: MerkleProofTargetOf(q.MerkleProof)}
}

func (q QueryRoundTarget) Variable() QueryRoundVariable {
	steps := make([]QueryStepVariable, len(q.Steps))
	for i, s := range q.Steps {
		steps[i] = s.Variable()
	}
	return QueryRoundVariable{
		InitialTreesProof: q.InitialTreesProof.Variable(),
		Steps:             steps,
	}
}

func QueryRoundTargetOf(q QueryRoundVariable) QueryRoundTarget {
	steps := make([]QueryStepTarget, len(q.Steps))
	for i, s := range q.Steps {
		steps[i] = QueryStepTargetOf(s)
	}
	return QueryRoundTarget{
		InitialTreesProof: InitialTreeProofTargetOf(q.InitialTreesProof),
		Steps:             steps,
	}
}

func (p PolynomialCoeffsExtTarget) Variable() PolynomialCoeffsExtVariable {
	coeffs := make([]vars.ExtensionVariable, len(p.Coeffs))
	for i, c := range p.Coeffs {
		coeffs[i] = c.Variable()
	}
	return PolynomialCoeffsExtVariable{Coeffs: coeffs}
}

func PolynomialCoeffsExtTargetOf(p PolynomialCoeffsExtVariable) PolynomialCoeffsExtTarget {
	coeffs := make([]ExtensionTarget, len(p.Coeffs))
	for i, c := range p.Coeffs {
		coeffs[i] = ExtensionTargetOf(c)
	}
	return PolynomialCoeffsExtTarget{Coeffs: coeffs}
}

func (p ProofTarget) Variable() ProofVariable {
	caps := make([]vars.MerkleCapVariable, len(p.CommitPhaseMerkleCaps))
	for i, c := range p.CommitPhaseMerkleCaps {
		caps[i] = c.Variable()
	}
	rounds := make([]QueryRoundVariable, len(p.QueryRoundProofs))
	for i, q := range p.QueryRoundProofs {
		rounds[i] = q.Variable()
	}
	return ProofVariable{
		CommitPhaseMerkleCaps: caps,
		QueryRoundProofs:      rounds,
		FinalPoly:             p.FinalPoly.Variable(),
		PowWitness:            vars.Variable{Slot: p.PowWitness},
	}
}

func ProofTargetOf(p ProofVariable) ProofTarget {
	caps := make([]MerkleCapTarget, len(p.CommitPhaseMerkleCaps))
	for i, c := range p.CommitPhaseMerkleCaps {
		caps[i] = MerkleCapTargetOf(c)
	}
	rounds := make([]QueryRoundTarget, len(p.QueryRoundProofs))
	for i, q := range p.QueryRoundProofs {
		rounds[i] = QueryRoundTargetOf(q)
	}
	return ProofTarget{
		CommitPhaseMerkleCaps: caps,
		QueryRoundProofs:      rounds,
		FinalPoly:             PolynomialCoeffsExtTargetOf(p.FinalPoly),
		PowWitness:            p.PowWitness.Slot,
	}
}
