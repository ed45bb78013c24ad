package fri

import "github.com/zkstack/circuitx/vars"

// Target proof forms: the backend's native wire-level representation of a
// proof, consumed by the in-circuit verifier gadget. A target is the same
// slot type the variable forms are built from; only the grouping differs.

type HashOutTarget struct {
	Elements [vars.HashOutSize]vars.Slot
}

type MerkleCapTarget []HashOutTarget

type MerkleProofTarget struct {
	Siblings []HashOutTarget
}

type ExtensionTarget struct {
	Elements [vars.ExtensionDegree]vars.Slot
}

type EvalsProofTarget struct {
	Elements    []vars.Slot
	MerkleProof MerkleProofTarget
}

type InitialTreeProofTarget struct {
	EvalsProofs []EvalsProofTarget
}

type QueryStepTarget struct {
	Evals       []ExtensionTarget
	MerkleProof MerkleProofTarget
}

type QueryRoundTarget struct {
	InitialTreesProof InitialTreeProofTarget
	Steps             []QueryStepTarget
}

type PolynomialCoeffsExtTarget struct {
	Coeffs []ExtensionTarget
}

type ProofTarget struct {
	CommitPhaseMerkleCaps []MerkleCapTarget
	QueryRoundProofs      []QueryRoundTarget
	FinalPoly             PolynomialCoeffsExtTarget
	PowWitness            vars.Slot
}
