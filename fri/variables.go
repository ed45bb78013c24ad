package fri

import "github.com/zkstack/circuitx/vars"

// Variable proof forms: the same proof shape expressed with the typed variable
// wrappers, as produced by structuring a variable stream.

type EvalsProofVariable struct {
	Elements    []vars.Variable
	MerkleProof vars.MerkleProofVariable
}

type InitialTreeProofVariable struct {
	EvalsProofs []EvalsProofVariable
}

type QueryStepVariable struct {
	Evals       []vars.ExtensionVariable
	MerkleProof vars.MerkleProofVariable
}

type QueryRoundVariable struct {
	InitialTreesProof InitialTreeProofVariable
	Steps             []QueryStepVariable
}

type PolynomialCoeffsExtVariable struct {
	Coeffs []vars.ExtensionVariable
}

type ProofVariable struct {
	CommitPhaseMerkleCaps []vars.MerkleCapVariable
	QueryRoundProofs      []QueryRoundVariable
	FinalPoly             PolynomialCoeffsExtVariable
	PowWitness            vars.Variable
}
