// Package backend defines the proving-backend interface the circuit layer
// delegates to, together with the compiled artifact data it operates on. The
// circuit layer treats implementations as opaque: it only compiles, proves and
// verifies through this interface.
package backend

import (
	"github.com/consensys/gnark/constraint"
	"github.com/zkstack/circuitx/field"
	"github.com/zkstack/circuitx/fri"
)

// Backend is the proving algorithm behind a circuit artifact.
type Backend interface {
	// Compile turns raw constraints into artifact data, deriving the
	// verifier-side commitment. The digest depends only on the compiled
	// structure, never on witness data.
	Compile(cs *System) (*ArtifactData, error)
	// Prove generates a proof from a fully bound witness.
	Prove(data *ArtifactData, w *Witness) (*Proof, error)
	// Verify checks a proof against the artifact. A non-nil error means the
	// proof was rejected.
	Verify(data *ArtifactData, proof *Proof) error
}

// System is the pre-compilation form of a circuit: the constraints and
// generators collected by a builder, plus the protocol parameters the opening
// proof will be shaped by.
type System struct {
	Field            field.Field
	NumWires         int
	Gates            []Gate
	Generators       []Generator
	PublicWires      []int
	FriParams        fri.Params
	OracleLeafCounts []int
}

// Proof is a proof together with the public values it attests to.
type Proof struct {
	CircuitDigest fri.HashOut
	PublicInputs  []constraint.Element
	OpeningProof  fri.Proof
}
