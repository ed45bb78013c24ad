package backend

import (
	"fmt"
	"reflect"

	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"

	"github.com/zkstack/circuitx/field"
	"github.com/zkstack/circuitx/fri"
	"github.com/zkstack/circuitx/poseidon"
	"github.com/zkstack/circuitx/vars"
)

// Plain is the reference backend. It evaluates circuits directly over the
// witness and derives all commitment material deterministically from a
// poseidon transcript, so proving and verifying are cheap and reproducible.
// It provides no zero knowledge and no succinctness.
type Plain struct {
	gates *GateRegistry
	gens  *GeneratorRegistry
	hash  *poseidon.Params
	log   zerolog.Logger
}

func NewPlain() *Plain {
	return &Plain{
		gates: DefaultGateRegistry(),
		gens:  DefaultGeneratorRegistry(),
		hash:  poseidon.NewParams(),
		log:   logger.Logger().With().Str("backend", "plain").Logger(),
	}
}

// Registries exposes the registries the backend serializes artifacts with.
func (p *Plain) Registries() (*GateRegistry, *GeneratorRegistry) {
	return p.gates, p.gens
}

// Compile freezes a constraint system into an artifact. The circuit digest is
// a poseidon hash of the structural encoding, so any change to the wiring,
// the gates, or the parameters produces a different identity.
func (p *Plain) Compile(cs *System) (*ArtifactData, error) {
	if cs.NumWires <= 0 {
		return nil, fmt.Errorf("backend: system has no wires")
	}
	if _, err := fri.ProofSlotCount(cs.OracleLeafCounts, &cs.FriParams); err != nil {
		return nil, err
	}
	data := &ArtifactData{
		Field:            cs.Field,
		NumWires:         cs.NumWires,
		Gates:            cs.Gates,
		Generators:       cs.Generators,
		PublicWires:      cs.PublicWires,
		FriParams:        cs.FriParams,
		OracleLeafCounts: cs.OracleLeafCounts,
	}
	structural, err := data.Serialize(p.gates, p.gens)
	if err != nil {
		return nil, err
	}
	data.Verifier.CircuitDigest = poseidon.Hash(p.hash, bytesToElements(cs.Field, structural))
	data.Verifier.ConstantsCap = p.constantsCap(data)

	p.log.Info().
		Int("numWires", data.NumWires).
		Int("numGates", len(data.Gates)).
		Int("numPublic", len(data.PublicWires)).
		Msg("compiled circuit")
	return data, nil
}

// Prove runs the generators, checks every gate, and produces the opening
// proof from the transcript of the digest and the public inputs.
func (p *Plain) Prove(data *ArtifactData, w *Witness) (*Proof, error) {
	for _, g := range data.Generators {
		if err := g.Run(data.Field, w); err != nil {
			return nil, fmt.Errorf("generator %s: %w", g.Name(), err)
		}
	}
	for _, g := range data.Gates {
		if err := g.Check(data.Field, w); err != nil {
			return nil, err
		}
	}
	publics := make([]constraint.Element, len(data.PublicWires))
	for i, wire := range data.PublicWires {
		v, err := w.Get(vars.Slot{Index: wire})
		if err != nil {
			return nil, fmt.Errorf("public wire %d: %w", wire, err)
		}
		publics[i] = v
	}
	opening, err := p.openingProof(data, publics)
	if err != nil {
		return nil, err
	}

	p.log.Debug().Int("numPublic", len(publics)).Msg("proved circuit")
	return &Proof{
		CircuitDigest: data.Verifier.CircuitDigest,
		PublicInputs:  publics,
		OpeningProof:  opening,
	}, nil
}

// Verify checks a proof against the artifact by recomputing the expected
// opening proof from the proof's public inputs.
func (p *Plain) Verify(data *ArtifactData, proof *Proof) error {
	if proof.CircuitDigest != data.Verifier.CircuitDigest {
		return fmt.Errorf("%w: circuit digest mismatch", ErrUnsatisfied)
	}
	if len(proof.PublicInputs) != len(data.PublicWires) {
		return fmt.Errorf("%w: expected %d public inputs, got %d",
			ErrUnsatisfied, len(data.PublicWires), len(proof.PublicInputs))
	}
	expected, err := p.openingProof(data, proof.PublicInputs)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(expected, proof.OpeningProof) {
		return fmt.Errorf("%w: opening proof mismatch", ErrUnsatisfied)
	}
	return nil
}

// openingProof fills the full proof geometry from a transcript seeded with
// the circuit digest and the public inputs. Every run over the same inputs
// yields byte-identical proofs.
func (p *Plain) openingProof(data *ArtifactData, publics []constraint.Element) (fri.Proof, error) {
	sponge := poseidon.NewSponge(p.hash)
	for _, e := range data.Verifier.CircuitDigest {
		sponge.Absorb(e)
	}
	for _, e := range publics {
		sponge.Absorb(e)
	}
	return fri.BuildProof(data.OracleLeafCounts, &data.FriParams, sponge.Squeeze)
}

// constantsCap derives the cap committed in the verifier data from the
// circuit digest.
func (p *Plain) constantsCap(data *ArtifactData) fri.MerkleCap {
	sponge := poseidon.NewSponge(p.hash)
	for _, e := range data.Verifier.CircuitDigest {
		sponge.Absorb(e)
	}
	c := make(fri.MerkleCap, 1<<data.FriParams.Config.CapHeight)
	for i := range c {
		for j := 0; j < vars.HashOutSize; j++ {
			c[i][j] = sponge.Squeeze()
		}
	}
	return c
}

// bytesToElements packs bytes into field elements four bytes at a time, which
// keeps every chunk below the modulus of any field in use.
func bytesToElements(f field.Field, buf []byte) []constraint.Element {
	out := make([]constraint.Element, 0, (len(buf)+3)/4)
	for start := 0; start < len(buf); start += 4 {
		end := start + 4
		if end > len(buf) {
			end = len(buf)
		}
		var v uint64
		for _, b := range buf[start:end] {
			v = v<<8 | uint64(b)
		}
		out = append(out, f.FromInterface(v))
	}
	return out
}
