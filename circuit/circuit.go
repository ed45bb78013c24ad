package circuit

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/consensys/gnark/constraint"

	"github.com/zkstack/circuitx/backend"
	"github.com/zkstack/circuitx/vars"
)

var (
	// ErrValueMismatch means the caller-supplied input or output disagrees
	// with the public values embedded in the proof. It is raised before any
	// cryptographic verification runs.
	ErrValueMismatch = errors.New("circuit: io values do not match proof public inputs")

	// ErrProofRejected wraps a backend verification failure.
	ErrProofRejected = errors.New("circuit: proof rejected")
)

// Circuit is a compiled artifact bound to an IO descriptor and a proving
// backend. It is immutable after creation; Deserialize produces a fresh
// instance rather than mutating an existing one.
type Circuit struct {
	Data    *backend.ArtifactData
	IO      IO
	Backend backend.Backend
}

// IDLen is the length of the identity string.
const IDLen = 22

// ID returns the circuit's stable identity: the hex encoding of the circuit
// digest, truncated. It depends only on the compiled structure, never on
// witness data, so it doubles as a cache key and a file name.
func (c *Circuit) ID() string {
	return hex.EncodeToString(c.Data.DigestBytes())[:IDLen]
}

// Input is a write-cursor view over the circuit's declared inputs. Values are
// bound in declaration order.
type Input struct {
	circuit  *Circuit
	elements []constraint.Element
	bytes    []byte
}

// Input returns an empty input view for this circuit.
func (c *Circuit) Input() *Input {
	return &Input{circuit: c}
}

// Write appends one field-element input. Accepts anything the circuit's field
// can convert.
func (in *Input) Write(value interface{}) {
	if in.circuit.IO.Tag != IOElements {
		panic("circuit: Write on a non-element io circuit")
	}
	in.elements = append(in.elements, in.circuit.Data.Field.FromInterface(value))
}

// WriteByte appends one byte input. The error is always nil; the signature
// matches io.ByteWriter.
func (in *Input) WriteByte(value byte) error {
	if in.circuit.IO.Tag != IOBytes {
		panic("circuit: WriteByte on a non-byte io circuit")
	}
	in.bytes = append(in.bytes, value)
	return nil
}

// Output is a read-cursor view over the circuit's declared outputs, populated
// from a proof's public values.
type Output struct {
	circuit  *Circuit
	elements []constraint.Element
	bytes    []byte
	pos      int
}

// Read consumes the next field-element output.
func (out *Output) Read() constraint.Element {
	if out.circuit.IO.Tag != IOElements {
		panic("circuit: Read on a non-element io circuit")
	}
	v := out.elements[out.pos]
	out.pos++
	return v
}

// ReadByte consumes the next byte output. The signature matches
// io.ByteReader; it errors only when the outputs are exhausted.
func (out *Output) ReadByte() (byte, error) {
	if out.circuit.IO.Tag != IOBytes {
		panic("circuit: ReadByte on a non-byte io circuit")
	}
	if out.pos >= len(out.bytes) {
		return 0, fmt.Errorf("circuit: no more output bytes")
	}
	v := out.bytes[out.pos]
	out.pos++
	return v, nil
}

// Prove binds the input view onto the circuit's input wires, runs the
// backend, and derives the output view from the proof's public values at the
// output wire positions.
func (c *Circuit) Prove(in *Input) (*backend.Proof, *Output, error) {
	w := backend.NewWitness(c.Data.Field, c.Data.NumWires)
	if err := c.bindInput(w, in); err != nil {
		return nil, nil, err
	}
	proof, err := c.Backend.Prove(c.Data, w)
	if err != nil {
		return nil, nil, err
	}
	out, err := c.outputFromProof(proof)
	if err != nil {
		return nil, nil, err
	}
	return proof, out, nil
}

// Verify first recomputes the input and output views from the proof's public
// values and checks them against the caller's views, then runs cryptographic
// verification. The cheap check catches a caller holding values the proof
// does not actually attest to.
func (c *Circuit) Verify(proof *backend.Proof, in *Input, out *Output) error {
	gotIn, err := c.inputFromProof(proof)
	if err != nil {
		return err
	}
	gotOut, err := c.outputFromProof(proof)
	if err != nil {
		return err
	}
	if err := matchViews(in.elements, in.bytes, gotIn.elements, gotIn.bytes, "input"); err != nil {
		return err
	}
	if err := matchViews(out.elements, out.bytes, gotOut.elements, gotOut.bytes, "output"); err != nil {
		return err
	}
	if err := c.Backend.Verify(c.Data, proof); err != nil {
		return fmt.Errorf("%w: %v", ErrProofRejected, err)
	}
	return nil
}

func matchViews(wantElems []constraint.Element, wantBytes []byte, gotElems []constraint.Element, gotBytes []byte, side string) error {
	if len(wantElems) != len(gotElems) || len(wantBytes) != len(gotBytes) {
		return fmt.Errorf("%w: %s length", ErrValueMismatch, side)
	}
	for i := range wantElems {
		if wantElems[i] != gotElems[i] {
			return fmt.Errorf("%w: %s element %d", ErrValueMismatch, side, i)
		}
	}
	for i := range wantBytes {
		if wantBytes[i] != gotBytes[i] {
			return fmt.Errorf("%w: %s byte %d", ErrValueMismatch, side, i)
		}
	}
	return nil
}

func (c *Circuit) bindInput(w *backend.Witness, in *Input) error {
	switch c.IO.Tag {
	case IOElements:
		if len(in.elements) != len(c.IO.ElemInput) {
			return fmt.Errorf("circuit: expected %d input elements, got %d",
				len(c.IO.ElemInput), len(in.elements))
		}
		for i, v := range c.IO.ElemInput {
			if err := w.Set(v.Slot, in.elements[i]); err != nil {
				return err
			}
		}
	case IOBytes:
		if len(in.bytes) != len(c.IO.ByteInput) {
			return fmt.Errorf("circuit: expected %d input bytes, got %d",
				len(c.IO.ByteInput), len(in.bytes))
		}
		for i, bv := range c.IO.ByteInput {
			if err := c.bindByte(w, bv, in.bytes[i]); err != nil {
				return err
			}
		}
	case IONone:
		if len(in.elements) != 0 || len(in.bytes) != 0 {
			return fmt.Errorf("circuit: input supplied to a circuit without io")
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownIOTag, c.IO.Tag)
	}
	return nil
}

// bindByte writes a byte onto its eight bit wires, most significant first.
func (c *Circuit) bindByte(w *backend.Witness, bv vars.ByteVariable, value byte) error {
	f := c.Data.Field
	for j := 0; j < vars.ByteSize; j++ {
		bit := (value >> (vars.ByteSize - 1 - j)) & 1
		if err := w.Set(bv.Bits[j].Slot, f.FromInterface(uint64(bit))); err != nil {
			return err
		}
	}
	return nil
}

func (c *Circuit) inputFromProof(proof *backend.Proof) (*Input, error) {
	in := &Input{circuit: c}
	switch c.IO.Tag {
	case IOElements:
		for _, v := range c.IO.ElemInput {
			e, err := c.publicValue(proof, v.Slot)
			if err != nil {
				return nil, err
			}
			in.elements = append(in.elements, e)
		}
	case IOBytes:
		for _, bv := range c.IO.ByteInput {
			b, err := c.publicByte(proof, bv)
			if err != nil {
				return nil, err
			}
			in.bytes = append(in.bytes, b)
		}
	}
	return in, nil
}

func (c *Circuit) outputFromProof(proof *backend.Proof) (*Output, error) {
	out := &Output{circuit: c}
	switch c.IO.Tag {
	case IOElements:
		for _, v := range c.IO.ElemOutput {
			e, err := c.publicValue(proof, v.Slot)
			if err != nil {
				return nil, err
			}
			out.elements = append(out.elements, e)
		}
	case IOBytes:
		for _, bv := range c.IO.ByteOutput {
			b, err := c.publicByte(proof, bv)
			if err != nil {
				return nil, err
			}
			out.bytes = append(out.bytes, b)
		}
	}
	return out, nil
}

func (c *Circuit) publicValue(proof *backend.Proof, s vars.Slot) (constraint.Element, error) {
	idx := c.Data.PublicIndex(s.Index)
	if idx < 0 {
		return constraint.Element{}, fmt.Errorf("circuit: wire %d is not public", s.Index)
	}
	if idx >= len(proof.PublicInputs) {
		return constraint.Element{}, fmt.Errorf("circuit: proof has %d public inputs, need index %d",
			len(proof.PublicInputs), idx)
	}
	return proof.PublicInputs[idx], nil
}

// publicByte reassembles a byte from its eight public bit wires.
func (c *Circuit) publicByte(proof *backend.Proof, bv vars.ByteVariable) (byte, error) {
	f := c.Data.Field
	var out byte
	for j := 0; j < vars.ByteSize; j++ {
		e, err := c.publicValue(proof, bv.Bits[j].Slot)
		if err != nil {
			return 0, err
		}
		out <<= 1
		if !f.IsOne(e) {
			bi := f.ToBigInt(e)
			if bi.Sign() != 0 {
				return 0, fmt.Errorf("circuit: bit wire %d carries non-boolean value %s",
					bv.Bits[j].Slot.Index, bi.String())
			}
			continue
		}
		out |= 1
	}
	return out, nil
}
