// Package builder constructs circuits wire by wire and compiles them into
// artifacts. A Builder owns the wire table; the typed Read/Write methods pin
// down the circuit's public io contract, and Build hands the finished system
// to a backend.
package builder

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/zkstack/circuitx/backend"
	"github.com/zkstack/circuitx/circuit"
	"github.com/zkstack/circuitx/field"
	"github.com/zkstack/circuitx/field/goldilocks"
	"github.com/zkstack/circuitx/fri"
	"github.com/zkstack/circuitx/vars"
)

// Option configures a Builder.
type Option func(*Builder)

func WithField(f field.Field) Option {
	return func(b *Builder) { b.field = f }
}

func WithBackend(be backend.Backend) Option {
	return func(b *Builder) { b.backend = be }
}

func WithFriParams(p fri.Params) Option {
	return func(b *Builder) { b.friParams = p }
}

func WithOracleLeafCounts(counts []int) Option {
	return func(b *Builder) { b.oracleLeafCounts = counts }
}

// DefaultFriParams is the parameter profile circuits compile against unless
// overridden: standard recursion config, degree 2^12, two arity-16 reduction
// rounds.
func DefaultFriParams() fri.Params {
	return fri.Params{
		Config:             fri.DefaultConfig(),
		DegreeBits:         12,
		ReductionArityBits: []int{4, 4},
	}
}

// Builder accumulates wires, gates, and generators. Not safe for concurrent
// use; build one circuit per Builder.
type Builder struct {
	field            field.Field
	backend          backend.Backend
	friParams        fri.Params
	oracleLeafCounts []int

	numWires   int
	gates      []backend.Gate
	generators []backend.Generator

	ioTag       circuit.IOTag
	byteInput   []vars.ByteVariable
	byteOutput  []vars.ByteVariable
	elemInput   []vars.Variable
	elemOutput  []vars.Variable
	ioWires     *bitset.BitSet
	publicWires []int
}

func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		field:            &goldilocks.Field{},
		backend:          backend.NewPlain(),
		friParams:        DefaultFriParams(),
		oracleLeafCounts: []int{4, 4},
		ioTag:            circuit.IONone,
		ioWires:          bitset.New(64),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) Field() field.Field { return b.field }

func (b *Builder) newSlot() vars.Slot {
	s := vars.Slot{Index: b.numWires}
	b.numWires++
	return s
}

// setIOTag pins the io variant on first use. Mixing byte and element io in
// one circuit is a programming error.
func (b *Builder) setIOTag(tag circuit.IOTag) {
	if b.ioTag == circuit.IONone {
		b.ioTag = tag
		return
	}
	if b.ioTag != tag {
		panic("builder: cannot mix byte and element io in one circuit")
	}
}

// markPublic registers a wire as public. Each wire appears in the public list
// once even when it serves both input and output roles.
func (b *Builder) markPublic(s vars.Slot) {
	if b.ioWires.Test(uint(s.Index)) {
		return
	}
	b.ioWires.Set(uint(s.Index))
	b.publicWires = append(b.publicWires, s.Index)
}

// Read declares one field-element input.
func (b *Builder) Read() vars.Variable {
	b.setIOTag(circuit.IOElements)
	v := vars.Variable{Slot: b.newSlot()}
	b.elemInput = append(b.elemInput, v)
	b.markPublic(v.Slot)
	return v
}

// ReadByte declares one byte input as eight bit wires, most significant
// first.
func (b *Builder) ReadByte() vars.ByteVariable {
	b.setIOTag(circuit.IOBytes)
	var bv vars.ByteVariable
	for j := range bv.Bits {
		bv.Bits[j] = vars.Variable{Slot: b.newSlot()}
		b.markPublic(bv.Bits[j].Slot)
	}
	b.byteInput = append(b.byteInput, bv)
	return bv
}

// Write declares one field-element output.
func (b *Builder) Write(v vars.Variable) {
	b.setIOTag(circuit.IOElements)
	b.elemOutput = append(b.elemOutput, v)
	b.markPublic(v.Slot)
}

// WriteByte declares one byte output.
func (b *Builder) WriteByte(bv vars.ByteVariable) {
	b.setIOTag(circuit.IOBytes)
	b.byteOutput = append(b.byteOutput, bv)
	for _, bit := range bv.Bits {
		b.markPublic(bit.Slot)
	}
}

// Constant returns a wire pinned to the given value.
func (b *Builder) Constant(value interface{}) vars.Variable {
	out := b.newSlot()
	e := b.field.FromInterface(value)
	b.gates = append(b.gates, &backend.ConstantGate{Out: out, Value: e})
	b.generators = append(b.generators, &backend.ConstantGenerator{Out: out, Value: e})
	return vars.Variable{Slot: out}
}

// Add returns a wire constrained to x + y.
func (b *Builder) Add(x, y vars.Variable) vars.Variable {
	out := b.newSlot()
	b.gates = append(b.gates, &backend.AddGate{A: x.Slot, B: y.Slot, Out: out})
	b.generators = append(b.generators, &backend.AddGenerator{A: x.Slot, B: y.Slot, Out: out})
	return vars.Variable{Slot: out}
}

// Sub returns a wire constrained to x - y. The constraint is expressed as
// out + y = x, so no dedicated gate kind is needed.
func (b *Builder) Sub(x, y vars.Variable) vars.Variable {
	out := b.newSlot()
	b.gates = append(b.gates, &backend.AddGate{A: out, B: y.Slot, Out: x.Slot})
	b.generators = append(b.generators, &backend.SubGenerator{A: x.Slot, B: y.Slot, Out: out})
	return vars.Variable{Slot: out}
}

// Mul returns a wire constrained to x * y.
func (b *Builder) Mul(x, y vars.Variable) vars.Variable {
	out := b.newSlot()
	b.gates = append(b.gates, &backend.MulGate{A: x.Slot, B: y.Slot, Out: out})
	b.generators = append(b.generators, &backend.MulGenerator{A: x.Slot, B: y.Slot, Out: out})
	return vars.Variable{Slot: out}
}

// AssertIsEqual constrains x == y.
func (b *Builder) AssertIsEqual(x, y vars.Variable) {
	b.gates = append(b.gates, &backend.EqualGate{A: x.Slot, B: y.Slot})
}

// Xor returns the bitwise xor of two bytes. Per bit, x xor y = x + y - 2xy.
func (b *Builder) Xor(x, y vars.ByteVariable) vars.ByteVariable {
	var out vars.ByteVariable
	for j := range out.Bits {
		xb, yb := x.Bits[j], y.Bits[j]
		s := b.Add(xb, yb)
		t := b.Mul(xb, yb)
		out.Bits[j] = b.Sub(s, b.Add(t, t))
	}
	return out
}

// VirtualSlots allocates n fresh wires with no gates attached. Virtual wires
// are stand-ins for values supplied by an outer context, typically a proof
// being verified recursively.
func (b *Builder) VirtualSlots(n int) []vars.Slot {
	out := make([]vars.Slot, n)
	for i := range out {
		out[i] = b.newSlot()
	}
	return out
}

// AddVirtualFriProof allocates the exact number of wires a proof with this
// geometry occupies and structures them into a proof target. The stream must
// come out empty; anything else is a geometry bug.
func (b *Builder) AddVirtualFriProof(numLeavesPerOracle []int, params *fri.Params) (fri.ProofTarget, error) {
	n, err := fri.ProofSlotCount(numLeavesPerOracle, params)
	if err != nil {
		return fri.ProofTarget{}, err
	}
	stream := vars.NewVariableStream(b.VirtualSlots(n))
	pv, err := fri.ReadProof(stream, numLeavesPerOracle, params)
	if err != nil {
		return fri.ProofTarget{}, err
	}
	if stream.Remaining() != 0 {
		return fri.ProofTarget{}, fmt.Errorf("fri: %d slots left after structuring proof", stream.Remaining())
	}
	return fri.ProofTargetOf(pv), nil
}

func (b *Builder) io() circuit.IO {
	switch b.ioTag {
	case circuit.IOBytes:
		return circuit.BytesIO(b.byteInput, b.byteOutput)
	case circuit.IOElements:
		return circuit.ElementsIO(b.elemInput, b.elemOutput)
	default:
		return circuit.NoneIO()
	}
}

// Build compiles the accumulated system into a circuit artifact.
func (b *Builder) Build() (*circuit.Circuit, error) {
	data, err := b.backend.Compile(&backend.System{
		Field:            b.field,
		NumWires:         b.numWires,
		Gates:            b.gates,
		Generators:       b.generators,
		PublicWires:      b.publicWires,
		FriParams:        b.friParams,
		OracleLeafCounts: b.oracleLeafCounts,
	})
	if err != nil {
		return nil, err
	}
	return &circuit.Circuit{Data: data, IO: b.io(), Backend: b.backend}, nil
}
