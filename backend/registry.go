package backend

import (
	"errors"
	"fmt"

	"github.com/zkstack/circuitx/field"
	"github.com/zkstack/circuitx/utils"
)

// ErrUnknownKind is returned when a serialized gate or generator references a
// kind the registry does not know. The same registries must be supplied on
// both sides of a round trip.
var ErrUnknownKind = errors.New("backend: unknown gate or generator kind")

// GateRegistry maps gate kinds to their decoders. It is the extension point
// that keeps the artifact encoding open to new constraint kinds.
type GateRegistry struct {
	names    []string
	index    map[string]int
	decoders []func(f field.Field, in *utils.InputBuf) (Gate, error)
}

func NewGateRegistry() *GateRegistry {
	return &GateRegistry{index: make(map[string]int)}
}

// DefaultGateRegistry returns a registry with the built-in gate kinds.
func DefaultGateRegistry() *GateRegistry {
	r := NewGateRegistry()
	r.Register("arith.add", deserializeAddGate)
	r.Register("arith.mul", deserializeMulGate)
	r.Register("arith.constant", deserializeConstantGate)
	r.Register("arith.equal", deserializeEqualGate)
	return r
}

// Register adds a gate kind. Registration order is part of the encoding, so it
// must be identical on the serializing and deserializing side.
func (r *GateRegistry) Register(name string, dec func(f field.Field, in *utils.InputBuf) (Gate, error)) {
	if _, ok := r.index[name]; ok {
		panic("gate kind registered twice: " + name)
	}
	r.index[name] = len(r.names)
	r.names = append(r.names, name)
	r.decoders = append(r.decoders, dec)
}

func (r *GateRegistry) serialize(f field.Field, o *utils.OutputBuf, g Gate) error {
	idx, ok := r.index[g.Name()]
	if !ok {
		return fmt.Errorf("%w: gate %q not in registry", ErrUnknownKind, g.Name())
	}
	o.AppendUint64(uint64(idx))
	g.Serialize(f, o)
	return nil
}

func (r *GateRegistry) deserialize(f field.Field, in *utils.InputBuf) (Gate, error) {
	idx, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	if idx >= uint64(len(r.decoders)) {
		return nil, fmt.Errorf("%w: gate kind index %d out of range", ErrUnknownKind, idx)
	}
	return r.decoders[idx](f, in)
}

// GeneratorRegistry is the generator-side counterpart of GateRegistry.
type GeneratorRegistry struct {
	names    []string
	index    map[string]int
	decoders []func(f field.Field, in *utils.InputBuf) (Generator, error)
}

func NewGeneratorRegistry() *GeneratorRegistry {
	return &GeneratorRegistry{index: make(map[string]int)}
}

func DefaultGeneratorRegistry() *GeneratorRegistry {
	r := NewGeneratorRegistry()
	r.Register("gen.add", deserializeAddGenerator)
	r.Register("gen.mul", deserializeMulGenerator)
	r.Register("gen.sub", deserializeSubGenerator)
	r.Register("gen.constant", deserializeConstantGenerator)
	return r
}

func (r *GeneratorRegistry) Register(name string, dec func(f field.Field, in *utils.InputBuf) (Generator, error)) {
	if _, ok := r.index[name]; ok {
		panic("generator kind registered twice: " + name)
	}
	r.index[name] = len(r.names)
	r.names = append(r.names, name)
	r.decoders = append(r.decoders, dec)
}

func (r *GeneratorRegistry) serialize(f field.Field, o *utils.OutputBuf, g Generator) error {
	idx, ok := r.index[g.Name()]
	if !ok {
		return fmt.Errorf("%w: generator %q not in registry", ErrUnknownKind, g.Name())
	}
	o.AppendUint64(uint64(idx))
	g.Serialize(f, o)
	return nil
}

func (r *GeneratorRegistry) deserialize(f field.Field, in *utils.InputBuf) (Generator, error) {
	idx, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	if idx >= uint64(len(r.decoders)) {
		return nil, fmt.Errorf("%w: generator kind index %d out of range", ErrUnknownKind, idx)
	}
	return r.decoders[idx](f, in)
}
