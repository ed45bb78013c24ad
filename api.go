// Package circuitx compiles circuits into portable artifacts that can be
// proved, verified, persisted, and verified recursively. This file is the
// public entry point; the heavy lifting lives in the builder, backend, and
// circuit packages.
package circuitx

import (
	"github.com/consensys/gnark/logger"

	"github.com/zkstack/circuitx/backend"
	"github.com/zkstack/circuitx/builder"
	"github.com/zkstack/circuitx/circuit"
)

// Definition is implemented by user circuits. Define declares io and wiring
// on the builder and is called exactly once per compilation.
type Definition interface {
	Define(b *builder.Builder) error
}

// Compile builds the definition and compiles it into an artifact.
func Compile(d Definition, opts ...builder.Option) (*circuit.Circuit, error) {
	b := builder.NewBuilder(opts...)
	if err := d.Define(b); err != nil {
		return nil, err
	}
	c, err := b.Build()
	if err != nil {
		return nil, err
	}
	log := logger.Logger()
	log.Info().Str("id", c.ID()).Msg("compiled artifact")
	return c, nil
}

// DefaultRegistries returns the gate and generator registries every circuit
// serializes with unless it registers custom kinds.
func DefaultRegistries() (*backend.GateRegistry, *backend.GeneratorRegistry) {
	return backend.DefaultGateRegistry(), backend.DefaultGeneratorRegistry()
}
