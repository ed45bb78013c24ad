package test

import (
	"testing"

	"github.com/zkstack/circuitx/backend"
	"github.com/zkstack/circuitx/circuit"
)

type Assert struct {
	t *testing.T
}

func NewAssert(t *testing.T) *Assert {
	return &Assert{t: t}
}

// ProveSucceeded proves with the given input and verifies the result against
// the derived output. Returns the proof and output for further checks.
func (a *Assert) ProveSucceeded(c *circuit.Circuit, in *circuit.Input) (*backend.Proof, *circuit.Output) {
	a.t.Helper()
	proof, out, err := c.Prove(in)
	if err != nil {
		a.t.Fatalf("prove: %v", err)
	}
	if err := c.Verify(proof, in, out); err != nil {
		a.t.Fatalf("verify: %v", err)
	}
	return proof, out
}

// ProveFailed asserts that proving with the given input errors.
func (a *Assert) ProveFailed(c *circuit.Circuit, in *circuit.Input) {
	a.t.Helper()
	if _, _, err := c.Prove(in); err == nil {
		a.t.Fatal("prove should fail")
	}
}

// RoundTrip serializes the circuit with the default registries, deserializes
// it, and returns the copy. Identity must survive.
func (a *Assert) RoundTrip(c *circuit.Circuit) *circuit.Circuit {
	a.t.Helper()
	gates, gens := backend.DefaultGateRegistry(), backend.DefaultGeneratorRegistry()
	buf, err := c.Serialize(gates, gens)
	if err != nil {
		a.t.Fatalf("serialize: %v", err)
	}
	got, err := circuit.Deserialize(buf, gates, gens, c.Backend)
	if err != nil {
		a.t.Fatalf("deserialize: %v", err)
	}
	if got.ID() != c.ID() {
		a.t.Fatalf("identity changed across round trip: %s != %s", got.ID(), c.ID())
	}
	return got
}
