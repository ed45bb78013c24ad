package backend

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark/constraint"
	"github.com/zkstack/circuitx/field"
	"github.com/zkstack/circuitx/vars"
)

// Witness holds the concrete value of every wire during proving. Wires start
// unset; generators and input binding fill them in.
type Witness struct {
	field  field.Field
	values []constraint.Element
	set    *bitset.BitSet
}

func NewWitness(f field.Field, numWires int) *Witness {
	return &Witness{
		field:  f,
		values: make([]constraint.Element, numWires),
		set:    bitset.New(uint(numWires)),
	}
}

func (w *Witness) Field() field.Field {
	return w.field
}

func (w *Witness) Set(s vars.Slot, v constraint.Element) error {
	if s.Index < 0 || s.Index >= len(w.values) {
		return fmt.Errorf("wire %d out of range (circuit has %d wires)", s.Index, len(w.values))
	}
	w.values[s.Index] = v
	w.set.Set(uint(s.Index))
	return nil
}

func (w *Witness) Get(s vars.Slot) (constraint.Element, error) {
	if s.Index < 0 || s.Index >= len(w.values) {
		return constraint.Element{}, fmt.Errorf("wire %d out of range (circuit has %d wires)", s.Index, len(w.values))
	}
	if !w.set.Test(uint(s.Index)) {
		return constraint.Element{}, fmt.Errorf("wire %d has no value", s.Index)
	}
	return w.values[s.Index], nil
}

func (w *Witness) IsSet(s vars.Slot) bool {
	return s.Index >= 0 && s.Index < len(w.values) && w.set.Test(uint(s.Index))
}
