// Package vars defines the symbolic handles a circuit is built from: slots,
// typed variable wrappers around them, and the sequential stream used to lay
// structured data over a flat run of slots.
package vars

import "fmt"

// ExtensionDegree is the degree of the field extension used by the opening
// proof.
const ExtensionDegree = 2

// HashOutSize is the number of slots in one hash output.
const HashOutSize = 4

// ByteSize is the number of bit slots packed into one ByteVariable.
const ByteSize = 8

// Slot is a handle to a single wire of the constraint system. It never holds a
// value; values are bound to wires only at witness time. Two slots are equal
// iff they reference the same wire.
type Slot struct {
	Index int
}

// Variable is a single field element in the circuit.
type Variable struct {
	Slot Slot
}

func (v Variable) Slots() []Slot {
	return []Slot{v.Slot}
}

// ByteVariable is one byte, packed as 8 bit wires in big-endian bit order:
// Bits[0] is the most significant bit.
type ByteVariable struct {
	Bits [ByteSize]Variable
}

func (b ByteVariable) Slots() []Slot {
	s := make([]Slot, ByteSize)
	for i, v := range b.Bits {
		s[i] = v.Slot
	}
	return s
}

// ByteFromSlots regroups exactly 8 slots into a ByteVariable.
func ByteFromSlots(slots []Slot) (ByteVariable, error) {
	var b ByteVariable
	if len(slots) != ByteSize {
		return b, fmt.Errorf("byte variable needs %d slots, got %d", ByteSize, len(slots))
	}
	for i, s := range slots {
		b.Bits[i] = Variable{Slot: s}
	}
	return b, nil
}

// ExtensionVariable is a degree-ExtensionDegree extension field element.
type ExtensionVariable struct {
	Elements [ExtensionDegree]Variable
}

func (e ExtensionVariable) Slots() []Slot {
	s := make([]Slot, ExtensionDegree)
	for i, v := range e.Elements {
		s[i] = v.Slot
	}
	return s
}
