package circuit

import (
	"github.com/zkstack/circuitx/vars"
)

// IOTag identifies the public input/output contract of a circuit. Tag values
// are part of the serialized encoding and must not be renumbered.
type IOTag uint64

const (
	IOBytes    IOTag = 0
	IOElements IOTag = 1
	IONone     IOTag = 2
)

// IO describes which wires carry a circuit's public inputs and outputs, and
// how they are typed. Exactly one variant is populated; the tag says which.
// The descriptor is fixed at build time.
type IO struct {
	Tag        IOTag
	ByteInput  []vars.ByteVariable
	ByteOutput []vars.ByteVariable
	ElemInput  []vars.Variable
	ElemOutput []vars.Variable
}

func NoneIO() IO { return IO{Tag: IONone} }

func BytesIO(input, output []vars.ByteVariable) IO {
	return IO{Tag: IOBytes, ByteInput: input, ByteOutput: output}
}

func ElementsIO(input, output []vars.Variable) IO {
	return IO{Tag: IOElements, ElemInput: input, ElemOutput: output}
}

// InputSlots flattens the input variables into wire order. Byte variables
// contribute eight slots each, most significant bit first.
func (io *IO) InputSlots() []vars.Slot {
	switch io.Tag {
	case IOBytes:
		return flattenBytes(io.ByteInput)
	case IOElements:
		return flattenElements(io.ElemInput)
	default:
		return nil
	}
}

// OutputSlots is the output-side counterpart of InputSlots.
func (io *IO) OutputSlots() []vars.Slot {
	switch io.Tag {
	case IOBytes:
		return flattenBytes(io.ByteOutput)
	case IOElements:
		return flattenElements(io.ElemOutput)
	default:
		return nil
	}
}

func flattenBytes(bs []vars.ByteVariable) []vars.Slot {
	out := make([]vars.Slot, 0, len(bs)*vars.ByteSize)
	for _, b := range bs {
		out = append(out, b.Slots()...)
	}
	return out
}

func flattenElements(es []vars.Variable) []vars.Slot {
	out := make([]vars.Slot, 0, len(es))
	for _, e := range es {
		out = append(out, e.Slot)
	}
	return out
}
