package vars

import (
	"errors"
	"fmt"
)

// ErrStreamExhausted is returned when a read asks for more slots than remain.
var ErrStreamExhausted = errors.New("vars: variable stream exhausted")

// VariableStream is a single-owner, single-pass cursor over an ordered run of
// slots. Every read consumes an exact, caller-specified number of slots; the
// stream itself carries no length headers. Writes append to the end, so a
// stream can be filled and then handed to a reader.
type VariableStream struct {
	slots []Slot
	pos   int
}

func NewVariableStream(slots []Slot) *VariableStream {
	return &VariableStream{slots: slots}
}

func NewEmptyStream() *VariableStream {
	return &VariableStream{}
}

// Remaining reports how many slots are left to read.
func (s *VariableStream) Remaining() int {
	return len(s.slots) - s.pos
}

func (s *VariableStream) Len() int {
	return len(s.slots)
}

// Slots returns the full underlying slot run, including already-read slots.
func (s *VariableStream) Slots() []Slot {
	return s.slots
}

// precheck rejects a composite read up front so that a failed read never
// leaves the cursor partially advanced.
func (s *VariableStream) precheck(n int) error {
	if n < 0 {
		return fmt.Errorf("vars: negative read length %d", n)
	}
	if s.Remaining() < n {
		return fmt.Errorf("%w: need %d slots, %d remaining", ErrStreamExhausted, n, s.Remaining())
	}
	return nil
}

// ReadExact consumes exactly n slots.
func (s *VariableStream) ReadExact(n int) ([]Slot, error) {
	if n < 0 {
		return nil, fmt.Errorf("vars: negative read length %d", n)
	}
	if s.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d slots, %d remaining", ErrStreamExhausted, n, s.Remaining())
	}
	out := s.slots[s.pos : s.pos+n]
	s.pos += n
	return out, nil
}

func (s *VariableStream) ReadVariable() (Variable, error) {
	slots, err := s.ReadExact(1)
	if err != nil {
		return Variable{}, err
	}
	return Variable{Slot: slots[0]}, nil
}

func (s *VariableStream) ReadVariables(n int) ([]Variable, error) {
	slots, err := s.ReadExact(n)
	if err != nil {
		return nil, err
	}
	out := make([]Variable, n)
	for i, sl := range slots {
		out[i] = Variable{Slot: sl}
	}
	return out, nil
}

func (s *VariableStream) ReadByteVariable() (ByteVariable, error) {
	slots, err := s.ReadExact(ByteSize)
	if err != nil {
		return ByteVariable{}, err
	}
	return ByteFromSlots(slots)
}

func (s *VariableStream) ReadExtension() (ExtensionVariable, error) {
	var e ExtensionVariable
	slots, err := s.ReadExact(ExtensionDegree)
	if err != nil {
		return e, err
	}
	for i, sl := range slots {
		e.Elements[i] = Variable{Slot: sl}
	}
	return e, nil
}

func (s *VariableStream) ReadExtensions(n int) ([]ExtensionVariable, error) {
	if err := s.precheck(n * ExtensionDegree); err != nil {
		return nil, err
	}
	out := make([]ExtensionVariable, n)
	for i := range out {
		e, err := s.ReadExtension()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func (s *VariableStream) ReadHashOut() (HashOutVariable, error) {
	var h HashOutVariable
	slots, err := s.ReadExact(HashOutSize)
	if err != nil {
		return h, err
	}
	for i, sl := range slots {
		h.Elements[i] = Variable{Slot: sl}
	}
	return h, nil
}

// ReadMerkleCap reads the 1<<capHeight hash outputs of a Merkle cap.
func (s *VariableStream) ReadMerkleCap(capHeight int) (MerkleCapVariable, error) {
	n := 1 << capHeight
	if err := s.precheck(n * HashOutSize); err != nil {
		return nil, err
	}
	c := make(MerkleCapVariable, n)
	for i := 0; i < n; i++ {
		h, err := s.ReadHashOut()
		if err != nil {
			return nil, err
		}
		c[i] = h
	}
	return c, nil
}

// ReadMerkleProof reads an authentication path of length siblings.
func (s *VariableStream) ReadMerkleProof(length int) (MerkleProofVariable, error) {
	if err := s.precheck(length * HashOutSize); err != nil {
		return MerkleProofVariable{}, err
	}
	siblings := make([]HashOutVariable, length)
	for i := 0; i < length; i++ {
		h, err := s.ReadHashOut()
		if err != nil {
			return MerkleProofVariable{}, err
		}
		siblings[i] = h
	}
	return MerkleProofVariable{Siblings: siblings}, nil
}

func (s *VariableStream) WriteSlots(slots []Slot) {
	s.slots = append(s.slots, slots...)
}

func (s *VariableStream) WriteVariable(v Variable) {
	s.slots = append(s.slots, v.Slot)
}

func (s *VariableStream) WriteVariables(vs []Variable) {
	for _, v := range vs {
		s.WriteVariable(v)
	}
}

func (s *VariableStream) WriteByteVariable(b ByteVariable) {
	s.WriteSlots(b.Slots())
}

func (s *VariableStream) WriteExtension(e ExtensionVariable) {
	s.WriteSlots(e.Slots())
}

func (s *VariableStream) WriteHashOut(h HashOutVariable) {
	for _, v := range h.Elements {
		s.WriteVariable(v)
	}
}

func (s *VariableStream) WriteMerkleCap(c MerkleCapVariable) {
	for _, h := range c {
		s.WriteHashOut(h)
	}
}

func (s *VariableStream) WriteMerkleProof(p MerkleProofVariable) {
	for _, h := range p.Siblings {
		s.WriteHashOut(h)
	}
}
