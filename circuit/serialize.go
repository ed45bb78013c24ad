package circuit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/zkstack/circuitx/backend"
	"github.com/zkstack/circuitx/utils"
	"github.com/zkstack/circuitx/vars"
)

// ErrUnknownIOTag is returned when a serialized circuit carries an io tag
// this version does not recognize.
var ErrUnknownIOTag = errors.New("circuit: unknown io tag")

// CircuitFileExt is the suffix of persisted circuits under a build directory.
const CircuitFileExt = ".circuit"

// Serialize encodes the circuit: the length-prefixed artifact, the io tag,
// then for byte or element io the flattened input and output slot lists.
func (c *Circuit) Serialize(gates *backend.GateRegistry, gens *backend.GeneratorRegistry) ([]byte, error) {
	data, err := c.Data.Serialize(gates, gens)
	if err != nil {
		return nil, err
	}
	o := utils.OutputBuf{}
	o.AppendBytes(data)
	o.AppendUint64(uint64(c.IO.Tag))
	switch c.IO.Tag {
	case IOBytes, IOElements:
		o.AppendIntSlice(slotIndices(c.IO.InputSlots()))
		o.AppendIntSlice(slotIndices(c.IO.OutputSlots()))
	case IONone:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownIOTag, c.IO.Tag)
	}
	return o.Bytes(), nil
}

// Deserialize decodes a circuit produced by Serialize with matching
// registries and binds it to the given backend.
func Deserialize(buf []byte, gates *backend.GateRegistry, gens *backend.GeneratorRegistry, b backend.Backend) (*Circuit, error) {
	in := utils.NewInputBuf(buf)
	dataBytes, err := in.ReadBytes()
	if err != nil {
		return nil, err
	}
	data, err := backend.DeserializeArtifactData(dataBytes, gates, gens)
	if err != nil {
		return nil, err
	}
	tag, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}

	c := &Circuit{Data: data, Backend: b}
	switch IOTag(tag) {
	case IOBytes:
		inSlots, outSlots, err := readSlotLists(in)
		if err != nil {
			return nil, err
		}
		byteIn, err := regroupBytes(inSlots)
		if err != nil {
			return nil, err
		}
		byteOut, err := regroupBytes(outSlots)
		if err != nil {
			return nil, err
		}
		c.IO = BytesIO(byteIn, byteOut)
	case IOElements:
		inSlots, outSlots, err := readSlotLists(in)
		if err != nil {
			return nil, err
		}
		c.IO = ElementsIO(regroupElements(inSlots), regroupElements(outSlots))
	case IONone:
		c.IO = NoneIO()
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownIOTag, tag)
	}
	if !in.IsEnd() {
		return nil, fmt.Errorf("circuit: %d trailing bytes", in.Remaining())
	}
	return c, nil
}

func slotIndices(slots []vars.Slot) []int {
	out := make([]int, len(slots))
	for i, s := range slots {
		out[i] = s.Index
	}
	return out
}

func readSlotLists(in *utils.InputBuf) ([]vars.Slot, []vars.Slot, error) {
	inIdx, err := in.ReadIntSlice()
	if err != nil {
		return nil, nil, err
	}
	outIdx, err := in.ReadIntSlice()
	if err != nil {
		return nil, nil, err
	}
	return slotsFromIndices(inIdx), slotsFromIndices(outIdx), nil
}

func slotsFromIndices(idx []int) []vars.Slot {
	out := make([]vars.Slot, len(idx))
	for i, x := range idx {
		out[i] = vars.Slot{Index: x}
	}
	return out
}

// regroupBytes folds a flat slot list back into byte variables. The list
// length must be a multiple of eight.
func regroupBytes(slots []vars.Slot) ([]vars.ByteVariable, error) {
	if len(slots)%vars.ByteSize != 0 {
		return nil, fmt.Errorf("circuit: byte io slot list length %d is not a multiple of %d",
			len(slots), vars.ByteSize)
	}
	if len(slots) == 0 {
		return nil, nil
	}
	out := make([]vars.ByteVariable, 0, len(slots)/vars.ByteSize)
	for start := 0; start < len(slots); start += vars.ByteSize {
		b, err := vars.ByteFromSlots(slots[start : start+vars.ByteSize])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func regroupElements(slots []vars.Slot) []vars.Variable {
	if len(slots) == 0 {
		return nil
	}
	out := make([]vars.Variable, len(slots))
	for i, s := range slots {
		out[i] = vars.Variable{Slot: s}
	}
	return out
}

// Save writes the serialized circuit to path.
func (c *Circuit) Save(path string, gates *backend.GateRegistry, gens *backend.GeneratorRegistry) error {
	buf, err := c.Serialize(gates, gens)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// Load reads a circuit from path.
func Load(path string, gates *backend.GateRegistry, gens *backend.GeneratorRegistry, b backend.Backend) (*Circuit, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Deserialize(buf, gates, gens, b)
}

// SaveToBuildDir persists the circuit under dir as <id>.circuit, creating the
// directory if needed, and returns the path.
func (c *Circuit) SaveToBuildDir(dir string, gates *backend.GateRegistry, gens *backend.GeneratorRegistry) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, c.ID()+CircuitFileExt)
	if err := c.Save(path, gates, gens); err != nil {
		return "", err
	}
	return path, nil
}

// LoadFromBuildDir loads the circuit with the given identity from dir.
func LoadFromBuildDir(dir, id string, gates *backend.GateRegistry, gens *backend.GeneratorRegistry, b backend.Backend) (*Circuit, error) {
	return Load(filepath.Join(dir, id+CircuitFileExt), gates, gens, b)
}

// TestSerializers round-trips the circuit through the given registries and
// checks that the result is structurally identical. Every backend and
// registry combination must satisfy this before its artifacts are persisted.
func (c *Circuit) TestSerializers(gates *backend.GateRegistry, gens *backend.GeneratorRegistry) error {
	buf, err := c.Serialize(gates, gens)
	if err != nil {
		return err
	}
	got, err := Deserialize(buf, gates, gens, c.Backend)
	if err != nil {
		return err
	}
	if got.ID() != c.ID() {
		return fmt.Errorf("circuit: identity changed across round trip: %s != %s", got.ID(), c.ID())
	}
	if !reflect.DeepEqual(got.IO, c.IO) {
		return fmt.Errorf("circuit: io descriptor changed across round trip")
	}
	if !reflect.DeepEqual(got.Data, c.Data) {
		return fmt.Errorf("circuit: artifact data changed across round trip")
	}
	return nil
}

// TestDefaultSerializers is TestSerializers with the default registries.
func (c *Circuit) TestDefaultSerializers() error {
	return c.TestSerializers(backend.DefaultGateRegistry(), backend.DefaultGeneratorRegistry())
}
