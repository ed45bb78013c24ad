package backend

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/zkstack/circuitx/field"
	"github.com/zkstack/circuitx/fri"
	"github.com/zkstack/circuitx/utils"
	"github.com/zkstack/circuitx/vars"
)

// VerifierData is the commitment material a verifier needs beyond the circuit
// structure itself.
type VerifierData struct {
	ConstantsCap  fri.MerkleCap
	CircuitDigest fri.HashOut
}

// ArtifactData is the compiled form of a circuit. It contains everything
// needed to prove and verify, and it serializes to a stable byte encoding.
type ArtifactData struct {
	Field            field.Field
	NumWires         int
	Gates            []Gate
	Generators       []Generator
	PublicWires      []int
	FriParams        fri.Params
	OracleLeafCounts []int
	Verifier         VerifierData
}

// commonData is the structural header of the artifact encoding. It is encoded
// with CBOR so that new fields can be added without breaking old readers.
type commonData struct {
	NumWires         int   `cbor:"1,keyasint"`
	PublicWires      []int `cbor:"2,keyasint"`
	RateBits         int   `cbor:"3,keyasint"`
	CapHeight        int   `cbor:"4,keyasint"`
	ProofOfWorkBits  int   `cbor:"5,keyasint"`
	NumQueryRounds   int   `cbor:"6,keyasint"`
	Hiding           bool  `cbor:"7,keyasint"`
	DegreeBits       int   `cbor:"8,keyasint"`
	ReductionArities []int `cbor:"9,keyasint"`
	OracleLeafCounts []int `cbor:"10,keyasint"`
}

// Serialize encodes the artifact. The registries determine the on-wire kind
// indices, so deserialization must use registries with the same contents in
// the same order.
func (a *ArtifactData) Serialize(gates *GateRegistry, gens *GeneratorRegistry) ([]byte, error) {
	o := utils.OutputBuf{}
	o.AppendUint64(uint64(field.GetFieldId(a.Field)))

	header, err := cbor.Marshal(commonData{
		NumWires:         a.NumWires,
		PublicWires:      a.PublicWires,
		RateBits:         a.FriParams.Config.RateBits,
		CapHeight:        a.FriParams.Config.CapHeight,
		ProofOfWorkBits:  a.FriParams.Config.ProofOfWorkBits,
		NumQueryRounds:   a.FriParams.Config.NumQueryRounds,
		Hiding:           a.FriParams.Hiding,
		DegreeBits:       a.FriParams.DegreeBits,
		ReductionArities: a.FriParams.ReductionArityBits,
		OracleLeafCounts: a.OracleLeafCounts,
	})
	if err != nil {
		return nil, fmt.Errorf("encode artifact header: %w", err)
	}
	o.AppendBytes(header)

	o.AppendUint64(uint64(len(a.Gates)))
	for _, g := range a.Gates {
		if err := gates.serialize(a.Field, &o, g); err != nil {
			return nil, err
		}
	}
	o.AppendUint64(uint64(len(a.Generators)))
	for _, g := range a.Generators {
		if err := gens.serialize(a.Field, &o, g); err != nil {
			return nil, err
		}
	}

	o.AppendUint64(uint64(len(a.Verifier.ConstantsCap)))
	for _, h := range a.Verifier.ConstantsCap {
		for _, e := range h {
			o.AppendFieldElement(a.Field, e)
		}
	}
	for _, e := range a.Verifier.CircuitDigest {
		o.AppendFieldElement(a.Field, e)
	}
	return o.Bytes(), nil
}

// DeserializeArtifactData decodes an artifact produced by Serialize with
// matching registries.
func DeserializeArtifactData(buf []byte, gates *GateRegistry, gens *GeneratorRegistry) (*ArtifactData, error) {
	in := utils.NewInputBuf(buf)
	fieldId, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	f, err := field.GetFieldById(fieldId)
	if err != nil {
		return nil, err
	}

	header, err := in.ReadBytes()
	if err != nil {
		return nil, err
	}
	var cd commonData
	if err := cbor.Unmarshal(header, &cd); err != nil {
		return nil, fmt.Errorf("decode artifact header: %w", err)
	}

	a := &ArtifactData{
		Field:       f,
		NumWires:    cd.NumWires,
		PublicWires: cd.PublicWires,
		FriParams: fri.Params{
			Config: fri.Config{
				RateBits:        cd.RateBits,
				CapHeight:       cd.CapHeight,
				ProofOfWorkBits: cd.ProofOfWorkBits,
				NumQueryRounds:  cd.NumQueryRounds,
			},
			Hiding:             cd.Hiding,
			DegreeBits:         cd.DegreeBits,
			ReductionArityBits: cd.ReductionArities,
		},
		OracleLeafCounts: cd.OracleLeafCounts,
	}

	nGates, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < nGates; i++ {
		g, err := gates.deserialize(f, in)
		if err != nil {
			return nil, err
		}
		a.Gates = append(a.Gates, g)
	}
	nGens, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < nGens; i++ {
		g, err := gens.deserialize(f, in)
		if err != nil {
			return nil, err
		}
		a.Generators = append(a.Generators, g)
	}

	capLen, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	if capLen > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: cap length %d", utils.ErrShortBuffer, capLen)
	}
	a.Verifier.ConstantsCap = make(fri.MerkleCap, capLen)
	for i := range a.Verifier.ConstantsCap {
		for j := 0; j < vars.HashOutSize; j++ {
			e, err := in.ReadFieldElement(f)
			if err != nil {
				return nil, err
			}
			a.Verifier.ConstantsCap[i][j] = e
		}
	}
	for j := 0; j < vars.HashOutSize; j++ {
		e, err := in.ReadFieldElement(f)
		if err != nil {
			return nil, err
		}
		a.Verifier.CircuitDigest[j] = e
	}
	if !in.IsEnd() {
		return nil, fmt.Errorf("artifact: %d trailing bytes", in.Remaining())
	}
	return a, nil
}

// DigestBytes returns the circuit digest as big-endian bytes, suitable for
// deriving a stable identity string.
func (a *ArtifactData) DigestBytes() []byte {
	n := a.Field.SerializedLen()
	out := make([]byte, 0, vars.HashOutSize*n)
	for _, e := range a.Verifier.CircuitDigest {
		b := a.Field.ToBigInt(e).Bytes()
		out = append(out, make([]byte, n-len(b))...)
		out = append(out, b...)
	}
	return out
}

// PublicIndex returns the position of wire w in the public wire list, or -1.
func (a *ArtifactData) PublicIndex(w int) int {
	for i, p := range a.PublicWires {
		if p == w {
			return i
		}
	}
	return -1
}

// NumPublicInputs is the length a proof's public input list must have.
func (a *ArtifactData) NumPublicInputs() int {
	return len(a.PublicWires)
}
