package backend

import (
	"github.com/consensys/gnark/constraint"
	"github.com/zkstack/circuitx/field"
	"github.com/zkstack/circuitx/utils"
	"github.com/zkstack/circuitx/vars"
)

// Generator computes the value of one or more wires from already-set wires.
// The builder emits generators in dependency order, so a single in-order pass
// fills the whole witness.
type Generator interface {
	Name() string
	Serialize(f field.Field, o *utils.OutputBuf)
	Run(f field.Field, w *Witness) error
}

type AddGenerator struct {
	A, B, Out vars.Slot
}

func (g *AddGenerator) Name() string { return "gen.add" }

func (g *AddGenerator) Serialize(f field.Field, o *utils.OutputBuf) {
	o.AppendUint64(uint64(g.A.Index))
	o.AppendUint64(uint64(g.B.Index))
	o.AppendUint64(uint64(g.Out.Index))
}

func (g *AddGenerator) Run(f field.Field, w *Witness) error {
	a, err := w.Get(g.A)
	if err != nil {
		return err
	}
	b, err := w.Get(g.B)
	if err != nil {
		return err
	}
	return w.Set(g.Out, f.Add(a, b))
}

func deserializeAddGenerator(f field.Field, in *utils.InputBuf) (Generator, error) {
	a, b, out, err := readThreeWires(in)
	if err != nil {
		return nil, err
	}
	return &AddGenerator{A: a, B: b, Out: out}, nil
}

type MulGenerator struct {
	A, B, Out vars.Slot
}

func (g *MulGenerator) Name() string { return "gen.mul" }

func (g *MulGenerator) Serialize(f field.Field, o *utils.OutputBuf) {
	o.AppendUint64(uint64(g.A.Index))
	o.AppendUint64(uint64(g.B.Index))
	o.AppendUint64(uint64(g.Out.Index))
}

func (g *MulGenerator) Run(f field.Field, w *Witness) error {
	a, err := w.Get(g.A)
	if err != nil {
		return err
	}
	b, err := w.Get(g.B)
	if err != nil {
		return err
	}
	return w.Set(g.Out, f.Mul(a, b))
}

func deserializeMulGenerator(f field.Field, in *utils.InputBuf) (Generator, error) {
	a, b, out, err := readThreeWires(in)
	if err != nil {
		return nil, err
	}
	return &MulGenerator{A: a, B: b, Out: out}, nil
}

type SubGenerator struct {
	A, B, Out vars.Slot
}

func (g *SubGenerator) Name() string { return "gen.sub" }

func (g *SubGenerator) Serialize(f field.Field, o *utils.OutputBuf) {
	o.AppendUint64(uint64(g.A.Index))
	o.AppendUint64(uint64(g.B.Index))
	o.AppendUint64(uint64(g.Out.Index))
}

func (g *SubGenerator) Run(f field.Field, w *Witness) error {
	a, err := w.Get(g.A)
	if err != nil {
		return err
	}
	b, err := w.Get(g.B)
	if err != nil {
		return err
	}
	return w.Set(g.Out, f.Sub(a, b))
}

func deserializeSubGenerator(f field.Field, in *utils.InputBuf) (Generator, error) {
	a, b, out, err := readThreeWires(in)
	if err != nil {
		return nil, err
	}
	return &SubGenerator{A: a, B: b, Out: out}, nil
}

type ConstantGenerator struct {
	Out   vars.Slot
	Value constraint.Element
}

func (g *ConstantGenerator) Name() string { return "gen.constant" }

func (g *ConstantGenerator) Serialize(f field.Field, o *utils.OutputBuf) {
	o.AppendUint64(uint64(g.Out.Index))
	o.AppendFieldElement(f, g.Value)
}

func (g *ConstantGenerator) Run(f field.Field, w *Witness) error {
	return w.Set(g.Out, g.Value)
}

func deserializeConstantGenerator(f field.Field, in *utils.InputBuf) (Generator, error) {
	out, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	v, err := in.ReadFieldElement(f)
	if err != nil {
		return nil, err
	}
	return &ConstantGenerator{Out: vars.Slot{Index: int(out)}, Value: v}, nil
}
