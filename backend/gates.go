package backend

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark/constraint"
	"github.com/zkstack/circuitx/field"
	"github.com/zkstack/circuitx/utils"
	"github.com/zkstack/circuitx/vars"
)

// ErrUnsatisfied is returned by a gate whose constraint does not hold on the
// current witness.
var ErrUnsatisfied = errors.New("backend: constraint unsatisfied")

// Gate is one constraint over a fixed set of wires.
type Gate interface {
	Name() string
	Serialize(f field.Field, o *utils.OutputBuf)
	Check(f field.Field, w *Witness) error
}

type AddGate struct {
	A, B, Out vars.Slot
}

func (g *AddGate) Name() string { return "arith.add" }

func (g *AddGate) Serialize(f field.Field, o *utils.OutputBuf) {
	o.AppendUint64(uint64(g.A.Index))
	o.AppendUint64(uint64(g.B.Index))
	o.AppendUint64(uint64(g.Out.Index))
}

func (g *AddGate) Check(f field.Field, w *Witness) error {
	a, b, out, err := binaryWires(w, g.A, g.B, g.Out)
	if err != nil {
		return err
	}
	if f.Add(a, b) != out {
		return fmt.Errorf("%w: %s at wire %d", ErrUnsatisfied, g.Name(), g.Out.Index)
	}
	return nil
}

func deserializeAddGate(f field.Field, in *utils.InputBuf) (Gate, error) {
	a, b, out, err := readThreeWires(in)
	if err != nil {
		return nil, err
	}
	return &AddGate{A: a, B: b, Out: out}, nil
}

type MulGate struct {
	A, B, Out vars.Slot
}

func (g *MulGate) Name() string { return "arith.mul" }

func (g *MulGate) Serialize(f field.Field, o *utils.OutputBuf) {
	o.AppendUint64(uint64(g.A.Index))
	o.AppendUint64(uint64(g.B.Index))
	o.AppendUint64(uint64(g.Out.Index))
}

func (g *MulGate) Check(f field.Field, w *Witness) error {
	a, b, out, err := binaryWires(w, g.A, g.B, g.Out)
	if err != nil {
		return err
	}
	if f.Mul(a, b) != out {
		return fmt.Errorf("%w: %s at wire %d", ErrUnsatisfied, g.Name(), g.Out.Index)
	}
	return nil
}

func deserializeMulGate(f field.Field, in *utils.InputBuf) (Gate, error) {
	a, b, out, err := readThreeWires(in)
	if err != nil {
		return nil, err
	}
	return &MulGate{A: a, B: b, Out: out}, nil
}

type ConstantGate struct {
	Out   vars.Slot
	Value constraint.Element
}

func (g *ConstantGate) Name() string { return "arith.constant" }

func (g *ConstantGate) Serialize(f field.Field, o *utils.OutputBuf) {
	o.AppendUint64(uint64(g.Out.Index))
	o.AppendFieldElement(f, g.Value)
}

func (g *ConstantGate) Check(f field.Field, w *Witness) error {
	out, err := w.Get(g.Out)
	if err != nil {
		return err
	}
	if out != g.Value {
		return fmt.Errorf("%w: %s at wire %d", ErrUnsatisfied, g.Name(), g.Out.Index)
	}
	return nil
}

func deserializeConstantGate(f field.Field, in *utils.InputBuf) (Gate, error) {
	out, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	v, err := in.ReadFieldElement(f)
	if err != nil {
		return nil, err
	}
	return &ConstantGate{Out: vars.Slot{Index: int(out)}, Value: v}, nil
}

type EqualGate struct {
	A, B vars.Slot
}

func (g *EqualGate) Name() string { return "arith.equal" }

func (g *EqualGate) Serialize(f field.Field, o *utils.OutputBuf) {
	o.AppendUint64(uint64(g.A.Index))
	o.AppendUint64(uint64(g.B.Index))
}

func (g *EqualGate) Check(f field.Field, w *Witness) error {
	a, err := w.Get(g.A)
	if err != nil {
		return err
	}
	b, err := w.Get(g.B)
	if err != nil {
		return err
	}
	if a != b {
		return fmt.Errorf("%w: %s between wires %d and %d", ErrUnsatisfied, g.Name(), g.A.Index, g.B.Index)
	}
	return nil
}

func deserializeEqualGate(f field.Field, in *utils.InputBuf) (Gate, error) {
	a, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	b, err := in.ReadUint64()
	if err != nil {
		return nil, err
	}
	return &EqualGate{A: vars.Slot{Index: int(a)}, B: vars.Slot{Index: int(b)}}, nil
}

func binaryWires(w *Witness, a, b, out vars.Slot) (constraint.Element, constraint.Element, constraint.Element, error) {
	av, err := w.Get(a)
	if err != nil {
		return av, av, av, err
	}
	bv, err := w.Get(b)
	if err != nil {
		return av, bv, bv, err
	}
	ov, err := w.Get(out)
	if err != nil {
		return av, bv, ov, err
	}
	return av, bv, ov, nil
}

func readThreeWires(in *utils.InputBuf) (vars.Slot, vars.Slot, vars.Slot, error) {
	a, err := in.ReadUint64()
	if err != nil {
		return vars.Slot{}, vars.Slot{}, vars.Slot{}, err
	}
	b, err := in.ReadUint64()
	if err != nil {
		return vars.Slot{}, vars.Slot{}, vars.Slot{}, err
	}
	c, err := in.ReadUint64()
	if err != nil {
		return vars.Slot{}, vars.Slot{}, vars.Slot{}, err
	}
	return vars.Slot{Index: int(a)}, vars.Slot{Index: int(b)}, vars.Slot{Index: int(c)}, nil
}
