// Package goldilocks wraps the gnark-crypto Goldilocks field (p = 2^64 - 2^32 + 1)
// as a constraint.Field engine. This is the base field of the proving backend;
// the degree-2 extension used by the opening proof lives in the fri package.
package goldilocks

import (
	"math/big"

	gg "github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/gnark/constraint"
	"github.com/zkstack/circuitx/utils"
)

var ScalarField = gg.Modulus()

type Field struct{}

func (engine *Field) FromInterface(i interface{}) constraint.Element {
	var e gg.Element
	if _, err := e.SetInterface(i); err != nil {
		b := utils.FromInterface(i)
		e.SetBigInt(&b)
	}
	return constraint.Element{e[0]}
}

func (engine *Field) ToBigInt(c constraint.Element) *big.Int {
	e := gg.Element{c[0]}
	r := new(big.Int)
	e.BigInt(r)
	return r
}

func (engine *Field) Mul(a, b constraint.Element) constraint.Element {
	_a := gg.Element{a[0]}
	_b := gg.Element{b[0]}
	_a.Mul(&_a, &_b)
	return constraint.Element{_a[0]}
}

func (engine *Field) Add(a, b constraint.Element) constraint.Element {
	_a := gg.Element{a[0]}
	_b := gg.Element{b[0]}
	_a.Add(&_a, &_b)
	return constraint.Element{_a[0]}
}

func (engine *Field) Sub(a, b constraint.Element) constraint.Element {
	_a := gg.Element{a[0]}
	_b := gg.Element{b[0]}
	_a.Sub(&_a, &_b)
	return constraint.Element{_a[0]}
}

func (engine *Field) Neg(a constraint.Element) constraint.Element {
	e := gg.Element{a[0]}
	e.Neg(&e)
	return constraint.Element{e[0]}
}

func (engine *Field) Inverse(a constraint.Element) (constraint.Element, bool) {
	e := gg.Element{a[0]}
	if e.IsZero() {
		return a, false
	}
	e.Inverse(&e)
	return constraint.Element{e[0]}, true
}

func (engine *Field) IsOne(a constraint.Element) bool {
	e := gg.Element{a[0]}
	return e.IsOne()
}

func (engine *Field) One() constraint.Element {
	e := gg.One()
	return constraint.Element{e[0]}
}

func (engine *Field) String(a constraint.Element) string {
	e := gg.Element{a[0]}
	return e.String()
}

func (engine *Field) Uint64(a constraint.Element) (uint64, bool) {
	e := gg.Element{a[0]}
	return e.Uint64(), true
}

func (engine *Field) Field() *big.Int {
	return ScalarField
}

func (engine *Field) FieldBitLen() int {
	return 64
}

func (engine *Field) SerializedLen() int {
	return 8
}
