package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint"
	"github.com/zkstack/circuitx/field/goldilocks"
)

// Field is the arithmetic engine used by the circuit layer. It extends gnark's
// constraint.Field with the metadata needed for serialization.
type Field interface {
	constraint.Field
	Field() *big.Int
	FieldBitLen() int
	SerializedLen() int
}

func GetFieldFromOrder(x *big.Int) (Field, error) {
	if x.Cmp(goldilocks.ScalarField) == 0 {
		return &goldilocks.Field{}, nil
	}
	return nil, fmt.Errorf("unknown field order %v", x)
}

func GetFieldId(f Field) uint64 {
	if f.Field().Cmp(goldilocks.ScalarField) == 0 {
		return 1
	}
	panic(fmt.Sprintf("unsupported field %v", f.Field()))
}

func GetFieldById(id uint64) (Field, error) {
	switch id {
	case 1:
		return &goldilocks.Field{}, nil
	}
	return nil, fmt.Errorf("unsupported field id %v", id)
}
