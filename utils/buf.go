// Package utils provides the binary encode/decode buffers shared by the
// artifact and backend serializers.
package utils

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/consensys/gnark/constraint"
)

// ErrShortBuffer is returned when a read runs past the end of the input.
var ErrShortBuffer = errors.New("utils: short buffer")

type SimpleField interface {
	SerializedLen() int
	ToBigInt(c constraint.Element) *big.Int
	FromInterface(i interface{}) constraint.Element
}

type OutputBuf struct {
	buf []byte
}

func (o *OutputBuf) AppendBigInt(n int, x *big.Int) {
	zbuf := make([]byte, n)
	b := x.Bytes()
	for i := 0; i < len(b); i++ {
		zbuf[i] = b[len(b)-i-1]
	}
	o.buf = append(o.buf, zbuf...)
}

func (o *OutputBuf) AppendFieldElement(field SimpleField, x constraint.Element) {
	o.AppendBigInt(field.SerializedLen(), field.ToBigInt(x))
}

func (o *OutputBuf) AppendUint32(x uint32) {
	o.buf = binary.LittleEndian.AppendUint32(o.buf, x)
}

func (o *OutputBuf) AppendUint64(x uint64) {
	o.buf = binary.LittleEndian.AppendUint64(o.buf, x)
}

func (o *OutputBuf) AppendUint8(x uint8) {
	o.buf = append(o.buf, x)
}

func (o *OutputBuf) AppendIntSlice(x []int) {
	o.AppendUint64(uint64(len(x)))
	for _, v := range x {
		o.AppendUint64(uint64(v))
	}
}

// AppendBytes writes a length-prefixed byte blob.
func (o *OutputBuf) AppendBytes(b []byte) {
	o.AppendUint64(uint64(len(b)))
	o.buf = append(o.buf, b...)
}

func (o *OutputBuf) Bytes() []byte {
	return o.buf
}

// InputBuf is the decoding counterpart of OutputBuf. Reads never panic on
// truncated input; they return ErrShortBuffer instead.
type InputBuf struct {
	buf []byte
}

func NewInputBuf(buf []byte) *InputBuf {
	return &InputBuf{buf: buf}
}

func (i *InputBuf) ReadUint32() (uint32, error) {
	if len(i.buf) < 4 {
		return 0, ErrShortBuffer
	}
	x := binary.LittleEndian.Uint32(i.buf[:4])
	i.buf = i.buf[4:]
	return x, nil
}

func (i *InputBuf) ReadUint64() (uint64, error) {
	if len(i.buf) < 8 {
		return 0, ErrShortBuffer
	}
	x := binary.LittleEndian.Uint64(i.buf[:8])
	i.buf = i.buf[8:]
	return x, nil
}

func (i *InputBuf) ReadUint8() (uint8, error) {
	if len(i.buf) < 1 {
		return 0, ErrShortBuffer
	}
	x := i.buf[0]
	i.buf = i.buf[1:]
	return x, nil
}

func (i *InputBuf) ReadIntSlice() ([]int, error) {
	n, err := i.ReadUint64()
	if err != nil {
		return nil, err
	}
	// length sanity before allocating
	if n > uint64(len(i.buf))/8 {
		return nil, ErrShortBuffer
	}
	x := make([]int, n)
	for j := uint64(0); j < n; j++ {
		v, err := i.ReadUint64()
		if err != nil {
			return nil, err
		}
		x[j] = int(v)
	}
	return x, nil
}

func (i *InputBuf) ReadBigInt(n int) (*big.Int, error) {
	if len(i.buf) < n {
		return nil, ErrShortBuffer
	}
	zbuf := make([]byte, n)
	for j := 0; j < n; j++ {
		zbuf[j] = i.buf[n-1-j]
	}
	x := new(big.Int).SetBytes(zbuf)
	i.buf = i.buf[n:]
	return x, nil
}

func (i *InputBuf) ReadFieldElement(field SimpleField) (constraint.Element, error) {
	x, err := i.ReadBigInt(field.SerializedLen())
	if err != nil {
		return constraint.Element{}, err
	}
	return field.FromInterface(x), nil
}

// ReadBytes reads a length-prefixed byte blob.
func (i *InputBuf) ReadBytes() ([]byte, error) {
	n, err := i.ReadUint64()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(i.buf)) {
		return nil, ErrShortBuffer
	}
	b := make([]byte, n)
	copy(b, i.buf[:n])
	i.buf = i.buf[n:]
	return b, nil
}

func (i *InputBuf) IsEnd() bool {
	return len(i.buf) == 0
}

func (i *InputBuf) Remaining() int {
	return len(i.buf)
}
