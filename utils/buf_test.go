package utils

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBufRoundTrip(t *testing.T) {
	o := OutputBuf{}
	o.AppendUint64(42)
	o.AppendUint32(7)
	o.AppendUint8(255)
	o.AppendIntSlice([]int{3, 1, 4, 1, 5})
	o.AppendBytes([]byte("hello"))
	o.AppendBigInt(8, big.NewInt(123456789))

	in := NewInputBuf(o.Bytes())
	u64, err := in.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(42), u64)
	u32, err := in.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(7), u32)
	u8, err := in.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(255), u8)
	ints, err := in.ReadIntSlice()
	require.NoError(t, err)
	require.Equal(t, []int{3, 1, 4, 1, 5}, ints)
	bs, err := in.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), bs)
	bi, err := in.ReadBigInt(8)
	require.NoError(t, err)
	require.Equal(t, int64(123456789), bi.Int64())
	require.True(t, in.IsEnd())
}

func TestBufTruncated(t *testing.T) {
	o := OutputBuf{}
	o.AppendUint64(1)
	buf := o.Bytes()

	in := NewInputBuf(buf[:3])
	_, err := in.ReadUint64()
	require.ErrorIs(t, err, ErrShortBuffer)

	in = NewInputBuf(buf)
	_, err = in.ReadBytes()
	require.Error(t, err)
}

func TestReadIntSliceBogusLength(t *testing.T) {
	o := OutputBuf{}
	o.AppendUint64(1 << 60)
	in := NewInputBuf(o.Bytes())
	_, err := in.ReadIntSlice()
	require.ErrorIs(t, err, ErrShortBuffer)
}
