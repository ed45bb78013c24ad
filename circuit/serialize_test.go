package circuit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zkstack/circuitx"
	"github.com/zkstack/circuitx/circuit"
	"github.com/zkstack/circuitx/utils"
)

func TestSerializeRoundTrip(t *testing.T) {
	c := compileAdd(t)
	gates, gens := circuitx.DefaultRegistries()

	buf, err := c.Serialize(gates, gens)
	require.NoError(t, err)
	got, err := circuit.Deserialize(buf, gates, gens, c.Backend)
	require.NoError(t, err)

	require.Equal(t, c.ID(), got.ID())
	require.Equal(t, c.IO, got.IO)
	require.Equal(t, c.Data, got.Data)

	// byte-identical re-encode
	buf2, err := got.Serialize(gates, gens)
	require.NoError(t, err)
	require.Equal(t, buf, buf2)
}

func TestSerializersHarness(t *testing.T) {
	c := compileAdd(t)
	require.NoError(t, c.TestDefaultSerializers())

	gates, gens := circuitx.DefaultRegistries()
	require.NoError(t, c.TestSerializers(gates, gens))
}

func TestDeserializeTruncated(t *testing.T) {
	c := compileAdd(t)
	gates, gens := circuitx.DefaultRegistries()
	buf, err := c.Serialize(gates, gens)
	require.NoError(t, err)

	for _, n := range []int{0, 7, len(buf) / 2, len(buf) - 1} {
		_, err := circuit.Deserialize(buf[:n], gates, gens, c.Backend)
		require.Error(t, err, "prefix length %d", n)
	}
}

func TestDeserializeUnknownTag(t *testing.T) {
	c := compileAdd(t)
	gates, gens := circuitx.DefaultRegistries()
	data, err := c.Data.Serialize(gates, gens)
	require.NoError(t, err)

	o := utils.OutputBuf{}
	o.AppendBytes(data)
	o.AppendUint64(9)
	_, err = circuit.Deserialize(o.Bytes(), gates, gens, c.Backend)
	require.ErrorIs(t, err, circuit.ErrUnknownIOTag)
}

func TestDeserializeRaggedByteIO(t *testing.T) {
	c := compileAdd(t)
	gates, gens := circuitx.DefaultRegistries()
	data, err := c.Data.Serialize(gates, gens)
	require.NoError(t, err)

	o := utils.OutputBuf{}
	o.AppendBytes(data)
	o.AppendUint64(uint64(circuit.IOBytes))
	o.AppendIntSlice([]int{0, 1, 2, 3, 4, 5, 6}) // not a multiple of 8
	o.AppendIntSlice(nil)
	_, err = circuit.Deserialize(o.Bytes(), gates, gens, c.Backend)
	require.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	c := compileAdd(t)
	gates, gens := circuitx.DefaultRegistries()
	path := filepath.Join(t.TempDir(), "add.circuit")

	require.NoError(t, c.Save(path, gates, gens))
	got, err := circuit.Load(path, gates, gens, c.Backend)
	require.NoError(t, err)
	require.Equal(t, c.ID(), got.ID())
}

func TestBuildDir(t *testing.T) {
	c := compileAdd(t)
	gates, gens := circuitx.DefaultRegistries()
	dir := filepath.Join(t.TempDir(), "build")

	path, err := c.SaveToBuildDir(dir, gates, gens)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, c.ID()+circuit.CircuitFileExt), path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	got, err := circuit.LoadFromBuildDir(dir, c.ID(), gates, gens, c.Backend)
	require.NoError(t, err)
	require.Equal(t, c.ID(), got.ID())
}
