package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)
	require.Equal(t, byte(0x02), bytes[0], "little endian should put LSB first")
	require.Equal(t, byte(0x01), bytes[1], "little endian should put MSB second")
	require.Equal(t, testValue, engine.Uint16(bytes))
}

func TestGetBigEndianEngine(t *testing.T) {
	engine := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.BigEndian, engine)

	var testValue uint16 = 0x0102
	bytes := make([]byte, 2)
	engine.PutUint16(bytes, testValue)
	require.Equal(t, byte(0x01), bytes[0], "big endian should put MSB first")
	require.Equal(t, byte(0x02), bytes[1], "big endian should put LSB second")
	require.Equal(t, testValue, engine.Uint16(bytes))
}

func TestEndianEngines(t *testing.T) {
	littleEngine := GetLittleEndianEngine()
	bigEngine := GetBigEndianEngine()

	var testUint32 uint32 = 0x01020304
	littleBytes := make([]byte, 4)
	bigBytes := make([]byte, 4)

	littleEngine.PutUint32(littleBytes, testUint32)
	bigEngine.PutUint32(bigBytes, testUint32)

	require.NotEqual(t, littleBytes, bigBytes)
	require.Equal(t, testUint32, littleEngine.Uint32(littleBytes))
	require.Equal(t, testUint32, bigEngine.Uint32(bigBytes))
}
