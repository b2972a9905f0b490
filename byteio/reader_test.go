package byteio

import (
	"bytes"
	"testing"

	"github.com/gosc3k/ixfkit/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReader(t *testing.T, data []byte) *Reader {
	t.Helper()
	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	return r
}

func TestReader_Len(t *testing.T) {
	r := newTestReader(t, make([]byte, 100))
	assert.Equal(t, int64(100), r.Len())
}

func TestReader_Uint32LittleEndian(t *testing.T) {
	r := newTestReader(t, []byte{0xD7, 0x81, 0xC3, 0x80})
	v, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x80C381D7), v)
}

func TestReader_SequentialTypedReads(t *testing.T) {
	data := []byte{
		0x01, 0x00, 0x00, 0x00, // uint32 = 1
		0x02, 0x00, // uint16 = 2
		0x03, // uint8 = 3
	}
	r := newTestReader(t, data)

	v32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), v32)

	v16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(2), v16)

	v8, err := r.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(3), v8)

	assert.Equal(t, int64(len(data)), r.Pos())
}

func TestReader_ReadPastEndFails(t *testing.T) {
	r := newTestReader(t, []byte{0x01, 0x02})
	_, err := r.Uint32()
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestReader_SeekWithinBufferedWindow(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 10)
	data[5] = 0xFF
	r := newTestReader(t, data)

	// Prime the buffer by reading one byte; the whole 10-byte source fits
	// in the buffer window, so subsequent seeks must not re-seek the
	// underlying source.
	_, err := r.Uint8()
	require.NoError(t, err)

	require.NoError(t, r.Seek(5))
	v, err := r.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), v)
	assert.Equal(t, int64(6), r.Pos())
}

func TestReader_SeekOutsideBufferedWindow(t *testing.T) {
	data := make([]byte, maxBufSize+100)
	data[maxBufSize+50] = 0x42
	r := newTestReader(t, data)

	require.NoError(t, r.Seek(int64(maxBufSize+50)))
	v, err := r.Uint8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0x42), v)
}

func TestReader_EmptySourceIsValid(t *testing.T) {
	r := newTestReader(t, nil)
	assert.Equal(t, int64(0), r.Len())
	_, err := r.Uint8()
	assert.Error(t, err)
}

func TestReader_CloseFailsFast(t *testing.T) {
	r := newTestReader(t, []byte{0x01, 0x02, 0x03, 0x04})
	require.NoError(t, r.Close())

	_, err := r.Uint8()
	assert.Error(t, err)
	assert.Error(t, r.Seek(0))
}

func TestReader_ReadFullAcrossMultipleRefills(t *testing.T) {
	data := make([]byte, maxBufSize*3)
	for i := range data {
		data[i] = byte(i)
	}
	r := newTestReader(t, data)

	out := make([]byte, len(data))
	require.NoError(t, r.ReadFull(out))
	assert.Equal(t, data, out)
}
