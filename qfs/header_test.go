package qfs

import (
	"testing"

	"github.com/gosc3k/ixfkit/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader_OffsetZero(t *testing.T) {
	data := []byte{0x10, 0xFB, 0x00, 0x00, 0x04, 0xE0, 'T', 'e', 's', 't', 0xFC}

	h, err := ParseHeader(data)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Start)
	assert.Equal(t, 5, h.DataStart)
	assert.Equal(t, 4, h.UncompressedSize)
	assert.False(t, h.CompressedSizePresent)
	assert.False(t, h.LargeSizeFields)
}

func TestParseHeader_OffsetFour(t *testing.T) {
	data := []byte{
		0x0B, 0x00, 0x00, 0x00, // unrelated 4-byte length prefix
		0x10, 0xFB,
		0x00, 0x00, 0x04,
		0xE0, 'T', 'e', 's', 't',
	}

	h, err := ParseHeader(data)
	require.NoError(t, err)
	assert.Equal(t, 4, h.Start)
	assert.Equal(t, 9, h.DataStart)
	assert.Equal(t, 4, h.UncompressedSize)
}

func TestParseHeader_CompressedSizePresentIsSkipped(t *testing.T) {
	data := []byte{
		0x11, 0xFB, // flag with CompressedSizePresent set
		0xAA, 0xAA, 0xAA, // compressed size field, ignored
		0x00, 0x00, 0x04, // uncompressed size = 4
	}

	h, err := ParseHeader(data)
	require.NoError(t, err)
	assert.True(t, h.CompressedSizePresent)
	assert.Equal(t, 4, h.UncompressedSize)
	assert.Equal(t, 8, h.DataStart)
}

func TestParseHeader_LargeSizeFields(t *testing.T) {
	data := []byte{
		0x90, 0xFB, // flag with LargeSizeFields set
		0x00, 0x00, 0x01, 0x00, // 4-byte BE uncompressed size = 256
	}

	h, err := ParseHeader(data)
	require.NoError(t, err)
	assert.True(t, h.LargeSizeFields)
	assert.Equal(t, 256, h.UncompressedSize)
	assert.Equal(t, 6, h.DataStart)
}

func TestParseHeader_UnsupportedFormat(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x00},
		{0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		{0xAB, 0xCD, 0xEF, 0x01, 0x02, 0x03},
	}

	for _, data := range cases {
		_, err := ParseHeader(data)
		assert.ErrorIs(t, err, errs.ErrUnsupportedFormat)
	}
}

func TestParseHeader_TruncatedSizeField(t *testing.T) {
	data := []byte{0x10, 0xFB, 0x00, 0x00}

	_, err := ParseHeader(data)
	assert.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestUncompressedSize(t *testing.T) {
	data := []byte{0x10, 0xFB, 0x00, 0x01, 0x00}

	n, err := UncompressedSize(data)
	require.NoError(t, err)
	assert.Equal(t, 256, n)
}
