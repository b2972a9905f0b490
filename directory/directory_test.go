package directory

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/gosc3k/ixfkit/byteio"
	"github.com/gosc3k/ixfkit/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func entryBytes(e Entry) []byte {
	var buf bytes.Buffer
	buf.Write(le32(e.Group))
	buf.Write(le32(e.Instance))
	buf.Write(le32(e.Type))
	buf.Write(le32(e.Offset))
	buf.Write(le32(e.Length))
	return buf.Bytes()
}

func newReader(t *testing.T, data []byte) *byteio.Reader {
	t.Helper()
	r, err := byteio.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	return r
}

func TestParse_TooShortIsEmptyContainer(t *testing.T) {
	entries, err := Parse(newReader(t, le32(Signature)))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_SignatureOnlyPlusTerminatorIsEmpty(t *testing.T) {
	var data bytes.Buffer
	data.Write(le32(Signature))
	data.Write(entryBytes(terminator))

	entries, err := Parse(newReader(t, data.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_BadSignature(t *testing.T) {
	var data bytes.Buffer
	data.Write(le32(0xDEADBEEF))
	data.Write(make([]byte, 40))

	_, err := Parse(newReader(t, data.Bytes()))
	assert.ErrorIs(t, err, errs.ErrBadSignature)
}

func TestParse_DeletedEntryBetweenTwoLiveEntriesIsSkipped(t *testing.T) {
	live1 := Entry{Group: 1, Instance: 1, Type: 1, Offset: 100, Length: 10}
	live2 := Entry{Group: 2, Instance: 2, Type: 2, Offset: 200, Length: 20}

	var data bytes.Buffer
	data.Write(le32(Signature))
	data.Write(entryBytes(live1))
	data.Write(entryBytes(deleted))
	data.Write(entryBytes(live2))
	data.Write(entryBytes(terminator))

	entries, err := Parse(newReader(t, data.Bytes()))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, live1, entries[0])
	assert.Equal(t, live2, entries[1])
}

func TestParse_OrderMatchesFileOrder(t *testing.T) {
	e1 := Entry{Group: 1, Type: 1, Instance: 1, Offset: 24, Length: 4}
	e2 := Entry{Group: 2, Type: 2, Instance: 2, Offset: 28, Length: 4}
	e3 := Entry{Group: 3, Type: 3, Instance: 3, Offset: 32, Length: 4}

	var data bytes.Buffer
	data.Write(le32(Signature))
	for _, e := range []Entry{e1, e2, e3} {
		data.Write(entryBytes(e))
	}
	data.Write(entryBytes(terminator))

	entries, err := Parse(newReader(t, data.Bytes()))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []Entry{e1, e2, e3}, entries)
}

func TestParse_MissingTerminatorFailsWithInvalidEntry(t *testing.T) {
	live := Entry{Group: 1, Instance: 1, Type: 1, Offset: 100, Length: 10}

	var data bytes.Buffer
	data.Write(le32(Signature))
	data.Write(entryBytes(live))
	// no terminator, stream just ends

	_, err := Parse(newReader(t, data.Bytes()))
	assert.ErrorIs(t, err, errs.ErrInvalidEntry)
}

func TestParse_TruncatedRecordFailsWithInvalidEntry(t *testing.T) {
	live := Entry{Group: 1, Instance: 1, Type: 1, Offset: 100, Length: 10}

	var data bytes.Buffer
	data.Write(le32(Signature))
	data.Write(entryBytes(live))
	data.Write(le32(1)) // only one field of the next 20-byte record present

	_, err := Parse(newReader(t, data.Bytes()))
	assert.ErrorIs(t, err, errs.ErrInvalidEntry)
}

func TestParse_NoLiveEntryIsSentinel(t *testing.T) {
	live := Entry{Group: 1, Instance: 1, Type: 1, Offset: 100, Length: 10}

	var data bytes.Buffer
	data.Write(le32(Signature))
	data.Write(entryBytes(live))
	data.Write(entryBytes(terminator))

	entries, err := Parse(newReader(t, data.Bytes()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsTerminator())
		assert.False(t, e.IsDeleted())
	}
}

func TestParse_Idempotent(t *testing.T) {
	live := Entry{Group: 1, Instance: 2, Type: 3, Offset: 24, Length: 8}

	var data bytes.Buffer
	data.Write(le32(Signature))
	data.Write(entryBytes(live))
	data.Write(entryBytes(terminator))

	entries1, err := Parse(newReader(t, data.Bytes()))
	require.NoError(t, err)
	entries2, err := Parse(newReader(t, data.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, entries1, entries2)
}
