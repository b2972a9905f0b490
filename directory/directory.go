// Package directory parses the IXF container's entry directory: a 4-byte
// signature followed by an inline run of fixed-size index records,
// terminated by a sentinel record.
package directory

import (
	"errors"

	"github.com/gosc3k/ixfkit/byteio"
	"github.com/gosc3k/ixfkit/errs"
)

// Signature is the 4-byte little-endian magic at offset 0 of a valid IXF
// container.
const Signature uint32 = 0x80C381D7

// entrySize is the on-disk size of one index record: five little-endian
// uint32 fields.
const entrySize = 20

// minContainerSize is the size of the smallest container that holds a
// directory: the 4-byte signature plus one terminator record. Sources
// shorter than this are treated as empty, valid containers (observed in
// real Linux-release assets).
const minContainerSize = 4 + entrySize

// Entry is one live directory record: a (Type, Group, Instance) identity
// tuple plus the byte range of its payload elsewhere in the container.
// Entries are value types — cheap to copy, no shared ownership.
type Entry struct {
	Group    uint32
	Instance uint32
	Type     uint32
	Offset   uint32
	Length   uint32
}

// terminator and deleted are the two all-fields-equal sentinel patterns.
// Neither is ever returned as a live entry.
var (
	terminator = Entry{}
	deleted    = Entry{Group: 0xFFFFFFFF, Instance: 0xFFFFFFFF, Type: 0xFFFFFFFF, Offset: 0xFFFFFFFF, Length: 0xFFFFFFFF}
)

// IsTerminator reports whether e is the all-zero end-of-directory marker.
func (e Entry) IsTerminator() bool {
	return e == terminator
}

// IsDeleted reports whether e is the all-0xFF deleted/empty slot marker.
func (e Entry) IsDeleted() bool {
	return e == deleted
}

// Parse reads the directory from r, positioned at offset 0, and returns the
// ordered list of live entries in on-disk order.
//
// A source shorter than 24 bytes is treated as an empty, valid container.
// Otherwise the 4-byte signature is validated, then 20-byte records are read
// until a terminator is encountered; deleted slots are skipped silently. A
// directory missing its terminator eventually fails with
// errs.ErrInvalidEntry once fewer than 20 bytes remain for the next record.
func Parse(r *byteio.Reader) ([]Entry, error) {
	if r.Len() < minContainerSize {
		return nil, nil
	}

	sig, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if sig != Signature {
		return nil, errs.ErrBadSignature
	}

	var entries []Entry
	for {
		entry, err := parseEntry(r)
		if err != nil {
			return nil, err
		}

		if entry.IsTerminator() {
			return entries, nil
		}
		if entry.IsDeleted() {
			continue
		}

		entries = append(entries, entry)
	}
}

func parseEntry(r *byteio.Reader) (Entry, error) {
	group, err := r.Uint32()
	if err != nil {
		return Entry{}, invalidEntryErr(err)
	}
	instance, err := r.Uint32()
	if err != nil {
		return Entry{}, invalidEntryErr(err)
	}
	typ, err := r.Uint32()
	if err != nil {
		return Entry{}, invalidEntryErr(err)
	}
	offset, err := r.Uint32()
	if err != nil {
		return Entry{}, invalidEntryErr(err)
	}
	length, err := r.Uint32()
	if err != nil {
		return Entry{}, invalidEntryErr(err)
	}

	return Entry{Group: group, Instance: instance, Type: typ, Offset: offset, Length: length}, nil
}

// invalidEntryErr narrows a short read mid-record to errs.ErrInvalidEntry;
// any other error (e.g. errs.ErrClosed) passes through unchanged.
func invalidEntryErr(err error) error {
	if errors.Is(err, errs.ErrUnexpectedEOF) {
		return errs.ErrInvalidEntry
	}

	return err
}
