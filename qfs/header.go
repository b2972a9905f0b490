// Package qfs implements the QFS/RefPack LZ77-family compression scheme
// used both for per-entry compressed container payloads and for standalone
// sprite-image resources.
package qfs

import "github.com/gosc3k/ixfkit/errs"

// Header flag bits, taken from the low bits of the first signature byte.
const (
	flagCompressedSizePresent = 0x01
	flagUnknown1              = 0x40
	flagLargeSizeFields       = 0x80
	signatureMask             = 0x3E
	signatureValue            = 0x10
)

// Header describes a parsed QFS stream: where its two-byte signature sits,
// the declared uncompressed size, and the cursor at which opcodes begin.
type Header struct {
	// Start is the byte offset of the signature within the source slice:
	// either 0 or 4.
	Start int

	// DataStart is the offset of the first opcode.
	DataStart int

	// UncompressedSize is the declared size of the decoded output.
	UncompressedSize int

	// CompressedSizePresent mirrors the header's CompressedSizePresent
	// flag bit. The compressed-size field it describes is skipped; the
	// decoder does not need it.
	CompressedSizePresent bool

	// LargeSizeFields mirrors the header's LargeSizeFields flag bit: size
	// fields are 4-byte big-endian when set, 3-byte big-endian otherwise.
	LargeSizeFields bool

	// Unknown1 mirrors the reserved flag bit. It is preserved on decode
	// and never acted upon; its semantics are undocumented upstream.
	Unknown1 bool
}

func hasSignature(b0, b1 byte) bool {
	return (b0&signatureMask) == signatureValue && b1 == 0xFB
}

// ParseHeader locates a QFS header at offset 0 or offset 4 of data,
// implementing both dialects described in the specification. It returns
// errs.ErrUnsupportedFormat if neither placement matches, and
// errs.ErrUnexpectedEOF if a recognised header is truncated before its
// size fields can be read.
func ParseHeader(data []byte) (Header, error) {
	start := -1
	switch {
	case len(data) >= 2 && hasSignature(data[0], data[1]):
		start = 0
	case len(data) >= 6 && hasSignature(data[4], data[5]):
		start = 4
	default:
		return Header{}, errs.ErrUnsupportedFormat
	}

	flag := data[start]
	h := Header{
		Start:                 start,
		CompressedSizePresent: flag&flagCompressedSizePresent != 0,
		Unknown1:              flag&flagUnknown1 != 0,
		LargeSizeFields:       flag&flagLargeSizeFields != 0,
	}

	cursor := start + 2
	if h.CompressedSizePresent {
		if h.LargeSizeFields {
			cursor += 4
		} else {
			cursor += 3
		}
	}

	sizeFieldLen := 3
	if h.LargeSizeFields {
		sizeFieldLen = 4
	}
	if len(data) < cursor+sizeFieldLen {
		return Header{}, errs.ErrUnexpectedEOF
	}

	var size int
	if h.LargeSizeFields {
		size = int(data[cursor])<<24 | int(data[cursor+1])<<16 | int(data[cursor+2])<<8 | int(data[cursor+3])
	} else {
		size = int(data[cursor])<<16 | int(data[cursor+1])<<8 | int(data[cursor+2])
	}
	cursor += sizeFieldLen

	h.UncompressedSize = size
	h.DataStart = cursor

	return h, nil
}

// UncompressedSize is a convenience wrapper that returns just the declared
// output size from a QFS header, for callers that only need to size an
// output buffer before calling Decode.
func UncompressedSize(data []byte) (int, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return 0, err
	}

	return h.UncompressedSize, nil
}
