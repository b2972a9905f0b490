// Package resource implements the per-entry dispatch logic that turns a
// directory entry's raw payload bytes into the bytes that should actually
// be written to disk: detecting compressed sprite images and
// container-compressed entries, unwrapping length-prefixed strings, and
// passing everything else through verbatim.
package resource

import (
	"encoding/binary"

	"github.com/gosc3k/ixfkit/directory"
	"github.com/gosc3k/ixfkit/format"
	"github.com/gosc3k/ixfkit/qfs"
)

// containerCompressedSignature marks an entry payload whose actual QFS
// stream begins 20 bytes in, behind an opaque 12-byte per-entry header.
var containerCompressedSignature = [8]byte{0x07, 0x01, 0x00, 0x00, 0x00, 0x00, 0x08, 0x00}

// Sprite-image alpha flag bits, tested against the little-endian word at
// payload offset 4.
const (
	spriteAlphaBit1 = 0x10000000
	spriteAlphaBit2 = 0x00080000

	compressedStreamOffset = 20
)

// Dispatch implements the resource dispatcher's four-branch precedence:
// sprite-image alpha detection first, then the container-compressed-entry
// signature, then string unwrapping, and finally verbatim passthrough.
// Sprite-image alpha handling takes priority over the signature check for
// SpriteImage entries; for every other type the signature path is the
// only compression path.
func Dispatch(entry directory.Entry, payload []byte) ([]byte, format.TypeTag, error) {
	typ := format.TypeTag(entry.Type)

	switch {
	case typ == format.SpriteImage:
		if !hasSpriteAlphaFlag(payload) {
			return payload, typ, nil
		}
		data, err := decodeQFS(payload[compressedStreamOffset:])
		return data, typ, err

	case hasContainerCompressedSignature(payload):
		data, err := decodeQFS(payload[compressedStreamOffset:])
		return data, typ, err

	case typ == format.String:
		return unwrapString(payload), typ, nil

	default:
		return payload, typ, nil
	}
}

func hasContainerCompressedSignature(payload []byte) bool {
	if len(payload) <= compressedStreamOffset {
		return false
	}

	return [8]byte(payload[:8]) == containerCompressedSignature
}

func hasSpriteAlphaFlag(payload []byte) bool {
	if len(payload) <= compressedStreamOffset {
		return false
	}

	word := binary.LittleEndian.Uint32(payload[4:8])

	return word&(spriteAlphaBit1|spriteAlphaBit2) != 0
}

func decodeQFS(stream []byte) ([]byte, error) {
	size, err := qfs.UncompressedSize(stream)
	if err != nil {
		return nil, err
	}

	out := make([]byte, size)
	n, err := qfs.Decode(out, stream)
	if err != nil {
		return nil, err
	}

	return out[:n], nil
}

// unwrapString reads the leading 4-byte little-endian length prefix off a
// String-typed payload and returns only the N bytes that follow. A
// non-positive N yields an empty result; an N that runs past the end of
// the payload is clamped to the bytes actually present.
func unwrapString(payload []byte) []byte {
	if len(payload) < 4 {
		return nil
	}

	n := int32(binary.LittleEndian.Uint32(payload[:4]))
	if n <= 0 {
		return nil
	}

	end := 4 + int(n)
	if end > len(payload) {
		end = len(payload)
	}

	return payload[4:end]
}
