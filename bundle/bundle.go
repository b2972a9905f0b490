package bundle

import (
	"encoding/binary"

	"github.com/gosc3k/ixfkit/errs"
)

// Resource is one named, already-extracted payload destined for a bundle
// archive: the same (name, bytes) pair that would otherwise be written as
// a loose file.
type Resource struct {
	Name string
	Data []byte
}

// Pack concatenates resources into a single length-prefixed stream —
// uint32 LE name length, name bytes, uint32 LE data length, data bytes,
// repeated per resource — and compresses that stream with the named
// codec.
func Pack(resources []Resource, codec Name) ([]byte, error) {
	c, err := CodecByName(codec)
	if err != nil {
		return nil, err
	}

	var size int
	for _, r := range resources {
		size += 4 + len(r.Name) + 4 + len(r.Data)
	}

	stream := make([]byte, 0, size)
	for _, r := range resources {
		stream = appendLengthPrefixed(stream, []byte(r.Name))
		stream = appendLengthPrefixed(stream, r.Data)
	}

	return c.Compress(stream)
}

// Unpack reverses Pack: it decompresses data with the named codec and
// splits the resulting stream back into its resources, in the order they
// were packed.
func Unpack(data []byte, codec Name) ([]Resource, error) {
	c, err := CodecByName(codec)
	if err != nil {
		return nil, err
	}

	stream, err := c.Decompress(data)
	if err != nil {
		return nil, err
	}

	var resources []Resource
	for len(stream) > 0 {
		name, rest, err := readLengthPrefixed(stream)
		if err != nil {
			return nil, err
		}
		payload, rest, err := readLengthPrefixed(rest)
		if err != nil {
			return nil, err
		}

		resources = append(resources, Resource{Name: string(name), Data: payload})
		stream = rest
	}

	return resources, nil
}

func appendLengthPrefixed(dst, data []byte) []byte {
	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(data)))
	dst = append(dst, length[:]...)

	return append(dst, data...)
}

func readLengthPrefixed(stream []byte) (field, rest []byte, err error) {
	if len(stream) < 4 {
		return nil, nil, errs.ErrCorruptStream
	}

	n := binary.LittleEndian.Uint32(stream[:4])
	stream = stream[4:]
	if uint64(n) > uint64(len(stream)) {
		return nil, nil, errs.ErrCorruptStream
	}

	return stream[:n], stream[n:], nil
}
