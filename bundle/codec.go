// Package bundle packs the resources extracted from one container into a
// single length-prefixed stream and compresses that stream with a
// pluggable general-purpose codec, so a bulk run can optionally produce
// one archive file per container instead of one loose file per resource.
package bundle

import "github.com/gosc3k/ixfkit/errs"

// Compressor compresses an entire bundle stream.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses an entire bundle stream back to its original
// bytes.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Implementations hold no per-call state
// and are safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// Name identifies one of the four selectable bundle backends.
type Name string

const (
	None Name = "none"
	LZ4  Name = "lz4"
	S2   Name = "s2"
	Zstd Name = "zstd"
)

var builtinCodecs = map[Name]Codec{
	None: NewNoOpCodec(),
	LZ4:  NewLZ4Codec(),
	S2:   NewS2Codec(),
	Zstd: NewZstdCodec(),
}

// CodecByName resolves a --bundle=<codec> flag value to its Codec.
func CodecByName(name Name) (Codec, error) {
	if c, ok := builtinCodecs[name]; ok {
		return c, nil
	}

	return nil, errs.ErrUnknownCodec
}
