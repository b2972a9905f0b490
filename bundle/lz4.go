package bundle

import (
	"encoding/binary"
	"sync"

	"github.com/gosc3k/ixfkit/errs"
	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the type carries
// internal state that benefits from reuse across bundles.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec compresses a bundle stream with LZ4's block format. Block mode
// has no self-describing output size, so Compress prefixes the result
// with the original length as a 4-byte little-endian uint32.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec returns an LZ4-backed bundle codec.
func NewLZ4Codec() LZ4Codec { return LZ4Codec{} }

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst[:4], uint32(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[4:])
	if err != nil {
		return nil, err
	}

	return dst[:4+n], nil
}

func (LZ4Codec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 4 {
		return nil, errs.ErrCorruptStream
	}

	size := binary.LittleEndian.Uint32(data[:4])
	dst := make([]byte, size)

	n, err := lz4.UncompressBlock(data[4:], dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}
