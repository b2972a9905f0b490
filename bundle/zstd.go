package bundle

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// ZstdCodec compresses a bundle stream with Zstandard: slowest to
// compress, best ratio, making it the right choice for an archive that is
// written once and read rarely.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec returns a Zstd-backed bundle codec.
func NewZstdCodec() ZstdCodec { return ZstdCodec{} }

var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("bundle: failed to create zstd decoder: %v", err))
		}

		return decoder
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBestCompression),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("bundle: failed to create zstd encoder: %v", err))
		}

		return encoder
	},
}

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

func (ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("bundle: zstd decompression failed: %w", err)
	}

	return decompressed, nil
}
