package bundle

// NoOpCodec passes bundle bytes through unchanged, for --bundle=none.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec returns a codec that performs no compression.
func NewNoOpCodec() NoOpCodec { return NoOpCodec{} }

func (NoOpCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (NoOpCodec) Decompress(data []byte) ([]byte, error) { return data, nil }
