// Package errs collects the sentinel errors shared across ixfkit's
// byteio, directory, qfs, resource and container packages.
//
// Callers should compare against these with errors.Is, since some call
// sites wrap them with additional context via fmt.Errorf("...: %w", ...).
package errs

import "errors"

var (
	// ErrBadSignature is returned when a container's 4-byte magic does not
	// match the expected IXF signature.
	ErrBadSignature = errors.New("ixfkit: bad container signature")

	// ErrUnsupportedFormat is returned when neither QFS header placement
	// (offset 0 or offset 4) is recognised.
	ErrUnsupportedFormat = errors.New("ixfkit: unsupported qfs header")

	// ErrCorruptStream is returned when a QFS opcode stream reads past
	// input end, writes past declared output size, or back-references
	// before the start of output.
	ErrCorruptStream = errors.New("ixfkit: corrupt qfs stream")

	// ErrBufferTooSmall is returned when the caller-supplied destination
	// is shorter than the QFS header's declared uncompressed size.
	ErrBufferTooSmall = errors.New("ixfkit: destination buffer too small")

	// ErrUnexpectedEOF is returned when a reader is asked for more bytes
	// than remain in its source.
	ErrUnexpectedEOF = errors.New("ixfkit: unexpected end of input")

	// ErrClosed is returned by any operation attempted on a reader whose
	// underlying source has already been closed.
	ErrClosed = errors.New("ixfkit: reader is closed")

	// ErrInvalidEntry is returned when a 20-byte index record can't be
	// parsed because fewer than 20 bytes remain.
	ErrInvalidEntry = errors.New("ixfkit: invalid directory entry")

	// ErrInputTooLarge is returned by the QFS encoder when the input
	// exceeds the 16,777,215-byte budget.
	ErrInputTooLarge = errors.New("ixfkit: input exceeds qfs encoder limit")

	// ErrUnknownCodec is returned by the bundle package for an
	// unrecognised codec name.
	ErrUnknownCodec = errors.New("ixfkit: unknown bundle codec")
)
