// Package byteio provides a buffered, random-access little-endian reader
// over a seekable byte source, used by the directory and resource
// dispatcher to walk an IXF container without a syscall per field.
package byteio

import (
	"io"

	"github.com/gosc3k/ixfkit/endian"
	"github.com/gosc3k/ixfkit/errs"
	"github.com/gosc3k/ixfkit/internal/pool"
)

// maxBufSize bounds the internal read-ahead buffer. Sources shorter than
// this use a buffer sized to the source instead.
const maxBufSize = 4096

// bufPool recycles the fixed-size read-ahead buffers across Readers, so a
// bulk run opening thousands of containers back-to-back doesn't allocate
// one 4096-byte buffer per file.
var bufPool = pool.NewByteBufferPool(maxBufSize, maxBufSize)

// Reader is a buffered, seekable little-endian reader over an
// io.ReadSeeker. It amortises syscalls by refilling a fixed-size internal
// buffer on demand, and treats a seek that lands inside the currently
// buffered window as a pure pointer move.
//
// A Reader is not safe for concurrent use; callers own it exclusively for
// the duration of one container's processing (see the concurrency model in
// the specification).
type Reader struct {
	src    io.ReadSeeker
	engine endian.EndianEngine

	bb       *pool.ByteBuffer
	buf      []byte
	bufStart int64 // source offset corresponding to buf[0]
	bufLen   int   // valid bytes currently in buf
	bufPos   int   // next unread index within buf

	size   int64
	closed bool
}

// NewReader wraps src, determining its total length via Seek. The source's
// read position is left at the start.
func NewReader(src io.ReadSeeker) (*Reader, error) {
	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	bufCap := int64(maxBufSize)
	if size < bufCap {
		bufCap = size
	}

	bb := bufPool.Get()
	bb.ExtendOrGrow(int(bufCap))

	return &Reader{
		src:    src,
		engine: endian.GetLittleEndianEngine(),
		bb:     bb,
		buf:    bb.Bytes(),
		size:   size,
	}, nil
}

// Len returns the total length of the underlying source.
func (r *Reader) Len() int64 {
	return r.size
}

// Pos returns the reader's current virtual offset within the source.
func (r *Reader) Pos() int64 {
	return r.bufStart + int64(r.bufPos)
}

// Close releases the underlying source if it implements io.Closer.
// Subsequent operations on r fail with errs.ErrClosed.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	bufPool.Put(r.bb)
	r.bb, r.buf = nil, nil

	if closer, ok := r.src.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}

// Seek repositions the reader to offset, relative to the start of the
// source. If offset falls within the currently buffered window, this is a
// pure index move; otherwise the underlying source is repositioned and the
// buffer is invalidated.
func (r *Reader) Seek(offset int64) error {
	if r.closed {
		return errs.ErrClosed
	}

	winStart := r.bufStart
	winEnd := r.bufStart + int64(r.bufLen)
	if offset >= winStart && offset <= winEnd {
		r.bufPos = int(offset - winStart)
		return nil
	}

	if _, err := r.src.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	r.bufStart = offset
	r.bufLen = 0
	r.bufPos = 0

	return nil
}

// fill refills the buffer starting at the end of the current window. It is
// only ever called once the window is fully consumed (bufPos == bufLen).
func (r *Reader) fill() error {
	r.bufStart += int64(r.bufLen)
	r.bufLen = 0
	r.bufPos = 0

	total := 0
	for total < len(r.buf) {
		n, err := r.src.Read(r.buf[total:])
		total += n
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		if n == 0 {
			break
		}
	}
	r.bufLen = total

	return nil
}

// ReadFull reads exactly len(dst) bytes into dst, refilling the internal
// buffer as needed. It fails with errs.ErrUnexpectedEOF if the source is
// exhausted before dst is filled.
func (r *Reader) ReadFull(dst []byte) error {
	if r.closed {
		return errs.ErrClosed
	}

	remaining := dst
	for len(remaining) > 0 {
		avail := r.bufLen - r.bufPos
		if avail == 0 {
			if err := r.fill(); err != nil {
				return err
			}
			avail = r.bufLen - r.bufPos
			if avail == 0 {
				return errs.ErrUnexpectedEOF
			}
		}

		n := avail
		if n > len(remaining) {
			n = len(remaining)
		}
		copy(remaining, r.buf[r.bufPos:r.bufPos+n])
		r.bufPos += n
		remaining = remaining[n:]
	}

	return nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8() (uint8, error) {
	var b [1]byte
	if err := r.ReadFull(b[:]); err != nil {
		return 0, err
	}

	return b[0], nil
}

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() (uint16, error) {
	var b [2]byte
	if err := r.ReadFull(b[:]); err != nil {
		return 0, err
	}

	return r.engine.Uint16(b[:]), nil
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() (uint32, error) {
	var b [4]byte
	if err := r.ReadFull(b[:]); err != nil {
		return 0, err
	}

	return r.engine.Uint32(b[:]), nil
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() (uint64, error) {
	var b [8]byte
	if err := r.ReadFull(b[:]); err != nil {
		return 0, err
	}

	return r.engine.Uint64(b[:]), nil
}
