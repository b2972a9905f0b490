package qfs

import "github.com/gosc3k/ixfkit/errs"

// terminatorThreshold is the first opcode byte value (0xFC) that can only
// appear as the closing literal-run opcode, never inside the main loop.
const terminatorThreshold = 0xFC

// Decode expands a QFS/RefPack stream from src into dst, returning the
// number of bytes written.
//
// dst must be at least as long as the stream's declared uncompressed size
// (see UncompressedSize), or Decode fails with errs.ErrBufferTooSmall
// before writing any byte. The opcode stream is otherwise decoded exactly
// as described in the specification: four literal/match opcode families
// keyed on the first byte, followed by an optional single terminator
// opcode. A stream whose opcodes produce fewer bytes than declared is not
// an error — the caller gets back the actual count written.
func Decode(dst, src []byte) (int, error) {
	h, err := ParseHeader(src)
	if err != nil {
		return 0, err
	}
	if len(dst) < h.UncompressedSize {
		return 0, errs.ErrBufferTooSmall
	}

	limit := h.UncompressedSize
	ip := h.DataStart
	op := 0
	end := len(src)

	for ip < end && src[ip] < terminatorThreshold {
		b0 := src[ip]

		var plainCount, copyCount, copyOffset, opSize int
		switch {
		case b0 < 0x80:
			if ip+1 >= end {
				return 0, errs.ErrCorruptStream
			}
			b1 := src[ip+1]
			plainCount = int(b0 & 0x03)
			copyCount = int((b0&0x1C)>>2) + 3
			copyOffset = (int(b0&0x60)<<3) + int(b1) + 1
			opSize = 2

		case b0 < 0xC0:
			if ip+2 >= end {
				return 0, errs.ErrCorruptStream
			}
			b1, b2 := src[ip+1], src[ip+2]
			plainCount = int((b1 & 0xC0) >> 6)
			copyCount = int(b0&0x3F) + 4
			copyOffset = (int(b1&0x3F)<<8) + int(b2) + 1
			opSize = 3

		case b0 < 0xE0:
			if ip+3 >= end {
				return 0, errs.ErrCorruptStream
			}
			b1, b2, b3 := src[ip+1], src[ip+2], src[ip+3]
			plainCount = int(b0 & 0x03)
			copyCount = (int(b0&0x0C) << 6) + int(b3) + 5
			copyOffset = (int(b0&0x10)<<12) + (int(b1)<<8) + int(b2) + 1
			opSize = 4

		default: // 0xE0-0xFB
			plainCount = (int(b0&0x1F) << 2) + 4
			opSize = 1
		}

		ip += opSize

		if ip+plainCount > end || op+plainCount > limit {
			return 0, errs.ErrCorruptStream
		}
		copy(dst[op:op+plainCount], src[ip:ip+plainCount])
		ip += plainCount
		op += plainCount

		if copyCount > 0 {
			// copyOffset already carries the opcode table's +1, so this
			// decoder's convention is srcPos = op - copyOffset - 1 (e.g.
			// opcode 0x00 0x00 copies from op-2, not op-1). Encode mirrors
			// this convention on the write side, so round trips through
			// this package are exact either way the distance is read.
			srcPos := op - copyOffset - 1
			if srcPos < 0 {
				return 0, errs.ErrCorruptStream
			}
			if op+copyCount > limit {
				return 0, errs.ErrCorruptStream
			}
			// Overlapping copies are legal and meaningful: they encode
			// runs, so each byte must be copied one at a time rather
			// than via copy().
			for i := 0; i < copyCount; i++ {
				dst[op+i] = dst[srcPos+i]
			}
			op += copyCount
		}
	}

	// A single terminator opcode (0xFC-0xFF) may follow, but only if both
	// the input and the declared output still have room for it. A stream
	// that declares more output than its opcodes produce is left
	// under-filled rather than treated as an error.
	if ip < end && op < limit {
		b0 := src[ip]
		ip++
		plainCount := int(b0 & 0x03)

		if ip+plainCount > end || op+plainCount > limit {
			return 0, errs.ErrCorruptStream
		}
		copy(dst[op:op+plainCount], src[ip:ip+plainCount])
		op += plainCount
	}

	return op, nil
}
