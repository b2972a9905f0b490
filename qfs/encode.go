package qfs

import (
	"math/bits"

	"github.com/gosc3k/ixfkit/errs"
)

// Encoder budget constants from the specification.
const (
	minEncodeInput  = 10
	maxEncodeInput  = 16_777_215
	maxWindowSize   = 131072
	maxHashSize     = 65536
	minMatchLen     = 3
	maxMatchLen     = 1028
	niceLength      = 258
	goodLength      = 32
	maxChainDefault = 4096
)

// EncodeOptions configures Encode. It follows the functional-options
// pattern used throughout the rest of the module.
type EncodeOptions struct {
	lengthPrefixed bool
}

// EncodeOption configures EncodeOptions.
type EncodeOption func(*EncodeOptions)

// WithLengthPrefix causes Encode to prefix its output with a 4-byte
// little-endian compressed-length field, ahead of the QFS header.
func WithLengthPrefix() EncodeOption {
	return func(o *EncodeOptions) { o.lengthPrefixed = true }
}

// Encode compresses src into a QFS/RefPack stream using a hash-chain
// longest-match search with lazy matching, as described in the
// specification.
//
// If src is shorter than 10 bytes, or the encoder cannot beat the
// inputLength-1 budget, Encode returns (nil, nil): the "incompressible"
// signal — callers should fall back to the original bytes, not treat this
// as an error. Inputs longer than 16,777,215 bytes fail outright with
// errs.ErrInputTooLarge.
func Encode(src []byte, opts ...EncodeOption) ([]byte, error) {
	if len(src) > maxEncodeInput {
		return nil, errs.ErrInputTooLarge
	}
	if len(src) < minEncodeInput {
		return nil, nil
	}

	var cfg EncodeOptions
	for _, o := range opts {
		o(&cfg)
	}

	opcodes := newMatcher(src).compress()

	header := make([]byte, 0, 5)
	header = append(header, 0x10, 0xFB)
	header = append(header, byte(len(src)>>16), byte(len(src)>>8), byte(len(src)))

	budget := len(src) - 1
	if len(header)+len(opcodes) > budget {
		return nil, nil
	}

	body := make([]byte, 0, len(header)+len(opcodes))
	body = append(body, header...)
	body = append(body, opcodes...)

	if !cfg.lengthPrefixed {
		return body, nil
	}

	out := make([]byte, 4, 4+len(body))
	n := uint32(len(body))
	out[0] = byte(n)
	out[1] = byte(n >> 8)
	out[2] = byte(n >> 16)
	out[3] = byte(n >> 24)
	out = append(out, body...)

	return out, nil
}

// matcher holds the deflate-style hash-chain tables for one encode call.
// It is owned by one Encode invocation and never escapes it.
type matcher struct {
	src []byte

	windowSize int
	hashMask   int
	hashShift  int

	head []int // hash -> most recent position with that hash, or -1
	prev []int // position & (windowSize-1) -> previous position in its chain
}

func newMatcher(src []byte) *matcher {
	windowSize := highestPow2LE(len(src))
	if windowSize > maxWindowSize {
		windowSize = maxWindowSize
	}
	if windowSize < 1 {
		windowSize = 1
	}

	hashSize := windowSize / 2
	if hashSize < 32 {
		hashSize = 32
	}
	if hashSize > maxHashSize {
		hashSize = maxHashSize
	}
	hashSize = nextPow2(hashSize)

	hashShift := (bits.TrailingZeros(uint(hashSize)) + 2) / 3

	head := make([]int, hashSize)
	for i := range head {
		head[i] = -1
	}

	return &matcher{
		src:        src,
		windowSize: windowSize,
		hashMask:   hashSize - 1,
		hashShift:  hashShift,
		head:       head,
		prev:       make([]int, windowSize),
	}
}

// highestPow2LE returns the largest power of two <= n.
func highestPow2LE(n int) int {
	if n <= 0 {
		return 0
	}

	return 1 << (bits.Len(uint(n)) - 1)
}

// nextPow2 returns the smallest power of two >= n.
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}

// hashAt computes the 3-byte hash at pos using the same
// (hash<<shift)^next&mask recurrence the specification describes for the
// incremental rolling hash. Recomputing it fresh from the 3 bytes at each
// position (rather than carrying the rolling accumulator across calls)
// yields the identical value, since hashShift is chosen so that 3 shifts
// already saturate the mask width.
func (m *matcher) hashAt(pos int) int {
	h := int(m.src[pos])
	h = ((h << m.hashShift) ^ int(m.src[pos+1])) & m.hashMask
	h = ((h << m.hashShift) ^ int(m.src[pos+2])) & m.hashMask

	return h
}

func (m *matcher) insert(pos int) {
	if pos+2 >= len(m.src) {
		return
	}

	h := m.hashAt(pos)
	m.prev[pos%m.windowSize] = m.head[h]
	m.head[h] = pos
}

func matchLen(src []byte, a, b, limit int) int {
	n := 0
	for n < limit && src[a+n] == src[b+n] {
		n++
	}

	return n
}

// familyBounds returns the minimum and maximum match length encodable at
// the given back-distance, and whether dist is representable at all. The
// three ranges mirror the opcode table in the specification exactly:
// every copyOffset field is "raw bits + 1", so the maximum distance each
// family reaches is one more than its maximum copyOffset value.
func familyBounds(dist int) (minLen, maxLen int, ok bool) {
	switch {
	case dist < 2:
		return 0, 0, false
	case dist <= 1025:
		return 3, 1028, true
	case dist <= 16385:
		return 4, 1028, true
	case dist <= 131073:
		return 5, 1028, true
	default:
		return 0, 0, false
	}
}

// bestMatch searches the hash chain at pos for the longest encodable
// match, applying the MaxChain budget (quartered once a match of
// goodLength or better is already held) and stopping early at niceLength.
func (m *matcher) bestMatch(pos int) (length, dist int, ok bool) {
	n := len(m.src)
	if pos+minMatchLen > n {
		return 0, 0, false
	}

	globalLimit := n - pos
	if globalLimit > maxMatchLen {
		globalLimit = maxMatchLen
	}

	h := m.hashAt(pos)
	chainPos := m.head[h]
	tries := maxChainDefault
	shrunk := false

	for chainPos >= 0 && pos-chainPos <= m.windowSize && tries > 0 {
		candDist := pos - chainPos

		if minLen, maxLen, fok := familyBounds(candDist); fok {
			lim := globalLimit
			if maxLen < lim {
				lim = maxLen
			}

			l := matchLen(m.src, chainPos, pos, lim)
			if l >= minLen && l > length {
				length, dist = l, candDist
				if length >= niceLength {
					break
				}
			}
		}

		if !shrunk && length >= goodLength {
			tries /= 4
			shrunk = true
		}

		chainPos = m.prev[chainPos%m.windowSize]
		tries--
	}

	if length < minMatchLen {
		return 0, 0, false
	}

	return length, dist, true
}

// compress runs the greedy-with-one-step-lookahead (lazy) match loop and
// returns the finished opcode stream, including its closing terminator
// opcode.
func (m *matcher) compress() []byte {
	var out []byte
	var lits []byte

	n := len(m.src)
	pos := 0

	for pos < n {
		length, dist, ok := m.bestMatch(pos)

		if ok && pos+1 < n {
			if length2, _, ok2 := m.bestMatch(pos + 1); ok2 && length2 > length {
				lits = append(lits, m.src[pos])
				m.insert(pos)
				pos++
				continue
			}
		}

		if !ok {
			lits = append(lits, m.src[pos])
			m.insert(pos)
			pos++
			continue
		}

		out = emitMatch(out, &lits, dist, length)
		for i := 0; i < length; i++ {
			m.insert(pos + i)
		}
		pos += length
	}

	return flushLiterals(out, lits)
}

// emitLiteralBlocks flushes *lits down to a 0-3 byte remainder, emitting
// 0xE0-0xFB literal-run opcodes in blocks that are a multiple of 4, up to
// 112 bytes each.
func emitLiteralBlocks(out []byte, lits *[]byte) []byte {
	l := *lits
	for len(l) >= 4 {
		n := len(l)
		if n > 112 {
			n = 112
		}
		n -= n % 4

		out = append(out, byte(0xE0+((n-4)>>2)))
		out = append(out, l[:n]...)
		l = l[n:]
	}
	*lits = l

	return out
}

// flushLiterals emits any final 0-3 literal bytes via the closing
// 0xFC-0xFF terminator opcode.
func flushLiterals(out []byte, lits []byte) []byte {
	out = emitLiteralBlocks(out, &lits)
	out = append(out, terminatorThreshold|byte(len(lits)))
	out = append(out, lits...)

	return out
}

// emitMatch flushes pending literals (folding the 0-3 byte remainder into
// the match opcode's own plainCount prefix) and appends the match opcode.
func emitMatch(out []byte, lits *[]byte, dist, length int) []byte {
	out = emitLiteralBlocks(out, lits)
	prefix := *lits
	*lits = nil

	out = append(out, encodeMatchOpcode(dist, length, len(prefix))...)
	out = append(out, prefix...)

	return out
}

// encodeMatchOpcode picks the smallest opcode family that fits (dist,
// length) and encodes it, inverting the formulas in the decoder's opcode
// table.
func encodeMatchOpcode(dist, length, plainCount int) []byte {
	switch {
	case dist <= 1025 && length <= 10:
		t := dist - 2 // 0..1023
		b0 := byte((((t>>8)&0x03)<<5) | ((length-3)<<2) | plainCount)
		b1 := byte(t & 0xFF)

		return []byte{b0, b1}

	case dist <= 16385 && length <= 67:
		t := dist - 2 // 0..16383
		b0 := byte(length - 4 + 0x80)
		b1 := byte((plainCount << 6) | ((t >> 8) & 0x3F))
		b2 := byte(t & 0xFF)

		return []byte{b0, b1, b2}

	default:
		t := dist - 2    // 0..131071
		l := length - 5  // 0..1023
		b0 := byte(0xC0 | (((t>>16)&0x01)<<4) | (((l>>8)&0x03)<<2) | plainCount)
		b1 := byte((t >> 8) & 0xFF)
		b2 := byte(t & 0xFF)
		b3 := byte(l & 0xFF)

		return []byte{b0, b1, b2, b3}
	}
}
