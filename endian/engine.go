// Package endian provides the byte-order abstraction used by byteio.Reader.
//
// It combines encoding/binary's ByteOrder and AppendByteOrder interfaces into
// a single EndianEngine, satisfied directly by binary.LittleEndian and
// binary.BigEndian. The IXF container format is fixed little-endian;
// byteio.Reader routes its multi-byte field reads through an EndianEngine
// rather than calling binary.LittleEndian.Uint32 inline. The QFS header's
// big-endian size fields are decoded by qfs.ParseHeader itself and do not
// go through this package.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it without modification.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used for all
// directory and index-entry fields.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
