// Package format defines the resource-type identity tags used by the IXF
// container format and the file-extension convention used when extracting
// them to disk.
package format

import "fmt"

// TypeTag is the 32-bit resource-type identity carried by every directory
// entry. These values are part of the on-disk wire format and must never be
// renumbered.
type TypeTag uint32

const (
	SpriteImage                 TypeTag = 0x00000000
	SpriteImageInfo              TypeTag = 0x00000001
	SerializedSC3City            TypeTag = 0x00000FA1
	SerialText                   TypeTag = 0x81F53D09
	String                       TypeTag = 0x2026960B
	SpriteAttributes             TypeTag = 0x6300
	SpriteAnimationAttributes    TypeTag = 0x6301
	BuildingOccupantAttributes   TypeTag = 0x207EDC0E
	FloraOccupantAttributes      TypeTag = 0xFFD30C03
	HotKey                       TypeTag = 0xA2E3D533
	OccupantAttributes           TypeTag = 0xC179C042
	OccupantAttributeOverrides   TypeTag = 0x856CD19A
	NetworkOccupantAttributes    TypeTag = 0xE223741F
	PortOccupantAttributes       TypeTag = 0x220055E1
	BufferResource               TypeTag = 0x62B9DA24
)

var typeNames = map[TypeTag]string{
	SpriteImage:               "SpriteImage",
	SpriteImageInfo:           "SpriteImageInfo",
	SerializedSC3City:         "SerializedSC3City",
	SerialText:                "SerialText",
	String:                    "String",
	SpriteAttributes:          "SpriteAttributes",
	SpriteAnimationAttributes: "SpriteAnimationAttributes",
	BuildingOccupantAttributes: "BuildingOccupantAttributes",
	FloraOccupantAttributes:    "FloraOccupantAttributes",
	HotKey:                     "HotKey",
	OccupantAttributes:         "OccupantAttributes",
	OccupantAttributeOverrides: "OccupantAttributeOverrides",
	NetworkOccupantAttributes:  "NetworkOccupantAttributes",
	PortOccupantAttributes:     "PortOccupantAttributes",
	BufferResource:             "BufferResource",
}

// String returns the named tag if recognised, otherwise a hex fallback.
// Unrecognised tags are permitted by the format and flow through as opaque
// binary; this is reflected here rather than treated as an error.
func (t TypeTag) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("0x%08X", uint32(t))
}

// tkb1Tags is the set of occupant-attribute tags that share the .tkb1
// extension.
var tkb1Tags = map[TypeTag]bool{
	BuildingOccupantAttributes: true,
	FloraOccupantAttributes:    true,
	OccupantAttributes:         true,
	OccupantAttributeOverrides: true,
	NetworkOccupantAttributes:  true,
	PortOccupantAttributes:     true,
}

// txtTags is the set of tags that share the .txt extension.
var txtTags = map[TypeTag]bool{
	HotKey:     true,
	SerialText: true,
	String:     true,
}

// Extension returns the output file extension for a resource-type tag,
// implementing the table in the external-interfaces section of the
// specification. Unrecognised and unlisted tags fall through to .bin.
func (t TypeTag) Extension() string {
	switch {
	case t == BufferResource:
		return ".bmp"
	case tkb1Tags[t]:
		return ".tkb1"
	case txtTags[t]:
		return ".txt"
	case t == SpriteAttributes:
		return ".sat"
	case t == SpriteAnimationAttributes:
		return ".saa"
	case t == SpriteImage:
		return ".sim"
	case t == SpriteImageInfo:
		return ".sii"
	default:
		return ".bin"
	}
}
