package vm

import (
	"encoding/binary"
	"math"
)

// Value encode/decode helpers, one pair per primitive Go type, following
// the same memcpy-style unaligned access gvm's uint32FromBytes/ToBytes
// pair uses — just generalized across every width the type tags name
// instead of a single fixed 32-bit register width. These are the leaves
// the dispatch tables in arith.go, compare.go and cast.go are built from (§9: "a static
// dispatch table... is the natural re-expression; memoize at
// construction").
//
// The wire format is fixed little-endian (see SPEC_FULL.md Open Question
// 1) rather than truly host-native, so encoded programs are reproducible
// across machines of either endianness.

func decodeBool(b []byte) bool { return b[0] != 0 }
func encodeBool(v bool, b []byte) {
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}

func decodeI8(b []byte) int8   { return int8(b[0]) }
func encodeI8(v int8, b []byte) { b[0] = byte(v) }

func decodeU8(b []byte) uint8   { return b[0] }
func encodeU8(v uint8, b []byte) { b[0] = v }

func decodeI16(b []byte) int16 { return int16(binary.LittleEndian.Uint16(b)) }
func encodeI16(v int16, b []byte) {
	binary.LittleEndian.PutUint16(b, uint16(v))
}

func decodeU16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func encodeU16(v uint16, b []byte) {
	binary.LittleEndian.PutUint16(b, v)
}

func decodeI32(b []byte) int32 { return int32(binary.LittleEndian.Uint32(b)) }
func encodeI32(v int32, b []byte) {
	binary.LittleEndian.PutUint32(b, uint32(v))
}

func decodeU32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func encodeU32(v uint32, b []byte) {
	binary.LittleEndian.PutUint32(b, v)
}

func decodeI64(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) }
func encodeI64(v int64, b []byte) {
	binary.LittleEndian.PutUint64(b, uint64(v))
}

func decodeU64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }
func encodeU64(v uint64, b []byte) {
	binary.LittleEndian.PutUint64(b, v)
}

func decodeF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
func encodeF32(v float32, b []byte) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func decodeF64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
func encodeF64(v float64, b []byte) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

// decodeOffset/encodeOffset read/write the 8-byte unsigned absolute byte offset used
// by Goto/PopGotoIfTrue/PeekGotoIfTrue and by Store/PeekStore/Load scratch
// indices (§4.2, §3 "Branch offset").
func decodeOffset(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }
func encodeOffset(v uint64, b []byte) {
	binary.LittleEndian.PutUint64(b, v)
}
