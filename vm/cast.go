package vm

// TypeCast's N×N conversion matrix (§4.1 cast_from_to, §9: "the N×N cast
// table may be generated rather than hand-rolled"). castTable[from][to] is
// populated once at init from a small set of per-source conversion
// functions below, each applying Go's native numeric conversion rules —
// the same widening/narrowing/float-int behavior gvm leans on for its
// 32-bit-only cast paths, generalized across every width the type tags
// name. Same-type pairs are intentionally absent (§9: same-type cast is
// rejected).

var castTable map[Tag]map[Tag]func([]byte) []byte

var numericTags = []Tag{I8, I16, I32, I64, U8, U16, U32, U64, F32, F64}

func registerCast(from, to Tag, fn func([]byte) []byte) {
	if castTable[from] == nil {
		castTable[from] = make(map[Tag]func([]byte) []byte)
	}
	castTable[from][to] = fn
}

func init() {
	castTable = make(map[Tag]map[Tag]func([]byte) []byte)

	for _, to := range numericTags {
		if to != I8 {
			t := to
			registerCast(I8, t, func(src []byte) []byte { return castFromI8(decodeI8(src), t) })
		}
		if to != I16 {
			t := to
			registerCast(I16, t, func(src []byte) []byte { return castFromI16(decodeI16(src), t) })
		}
		if to != I32 {
			t := to
			registerCast(I32, t, func(src []byte) []byte { return castFromI32(decodeI32(src), t) })
		}
		if to != I64 {
			t := to
			registerCast(I64, t, func(src []byte) []byte { return castFromI64(decodeI64(src), t) })
		}
		if to != U8 {
			t := to
			registerCast(U8, t, func(src []byte) []byte { return castFromU8(decodeU8(src), t) })
		}
		if to != U16 {
			t := to
			registerCast(U16, t, func(src []byte) []byte { return castFromU16(decodeU16(src), t) })
		}
		if to != U32 {
			t := to
			registerCast(U32, t, func(src []byte) []byte { return castFromU32(decodeU32(src), t) })
		}
		if to != U64 {
			t := to
			registerCast(U64, t, func(src []byte) []byte { return castFromU64(decodeU64(src), t) })
		}
		if to != F32 {
			t := to
			registerCast(F32, t, func(src []byte) []byte { return castFromF32(decodeF32(src), t) })
		}
		if to != F64 {
			t := to
			registerCast(F64, t, func(src []byte) []byte { return castFromF64(decodeF64(src), t) })
		}
	}
}

func castFromI8(v int8, to Tag) []byte {
	switch to {
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromI16(v int16, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromI32(v int32, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromI64(v int64, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromU8(v uint8, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromU16(v uint16, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromU32(v uint32, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromU64(v uint64, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromF32(v float32, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F64:
		b := make([]byte, 8)
		encodeF64(float64(v), b)
		return b
	}
	return nil
}

func castFromF64(v float64, to Tag) []byte {
	switch to {
	case I8:
		b := make([]byte, 1)
		encodeI8(int8(v), b)
		return b
	case I16:
		b := make([]byte, 2)
		encodeI16(int16(v), b)
		return b
	case I32:
		b := make([]byte, 4)
		encodeI32(int32(v), b)
		return b
	case I64:
		b := make([]byte, 8)
		encodeI64(int64(v), b)
		return b
	case U8:
		b := make([]byte, 1)
		encodeU8(uint8(v), b)
		return b
	case U16:
		b := make([]byte, 2)
		encodeU16(uint16(v), b)
		return b
	case U32:
		b := make([]byte, 4)
		encodeU32(uint32(v), b)
		return b
	case U64:
		b := make([]byte, 8)
		encodeU64(uint64(v), b)
		return b
	case F32:
		b := make([]byte, 4)
		encodeF32(float32(v), b)
		return b
	}
	return nil
}
