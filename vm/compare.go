package vm

// Compare* dispatch (§4.1 compare_equal..compare_lesser_equal, §4.2
// Compare* T). Per the spec's strict ordering rule, the value popped
// first off the stack is the RHS (the later-pushed operand) and the
// value popped second is the LHS — compareInPlace below decodes x as RHS
// and y as LHS, matching binaryInPlace's operand order.

type relation func(cmp int) bool

func equalRel(c int) bool        { return c == 0 }
func notEqualRel(c int) bool     { return c != 0 }
func greaterRel(c int) bool      { return c > 0 }
func greaterEqualRel(c int) bool { return c >= 0 }
func lesserRel(c int) bool       { return c < 0 }
func lesserEqualRel(c int) bool  { return c <= 0 }

func sign3[T Numeric](lhs, rhs T) int {
	switch {
	case lhs < rhs:
		return -1
	case lhs > rhs:
		return 1
	default:
		return 0
	}
}

// compareInPlace reads x (popped RHS) and y (popped LHS, see exec.go),
// and returns the bool result of rel(lhs <=> rhs) — the caller encodes it
// into a fresh one-byte Bool slot, since a comparison narrows two T-width
// operands down to a single byte rather than overwriting one in place.
func compareInPlace[T Numeric](decode func([]byte) T, rel relation) func(x, y []byte) bool {
	return func(x, y []byte) bool {
		rhs := decode(x)
		lhs := decode(y)
		return rel(sign3(lhs, rhs))
	}
}

func buildCompareTable(rel relation) map[Tag]func(x, y []byte) bool {
	return map[Tag]func(x, y []byte) bool{
		I8:  compareInPlace(decodeI8, rel),
		I16: compareInPlace(decodeI16, rel),
		I32: compareInPlace(decodeI32, rel),
		I64: compareInPlace(decodeI64, rel),
		U8:  compareInPlace(decodeU8, rel),
		U16: compareInPlace(decodeU16, rel),
		U32: compareInPlace(decodeU32, rel),
		U64: compareInPlace(decodeU64, rel),
		F32: compareInPlace(decodeF32, rel),
		F64: compareInPlace(decodeF64, rel),
	}
}

var compareTables = map[Opcode]map[Tag]func(x, y []byte) bool{
	CompareEqual:        buildCompareTable(equalRel),
	CompareNotEqual:     buildCompareTable(notEqualRel),
	CompareGreater:      buildCompareTable(greaterRel),
	CompareGreaterEqual: buildCompareTable(greaterEqualRel),
	CompareLesser:       buildCompareTable(lesserRel),
	CompareLesserEqual:  buildCompareTable(lesserEqualRel),
}
