package vm

// Numeric constrains the generic helpers below to the ten numeric
// primitive Go types the type tags name (everything but bool). Go's
// arithmetic and comparison operators are defined for every member of
// this set, so one generic implementation covers all ten types per
// operator instead of the hand-duplicated addi/addf/subi/subf pairs gvm
// carries for its single 32-bit register width (§9: "a static dispatch
// table... is the natural re-expression").
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func addOp[T Numeric](a, b T) T { return a + b }
func subOp[T Numeric](a, b T) T { return a - b }
func mulOp[T Numeric](a, b T) T { return a * b }

// binaryInPlace builds the op(x, y []byte) used by the interpreter's
// Add/Subtract/Multiply dispatch: x is the popped (later-pushed, RHS)
// operand, y is the peeked (earlier-pushed, LHS) operand whose slot is
// overwritten in place with combine(LHS, RHS) — mirroring gvm's
// arithAddi/arithSubi etc., which overwrite arg1Bytes with the result of
// op(arg0Bytes, arg1Bytes).
func binaryInPlace[T Numeric](decode func([]byte) T, encode func(T, []byte), combine func(a, b T) T) func(x, y []byte) {
	return func(x, y []byte) {
		rhs := decode(x)
		lhs := decode(y)
		encode(combine(lhs, rhs), y)
	}
}

var arithAdd = map[Tag]func(x, y []byte){
	I8:  binaryInPlace(decodeI8, encodeI8, addOp[int8]),
	I16: binaryInPlace(decodeI16, encodeI16, addOp[int16]),
	I32: binaryInPlace(decodeI32, encodeI32, addOp[int32]),
	I64: binaryInPlace(decodeI64, encodeI64, addOp[int64]),
	U8:  binaryInPlace(decodeU8, encodeU8, addOp[uint8]),
	U16: binaryInPlace(decodeU16, encodeU16, addOp[uint16]),
	U32: binaryInPlace(decodeU32, encodeU32, addOp[uint32]),
	U64: binaryInPlace(decodeU64, encodeU64, addOp[uint64]),
	F32: binaryInPlace(decodeF32, encodeF32, addOp[float32]),
	F64: binaryInPlace(decodeF64, encodeF64, addOp[float64]),
}

var arithSub = map[Tag]func(x, y []byte){
	I8:  binaryInPlace(decodeI8, encodeI8, subOp[int8]),
	I16: binaryInPlace(decodeI16, encodeI16, subOp[int16]),
	I32: binaryInPlace(decodeI32, encodeI32, subOp[int32]),
	I64: binaryInPlace(decodeI64, encodeI64, subOp[int64]),
	U8:  binaryInPlace(decodeU8, encodeU8, subOp[uint8]),
	U16: binaryInPlace(decodeU16, encodeU16, subOp[uint16]),
	U32: binaryInPlace(decodeU32, encodeU32, subOp[uint32]),
	U64: binaryInPlace(decodeU64, encodeU64, subOp[uint64]),
	F32: binaryInPlace(decodeF32, encodeF32, subOp[float32]),
	F64: binaryInPlace(decodeF64, encodeF64, subOp[float64]),
}

var arithMul = map[Tag]func(x, y []byte){
	I8:  binaryInPlace(decodeI8, encodeI8, mulOp[int8]),
	I16: binaryInPlace(decodeI16, encodeI16, mulOp[int16]),
	I32: binaryInPlace(decodeI32, encodeI32, mulOp[int32]),
	I64: binaryInPlace(decodeI64, encodeI64, mulOp[int64]),
	U8:  binaryInPlace(decodeU8, encodeU8, mulOp[uint8]),
	U16: binaryInPlace(decodeU16, encodeU16, mulOp[uint16]),
	U32: binaryInPlace(decodeU32, encodeU32, mulOp[uint32]),
	U64: binaryInPlace(decodeU64, encodeU64, mulOp[uint64]),
	F32: binaryInPlace(decodeF32, encodeF32, mulOp[float32]),
	F64: binaryInPlace(decodeF64, encodeF64, mulOp[float64]),
}

// divideInt checks for a zero divisor before dividing — unlike Go's
// native `/` operator on integer types, which panics on division by
// zero, the VM traps this as ErrDivideByZero (Open Question 4) so it
// surfaces as a normal fatal VM error rather than a host panic.
func divideInt[T Numeric](decode func([]byte) T, encode func(T, []byte)) func(x, y []byte) error {
	return func(x, y []byte) error {
		rhs := decode(x)
		var zero T
		if rhs == zero {
			return ErrDivideByZero
		}
		lhs := decode(y)
		encode(lhs/rhs, y)
		return nil
	}
}

// divideFloat applies Go's native float division unguarded: x/0 follows
// IEEE-754 (±Inf or NaN), which the specification treats as acceptable
// host-inherited behavior (§4.1, §9 Open Question 2).
func divideFloat[T Numeric](decode func([]byte) T, encode func(T, []byte)) func(x, y []byte) error {
	return func(x, y []byte) error {
		rhs := decode(x)
		lhs := decode(y)
		encode(lhs/rhs, y)
		return nil
	}
}

var arithDiv = map[Tag]func(x, y []byte) error{
	I8:  divideInt(decodeI8, encodeI8),
	I16: divideInt(decodeI16, encodeI16),
	I32: divideInt(decodeI32, encodeI32),
	I64: divideInt(decodeI64, encodeI64),
	U8:  divideInt(decodeU8, encodeU8),
	U16: divideInt(decodeU16, encodeU16),
	U32: divideInt(decodeU32, encodeU32),
	U64: divideInt(decodeU64, encodeU64),
	F32: divideFloat(decodeF32, encodeF32),
	F64: divideFloat(decodeF64, encodeF64),
}
