package vm

import (
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"
)

// Interpreter owns the byte program, program counter, operand stack and
// scratch buffer for a single execution (§3 "Byte program", §4.2 C2). It
// generalizes gvm's VM.execNextInstruction dispatch loop: instead of a flat
// 32-bit register/stack with no per-value type information, every typed
// opcode here carries an explicit Tag that selects the width and
// interpretation used by the dispatch tables in arith.go/compare.go/cast.go.
type Interpreter struct {
	program []byte
	pc      uint64

	stack   *Stack
	scratch *Scratch

	out io.Writer // Pop/Peek's console output — the sole test oracle (§6)
	log *zap.Logger
}

// NewInterpreter constructs an Interpreter ready to run program against a
// fresh stack and scratch buffer of the given capacities.
func NewInterpreter(program []byte, stackCapacity, scratchCapacity int, out io.Writer, log *zap.Logger) *Interpreter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interpreter{
		program: program,
		stack:   NewStack(stackCapacity),
		scratch: NewScratch(scratchCapacity),
		out:     out,
		log:     log,
	}
}

// PC returns the current program counter, mostly useful for diagnostics
// and tests.
func (it *Interpreter) PC() uint64 { return it.pc }

// Stack exposes the operand stack for tests that want to assert on its
// state between Step calls.
func (it *Interpreter) Stack() *Stack { return it.stack }

// Run drives the fetch-decode-execute loop to completion (§4.2
// Termination): it stops cleanly once the program counter reaches exactly
// the end of the program, or returns the first fatal error encountered.
func (it *Interpreter) Run() error {
	for it.pc != uint64(len(it.program)) {
		if err := it.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes exactly one fetch-decode-execute cycle. It is exported so
// a driver can single-step a program, the direct descendant of gvm's
// RunProgramDebugMode breakpoint loop (see cmd/stackvm's --trace flag).
func (it *Interpreter) Step() error {
	opByte, err := it.readByte()
	if err != nil {
		return err
	}
	if !byteIsOpcode[opByte] {
		return &ProgramError{PC: it.pc - 1, Err: fmt.Errorf("%w: byte %d is not a valid opcode", ErrProgramOverrun, opByte)}
	}
	op := Opcode(opByte)
	it.log.Debug("step", zap.Uint64("pc", it.pc-1), zap.String("op", op.String()))

	switch op {
	case Push:
		tag, err := it.readTag()
		if err != nil {
			return err
		}
		lit, err := it.readBytes(tag.Width())
		if err != nil {
			return err
		}
		if err := it.stack.PushBytes(lit); err != nil {
			return err
		}

	case Pop:
		tag, err := it.readTag()
		if err != nil {
			return err
		}
		v, err := it.stack.PopBytes(tag.Width())
		if err != nil {
			return err
		}
		it.emit(tag, v)

	case Peek:
		tag, err := it.readTag()
		if err != nil {
			return err
		}
		v, err := it.stack.PeekBytes(tag.Width())
		if err != nil {
			return err
		}
		it.emit(tag, v)

	case ClonePush:
		tag, err := it.readTag()
		if err != nil {
			return err
		}
		v, err := it.stack.PeekBytes(tag.Width())
		if err != nil {
			return err
		}
		if err := it.stack.PushBytes(v); err != nil {
			return err
		}

	case Add, Subtract, Multiply:
		tag, err := it.readNumericTag(op)
		if err != nil {
			return err
		}
		width := tag.Width()
		x, err := it.stack.PopBytes(width)
		if err != nil {
			return err
		}
		y, err := it.stack.PeekBytes(width)
		if err != nil {
			return err
		}
		it.arithTableFor(op)[tag](x, y)

	case Divide:
		tag, err := it.readNumericTag(op)
		if err != nil {
			return err
		}
		width := tag.Width()
		x, err := it.stack.PopBytes(width)
		if err != nil {
			return err
		}
		y, err := it.stack.PeekBytes(width)
		if err != nil {
			return err
		}
		if err := arithDiv[tag](x, y); err != nil {
			return &ProgramError{PC: it.pc, Err: err}
		}

	case Store, PeekStore:
		tag, err := it.readTag()
		if err != nil {
			return err
		}
		index, err := it.readOffset()
		if err != nil {
			return err
		}
		width := tag.Width()
		var v []byte
		if op == Store {
			v, err = it.stack.PopBytes(width)
		} else {
			v, err = it.stack.PeekBytes(width)
		}
		if err != nil {
			return err
		}
		dst, err := it.scratch.Slice(index, width)
		if err != nil {
			return err
		}
		copy(dst, v)

	case Load:
		tag, err := it.readTag()
		if err != nil {
			return err
		}
		index, err := it.readOffset()
		if err != nil {
			return err
		}
		src, err := it.scratch.Slice(index, tag.Width())
		if err != nil {
			return err
		}
		if err := it.stack.PushBytes(src); err != nil {
			return err
		}

	case Goto:
		target, err := it.readOffset()
		if err != nil {
			return err
		}
		it.pc = target

	case PopGotoIfTrue, PeekGotoIfTrue:
		target, err := it.readOffset()
		if err != nil {
			return err
		}
		var v []byte
		if op == PopGotoIfTrue {
			v, err = it.stack.PopBytes(1)
		} else {
			v, err = it.stack.PeekBytes(1)
		}
		if err != nil {
			return err
		}
		if decodeBool(v) {
			it.pc = target
		}

	case LogicAnd, LogicOr:
		x, err := it.stack.PopBytes(1)
		if err != nil {
			return err
		}
		y, err := it.stack.PeekBytes(1)
		if err != nil {
			return err
		}
		rhs, lhs := decodeBool(x), decodeBool(y)
		if op == LogicAnd {
			encodeBool(lhs && rhs, y)
		} else {
			encodeBool(lhs || rhs, y)
		}

	case LogicNot:
		y, err := it.stack.PeekBytes(1)
		if err != nil {
			return err
		}
		encodeBool(!decodeBool(y), y)

	case CompareEqual, CompareNotEqual, CompareGreater, CompareGreaterEqual, CompareLesser, CompareLesserEqual:
		tag, err := it.readNumericTag(op)
		if err != nil {
			return err
		}
		width := tag.Width()
		rhs, err := it.stack.PopBytes(width)
		if err != nil {
			return err
		}
		lhs, err := it.stack.PopBytes(width)
		if err != nil {
			return err
		}
		result := compareTables[op][tag](rhs, lhs)
		if err := it.stack.PushBytes(boolBytes(result)); err != nil {
			return err
		}

	case TypeCast:
		from, err := it.readTag()
		if err != nil {
			return err
		}
		to, err := it.readTag()
		if err != nil {
			return err
		}
		if err := it.execCast(from, to); err != nil {
			return err
		}

	default:
		return &ProgramError{PC: it.pc - 1, Err: fmt.Errorf("opcode %s has no execution handler", op)}
	}

	return nil
}

// execCast applies TypeCast (§4.1 cast_from_to): peek the From-width
// source, convert it, resize the stack top by the width delta, then write
// the converted value into the now-current top slot.
func (it *Interpreter) execCast(from, to Tag) error {
	if from == to {
		return &TypeError{Opcode: TypeCast, Tag: from, Err: ErrSameTypeCast}
	}
	if !from.IsNumeric() {
		return &TypeError{Opcode: TypeCast, Tag: from, Err: ErrIllegalTypeTag}
	}
	if !to.IsNumeric() {
		return &TypeError{Opcode: TypeCast, Tag: to, Err: ErrIllegalTypeTag}
	}
	fn, ok := castTable[from][to]
	if !ok {
		return &TypeError{Opcode: TypeCast, Tag: to, Err: ErrIllegalTypeTag}
	}

	srcWidth, dstWidth := from.Width(), to.Width()
	src, err := it.stack.PeekBytes(srcWidth)
	if err != nil {
		return err
	}
	result := fn(src)

	if err := it.stack.AdjustTop(dstWidth - srcWidth); err != nil {
		return err
	}
	dst, err := it.stack.PeekBytes(dstWidth)
	if err != nil {
		return err
	}
	copy(dst, result)
	return nil
}

func (it *Interpreter) arithTableFor(op Opcode) map[Tag]func(x, y []byte) {
	switch op {
	case Add:
		return arithAdd
	case Subtract:
		return arithSub
	default:
		return arithMul
	}
}

func (it *Interpreter) readNumericTag(op Opcode) (Tag, error) {
	tag, err := it.readTag()
	if err != nil {
		return 0, err
	}
	if !tag.IsNumeric() {
		return 0, &TypeError{Opcode: op, Tag: tag, Err: ErrIllegalTypeTag}
	}
	return tag, nil
}

func boolBytes(v bool) []byte {
	b := make([]byte, 1)
	encodeBool(v, b)
	return b
}

// emit writes a Pop/Peek value to the program's console output (§4.2, §6):
// three-decimal floats, decimal integers, true/false booleans — the sole
// externally observable side effect of a running program, kept separate
// from the zap diagnostic log above.
func (it *Interpreter) emit(tag Tag, v []byte) {
	var line string
	switch tag {
	case Bool:
		line = strconv.FormatBool(decodeBool(v))
	case I8:
		line = strconv.FormatInt(int64(decodeI8(v)), 10)
	case I16:
		line = strconv.FormatInt(int64(decodeI16(v)), 10)
	case I32:
		line = strconv.FormatInt(int64(decodeI32(v)), 10)
	case I64:
		line = strconv.FormatInt(decodeI64(v), 10)
	case U8:
		line = strconv.FormatUint(uint64(decodeU8(v)), 10)
	case U16:
		line = strconv.FormatUint(uint64(decodeU16(v)), 10)
	case U32:
		line = strconv.FormatUint(uint64(decodeU32(v)), 10)
	case U64:
		line = strconv.FormatUint(decodeU64(v), 10)
	case F32:
		line = strconv.FormatFloat(float64(decodeF32(v)), 'f', 3, 32)
	case F64:
		line = strconv.FormatFloat(decodeF64(v), 'f', 3, 64)
	}
	fmt.Fprintln(it.out, line)
}

func (it *Interpreter) readByte() (byte, error) {
	b, err := it.readBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (it *Interpreter) readTag() (Tag, error) {
	b, err := it.readByte()
	if err != nil {
		return 0, err
	}
	if !byteIsTag[b] {
		return 0, &TypeError{Tag: Tag(b), Err: ErrIllegalTypeTag}
	}
	return Tag(b), nil
}

func (it *Interpreter) readOffset() (uint64, error) {
	b, err := it.readBytes(8)
	if err != nil {
		return 0, err
	}
	return decodeOffset(b), nil
}

func (it *Interpreter) readBytes(n int) ([]byte, error) {
	if it.pc+uint64(n) > uint64(len(it.program)) {
		return nil, &ProgramError{PC: it.pc, Err: ErrProgramOverrun}
	}
	start := it.pc
	it.pc += uint64(n)
	return it.program[start:it.pc], nil
}
