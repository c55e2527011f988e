package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// Disassemble walks program back into mnemonic source, one instruction per
// line. It shares no label information with the original source — branch
// and scratch-index operands always render as plain decimal offsets — but
// Assemble(Disassemble(p)) reproduces p exactly (§8 round-trip invariant),
// since decimal offsets are exactly what parseOffsetToken accepts when no
// label matches.
func Disassemble(program []byte) (string, error) {
	var out strings.Builder
	pc := 0

	readByte := func() (byte, error) {
		if pc >= len(program) {
			return 0, &ProgramError{PC: uint64(pc), Err: ErrProgramOverrun}
		}
		b := program[pc]
		pc++
		return b, nil
	}
	readN := func(n int) ([]byte, error) {
		if pc+n > len(program) {
			return nil, &ProgramError{PC: uint64(pc), Err: ErrProgramOverrun}
		}
		b := program[pc : pc+n]
		pc += n
		return b, nil
	}
	readTag := func() (Tag, error) {
		b, err := readByte()
		if err != nil {
			return 0, err
		}
		if !byteIsTag[b] {
			return 0, &TypeError{Tag: Tag(b), Err: ErrIllegalTypeTag}
		}
		return Tag(b), nil
	}

	for pc < len(program) {
		opByte, err := readByte()
		if err != nil {
			return "", err
		}
		if !byteIsOpcode[opByte] {
			return "", &ProgramError{PC: uint64(pc - 1), Err: fmt.Errorf("%w: byte %d is not a valid opcode", ErrProgramOverrun, opByte)}
		}
		op := Opcode(opByte)
		fmt.Fprint(&out, op.String())

		switch {
		case op == Push:
			tag, err := readTag()
			if err != nil {
				return "", err
			}
			lit, err := readN(tag.Width())
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&out, " %s %s", tag, formatLiteral(tag, lit))

		case op.IsBranch():
			b, err := readN(8)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&out, " %d", decodeOffset(b))

		case op == Store || op == PeekStore || op == Load:
			tag, err := readTag()
			if err != nil {
				return "", err
			}
			b, err := readN(8)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&out, " %s %d", tag, decodeOffset(b))

		case op == TypeCast:
			from, err := readTag()
			if err != nil {
				return "", err
			}
			to, err := readTag()
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&out, " %s %s", from, to)

		case op.RequiresTypeTag():
			tag, err := readTag()
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&out, " %s", tag)
		}

		out.WriteByte('\n')
	}

	return out.String(), nil
}

func formatLiteral(tag Tag, v []byte) string {
	switch tag {
	case Bool:
		return strconv.FormatBool(decodeBool(v))
	case I8:
		return strconv.FormatInt(int64(decodeI8(v)), 10)
	case I16:
		return strconv.FormatInt(int64(decodeI16(v)), 10)
	case I32:
		return strconv.FormatInt(int64(decodeI32(v)), 10)
	case I64:
		return strconv.FormatInt(decodeI64(v), 10)
	case U8:
		return strconv.FormatUint(uint64(decodeU8(v)), 10)
	case U16:
		return strconv.FormatUint(uint64(decodeU16(v)), 10)
	case U32:
		return strconv.FormatUint(uint64(decodeU32(v)), 10)
	case U64:
		return strconv.FormatUint(decodeU64(v), 10)
	case F32:
		return strconv.FormatFloat(float64(decodeF32(v)), 'g', -1, 32)
	case F64:
		return strconv.FormatFloat(decodeF64(v), 'g', -1, 64)
	}
	return ""
}
