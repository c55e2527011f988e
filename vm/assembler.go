package vm

import (
	"strconv"
	"strings"
)

// Assemble translates mnemonic source into a byte program in two passes
// over the token stream. It generalizes gvm's preprocessLine/parseInputLine split — label scanning
// and per-line parsing collapsed from line-oriented source into whitespace-
// delimited tokens, since the bytecode format here has no fixed-width
// instruction record to align lines against.
//
// layout() walks the token stream once to strip `label:` declarations,
// resolve them to byte offsets, and validate mnemonic/tag shape; emit()
// walks the resulting instruction-only token stream a second time to
// produce the actual bytes, resolving branch/scratch-index operands that
// name a label.
func Assemble(source string) ([]byte, error) {
	tokens := tokenize(source)
	instrTokens, labels, err := layout(tokens)
	if err != nil {
		return nil, err
	}
	return emit(instrTokens, labels)
}

func tokenize(source string) []string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		lines[i] = line
	}
	return strings.Fields(strings.Join(lines, "\n"))
}

// layout removes label declarations from tokens, records their resolved
// byte offsets in labels, and returns the remaining instruction/operand
// tokens in order. It also validates that every opcode's operand tokens
// are structurally present (a tag where one is required, an operand where
// one follows) without yet parsing literal values.
func layout(tokens []string) (instrTokens []string, labels map[string]uint64, err error) {
	labels = make(map[string]uint64)
	var offset uint64
	pos := 0

	for pos < len(tokens) {
		tok := tokens[pos]
		if name, ok := strings.CutSuffix(tok, ":"); ok && name != "" {
			labels[name] = offset
			pos++
			continue
		}

		b, ok := mnemonicToByte[tok]
		if !ok || !byteIsOpcode[b] {
			return nil, nil, &ParseError{Token: tok, Pos: pos, Err: ErrUnknownMnemonic}
		}
		op := Opcode(b)
		instrTokens = append(instrTokens, tok)
		offset++
		pos++

		switch {
		case op == Push:
			tagTok, err := requireToken(tokens, &pos, "type tag")
			if err != nil {
				return nil, nil, err
			}
			tag, err := requireTagToken(tagTok, pos-1)
			if err != nil {
				return nil, nil, err
			}
			instrTokens = append(instrTokens, tagTok)
			offset++
			litTok, err := requireToken(tokens, &pos, "literal")
			if err != nil {
				return nil, nil, err
			}
			instrTokens = append(instrTokens, litTok)
			offset += uint64(tag.Width())

		case op.IsBranch():
			tok, err := requireToken(tokens, &pos, "branch offset")
			if err != nil {
				return nil, nil, err
			}
			instrTokens = append(instrTokens, tok)
			offset += 8

		case op == Store || op == PeekStore || op == Load:
			tagTok, err := requireToken(tokens, &pos, "type tag")
			if err != nil {
				return nil, nil, err
			}
			if _, err := requireTagToken(tagTok, pos-1); err != nil {
				return nil, nil, err
			}
			instrTokens = append(instrTokens, tagTok)
			offset++
			idxTok, err := requireToken(tokens, &pos, "scratch index")
			if err != nil {
				return nil, nil, err
			}
			instrTokens = append(instrTokens, idxTok)
			offset += 8

		case op == TypeCast:
			for k := 0; k < 2; k++ {
				tagTok, err := requireToken(tokens, &pos, "type tag")
				if err != nil {
					return nil, nil, err
				}
				if _, err := requireTagToken(tagTok, pos-1); err != nil {
					return nil, nil, err
				}
				instrTokens = append(instrTokens, tagTok)
				offset++
			}

		case op.RequiresTypeTag():
			tagTok, err := requireToken(tokens, &pos, "type tag")
			if err != nil {
				return nil, nil, err
			}
			if _, err := requireTagToken(tagTok, pos-1); err != nil {
				return nil, nil, err
			}
			instrTokens = append(instrTokens, tagTok)
			offset++
		}
	}

	return instrTokens, labels, nil
}

func requireToken(tokens []string, pos *int, what string) (string, error) {
	if *pos >= len(tokens) {
		return "", &ParseError{Token: "", Pos: *pos, Err: ErrMissingImmediate}
	}
	tok := tokens[*pos]
	*pos++
	_ = what
	return tok, nil
}

func requireTagToken(tok string, pos int) (Tag, error) {
	b, ok := mnemonicToByte[tok]
	if !ok || !byteIsTag[b] {
		return 0, &ParseError{Token: tok, Pos: pos, Err: ErrMalformedLiteral}
	}
	return Tag(b), nil
}

// emit walks the instruction-only token stream produced by layout and
// writes the actual program bytes, resolving any branch/scratch-index
// token that names a label.
func emit(tokens []string, labels map[string]uint64) ([]byte, error) {
	var out []byte
	pos := 0

	for pos < len(tokens) {
		tok := tokens[pos]
		b := mnemonicToByte[tok]
		op := Opcode(b)
		out = append(out, b)
		pos++

		switch {
		case op == Push:
			tag := Tag(mnemonicToByte[tokens[pos]])
			out = append(out, byte(tag))
			pos++
			lit, err := parseLiteral(tag, tokens[pos], pos)
			if err != nil {
				return nil, err
			}
			out = append(out, lit...)
			pos++

		case op.IsBranch():
			target, err := parseOffsetToken(tokens[pos], pos, labels)
			if err != nil {
				return nil, err
			}
			out = append(out, encodedOffset(target)...)
			pos++

		case op == Store || op == PeekStore || op == Load:
			out = append(out, byte(mnemonicToByte[tokens[pos]]))
			pos++
			index, err := parseOffsetToken(tokens[pos], pos, labels)
			if err != nil {
				return nil, err
			}
			out = append(out, encodedOffset(index)...)
			pos++

		case op == TypeCast:
			for k := 0; k < 2; k++ {
				out = append(out, byte(mnemonicToByte[tokens[pos]]))
				pos++
			}

		case op.RequiresTypeTag():
			out = append(out, byte(mnemonicToByte[tokens[pos]]))
			pos++
		}
	}

	return out, nil
}

func encodedOffset(v uint64) []byte {
	b := make([]byte, 8)
	encodeOffset(v, b)
	return b
}

func parseOffsetToken(tok string, pos int, labels map[string]uint64) (uint64, error) {
	if v, ok := labels[tok]; ok {
		return v, nil
	}
	v, err := strconv.ParseUint(tok, 0, 64)
	if err != nil {
		return 0, &ParseError{Token: tok, Pos: pos, Err: ErrMalformedLiteral}
	}
	return v, nil
}

// parseLiteral parses tok as a literal of the given tag: true/false for
// Bool, Go integer syntax (0x/0o/0b prefixes honored) for the integer
// tags, and decimal syntax for floats.
func parseLiteral(tag Tag, tok string, pos int) ([]byte, error) {
	b := make([]byte, tag.Width())
	switch tag {
	case Bool:
		switch tok {
		case "true":
			encodeBool(true, b)
		case "false":
			encodeBool(false, b)
		default:
			return nil, &ParseError{Token: tok, Pos: pos, Err: ErrMalformedLiteral}
		}
	case I8, I16, I32, I64:
		v, err := strconv.ParseInt(tok, 0, tag.Width()*8)
		if err != nil {
			return nil, &ParseError{Token: tok, Pos: pos, Err: ErrMalformedLiteral}
		}
		switch tag {
		case I8:
			encodeI8(int8(v), b)
		case I16:
			encodeI16(int16(v), b)
		case I32:
			encodeI32(int32(v), b)
		case I64:
			encodeI64(v, b)
		}
	case U8, U16, U32, U64:
		v, err := strconv.ParseUint(tok, 0, tag.Width()*8)
		if err != nil {
			return nil, &ParseError{Token: tok, Pos: pos, Err: ErrMalformedLiteral}
		}
		switch tag {
		case U8:
			encodeU8(uint8(v), b)
		case U16:
			encodeU16(uint16(v), b)
		case U32:
			encodeU32(uint32(v), b)
		case U64:
			encodeU64(v, b)
		}
	case F32:
		v, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return nil, &ParseError{Token: tok, Pos: pos, Err: ErrMalformedLiteral}
		}
		encodeF32(float32(v), b)
	case F64:
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{Token: tok, Pos: pos, Err: ErrMalformedLiteral}
		}
		encodeF64(v, b)
	}
	return b, nil
}
