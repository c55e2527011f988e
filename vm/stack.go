package vm

// Stack is the byte-addressable operand stack (§3, §4.1 C1). It is a
// fixed-capacity contiguous buffer with a cursor (top) pointing at the
// first unused byte, the same layout gvm's stack/stack-pointer pair uses,
// just with top counted up from the base instead of a stack pointer
// counted down from the end.
type Stack struct {
	buf []byte
	top int
}

// DefaultStackCapacity matches the ~10 KiB the specification's source
// used (§3).
const DefaultStackCapacity = 10 * 1024

// NewStack allocates an operand stack of the given capacity.
func NewStack(capacity int) *Stack {
	return &Stack{buf: make([]byte, capacity)}
}

// Len returns the number of bytes currently on the stack.
func (s *Stack) Len() int { return s.top }

// Empty reports whether top == base (§3 invariant).
func (s *Stack) Empty() bool { return s.top == 0 }

// reserve returns a slice of the backing buffer to write width bytes at
// top, advancing top, or a StackError if doing so would overflow.
func (s *Stack) reserve(width int) ([]byte, error) {
	if s.top+width > len(s.buf) {
		return nil, &StackError{Op: "push", Err: ErrStackOverflow}
	}
	start := s.top
	s.top += width
	return s.buf[start : start+width : start+width], nil
}

// retire returns a slice of the backing buffer holding the top width
// bytes and retreats top, or a StackError if doing so would underflow.
func (s *Stack) retire(width int) ([]byte, error) {
	if s.top-width < 0 {
		return nil, &StackError{Op: "pop", Err: ErrStackUnderflow}
	}
	s.top -= width
	return s.buf[s.top : s.top+width : s.top+width], nil
}

// top bytes without moving the cursor.
func (s *Stack) peek(width int) ([]byte, error) {
	if s.top-width < 0 {
		return nil, &StackError{Op: "peek", Err: ErrStackUnderflow}
	}
	return s.buf[s.top-width : s.top : s.top], nil
}

// PushBytes writes v (len(v) == width) at top and advances top by width.
func (s *Stack) PushBytes(v []byte) error {
	dst, err := s.reserve(len(v))
	if err != nil {
		return err
	}
	copy(dst, v)
	return nil
}

// PopBytes retreats top by width and returns the width bytes read from the
// new top. The returned slice aliases the stack's backing array and is
// only valid until the next push.
func (s *Stack) PopBytes(width int) ([]byte, error) {
	return s.retire(width)
}

// PeekBytes reads width bytes at top-width without moving top. The
// returned slice aliases the stack's backing array.
func (s *Stack) PeekBytes(width int) ([]byte, error) {
	return s.peek(width)
}

// AdjustTop grows (delta > 0) or shrinks (delta < 0) the stack in place,
// used by TypeCast to account for a width change without moving any bytes
// that don't need to move (§4.1 cast_from_to).
func (s *Stack) AdjustTop(delta int) error {
	next := s.top + delta
	if next < 0 {
		return &StackError{Op: "cast", Err: ErrStackUnderflow}
	}
	if next > len(s.buf) {
		return &StackError{Op: "cast", Err: ErrStackOverflow}
	}
	s.top = next
	return nil
}

// Scratch is the fixed, unaligned, byte-addressed memory region used only
// by Store/PeekStore/Load (§3, §4.1 buffer.store/buffer.load).
type Scratch struct {
	buf []byte
}

// DefaultScratchCapacity matches the ~100 KiB the specification's source
// used (§3).
const DefaultScratchCapacity = 100 * 1024

// NewScratch allocates a scratch buffer of the given capacity.
func NewScratch(capacity int) *Scratch {
	return &Scratch{buf: make([]byte, capacity)}
}

// Slice returns a width-byte window starting at index, or a ScratchError
// if it would run outside the buffer.
func (s *Scratch) Slice(index uint64, width int) ([]byte, error) {
	if index > uint64(len(s.buf)) || int(index)+width > len(s.buf) {
		return nil, &ScratchError{Index: index, Err: ErrScratchOutOfBounds}
	}
	return s.buf[index : int(index)+width], nil
}
