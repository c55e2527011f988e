package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackvm/vm"
)

func runSource(t *testing.T, source string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	machine, err := vm.New(source, vm.WithOutput(&out))
	require.NoError(t, err)
	err = machine.Run()
	return out.String(), err
}

func TestArithmeticInPlaceOperandOrder(t *testing.T) {
	// push 10; push 3; subtract i32; peek i32 -> 10 - 3 == 7
	out, err := runSource(t, `
		push i32 10
		push i32 3
		subtract i32
		peek i32
	`)
	require.NoError(t, err)
	assert.Equal(t, "7\n", out)
}

func TestCompareOrderingLaterPushedIsRHS(t *testing.T) {
	// push 10; push 3; compare_greater i32 -> 10 > 3 == true
	out, err := runSource(t, `
		push i32 10
		push i32 3
		compare_greater i32
		pop bool
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestDivideByZeroIsFatal(t *testing.T) {
	_, err := runSource(t, `
		push i32 1
		push i32 0
		divide i32
	`)
	require.Error(t, err)
	var programErr *vm.ProgramError
	assert.ErrorAs(t, err, &programErr)
	assert.ErrorIs(t, err, vm.ErrDivideByZero)
}

func TestFloatDivideByZeroProducesInfNotError(t *testing.T) {
	out, err := runSource(t, `
		push f64 1.0
		push f64 0.0
		divide f64
		pop f64
	`)
	require.NoError(t, err)
	assert.Equal(t, "+Inf\n", out)
}

func TestTypeCastWidensAndNarrows(t *testing.T) {
	out, err := runSource(t, `
		push i8 42
		type_cast i8 i64
		type_cast i64 i16
		pop i16
	`)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out)
}

func TestSameTypeCastIsTypeError(t *testing.T) {
	_, err := runSource(t, `
		push i32 1
		type_cast i32 i32
	`)
	require.Error(t, err)
	var typeErr *vm.TypeError
	assert.ErrorAs(t, err, &typeErr)
	assert.ErrorIs(t, err, vm.ErrSameTypeCast)
}

func TestStoreLoadRoundTrip(t *testing.T) {
	out, err := runSource(t, `
		push i32 99
		store i32 0
		load i32 0
		pop i32
	`)
	require.NoError(t, err)
	assert.Equal(t, "99\n", out)
}

func TestBranchingLoopSumsToTen(t *testing.T) {
	// Sums 1..4 into scratch[0] using a backward branch.
	out, err := runSource(t, `
		push i32 0
		store i32 0
		push i32 1
		store i32 8

		loop:
		load i32 8
		push i32 5
		compare_greater_equal i32
		pop_goto_if_true end

		load i32 0
		load i32 8
		add i32
		store i32 0

		load i32 8
		push i32 1
		add i32
		store i32 8

		push bool true
		pop_goto_if_true loop

		end:
		load i32 0
		pop i32
	`)
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)
}

func TestStackUnderflowIsFatal(t *testing.T) {
	_, err := runSource(t, `pop i32`)
	require.Error(t, err)
	var stackErr *vm.StackError
	assert.ErrorAs(t, err, &stackErr)
	assert.ErrorIs(t, err, vm.ErrStackUnderflow)
}

func TestUnknownMnemonicIsParseError(t *testing.T) {
	_, err := vm.New(`frobnicate`)
	require.Error(t, err)
	var parseErr *vm.ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.ErrorIs(t, err, vm.ErrUnknownMnemonic)
}

func TestDisassembleThenAssembleRoundTrips(t *testing.T) {
	source := `
		push i32 10
		push i32 3
		subtract i32
		peek i32
	`
	program, err := vm.Assemble(source)
	require.NoError(t, err)

	text, err := vm.Disassemble(program)
	require.NoError(t, err)

	reassembled, err := vm.Assemble(text)
	require.NoError(t, err)
	assert.Equal(t, program, reassembled)
}

func TestF32ArithmeticInPlaceOperandOrder(t *testing.T) {
	out, err := runSource(t, `
		push f32 10.0
		push f32 4.0
		subtract f32
		peek f32
	`)
	require.NoError(t, err)
	assert.Equal(t, "6.000\n", out)
}

func TestF32Compare(t *testing.T) {
	out, err := runSource(t, `
		push f32 10.0
		push f32 4.0
		compare_greater f32
		pop bool
	`)
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)
}

func TestF32TypeCast(t *testing.T) {
	out, err := runSource(t, `
		push f32 7.0
		type_cast f32 f64
		pop f64
	`)
	require.NoError(t, err)
	assert.Equal(t, "7.000\n", out)
}

// Literal end-to-end scenarios, reproduced verbatim from the scenario table.

func TestEndToEndScenarios(t *testing.T) {
	t.Run("scenario 2: eleven-operand i32 chain yields -129", func(t *testing.T) {
		out, err := runSource(t, `
			push i32 1
			push i32 2
			push i32 3
			push i32 4
			push i32 5
			push i32 6
			push i32 7
			push i32 8
			push i32 9
			push i32 20
			push i32 10
			divide i32
			add i32
			subtract i32
			multiply i32
			multiply i32
			subtract i32
			add i32
			subtract i32
			add i32
			add i32
			pop i32
		`)
		require.NoError(t, err)
		assert.Equal(t, "-129\n", out)
	})

	t.Run("scenario 6: type_cast i32 f64 prints 7.000 twice", func(t *testing.T) {
		out, err := runSource(t, `
			push i32 7
			type_cast i32 f64
			peek f64
			pop f64
		`)
		require.NoError(t, err)
		assert.Equal(t, "7.000\n7.000\n", out)
	})
}

func TestCommentsAreStripped(t *testing.T) {
	out, err := runSource(t, strings.Join([]string{
		"// a comment on its own line",
		"push i32 5 // trailing comment",
		"pop i32",
	}, "\n"))
	require.NoError(t, err)
	assert.Equal(t, "5\n", out)
}
