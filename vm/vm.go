package vm

import (
	"io"
	"os"

	"go.uber.org/zap"

	"stackvm/internal/vmid"
)

// VM ties an assembled program to a fresh Interpreter, along with the
// identifier and logger used for diagnostics. It generalizes gvm's
// NewVirtualMachine constructor — label resolution and instruction
// parsing collapse into a single Assemble call here (reading the source
// file is left to the caller, e.g. cmd/stackvm), since assembler.go already performs the whole label/layout/emit
// pipeline gvm split across preprocessLine/parseInputLine.
type VM struct {
	id     string
	interp *Interpreter
	log    *zap.Logger
}

// Option configures a VM at construction time, the same functional-options
// shape zap.Option itself uses.
type Option func(*config)

type config struct {
	stackCapacity   int
	scratchCapacity int
	out             io.Writer
	log             *zap.Logger
}

// WithStackCapacity overrides the operand stack's byte capacity
// (DefaultStackCapacity otherwise).
func WithStackCapacity(n int) Option {
	return func(c *config) { c.stackCapacity = n }
}

// WithScratchCapacity overrides the scratch buffer's byte capacity
// (DefaultScratchCapacity otherwise).
func WithScratchCapacity(n int) Option {
	return func(c *config) { c.scratchCapacity = n }
}

// WithOutput redirects Pop/Peek's console output (os.Stdout otherwise).
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.out = w }
}

// WithLogger attaches a diagnostic logger (a no-op logger otherwise).
func WithLogger(log *zap.Logger) Option {
	return func(c *config) { c.log = log }
}

// New assembles source and constructs a VM ready to Run or Step.
func New(source string, opts ...Option) (*VM, error) {
	cfg := config{
		stackCapacity:   DefaultStackCapacity,
		scratchCapacity: DefaultScratchCapacity,
		out:             os.Stdout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.log == nil {
		cfg.log = zap.NewNop()
	}

	program, err := Assemble(source)
	if err != nil {
		return nil, err
	}

	id := vmid.New()
	cfg.log = cfg.log.With(zap.String("vm_id", id))
	cfg.log.Debug("assembled program", zap.Int("bytes", len(program)))

	return &VM{
		id:     id,
		interp: NewInterpreter(program, cfg.stackCapacity, cfg.scratchCapacity, cfg.out, cfg.log),
		log:    cfg.log,
	}, nil
}

// ID returns this VM's run identifier, used to correlate its log lines.
func (m *VM) ID() string { return m.id }

// Run executes the program to completion.
func (m *VM) Run() error {
	err := m.interp.Run()
	if err != nil {
		m.log.Error("run failed", zap.Error(err), zap.Uint64("pc", m.interp.PC()))
	}
	return err
}

// Step executes a single instruction, for callers that want to drive
// execution one step at a time (debuggers, tests).
func (m *VM) Step() error { return m.interp.Step() }

// PC returns the current program counter.
func (m *VM) PC() uint64 { return m.interp.PC() }

// Stack exposes the operand stack, mostly for tests.
func (m *VM) Stack() *Stack { return m.interp.Stack() }
