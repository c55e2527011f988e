// Command stackvm assembles and runs a stack-VM source file.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"stackvm/internal/telemetry"
	"stackvm/vm"
)

func main() {
	app := &cli.App{
		Name:      "stackvm",
		Usage:     "assemble and run a typed stack-VM program",
		ArgsUsage: "<source-file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "trace", Usage: "log each executed instruction to stderr"},
			&cli.BoolFlag{Name: "json-errors", Usage: "print a fatal error as a JSON object instead of plain text"},
			&cli.IntFlag{Name: "stack-size", Value: vm.DefaultStackCapacity, Usage: "operand stack capacity in bytes"},
			&cli.IntFlag{Name: "scratch-size", Value: vm.DefaultScratchCapacity, Usage: "scratch buffer capacity in bytes"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("expected exactly one source file argument", 2)
	}
	path := c.Args().Get(0)

	source, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(err, 1)
	}

	log, err := telemetry.NewLogger(c.Bool("trace"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer log.Sync()

	machine, err := vm.New(
		string(source),
		vm.WithStackCapacity(c.Int("stack-size")),
		vm.WithScratchCapacity(c.Int("scratch-size")),
		vm.WithOutput(os.Stdout),
		vm.WithLogger(log),
	)
	if err != nil {
		return reportError(c, err)
	}

	if err := machine.Run(); err != nil {
		return reportError(c, err)
	}
	return nil
}

func reportError(c *cli.Context, err error) error {
	if !c.Bool("json-errors") {
		return cli.Exit(err, 1)
	}

	payload := map[string]string{"error": err.Error()}
	var (
		parseErr   *vm.ParseError
		typeErr    *vm.TypeError
		stackErr   *vm.StackError
		scratchErr *vm.ScratchError
		programErr *vm.ProgramError
	)
	switch {
	case errors.As(err, &parseErr):
		payload["kind"] = "ParseError"
	case errors.As(err, &typeErr):
		payload["kind"] = "TypeError"
	case errors.As(err, &stackErr):
		payload["kind"] = "StackError"
	case errors.As(err, &scratchErr):
		payload["kind"] = "ScratchError"
	case errors.As(err, &programErr):
		payload["kind"] = "ProgramError"
	}

	enc, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		return cli.Exit(err, 1)
	}
	fmt.Fprintln(os.Stderr, string(enc))
	return cli.Exit("", 1)
}
