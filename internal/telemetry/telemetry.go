// Package telemetry builds the zap loggers used for interpreter and
// assembler diagnostics. This is strictly a side channel: the Pop/Peek
// console output an interpreter produces (vm.Interpreter's out writer) is
// never routed through here, since that output is a program's contractual
// result rather than a diagnostic.
package telemetry

import "go.uber.org/zap"

// NewLogger builds a development logger when trace is set (human-readable,
// debug level and above) and a no-op logger otherwise, so that running
// without --trace costs nothing.
func NewLogger(trace bool) (*zap.Logger, error) {
	if !trace {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
