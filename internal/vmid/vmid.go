// Package vmid mints the per-instance identifier attached to every
// interpreter run, so log lines from concurrent runs can be told apart.
package vmid

import "github.com/google/uuid"

// New returns a fresh run identifier.
func New() string {
	return uuid.NewString()
}
