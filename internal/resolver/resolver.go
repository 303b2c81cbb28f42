// Package resolver maintains the process-wide mapping from resource
// identifiers to human-readable names, populated as flows are registered.
package resolver

import (
	"fmt"
	"io"
	"os"
)

// Table maps resource identifiers to display names.
type Table struct {
	names    map[string]string
	warnings io.Writer
}

// New returns an empty Table writing collision warnings to stderr.
func New() *Table {
	return &Table{
		names:    make(map[string]string),
		warnings: os.Stderr,
	}
}

// SetWarningOutput redirects collision warnings, mainly for tests.
func (t *Table) SetWarningOutput(w io.Writer) {
	t.warnings = w
}

// Register maps id to name. A later registration for the same id wins;
// if the new name differs from the previous one a warning is emitted,
// since two distinct flows sharing an identifier is almost certainly a
// broken export.
func (t *Table) Register(id, name string) {
	if prev, ok := t.names[id]; ok && prev != name {
		fmt.Fprintf(t.warnings, "Warning: resource id %s already mapped to %q, remapping to %q\n", id, prev, name)
	}
	t.names[id] = name
}

// Resolve returns the display name for id, or id itself when unknown.
func (t *Table) Resolve(id string) string {
	if name, ok := t.names[id]; ok {
		return name
	}
	return id
}

// Len reports how many identifiers are registered.
func (t *Table) Len() int {
	return len(t.names)
}
