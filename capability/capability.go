// Package capability defines the external collaborators the core
// evaluator consults rather than implements directly (spec.md §6):
// shell execution, file I/O, module loading, and sandbox policy. Keeping
// these behind interfaces mirrors pongo2's TemplateLoader/virtfs split
// (github.com/Flyclops/pongo2/virtfs.go) between "what the template
// engine computes" and "where bytes come from" — here generalized from a
// single loader interface to XMD's four distinct capabilities.
package capability

import (
	"time"

	"github.com/akaoio/xmd/value"
)

// ShellResult is the outcome of a shell command dispatch (spec.md §6).
type ShellResult struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	WallTime time.Duration
}

// ShellRunner executes a command string and reports its outcome. The
// core's `exec` builtin substitutes `{{var}}` forms in command before
// calling Run (spec.md §6); Run itself only knows about argv and a
// timeout.
type ShellRunner interface {
	Run(command string, timeout time.Duration) (ShellResult, error)
}

// FileIO is the file-system capability consulted by the `read`, `write`,
// `exists`, `delete`, and `list` builtins (spec.md §6), plus the
// JSON-aware ReadJSON/WriteJSON pair SPEC_FULL.md §6 adds so a directive
// can load or persist a structured XMD object/array value directly.
type FileIO interface {
	Read(path string) (string, error)
	Write(path, content string) error
	Exists(path string) bool
	Delete(path string) error
	List(dir string, includeHidden bool) ([]string, error)
	ReadJSON(path string) (*value.Value, error)
	WriteJSON(path string, v *value.Value) error
}

// Module is a fully processed import target: its exported bindings, keyed
// by name, ready to be copied into the importing store (spec.md §4.7).
type Module struct {
	Exports map[string]*value.Value
}

// ModuleLoader resolves an import path to a processed module, caching
// already-loaded modules and rejecting circular imports (spec.md §6).
type ModuleLoader interface {
	Load(path string) (*Module, error)
}

// SandboxPolicy gates shell execution (spec.md §6): when IsAllowed
// returns false, `exec` must not invoke the ShellRunner at all.
type SandboxPolicy interface {
	IsAllowed(command string) bool
}
