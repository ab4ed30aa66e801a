package capability

import (
	"os"
	"strings"

	"github.com/maruel/natural"

	"github.com/akaoio/xmd/value"
)

// OSFileIO is the default FileIO capability, reading and writing through
// the local filesystem. Modeled on github.com/Flyclops/pongo2's
// LocalFilesystemLoader (virtfs.go), generalized from "open for reading a
// template" to the five read/write/exists/delete/list operations
// spec.md §6 lists.
type OSFileIO struct{}

// NewOSFileIO constructs the default, unsandboxed filesystem capability.
func NewOSFileIO() *OSFileIO { return &OSFileIO{} }

func (OSFileIO) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (OSFileIO) Write(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func (OSFileIO) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFileIO) Delete(path string) error {
	return os.Remove(path)
}

// List returns dir's entries other than "." and "..", sorted with
// natural (human) ordering rather than Go's default byte-wise sort — so
// "file2.md" precedes "file10.md", matching how a person authoring
// Markdown expects a directory listing to read. spec.md §6 leaves list
// order unspecified, so this is a deliberate, documented choice rather
// than an accidental one. Dot-files are skipped unless includeHidden is
// true (SPEC_FULL.md §7 supplement #6, mirroring the original's
// include_hidden flag).
func (OSFileIO) List(dir string, includeHidden bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, name)
	}
	natural.Sort(names)
	return names, nil
}

// ReadJSON reads path and parses its contents as JSON into an XMD
// value (SPEC_FULL.md §6). A read failure returns the error; a parse
// failure yields a null value rather than an error, matching the
// evaluator's general fallback posture for malformed input.
func (f OSFileIO) ReadJSON(path string) (*value.Value, error) {
	text, err := f.Read(path)
	if err != nil {
		return nil, err
	}
	return ValueFromJSON(text), nil
}

// WriteJSON serializes v to JSON text and writes it to path.
func (f OSFileIO) WriteJSON(path string, v *value.Value) error {
	return f.Write(path, ValueToJSON(v))
}
