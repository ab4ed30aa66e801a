package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunFileProcessesDirectivesAndInterpolation(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "doc.md")
	doc := "<!-- xmd: set name = \"world\" -->\nHello, {{ name }}!\n"
	if err := os.WriteFile(docPath, []byte(doc), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	origConfigPath := configPath
	configPath = filepath.Join(dir, "xmd.yaml")
	defer func() { configPath = origConfigPath }()

	stdout, err := captureStdout(t, func() error {
		return runFile(nil, []string{docPath})
	})
	if err != nil {
		t.Fatalf("runFile error: %v", err)
	}
	want := "\nHello, world!\n"
	if stdout != want {
		t.Errorf("got %q, want %q", stdout, want)
	}
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe error: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = orig

	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 4096)
	for {
		n, readErr := r.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if readErr != nil {
			break
		}
	}
	return string(buf), fnErr
}
