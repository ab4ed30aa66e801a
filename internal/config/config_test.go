package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMatchesEvalDefaultLimits(t *testing.T) {
	cfg := Default()
	if cfg.Limits.MaxIfDepth != 32 || cfg.Limits.MaxLoopDepth != 8 || cfg.Limits.MaxWhileIterations != 1000 {
		t.Errorf("got %+v, want the original's 32/8/1000 defaults", cfg.Limits)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Limits.MaxIfDepth != 32 {
		t.Errorf("got %d, want 32", cfg.Limits.MaxIfDepth)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xmd.yaml")
	content := `
module_search_paths:
  - ./lib
sandbox_allow:
  - echo
  - ls
shell_timeout: 5s
limits:
  max_if_depth: 4
  max_loop_depth: 2
  max_while_iterations: 100
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write error: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if len(cfg.ModuleSearchPaths) != 1 || cfg.ModuleSearchPaths[0] != "./lib" {
		t.Errorf("got %v", cfg.ModuleSearchPaths)
	}
	if len(cfg.SandboxAllow) != 2 {
		t.Errorf("got %v", cfg.SandboxAllow)
	}
	if cfg.Limits.MaxIfDepth != 4 || cfg.Limits.MaxLoopDepth != 2 || cfg.Limits.MaxWhileIterations != 100 {
		t.Errorf("got %+v", cfg.Limits)
	}
	if cfg.ShellTimeoutDuration().Seconds() != 5 {
		t.Errorf("got %v, want 5s", cfg.ShellTimeoutDuration())
	}
}

func TestShellTimeoutDurationDefaultsOnEmpty(t *testing.T) {
	cfg := Default()
	if cfg.ShellTimeoutDuration().Seconds() != 10 {
		t.Errorf("got %v, want 10s default", cfg.ShellTimeoutDuration())
	}
}
