package capability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/akaoio/xmd/value"
)

// ProcessFunc fully processes a module file's source and returns the
// final variable bindings, keyed by name. It is supplied by package
// eval/content at construction time to avoid an import cycle (the
// module loader needs to run the same content-processing pipeline the
// core uses for top-level documents; content needs this loader).
type ProcessFunc func(path, source string) (map[string]*value.Value, error)

// PathModuleLoader resolves import paths against a search path list,
// caches already-processed modules, and rejects circular imports
// (spec.md §6), grounded on pongo2's TemplateSet path-resolution-plus-
// cache pattern (set.go) generalized from template lookup to module
// loading with export bindings instead of rendered output.
type PathModuleLoader struct {
	searchPaths []string
	process     ProcessFunc

	cache   map[string]*Module
	loading map[string]bool
}

// NewPathModuleLoader constructs a loader that resolves relative import
// paths against searchPaths in order, processing each module's source
// with process.
func NewPathModuleLoader(searchPaths []string, process ProcessFunc) *PathModuleLoader {
	return &PathModuleLoader{
		searchPaths: searchPaths,
		process:     process,
		cache:       make(map[string]*Module),
		loading:     make(map[string]bool),
	}
}

// Load resolves path, processes the module on first request, and serves
// subsequent requests for the same resolved path from cache without
// re-execution (spec.md §6).
func (l *PathModuleLoader) Load(path string) (*Module, error) {
	resolved, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	if mod, ok := l.cache[resolved]; ok {
		return mod, nil
	}
	if l.loading[resolved] {
		return nil, fmt.Errorf("circular import: %s", resolved)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, err
	}

	l.loading[resolved] = true
	exports, err := l.process(resolved, string(data))
	delete(l.loading, resolved)
	if err != nil {
		return nil, err
	}

	mod := &Module{Exports: exports}
	l.cache[resolved] = mod
	return mod, nil
}

func (l *PathModuleLoader) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("module not found: %s", path)
	}
	for _, base := range l.searchPaths {
		candidate := filepath.Join(base, path)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("module not found in search path: %s", path)
}
