package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/akaoio/xmd/capability"
	"github.com/akaoio/xmd/content"
	"github.com/akaoio/xmd/eval"
	"github.com/akaoio/xmd/internal/config"
	"github.com/akaoio/xmd/store"
	"github.com/akaoio/xmd/value"
)

var (
	configPath string
	searchPath []string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Process a Markdown file's xmd directives and print the result",
	Long: `Process an XMD-annotated Markdown document: evaluate every
<!-- xmd: ... --> directive against a shared variable store, then run
{{ name }} interpolation over the assembled output.

Examples:
  xmd run report.md
  xmd run --config xmd.yaml report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&configPath, "config", "xmd.yaml", "path to optional xmd.yaml config")
	runCmd.Flags().StringSliceVar(&searchPath, "search-path", nil, "additional module import search paths")
}

func runFile(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading %s: %w", filename, err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("loaded config from %s (or defaults)", configPath)
	}

	e := eval.New(store.New())
	e.Limits = cfg.EvalLimits()
	e.Shell = capability.NewExecShellRunner()
	e.Files = capability.NewOSFileIO()
	e.Sandbox = capability.NewAllowlistSandbox(cfg.SandboxAllow...)

	paths := append(append([]string{filepath.Dir(filename)}, cfg.ModuleSearchPaths...), searchPath...)
	e.Modules = capability.NewPathModuleLoader(paths, moduleProcessor(cfg))

	proc := content.New(e)
	output, err := proc.Process(string(source))
	if err != nil {
		return fmt.Errorf("processing %s: %w", filename, err)
	}

	if len(e.Output) > 0 {
		os.Stdout.Write(e.Output)
	}
	fmt.Print(output)
	return nil
}

// moduleProcessor builds the capability.ProcessFunc a PathModuleLoader
// needs to run an imported file through the same evaluator pipeline as
// the top-level document, returning its final store bindings as exports
// (spec.md §4.7: import binds exported variables, emits no output). Each
// imported module gets its own store so its bindings don't leak into the
// importer except through the exports map that eval's import handling
// copies into the importer's store.
func moduleProcessor(cfg *config.Config) capability.ProcessFunc {
	return func(path, source string) (map[string]*value.Value, error) {
		sub := eval.New(store.New())
		sub.Limits = cfg.EvalLimits()
		sub.Shell = capability.NewExecShellRunner()
		sub.Files = capability.NewOSFileIO()
		sub.Sandbox = capability.NewAllowlistSandbox(cfg.SandboxAllow...)
		sub.Modules = capability.NewPathModuleLoader(
			append([]string{filepath.Dir(path)}, cfg.ModuleSearchPaths...),
			moduleProcessor(cfg),
		)

		proc := content.New(sub)
		if _, err := proc.Process(source); err != nil {
			return nil, err
		}

		exports := make(map[string]*value.Value)
		for _, name := range sub.Store.Keys() {
			v, _ := sub.Store.Get(name)
			exports[name] = v
		}
		return exports, nil
	}
}
