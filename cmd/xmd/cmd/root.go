// Package cmd implements the xmd CLI, a thin glue layer over the core
// lexer/parser/eval/content pipeline (spec.md §9 calls the CLI out of
// scope for the core; SPEC_FULL.md §5 carries it forward as the ambient
// stack). Command split, version-template, and --verbose flag are
// grounded on _examples/CWBudde-go-dws/cmd/dwscript/cmd/root.go.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "xmd",
	Short: "XMD: a Markdown preprocessor driven by HTML-comment directives",
	Long: `xmd processes Markdown documents containing <!-- xmd: ... --> directives:
variable assignment, conditionals, loops, function definitions, shell
exec, and JSON/file I/O, followed by {{ name }} interpolation.`,
	Version: Version,
}

// Execute runs the root command and all registered subcommands.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
