// Command xmd is the CLI front end over the core XMD pipeline (spec.md
// §9's "command-line front end... is out of scope" note; SPEC_FULL.md
// §5 carries it forward as ambient glue). Structure grounded on
// _examples/CWBudde-go-dws/cmd/dwscript's cobra-based main/cmd split.
package main

import (
	"fmt"
	"os"

	"github.com/akaoio/xmd/cmd/xmd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
