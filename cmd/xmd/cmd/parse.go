package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akaoio/xmd/lexer"
	"github.com/akaoio/xmd/parser"
	"github.com/akaoio/xmd/pkg/printer"
)

var parseEvalExpr string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a directive body and print its canonical form",
	Long: `Parse an xmd directive's statement body and re-print it in
canonical formatted form, by parsing to an AST and running it back
through the printer (useful for checking that a construct parses the
way you expect).

Examples:
  xmd parse -e "if x > 1 y = 2 endif"
  xmd parse directive.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline text instead of reading from file")
}

func parseSource(_ *cobra.Command, args []string) error {
	input, name, err := readSource(parseEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, lexErr := lexer.Lex(name, input)
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr.Error())
		return fmt.Errorf("lexing failed")
	}

	prog, parseErr := parser.ParseProgram(name, tokens)
	if parseErr != nil {
		fmt.Fprintln(os.Stderr, parseErr.Error())
		return fmt.Errorf("parsing failed")
	}

	p := printer.New(printer.DefaultConfig())
	fmt.Print(p.PrintStatements(prog.Statements))
	return nil
}
