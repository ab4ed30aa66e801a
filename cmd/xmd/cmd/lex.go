package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akaoio/xmd/lexer"
)

var (
	lexShowPos  bool
	lexEvalExpr string
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a directive body and print the resulting tokens",
	Long: `Tokenize an xmd directive's expression/statement body (the text
following "xmd:" in a comment, with the prefix already stripped) and
print each token, useful for debugging the lexer.

Examples:
  xmd lex -e "x = 1 + 2"
  xmd lex directive.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline text instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show token positions (line:column)")
}

func lexSource(_ *cobra.Command, args []string) error {
	input, name, err := readSource(lexEvalExpr, args)
	if err != nil {
		return err
	}

	tokens, lexErr := lexer.Lex(name, input)
	if lexErr != nil {
		fmt.Fprintln(os.Stderr, lexErr.Error())
		return fmt.Errorf("lexing failed")
	}

	for _, tok := range tokens {
		if lexShowPos {
			fmt.Printf("[%-10s] %q @%d:%d\n", tok.Typ, tok.Val, tok.Pos.Line, tok.Pos.Column)
		} else {
			fmt.Printf("[%-10s] %q\n", tok.Typ, tok.Val)
		}
	}
	return nil
}

// readSource resolves the CLI's common "inline -e text, else a single
// file argument" input convention (grounded on go-dws's run/lex/parse
// commands, which all share this pattern).
func readSource(inline string, args []string) (input, name string, err error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	if len(args) == 1 {
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("reading %s: %w", args[0], readErr)
		}
		return string(data), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline text")
}
