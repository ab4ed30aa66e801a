package printer

import (
	"strings"
	"testing"

	"github.com/akaoio/xmd/lexer"
	"github.com/akaoio/xmd/parser"
)

func TestPrintAssignment(t *testing.T) {
	tokens, lexErr := lexer.Lex("test", "x = 1 + 2")
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	prog, err := parser.ParseProgram("test", tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	p := New(DefaultConfig())
	got := p.PrintStatements(prog.Statements)
	want := "x = 1 + 2\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintForLoopIndented(t *testing.T) {
	tokens, lexErr := lexer.Lex("test", "for x in [1, 2]\ntotal += x\nendfor")
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	prog, err := parser.ParseProgram("test", tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	p := New(DefaultConfig())
	got := p.PrintStatements(prog.Statements)
	if !strings.Contains(got, "for x in [1, 2]\n  total += x\nendfor\n") {
		t.Errorf("got %q", got)
	}
}

func TestPrintFunctionDef(t *testing.T) {
	tokens, lexErr := lexer.Lex("test", "function double(x)\nreturn x * 2\nend")
	if lexErr != nil {
		t.Fatalf("lex error: %v", lexErr)
	}
	prog, err := parser.ParseProgram("test", tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	p := New(DefaultConfig())
	got := p.PrintStatements(prog.Statements)
	want := "function double(x)\n  return x * 2\nend\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
