package lexer

import "testing"

func typesOf(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, t := range tokens {
		out[i] = t.Typ
	}
	return out
}

func TestLexIdentifiersAndNumbers(t *testing.T) {
	tokens, err := Lex("<test>", "x = 42 + y_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{TokenIdentifier, TokenOperator, TokenNumber, TokenOperator, TokenIdentifier, TokenEOF}
	got := typesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexBooleans(t *testing.T) {
	tokens, err := Lex("<test>", "true false truex")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Typ != TokenBoolean || tokens[0].Val != "true" {
		t.Errorf("expected boolean true, got %+v", tokens[0])
	}
	if tokens[1].Typ != TokenBoolean || tokens[1].Val != "false" {
		t.Errorf("expected boolean false, got %+v", tokens[1])
	}
	if tokens[2].Typ != TokenIdentifier || tokens[2].Val != "truex" {
		t.Errorf("expected identifier truex, got %+v", tokens[2])
	}
}

func TestLexStringPreservesEscapes(t *testing.T) {
	tokens, err := Lex("<test>", `"grep -E \"a|b\""`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Typ != TokenString {
		t.Fatalf("expected string token, got %+v", tokens[0])
	}
	want := `grep -E \"a|b\"`
	if tokens[0].Val != want {
		t.Errorf("got %q, want %q", tokens[0].Val, want)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex("<test>", `"unterminated`)
	if err == nil {
		t.Fatal("expected an error for unterminated string")
	}
}

func TestLexGreedyOperators(t *testing.T) {
	tokens, err := Lex("<test>", "a == b != c <= d >= e && f || g += h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ops []string
	for _, tok := range tokens {
		if tok.Typ == TokenOperator {
			ops = append(ops, tok.Val)
		}
	}
	want := []string{"==", "!=", "<=", ">=", "&&", "||", "+="}
	if len(ops) != len(want) {
		t.Fatalf("got ops %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("op %d: got %s, want %s", i, ops[i], want[i])
		}
	}
}

func TestLexBracketsAndPunctuation(t *testing.T) {
	tokens, err := Lex("<test>", "arr[0], (x); f()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []TokenType{
		TokenIdentifier, TokenLBracket, TokenNumber, TokenRBracket, TokenComma,
		TokenLParen, TokenIdentifier, TokenRParen, TokenSemicolon,
		TokenIdentifier, TokenLParen, TokenRParen, TokenEOF,
	}
	got := typesOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLexUnaryMinusLexesAsOperator(t *testing.T) {
	tokens, err := Lex("<test>", "-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Typ != TokenOperator || tokens[0].Val != "-" {
		t.Errorf("expected leading operator token, got %+v", tokens[0])
	}
	if tokens[1].Typ != TokenNumber || tokens[1].Val != "5" {
		t.Errorf("expected number token, got %+v", tokens[1])
	}
}

func TestLexDecimalNumber(t *testing.T) {
	tokens, err := Lex("<test>", "3.14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Typ != TokenNumber || tokens[0].Val != "3.14" {
		t.Errorf("got %+v", tokens[0])
	}
}

func TestLexPositionsTrackLineAndColumn(t *testing.T) {
	tokens, err := Lex("<test>", "a\nb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Pos.Line != 1 || tokens[0].Pos.Column != 1 {
		t.Errorf("first token position: %+v", tokens[0].Pos)
	}
	if tokens[1].Pos.Line != 2 || tokens[1].Pos.Column != 1 {
		t.Errorf("second token position: %+v", tokens[1].Pos)
	}
}
