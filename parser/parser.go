// Package parser turns a token stream from package lexer into an AST
// (spec.md §4.2), using the same cursor-and-helper-method shape as
// github.com/Flyclops/pongo2's parser.go (Current/Match/Peek/Consume/
// Error), adapted from pongo2's tag-stream grammar to XMD's
// expression/statement grammar.
package parser

import (
	"fmt"

	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/lexer"
)

// Error reports a location-carrying parse failure.
type Error struct {
	Pos     lexer.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
}

// bareCallNames is the closed set of keyword-style functions callable
// without parentheses (spec.md §4.2).
var bareCallNames = map[string]bool{
	"import": true,
	"exec":   true,
	"join":   true,
	"print":  true,
	"read":   true,
	"write":  true,
	"exists": true,
	"delete": true,
	"list":   true,
}

// Parser walks a token slice and builds AST nodes.
type Parser struct {
	name   string
	tokens []lexer.Token
	idx    int
}

// New constructs a Parser over tokens produced for the file named name.
func New(name string, tokens []lexer.Token) *Parser {
	return &Parser{name: name, tokens: tokens}
}

func (p *Parser) current() lexer.Token {
	if p.idx < len(p.tokens) {
		return p.tokens[p.idx]
	}
	if len(p.tokens) > 0 {
		last := p.tokens[len(p.tokens)-1]
		return lexer.Token{Typ: lexer.TokenEOF, Pos: last.Pos}
	}
	return lexer.Token{Typ: lexer.TokenEOF}
}

func (p *Parser) advance() lexer.Token {
	t := p.current()
	if p.idx < len(p.tokens) {
		p.idx++
	}
	return t
}

func (p *Parser) atEOF() bool {
	return p.current().Typ == lexer.TokenEOF
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &Error{Pos: p.current().Pos, Message: fmt.Sprintf(format, args...)}
}

// is reports whether the current token has the given type and (for
// operator/punctuation tokens) value.
func (p *Parser) is(typ lexer.TokenType, val string) bool {
	t := p.current()
	return t.Typ == typ && (val == "" || t.Val == val)
}

func (p *Parser) match(typ lexer.TokenType, val string) (lexer.Token, bool) {
	if p.is(typ, val) {
		return p.advance(), true
	}
	return lexer.Token{}, false
}

func (p *Parser) expect(typ lexer.TokenType, val, what string) (lexer.Token, error) {
	if t, ok := p.match(typ, val); ok {
		return t, nil
	}
	return lexer.Token{}, p.errorf("expected %s, got %q", what, p.current().Val)
}

func (p *Parser) pos() ast.Position { return p.current().Pos }

// ParseProgram parses a full statement sequence until end of input.
func ParseProgram(name string, tokens []lexer.Token) (*ast.Program, error) {
	p := New(name, tokens)
	start := p.pos()
	stmts, err := p.parseStatements(nil)
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errorf("unexpected token %q", p.current().Val)
	}
	prog := &ast.Program{Statements: stmts}
	prog.Position = start
	return prog, nil
}

// ParseExpressionString parses a single expression from raw source, used
// by the evaluator for `{{ … }}`/`${ … }` interpolation and by the
// content processor for if/elif conditions and for-loop iterables.
func ParseExpressionString(name, src string) (ast.Node, error) {
	tokens, lexErr := lexer.Lex(name, src)
	if lexErr != nil {
		return nil, lexErr
	}
	p := New(name, tokens)
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseStatementsString parses a full statement sequence from raw
// directive or function-body source (used by the content processor for
// `set` directives and general statement directives).
func ParseStatementsString(name, src string) ([]ast.Node, error) {
	tokens, lexErr := lexer.Lex(name, src)
	if lexErr != nil {
		return nil, lexErr
	}
	p := New(name, tokens)
	stmts, err := p.parseStatements(nil)
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errorf("unexpected token %q", p.current().Val)
	}
	return stmts, nil
}

// stopKeywords marks the statement keywords that end an implicit block
// (used when parsing statements up to one of several terminators).
var stopKeywords = map[string]bool{
	"elif": true, "else": true, "endif": true, "endfor": true,
}

func (p *Parser) parseStatements(stopAt map[string]bool) ([]ast.Node, error) {
	var stmts []ast.Node
	for !p.atEOF() {
		if p.current().Typ == lexer.TokenIdentifier && stopAt != nil && stopAt[p.current().Val] {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		for {
			if _, ok := p.match(lexer.TokenSemicolon, ";"); !ok {
				break
			}
		}
	}
	return stmts, nil
}
