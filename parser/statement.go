package parser

import (
	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/lexer"
)

// parseStatement recognises the statement forms spec.md §4.2 lists:
// assignment, control structures, definitions, import, file operations,
// and bare expressions. Directive keywords that only make sense inside
// the content processor's if-stack (if/elif/else/endif/for/endfor) are
// parsed here as standalone nodes too, since a function or class body may
// also contain them (spec.md §4.6's evaluator treats them uniformly).
func (p *Parser) parseStatement() (ast.Node, error) {
	t := p.current()
	if t.Typ == lexer.TokenIdentifier {
		switch t.Val {
		case "if":
			return p.parseConditional()
		case "for":
			return p.parseForLoop()
		case "while":
			return p.parseWhileLoop()
		case "break":
			p.advance()
			return &ast.Break{Base: ast.Base{Position: t.Pos}}, nil
		case "continue":
			p.advance()
			return &ast.Continue{Base: ast.Base{Position: t.Pos}}, nil
		case "return":
			return p.parseReturn()
		case "function":
			return p.parseFunctionDef()
		case "class":
			return p.parseClassDef()
		case "import":
			return p.parseImport()
		}

		if p.peekAhead(1, lexer.TokenOperator, "=") || p.peekAhead(1, lexer.TokenOperator, "+=") {
			return p.parseAssignment()
		}
	}

	return p.parseExpression()
}

func (p *Parser) peekAhead(shift int, typ lexer.TokenType, val string) bool {
	idx := p.idx + shift
	if idx >= len(p.tokens) {
		return false
	}
	t := p.tokens[idx]
	return t.Typ == typ && t.Val == val
}

// parseAssignment parses `name = expr` or `name += expr`. The target must
// be a bare identifier (spec.md §4.2); anything else never reaches this
// function since the caller only dispatches here after peeking an
// identifier followed directly by '=' or '+='.
func (p *Parser) parseAssignment() (ast.Node, error) {
	nameTok := p.advance()
	opTok := p.advance()

	op := ast.AssignSet
	if opTok.Val == "+=" {
		op = ast.AssignAdd
	}

	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{
		Base:   ast.Base{Position: nameTok.Pos},
		Target: nameTok.Val,
		Op:     op,
		Value:  val,
	}, nil
}

// parseConditional parses `if expr` followed by a then-block running up to
// the next elif/else/endif at the same nesting depth, and chains elif as
// a nested Conditional in Else (spec.md §3, §4.6).
func (p *Parser) parseConditional() (ast.Node, error) {
	pos := p.pos()
	p.advance() // consume 'if'

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	thenStmts, err := p.parseStatements(map[string]bool{"elif": true, "else": true, "endif": true})
	if err != nil {
		return nil, err
	}
	node := &ast.Conditional{
		Base:      ast.Base{Position: pos},
		Condition: cond,
		Then:      &ast.Block{Statements: thenStmts},
	}

	switch {
	case p.is(lexer.TokenIdentifier, "elif"):
		elif, err := p.parseConditional()
		if err != nil {
			return nil, err
		}
		node.Else = elif
		return node, nil

	case p.is(lexer.TokenIdentifier, "else"):
		p.advance()
		elseStmts, err := p.parseStatements(map[string]bool{"endif": true})
		if err != nil {
			return nil, err
		}
		node.Else = &ast.Block{Statements: elseStmts}
		if _, err := p.expect(lexer.TokenIdentifier, "endif", "'endif'"); err != nil {
			return nil, err
		}
		return node, nil

	case p.is(lexer.TokenIdentifier, "endif"):
		p.advance()
		return node, nil

	default:
		return nil, p.errorf("expected 'elif', 'else', or 'endif'")
	}
}

// parseForLoop parses `for name in expr` or the indexed form
// `for i, x in expr`, running through to the matching `endfor`.
func (p *Parser) parseForLoop() (ast.Node, error) {
	pos := p.pos()
	p.advance() // consume 'for'

	first, err := p.expect(lexer.TokenIdentifier, "", "loop variable")
	if err != nil {
		return nil, err
	}

	loop := &ast.ForLoop{Base: ast.Base{Position: pos}}
	if p.is(lexer.TokenComma, "") {
		p.advance()
		second, err := p.expect(lexer.TokenIdentifier, "", "loop value variable")
		if err != nil {
			return nil, err
		}
		loop.IndexVar = first.Val
		loop.ValueVar = second.Val
	} else {
		loop.ValueVar = first.Val
	}

	if _, err := p.expect(lexer.TokenIdentifier, "in", "'in'"); err != nil {
		return nil, err
	}

	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	loop.Iterable = iterable

	bodyStmts, err := p.parseStatements(map[string]bool{"endfor": true})
	if err != nil {
		return nil, err
	}
	loop.Body = &ast.Block{Statements: bodyStmts}

	if _, err := p.expect(lexer.TokenIdentifier, "endfor", "'endfor'"); err != nil {
		return nil, err
	}
	return loop, nil
}

// parseWhileLoop parses `while expr` followed by a body that runs up to
// and including a closing `endwhile` keyword, the same way for/endfor
// and if/endif delimit their bodies.
func (p *Parser) parseWhileLoop() (ast.Node, error) {
	pos := p.pos()
	p.advance() // consume 'while'

	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	bodyStmts, err := p.parseStatements(map[string]bool{"endwhile": true})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenIdentifier, "endwhile", "'endwhile'"); err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Base: ast.Base{Position: pos}, Condition: cond, Body: &ast.Block{Statements: bodyStmts}}, nil
}

// parseReturn parses `return` or `return expr`.
func (p *Parser) parseReturn() (ast.Node, error) {
	pos := p.pos()
	p.advance() // consume 'return'

	if p.atEOF() || p.is(lexer.TokenSemicolon, "") || p.stopsStatement() {
		return &ast.Return{Base: ast.Base{Position: pos}}, nil
	}
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Base: ast.Base{Position: pos}, Value: val}, nil
}

// stopsStatement reports whether the current token is a keyword that ends
// an enclosing block, so a bare `return` isn't mistaken for the start of
// an expression continuing into the next statement.
func (p *Parser) stopsStatement() bool {
	if p.current().Typ != lexer.TokenIdentifier {
		return false
	}
	switch p.current().Val {
	case "elif", "else", "endif", "endfor", "endwhile":
		return true
	}
	return false
}

// parseFunctionDef parses `function name(param, param) … end`.
func (p *Parser) parseFunctionDef() (ast.Node, error) {
	pos := p.pos()
	p.advance() // consume 'function'

	name, err := p.expect(lexer.TokenIdentifier, "", "function name")
	if err != nil {
		return nil, err
	}

	var params []string
	if _, ok := p.match(lexer.TokenLParen, ""); ok {
		if !p.is(lexer.TokenRParen, "") {
			for {
				pt, err := p.expect(lexer.TokenIdentifier, "", "parameter name")
				if err != nil {
					return nil, err
				}
				params = append(params, pt.Val)
				if p.is(lexer.TokenComma, "") {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expect(lexer.TokenRParen, ")", "')'"); err != nil {
			return nil, err
		}
	}

	bodyStmts, err := p.parseStatements(map[string]bool{"end": true})
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenIdentifier, "end", "'end'"); err != nil {
		return nil, err
	}

	return &ast.FunctionDef{
		Base:   ast.Base{Position: pos},
		Name:   name.Val,
		Params: params,
		Body:   &ast.Block{Statements: bodyStmts},
	}, nil
}

// parseClassDef parses `class Name [extends Parent] … end`, with method bodies
// each introduced by `function`.
func (p *Parser) parseClassDef() (ast.Node, error) {
	pos := p.pos()
	p.advance() // consume 'class'

	name, err := p.expect(lexer.TokenIdentifier, "", "class name")
	if err != nil {
		return nil, err
	}

	class := &ast.ClassDef{Base: ast.Base{Position: pos}, Name: name.Val}

	// Spec prose writes the parent clause as `class name : parent`, but
	// the lexer's operator set (spec.md §4.1) has no ':' token — class
	// bodies there are parsed out of a raw multiline directive, never
	// through the generic token stream. For the standalone module
	// grammar this parser implements, the equivalent clause is spelled
	// with the bare keyword `extends` so it tokenizes with the lexer as
	// specified instead of requiring an unspecified punctuation token.
	if p.is(lexer.TokenIdentifier, "extends") {
		p.advance()
		parent, err := p.expect(lexer.TokenIdentifier, "", "parent class name")
		if err != nil {
			return nil, err
		}
		class.Parent = parent.Val
	}

	for p.is(lexer.TokenIdentifier, "function") {
		method, err := p.parseFunctionDef()
		if err != nil {
			return nil, err
		}
		class.Methods = append(class.Methods, method.(*ast.FunctionDef))
	}

	if _, err := p.expect(lexer.TokenIdentifier, "end", "'end'"); err != nil {
		return nil, err
	}
	return class, nil
}

// parseImport parses `import path` (spec.md §4.7); the tail is a single
// expression, almost always a string literal path, optionally computed.
func (p *Parser) parseImport() (ast.Node, error) {
	pos := p.pos()
	p.advance() // consume 'import'

	path, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Import{Base: ast.Base{Position: pos}, Path: path}, nil
}

// fileOpNames maps the file-I/O capability's five operation names
// (spec.md §6: `read`, `write`, `exists`, `delete`, `list`) onto
// ast.FileOp values. These are recognised as builtin call names the same
// way `print`/`join`/`exec`/`import` are (spec.md §4.2's bare-call set),
// rather than through a `file.` prefix: the lexer's identifier character
// class (spec.md §4.1) has no '.' operator, so a dotted form could never
// tokenize as written in spec prose.
var fileOpNames = map[string]ast.FileOp{
	"read":   ast.FileRead,
	"write":  ast.FileWrite,
	"exists": ast.FileExists,
	"delete": ast.FileDelete,
	"list":   ast.FileList,
}
