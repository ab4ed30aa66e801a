package parser

import (
	"strconv"

	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/lexer"
)

// parseExpression is the entry point of the precedence-climbing cascade
// (spec.md §4.2 table), lowest precedence first: || , && , ==/!= ,
// relational, +/-, */ , then unary and primary. Mirrors the level-by-level
// method cascade in github.com/Flyclops/pongo2/parser_expression.go
// (ParseExpression -> parseRelationalExpression -> parseSimpleExpression
// -> parseTerm -> parsePower -> parseFactor), collapsed to six named
// levels since XMD has no power operator.
func (p *Parser) parseExpression() (ast.Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.is(lexer.TokenOperator, "||") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Position: left.Pos()}, Op: ast.OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.is(lexer.TokenOperator, "&&") {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Position: left.Pos()}, Op: ast.OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseEquality() (ast.Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch {
		case p.is(lexer.TokenOperator, "=="):
			op = ast.OpEq
		case p.is(lexer.TokenOperator, "!="):
			op = ast.OpNeq
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Position: left.Pos()}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseRelational() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch {
		case p.is(lexer.TokenOperator, "<="):
			op = ast.OpLte
		case p.is(lexer.TokenOperator, ">="):
			op = ast.OpGte
		case p.is(lexer.TokenOperator, "<"):
			op = ast.OpLt
		case p.is(lexer.TokenOperator, ">"):
			op = ast.OpGt
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Position: left.Pos()}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch {
		case p.is(lexer.TokenOperator, "+"):
			op = ast.OpAdd
		case p.is(lexer.TokenOperator, "-"):
			op = ast.OpSub
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Position: left.Pos()}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinaryOp
		switch {
		case p.is(lexer.TokenOperator, "*"):
			op = ast.OpMul
		case p.is(lexer.TokenOperator, "/"):
			op = ast.OpDiv
		default:
			return left, nil
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Base: ast.Base{Position: left.Pos()}, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Node, error) {
	pos := p.pos()
	if p.is(lexer.TokenOperator, "!") {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: ast.Base{Position: pos}, Op: ast.OpNot, Operand: operand}, nil
	}
	if p.is(lexer.TokenOperator, "-") {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Base: ast.Base{Position: pos}, Op: ast.OpNeg, Operand: operand}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles trailing `[index]` chains on a primary expression,
// e.g. `grid[i][j]` (spec.md §4.2: "followed by [...] parses as
// array-access").
func (p *Parser) parsePostfix() (ast.Node, error) {
	node, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.is(lexer.TokenLBracket, "") {
		pos := p.pos()
		p.advance()
		if p.is(lexer.TokenRBracket, "") {
			return nil, p.errorf("empty index expression")
		}
		index, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRBracket, "]", "']'"); err != nil {
			return nil, err
		}
		node = &ast.IndexExpr{Base: ast.Base{Position: pos}, Target: node, Index: index}
	}
	return node, nil
}

func (p *Parser) parsePrimary() (ast.Node, error) {
	t := p.current()
	pos := t.Pos

	switch t.Typ {
	case lexer.TokenNumber:
		p.advance()
		n, err := strconv.ParseFloat(t.Val, 64)
		if err != nil {
			return nil, p.errorf("invalid number literal %q", t.Val)
		}
		return &ast.NumberLiteral{Base: ast.Base{Position: pos}, Value: n}, nil

	case lexer.TokenString:
		p.advance()
		return &ast.StringLiteral{Base: ast.Base{Position: pos}, Value: t.Val}, nil

	case lexer.TokenBoolean:
		p.advance()
		return &ast.BooleanLiteral{Base: ast.Base{Position: pos}, Value: t.Val == "true"}, nil

	case lexer.TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokenRParen, ")", "')'"); err != nil {
			return nil, err
		}
		return expr, nil

	case lexer.TokenLBracket:
		return p.parseArrayLiteral()

	case lexer.TokenIdentifier:
		return p.parseIdentifierOrCall()

	default:
		return nil, p.errorf("unexpected token %q in expression", t.Val)
	}
}

// parseArrayLiteral parses `[elem, elem, ...]`; a trailing comma before the
// closing bracket is a syntax error (spec.md §4.2).
func (p *Parser) parseArrayLiteral() (ast.Node, error) {
	pos := p.pos()
	p.advance() // consume '['

	lit := &ast.ArrayLiteral{Base: ast.Base{Position: pos}}
	if p.is(lexer.TokenRBracket, "") {
		p.advance()
		return lit, nil
	}
	for {
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		lit.Elements = append(lit.Elements, elem)
		if p.is(lexer.TokenComma, "") {
			p.advance()
			if p.is(lexer.TokenRBracket, "") {
				return nil, p.errorf("trailing comma in array literal")
			}
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TokenRBracket, "]", "']'"); err != nil {
		return nil, err
	}
	return lit, nil
}

// parseIdentifierOrCall resolves the dual call syntax from spec.md §4.2: a
// bare name followed by '(' is a parenthesized call; one of the closed set
// of keyword-style builtins followed by anything else takes its arguments
// without parentheses until a terminator; any other bare name is a plain
// identifier reference.
func (p *Parser) parseIdentifierOrCall() (ast.Node, error) {
	t := p.current()
	pos := t.Pos
	p.advance()

	if p.is(lexer.TokenLParen, "") {
		p.advance()
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return p.buildCallOrFileStmt(pos, t.Val, args)
	}

	if bareCallNames[t.Val] && !p.atBareArgsTerminator() {
		args, err := p.parseBareArgs()
		if err != nil {
			return nil, err
		}
		return p.buildCallOrFileStmt(pos, t.Val, args)
	}

	return &ast.Identifier{Base: ast.Base{Position: pos}, Name: t.Val}, nil
}

// buildCallOrFileStmt turns a resolved call name and argument list into
// either a plain ast.CallExpr or, for one of the five file-I/O capability
// names (spec.md §6), a dedicated ast.FileStmt node as the AST node
// enumeration (spec.md §3) requires.
func (p *Parser) buildCallOrFileStmt(pos ast.Position, name string, args []ast.Node) (ast.Node, error) {
	op, isFileOp := fileOpNames[name]
	if !isFileOp {
		return &ast.CallExpr{Base: ast.Base{Position: pos}, Name: name, Args: args}, nil
	}

	if len(args) == 0 {
		return nil, p.errorf("%s requires a path argument", name)
	}
	stmt := &ast.FileStmt{Base: ast.Base{Position: pos}, Op: op, Path: args[0]}
	if op == ast.FileWrite {
		if len(args) != 2 {
			return nil, p.errorf("write requires a path and content argument")
		}
		stmt.Content = args[1]
	}
	if op == ast.FileList && len(args) == 2 {
		stmt.IncludeHidden = args[1]
	}
	return stmt, nil
}

// parseCallArgs parses a parenthesized call's argument list; it consumes
// the closing ')'.
func (p *Parser) parseCallArgs() ([]ast.Node, error) {
	var args []ast.Node
	if p.is(lexer.TokenRParen, "") {
		p.advance()
		return args, nil
	}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.is(lexer.TokenComma, "") {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.TokenRParen, ")", "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

// atBareArgsTerminator reports whether the parser has reached one of the
// terminators a bare keyword-style call's argument list stops at: comma,
// semicolon, closing bracket/paren, end of input (spec.md §4.2), or a
// block-closing keyword (elif/else/endif/endfor/endwhile, see
// stopsStatement), so `print x` followed by `endfor` leaves the endfor
// for the enclosing loop.
func (p *Parser) atBareArgsTerminator() bool {
	t := p.current()
	switch t.Typ {
	case lexer.TokenComma, lexer.TokenSemicolon, lexer.TokenRBracket, lexer.TokenRParen, lexer.TokenEOF:
		return true
	}
	return p.stopsStatement()
}

// parseBareArgs parses the argument list of a keyword-style call with no
// surrounding parentheses, stopping at a terminator rather than a ')'.
// Arguments may be separated by a comma or by plain whitespace (spec.md
// §8 scenario 6's `join arr "|"`, SPEC_FULL.md §7 #3): after each
// argument, an optional comma is consumed and then the loop simply
// checks the terminator again, so a directly-following expression is
// picked up as the next bare argument.
func (p *Parser) parseBareArgs() ([]ast.Node, error) {
	var args []ast.Node
	for !p.atBareArgsTerminator() {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.is(lexer.TokenComma, "") {
			p.advance()
		}
	}
	return args, nil
}
