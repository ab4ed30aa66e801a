// Package printer re-emits an XMD statement AST as canonical source
// text, for the `xmd fmt` command. Grounded on
// _examples/CWBudde-go-dws/pkg/printer's configurable indent-width/
// use-tabs printer options, scaled down to XMD's much smaller node set
// (no detailed/compact/multiline style switch — one canonical layout).
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akaoio/xmd/ast"
)

// Config controls indentation; the zero value is two spaces per level.
type Config struct {
	IndentWidth int
	UseTabs     bool
}

// DefaultConfig matches go fmt's conventional two-space indent for
// everything that isn't Go itself.
func DefaultConfig() Config { return Config{IndentWidth: 2} }

func (c Config) unit() string {
	if c.UseTabs {
		return "\t"
	}
	width := c.IndentWidth
	if width <= 0 {
		width = 2
	}
	return strings.Repeat(" ", width)
}

// Printer formats statement sequences with Config's indentation.
type Printer struct {
	cfg Config
}

// New constructs a Printer with cfg.
func New(cfg Config) *Printer { return &Printer{cfg: cfg} }

// PrintStatements formats a top-level statement sequence.
func (p *Printer) PrintStatements(stmts []ast.Node) string {
	var b strings.Builder
	p.writeStatements(&b, stmts, 0)
	return b.String()
}

func (p *Printer) indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat(p.cfg.unit(), depth))
}

func (p *Printer) writeStatements(b *strings.Builder, stmts []ast.Node, depth int) {
	for _, s := range stmts {
		p.writeStatement(b, s, depth)
	}
}

func (p *Printer) writeStatement(b *strings.Builder, n ast.Node, depth int) {
	switch s := n.(type) {
	case *ast.Assignment:
		p.indent(b, depth)
		op := "="
		if s.Op == ast.AssignAdd {
			op = "+="
		}
		fmt.Fprintf(b, "%s %s %s\n", s.Target, op, p.expr(s.Value))

	case *ast.FunctionDef:
		p.indent(b, depth)
		fmt.Fprintf(b, "function %s(%s)\n", s.Name, strings.Join(s.Params, ", "))
		p.writeStatements(b, s.Body.Statements, depth+1)
		p.indent(b, depth)
		b.WriteString("end\n")

	case *ast.ClassDef:
		p.indent(b, depth)
		if s.Parent != "" {
			fmt.Fprintf(b, "class %s extends %s\n", s.Name, s.Parent)
		} else {
			fmt.Fprintf(b, "class %s\n", s.Name)
		}
		for _, m := range s.Methods {
			p.writeStatement(b, m, depth+1)
		}
		p.indent(b, depth)
		b.WriteString("end\n")

	case *ast.Return:
		p.indent(b, depth)
		if s.Value == nil {
			b.WriteString("return\n")
		} else {
			fmt.Fprintf(b, "return %s\n", p.expr(s.Value))
		}

	case *ast.Break:
		p.indent(b, depth)
		b.WriteString("break\n")

	case *ast.Continue:
		p.indent(b, depth)
		b.WriteString("continue\n")

	case *ast.Conditional:
		p.writeConditional(b, s, depth, true)

	case *ast.ForLoop:
		p.indent(b, depth)
		if s.IndexVar != "" {
			fmt.Fprintf(b, "for %s, %s in %s\n", s.IndexVar, s.ValueVar, p.expr(s.Iterable))
		} else {
			fmt.Fprintf(b, "for %s in %s\n", s.ValueVar, p.expr(s.Iterable))
		}
		p.writeStatements(b, s.Body.Statements, depth+1)
		p.indent(b, depth)
		b.WriteString("endfor\n")

	case *ast.WhileLoop:
		p.indent(b, depth)
		fmt.Fprintf(b, "while %s\n", p.expr(s.Condition))
		p.writeStatements(b, s.Body.Statements, depth+1)
		p.indent(b, depth)
		b.WriteString("endwhile\n")

	case *ast.Import:
		p.indent(b, depth)
		fmt.Fprintf(b, "import %s\n", p.expr(s.Path))

	case *ast.FileStmt:
		p.indent(b, depth)
		b.WriteString(p.fileStmt(s))
		b.WriteString("\n")

	default:
		p.indent(b, depth)
		fmt.Fprintf(b, "%s\n", p.expr(n))
	}
}

func (p *Printer) writeConditional(b *strings.Builder, c *ast.Conditional, depth int, leading bool) {
	p.indent(b, depth)
	if leading {
		fmt.Fprintf(b, "if %s\n", p.expr(c.Condition))
	} else {
		fmt.Fprintf(b, "elif %s\n", p.expr(c.Condition))
	}
	p.writeStatements(b, c.Then.Statements, depth+1)

	switch e := c.Else.(type) {
	case nil:
		p.indent(b, depth)
		b.WriteString("endif\n")
	case *ast.Conditional:
		p.writeConditional(b, e, depth, false)
	case *ast.Block:
		p.indent(b, depth)
		b.WriteString("else\n")
		p.writeStatements(b, e.Statements, depth+1)
		p.indent(b, depth)
		b.WriteString("endif\n")
	}
}

func (p *Printer) fileStmt(s *ast.FileStmt) string {
	switch s.Op {
	case ast.FileRead:
		return fmt.Sprintf("read(%s)", p.expr(s.Path))
	case ast.FileWrite:
		return fmt.Sprintf("write(%s, %s)", p.expr(s.Path), p.expr(s.Content))
	case ast.FileExists:
		return fmt.Sprintf("exists(%s)", p.expr(s.Path))
	case ast.FileDelete:
		return fmt.Sprintf("delete(%s)", p.expr(s.Path))
	case ast.FileList:
		if s.IncludeHidden != nil {
			return fmt.Sprintf("list(%s, %s)", p.expr(s.Path), p.expr(s.IncludeHidden))
		}
		return fmt.Sprintf("list(%s)", p.expr(s.Path))
	default:
		return ""
	}
}

// expr formats a single expression node on one line.
func (p *Printer) expr(n ast.Node) string {
	switch e := n.(type) {
	case nil:
		return ""
	case *ast.StringLiteral:
		return strconv.Quote(e.Value)
	case *ast.NumberLiteral:
		return strconv.FormatFloat(e.Value, 'g', -1, 64)
	case *ast.BooleanLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	case *ast.Identifier:
		return e.Name
	case *ast.ArrayLiteral:
		parts := make([]string, len(e.Elements))
		for i, el := range e.Elements {
			parts[i] = p.expr(el)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ast.ObjectLiteral:
		parts := make([]string, len(e.Entries))
		for i, ent := range e.Entries {
			parts[i] = fmt.Sprintf("%s: %s", ent.Key, p.expr(ent.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", p.expr(e.Target), p.expr(e.Index))
	case *ast.UnaryExpr:
		return unaryOp(e.Op) + p.expr(e.Operand)
	case *ast.BinaryExpr:
		return fmt.Sprintf("%s %s %s", p.expr(e.Left), binaryOp(e.Op), p.expr(e.Right))
	case *ast.CallExpr:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = p.expr(a)
		}
		return fmt.Sprintf("%s(%s)", e.Name, strings.Join(parts, ", "))
	case *ast.FileStmt:
		return p.fileStmt(e)
	case *ast.Import:
		return fmt.Sprintf("import %s", p.expr(e.Path))
	default:
		return ""
	}
}

func binaryOp(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpEq:
		return "=="
	case ast.OpNeq:
		return "!="
	case ast.OpLt:
		return "<"
	case ast.OpLte:
		return "<="
	case ast.OpGt:
		return ">"
	case ast.OpGte:
		return ">="
	case ast.OpAnd:
		return "&&"
	case ast.OpOr:
		return "||"
	default:
		return "?"
	}
}

func unaryOp(op ast.UnaryOp) string {
	if op == ast.OpNeg {
		return "-"
	}
	return "!"
}
