// Package eval is the tree-walking interpreter core (spec.md §4.6): a
// single dispatch function inspects an AST node's concrete type and
// delegates to a per-node routine, the same shape as
// github.com/Flyclops/pongo2's IEvaluator.Evaluate cascade
// (parser_expression.go), generalized from pongo2's filter-chain
// expression model to XMD's full statement-and-expression language.
package eval

import (
	"fmt"

	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/capability"
	"github.com/akaoio/xmd/store"
	"github.com/akaoio/xmd/value"
)

// Limits bounds recursive and iterative constructs so adversarial or
// buggy input cannot hang or crash the process (spec.md §5): if-nesting
// depth, loop-nesting depth, and the while-loop iteration ceiling.
type Limits struct {
	MaxIfDepth         int
	MaxLoopDepth       int
	MaxWhileIterations int
}

// DefaultLimits matches the hard ceilings spec.md §5 and §4.6 specify:
// while loops stop after 1000 iterations, if-nesting is bounded at 32,
// loop-nesting at 8.
func DefaultLimits() Limits {
	return Limits{
		MaxIfDepth:         32,
		MaxLoopDepth:       8,
		MaxWhileIterations: 1000,
	}
}

// Error is a located evaluation failure. Per spec.md §7, most evaluation
// failures are swallowed into documented fallbacks (empty string, false,
// null) rather than propagated — Error exists for the minority of cases
// that are genuine programmer errors worth surfacing (e.g. a Go-level
// capability failure), not for every malformed expression.
type Error struct {
	Pos     ast.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
}

// Evaluator holds the mutable state a document's evaluation shares
// across every directive and nested call (spec.md §4.6's "evaluator
// state"): the borrowed variable store, the function/class definitions
// collected so far, an output buffer for print-style builtins, and the
// external capabilities consulted for exec/file/import.
type Evaluator struct {
	Store     *store.Store
	Functions map[string]*ast.FunctionDef
	Classes   map[string]*ast.ClassDef
	Output    []byte

	Shell   capability.ShellRunner
	Files   capability.FileIO
	Modules capability.ModuleLoader
	Sandbox capability.SandboxPolicy

	Limits Limits

	ifDepth   int
	loopDepth int
}

// New constructs an Evaluator over an existing store (spec.md §5: the
// store is exclusively owned by the processor invocation; the evaluator
// only borrows it). Capabilities default to nil, which the relevant
// builtins treat as "unconfigured" and fail closed (empty string/false).
func New(s *store.Store) *Evaluator {
	return &Evaluator{
		Store:     s,
		Functions: make(map[string]*ast.FunctionDef),
		Classes:   make(map[string]*ast.ClassDef),
		Limits:    DefaultLimits(),
	}
}

// print appends s to the output buffer, used by the `print` builtin.
func (e *Evaluator) print(s string) {
	e.Output = append(e.Output, s...)
}

// Eval dispatches on node's concrete type and returns its value (for
// expression nodes; statement-only nodes return Null), any pending
// control-flow signal, and an error for genuine failures (capability
// errors, internal malformed-AST conditions) as opposed to the
// documented swallow-to-fallback cases spec.md §7 describes inline at
// each call site.
func (e *Evaluator) Eval(node ast.Node) (*value.Value, Signal, error) {
	switch n := node.(type) {
	case *ast.Program:
		return e.evalStatements(n.Statements)
	case *ast.Block:
		return e.evalStatements(n.Statements)

	case *ast.StringLiteral:
		return value.String(n.Value), none, nil
	case *ast.NumberLiteral:
		return value.Number(n.Value), none, nil
	case *ast.BooleanLiteral:
		return value.Boolean(n.Value), none, nil

	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(n)
	case *ast.ObjectLiteral:
		return e.evalObjectLiteral(n)

	case *ast.Identifier:
		// Missing identifiers yield the empty string, never an error
		// (spec.md §4.6), for compatibility with Markdown substitution:
		// an author's typo should degrade gracefully, not abort the
		// document.
		if v, ok := e.Store.Get(n.Name); ok {
			return v, none, nil
		}
		return value.String(""), none, nil

	case *ast.IndexExpr:
		return e.evalIndex(n)

	case *ast.Assignment:
		return e.evalAssignment(n)

	case *ast.BinaryExpr:
		return e.evalBinary(n)
	case *ast.UnaryExpr:
		return e.evalUnary(n)

	case *ast.CallExpr:
		return e.evalCall(n)

	case *ast.FunctionDef:
		e.Functions[n.Name] = n
		return value.Null(), none, nil
	case *ast.ClassDef:
		e.Classes[n.Name] = n
		return value.Null(), none, nil

	case *ast.Return:
		if n.Value == nil {
			return value.Null(), returnSignal(value.Null()), nil
		}
		v, sig, err := e.Eval(n.Value)
		if err != nil || !sig.IsNone() {
			return v, sig, err
		}
		return v, returnSignal(v), nil

	case *ast.Break:
		return value.Null(), breakSignal(), nil
	case *ast.Continue:
		return value.Null(), continueSignal(), nil

	case *ast.Conditional:
		return e.evalConditional(n)
	case *ast.ForLoop:
		return e.evalForLoop(n)
	case *ast.WhileLoop:
		return e.evalWhileLoop(n)

	case *ast.Import:
		return e.evalImport(n)
	case *ast.FileStmt:
		return e.evalFileStmt(n)

	default:
		return nil, none, &Error{Pos: node.Pos(), Message: fmt.Sprintf("unsupported node type %T", node)}
	}
}

// evalStatements runs stmts in order, stopping early and propagating
// whichever signal the first non-none statement produces (spec.md §5:
// "statements within a directive execute in source order").
func (e *Evaluator) evalStatements(stmts []ast.Node) (*value.Value, Signal, error) {
	var last *value.Value = value.Null()
	for _, stmt := range stmts {
		v, sig, err := e.Eval(stmt)
		if err != nil {
			return nil, none, err
		}
		if !sig.IsNone() {
			return v, sig, nil
		}
		last = v
	}
	return last, none, nil
}

func (e *Evaluator) evalArrayLiteral(n *ast.ArrayLiteral) (*value.Value, Signal, error) {
	items := make([]*value.Value, 0, len(n.Elements))
	for _, elemNode := range n.Elements {
		v, sig, err := e.Eval(elemNode)
		if err != nil || !sig.IsNone() {
			return v, sig, err
		}
		items = append(items, v)
	}
	return value.Array(items), none, nil
}

func (e *Evaluator) evalObjectLiteral(n *ast.ObjectLiteral) (*value.Value, Signal, error) {
	obj := value.NewObject()
	for _, entry := range n.Entries {
		v, sig, err := e.Eval(entry.Value)
		if err != nil || !sig.IsNone() {
			return v, sig, err
		}
		obj.Set(entry.Key, v)
	}
	return value.FromObject(obj), none, nil
}

// evalIndex resolves both array-access and object-access through the
// single IndexExpr node (ast.go's doc comment explains why the grammar
// can't tell them apart): the runtime kind of Target decides semantics.
// Out-of-range or wrong-kind indexing yields null rather than erroring,
// matching the evaluator's general swallow-to-fallback posture (spec.md
// §7).
func (e *Evaluator) evalIndex(n *ast.IndexExpr) (*value.Value, Signal, error) {
	target, sig, err := e.Eval(n.Target)
	if err != nil || !sig.IsNone() {
		return target, sig, err
	}
	index, sig, err := e.Eval(n.Index)
	if err != nil || !sig.IsNone() {
		return index, sig, err
	}

	switch {
	case target.IsArray():
		if !index.IsNumber() {
			return value.Null(), none, nil
		}
		i := int(index.Num())
		items := target.Items()
		if i < 0 || i >= len(items) {
			return value.Null(), none, nil
		}
		return items[i], none, nil

	case target.IsObject():
		v, ok := target.Obj().Get(index.String())
		if !ok {
			return value.Null(), none, nil
		}
		return v, none, nil

	default:
		return value.Null(), none, nil
	}
}
