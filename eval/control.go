// Conditional and loop evaluation, grounded on spec.md §4.6's
// statement-dispatch table and §5's nesting/iteration ceilings.
package eval

import (
	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/value"
)

func (e *Evaluator) evalConditional(n *ast.Conditional) (*value.Value, Signal, error) {
	if e.ifDepth >= e.Limits.MaxIfDepth {
		return value.Null(), none, &Error{Pos: n.Pos(), Message: "if-nesting depth exceeded"}
	}
	e.ifDepth++
	defer func() { e.ifDepth-- }()

	cond, sig, err := e.Eval(n.Condition)
	if err != nil || !sig.IsNone() {
		return cond, sig, err
	}
	if cond.IsTrue() {
		return e.evalStatements(n.Then.Statements)
	}
	switch els := n.Else.(type) {
	case nil:
		return value.Null(), none, nil
	case *ast.Conditional:
		return e.evalConditional(els)
	case *ast.Block:
		return e.evalStatements(els.Statements)
	default:
		return e.Eval(els)
	}
}

// evalForLoop iterates an array's elements, binding ValueVar (and
// IndexVar for the indexed form `for i, x in expr`) on each pass.
// Iteration values are cloned before binding so mutating the loop
// variable inside the body never aliases the source array (spec.md §7
// supplement #5, mirrored in value.Value.Clone's doc comment).
// Non-array iterables produce zero iterations rather than an error.
func (e *Evaluator) evalForLoop(n *ast.ForLoop) (*value.Value, Signal, error) {
	if e.loopDepth >= e.Limits.MaxLoopDepth {
		return value.Null(), none, &Error{Pos: n.Pos(), Message: "loop-nesting depth exceeded"}
	}
	e.loopDepth++
	defer func() { e.loopDepth-- }()

	iterable, sig, err := e.Eval(n.Iterable)
	if err != nil || !sig.IsNone() {
		return iterable, sig, err
	}
	if !iterable.IsArray() {
		return value.Null(), none, nil
	}

	for i, item := range iterable.Items() {
		if n.IndexVar != "" {
			e.Store.Set(n.IndexVar, value.Number(float64(i)))
		}
		e.Store.Set(n.ValueVar, item.Clone())

		v, bodySig, err := e.evalStatements(n.Body.Statements)
		if err != nil {
			return v, none, err
		}
		switch bodySig.Kind {
		case SignalBreak:
			return value.Null(), none, nil
		case SignalContinue:
			continue
		case SignalReturn:
			return v, bodySig, nil
		}
	}
	return value.Null(), none, nil
}

// evalWhileLoop re-checks Condition before every iteration and stops
// after MaxWhileIterations passes regardless of the condition's value,
// the hard ceiling spec.md §5 requires against runaway documents.
func (e *Evaluator) evalWhileLoop(n *ast.WhileLoop) (*value.Value, Signal, error) {
	if e.loopDepth >= e.Limits.MaxLoopDepth {
		return value.Null(), none, &Error{Pos: n.Pos(), Message: "loop-nesting depth exceeded"}
	}
	e.loopDepth++
	defer func() { e.loopDepth-- }()

	for iterations := 0; iterations < e.Limits.MaxWhileIterations; iterations++ {
		cond, sig, err := e.Eval(n.Condition)
		if err != nil || !sig.IsNone() {
			return cond, sig, err
		}
		if !cond.IsTrue() {
			break
		}

		v, bodySig, err := e.evalStatements(n.Body.Statements)
		if err != nil {
			return v, none, err
		}
		switch bodySig.Kind {
		case SignalBreak:
			return value.Null(), none, nil
		case SignalContinue:
			continue
		case SignalReturn:
			return v, bodySig, nil
		}
	}
	return value.Null(), none, nil
}
