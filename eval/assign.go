package eval

import (
	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/value"
)

// evalAssignment implements spec.md §4.2/§4.6 assignment semantics.
// AssignSet always replaces the binding outright. AssignAdd (`+=`)
// behaves like the `+` binary operator: string concatenation if either
// side is a string, otherwise numeric addition. On an unbound target,
// SPEC_FULL.md §10 #2 and spec.md §9 resolve the open question by
// binding the RHS as-is, with no implicit empty-string concatenation —
// `x += 5` on a fresh `x` binds the number 5, not the string "5".
func (e *Evaluator) evalAssignment(n *ast.Assignment) (*value.Value, Signal, error) {
	rhs, sig, err := e.Eval(n.Value)
	if err != nil || !sig.IsNone() {
		return rhs, sig, err
	}

	var result *value.Value
	switch n.Op {
	case ast.AssignSet:
		result = rhs
	case ast.AssignAdd:
		current, ok := e.Store.Get(n.Target)
		if !ok {
			result = rhs
		} else {
			result = addValues(current, rhs)
		}
	default:
		result = rhs
	}

	e.Store.Set(n.Target, result)
	return result, none, nil
}
