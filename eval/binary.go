// Binary and unary operator evaluation, grounded on
// _examples/original_source/src/ast/evaluator/expression/ast_evaluate_binary_op/ast_evaluate_binary_op.c:
// `+` is polymorphic (string concatenation if either operand is a
// string, numeric addition otherwise), every other arithmetic operator
// requires both operands to convert to numbers, division by zero
// yields null rather than panicking or erroring, and comparisons only
// hold across matching types (`==` is false and `!=` is true across a
// type mismatch, never a runtime error).
package eval

import (
	"strconv"
	"strings"

	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/value"
)

// addValues implements the `+` operator's polymorphism shared by both
// BinaryExpr evaluation and `+=` assignment.
func addValues(l, r *value.Value) *value.Value {
	if l.IsString() || r.IsString() {
		return value.String(l.String() + r.String())
	}
	return value.Number(toNumber(l) + toNumber(r))
}

// toNumber coerces a value to a float64 the way spec.md §4.4 numeric
// contexts do: numbers as themselves, booleans as 1/0, strings parsed
// if numeric-looking and zero otherwise, null and arrays/objects as
// zero.
func toNumber(v *value.Value) float64 {
	switch {
	case v.IsNumber():
		return v.Num()
	case v.IsBoolean():
		if v.Bool() {
			return 1
		}
		return 0
	case v.IsString():
		return parseLeadingNumber(v.RawString())
	default:
		return 0
	}
}

// parseLeadingNumber parses the longest numeric prefix of s (sign,
// digits, optional single decimal point) and returns 0 for anything
// that isn't one, matching the original's lenient string-to-number
// coercion rather than stdlib's all-or-nothing ParseFloat.
func parseLeadingNumber(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	seenDot := false
scan:
	for end < len(s) {
		c := s[end]
		switch {
		case c >= '0' && c <= '9':
			end++
		case c == '.' && !seenDot:
			seenDot = true
			end++
		case end == 0 && (c == '+' || c == '-'):
			end++
		default:
			break scan
		}
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0
	}
	return n
}

func (e *Evaluator) evalBinary(n *ast.BinaryExpr) (*value.Value, Signal, error) {
	// && and || short-circuit: the right operand is never evaluated
	// (and can never trigger its own side effects, e.g. a call) once
	// the left operand already decides the result.
	if n.Op == ast.OpAnd {
		l, sig, err := e.Eval(n.Left)
		if err != nil || !sig.IsNone() {
			return l, sig, err
		}
		if !l.IsTrue() {
			return value.Boolean(false), none, nil
		}
		r, sig, err := e.Eval(n.Right)
		if err != nil || !sig.IsNone() {
			return r, sig, err
		}
		return value.Boolean(r.IsTrue()), none, nil
	}
	if n.Op == ast.OpOr {
		l, sig, err := e.Eval(n.Left)
		if err != nil || !sig.IsNone() {
			return l, sig, err
		}
		if l.IsTrue() {
			return value.Boolean(true), none, nil
		}
		r, sig, err := e.Eval(n.Right)
		if err != nil || !sig.IsNone() {
			return r, sig, err
		}
		return value.Boolean(r.IsTrue()), none, nil
	}

	l, sig, err := e.Eval(n.Left)
	if err != nil || !sig.IsNone() {
		return l, sig, err
	}
	r, sig, err := e.Eval(n.Right)
	if err != nil || !sig.IsNone() {
		return r, sig, err
	}

	switch n.Op {
	case ast.OpAdd:
		return addValues(l, r), none, nil
	case ast.OpSub:
		return value.Number(toNumber(l) - toNumber(r)), none, nil
	case ast.OpMul:
		return value.Number(toNumber(l) * toNumber(r)), none, nil
	case ast.OpDiv:
		rv := toNumber(r)
		if rv == 0 {
			return value.Null(), none, nil
		}
		return value.Number(toNumber(l) / rv), none, nil
	case ast.OpEq:
		return value.Boolean(l.Equal(r)), none, nil
	case ast.OpNeq:
		return value.Boolean(!l.Equal(r)), none, nil
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return e.evalRelational(n.Op, l, r), none, nil
	default:
		return value.Null(), none, &Error{Pos: n.Pos(), Message: "unknown binary operator"}
	}
}

// evalRelational implements ordering: numeric comparison if both
// operands are numbers, lexicographic byte comparison if both are
// strings, false for any other pairing (spec.md §4.4: relational
// operators are only meaningful within a single comparable type).
func (e *Evaluator) evalRelational(op ast.BinaryOp, l, r *value.Value) *value.Value {
	if l.IsNumber() && r.IsNumber() {
		return value.Boolean(compare(op, l.Num() < r.Num(), l.Num() == r.Num(), l.Num() > r.Num()))
	}
	if l.IsString() && r.IsString() {
		ls, rs := l.RawString(), r.RawString()
		return value.Boolean(compare(op, ls < rs, ls == rs, ls > rs))
	}
	return value.Boolean(false)
}

func compare(op ast.BinaryOp, lt, eq, gt bool) bool {
	switch op {
	case ast.OpLt:
		return lt
	case ast.OpLte:
		return lt || eq
	case ast.OpGt:
		return gt
	case ast.OpGte:
		return gt || eq
	default:
		return false
	}
}

func (e *Evaluator) evalUnary(n *ast.UnaryExpr) (*value.Value, Signal, error) {
	v, sig, err := e.Eval(n.Operand)
	if err != nil || !sig.IsNone() {
		return v, sig, err
	}
	switch n.Op {
	case ast.OpNot:
		return value.Boolean(!v.IsTrue()), none, nil
	case ast.OpNeg:
		return value.Number(-toNumber(v)), none, nil
	default:
		return value.Null(), none, &Error{Pos: n.Pos(), Message: "unknown unary operator"}
	}
}
