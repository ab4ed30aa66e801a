// Function-call evaluation: builtins grounded on spec.md §6 (print,
// join, exec, import, file I/O) and user-defined functions grounded on
// _examples/original_source/src/ast/evaluator/ast_evaluate_function_call
// and SPEC_FULL.md §8 scenario 5 (parameter binding must not leak into
// the caller's scope).
package eval

import (
	"strings"

	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/capability"
	"github.com/akaoio/xmd/value"
)

func (e *Evaluator) evalCall(n *ast.CallExpr) (*value.Value, Signal, error) {
	if fn, ok := e.Functions[n.Name]; ok {
		return e.callUserFunction(fn, n)
	}

	args, sig, err := e.evalArgs(n.Args)
	if err != nil || !sig.IsNone() {
		return value.Null(), sig, err
	}

	switch n.Name {
	case "print":
		for _, a := range args {
			s := a.String()
			if a.IsString() {
				s = e.InterpolateDollar(s)
			}
			e.print(s)
			e.print("\n")
		}
		return value.Null(), none, nil

	case "join":
		return e.builtinJoin(args), none, nil

	case "exec":
		return e.builtinExec(n, args)

	case "to_json":
		if len(args) == 0 {
			return value.String(""), none, nil
		}
		return value.String(capability.ValueToJSON(args[0])), none, nil

	case "from_json":
		if len(args) == 0 {
			return value.Null(), none, nil
		}
		return capability.ValueFromJSON(args[0].String()), none, nil

	default:
		// Unknown call names are not errors: a directive that mentions
		// an unrecognized identifier followed by arguments degrades to
		// empty string, matching the identifier-miss fallback.
		return value.String(""), none, nil
	}
}

func (e *Evaluator) evalArgs(argNodes []ast.Node) ([]*value.Value, Signal, error) {
	args := make([]*value.Value, 0, len(argNodes))
	for _, a := range argNodes {
		v, sig, err := e.Eval(a)
		if err != nil || !sig.IsNone() {
			return nil, sig, err
		}
		args = append(args, v)
	}
	return args, none, nil
}

// builtinJoin concatenates an array's elements with a separator,
// defaulting to ", " when no second argument is given (spec.md §8).
func (e *Evaluator) builtinJoin(args []*value.Value) *value.Value {
	if len(args) == 0 || !args[0].IsArray() {
		return value.String("")
	}
	sep := ", "
	if len(args) > 1 {
		sep = args[1].String()
	}
	parts := make([]string, len(args[0].Items()))
	for i, item := range args[0].Items() {
		parts[i] = item.String()
	}
	return value.String(strings.Join(parts, sep))
}

// builtinExec runs a shell command via the Shell capability, gated by
// Sandbox.IsAllowed, and returns its trimmed stdout (spec.md §6). A
// missing Shell capability, a sandbox rejection, or a nonzero exit all
// fail closed to the empty string rather than propagating a Go error,
// since a shelled-out command's failure is an authoring-time fact about
// the document, not an interpreter bug.
func (e *Evaluator) builtinExec(n *ast.CallExpr, args []*value.Value) (*value.Value, Signal, error) {
	if len(args) == 0 {
		return value.String(""), none, nil
	}
	command := e.Interpolate(args[0].String())

	if e.Sandbox != nil && !e.Sandbox.IsAllowed(command) {
		return value.String(""), none, nil
	}
	if e.Shell == nil {
		return value.String(""), none, nil
	}

	result, err := e.Shell.Run(command, 0)
	if err != nil || result.ExitCode != 0 {
		return value.String(""), none, nil
	}
	return value.String(strings.TrimRight(string(result.Stdout), "\n")), none, nil
}

// callUserFunction saves any existing bindings for fn's parameters,
// binds the call's arguments, evaluates the body, and restores the
// saved bindings afterward so a function call can never leak its
// parameters into the caller's scope (SPEC_FULL.md §8 scenario 5).
// An argument-count mismatch degrades to the empty string rather than
// erroring, consistent with the evaluator's general fallback posture.
func (e *Evaluator) callUserFunction(fn *ast.FunctionDef, call *ast.CallExpr) (*value.Value, Signal, error) {
	if len(call.Args) != len(fn.Params) {
		return value.String(""), none, nil
	}
	args, sig, err := e.evalArgs(call.Args)
	if err != nil || !sig.IsNone() {
		return value.Null(), sig, err
	}

	type saved struct {
		value *value.Value
		bound bool
	}
	prior := make([]saved, len(fn.Params))
	for i, p := range fn.Params {
		v, ok := e.Store.Get(p)
		prior[i] = saved{value: v, bound: ok}
		e.Store.Set(p, args[i])
	}
	defer func() {
		for i, p := range fn.Params {
			if prior[i].bound {
				e.Store.Set(p, prior[i].value)
			} else {
				e.Store.Remove(p)
			}
		}
	}()

	v, bodySig, err := e.evalStatements(fn.Body.Statements)
	if err != nil {
		return v, none, err
	}
	if bodySig.Kind == SignalReturn {
		return bodySig.Value, none, nil
	}
	return value.Null(), none, nil
}
