// String interpolation: the `{{ expr }}` substitution pass spec.md
// §4.6/§4.7 run over an assembled document's final output, and the
// narrower `${name}` form spec.md §4.6 allows inside `print` arguments.
// Both parse their enclosed text as a single expression and splice in
// its stringified value, substituting the empty string on any parse or
// evaluation failure rather than aborting the document.
package eval

import (
	"regexp"

	"github.com/akaoio/xmd/parser"
)

var doubleBracePattern = regexp.MustCompile(`\{\{([^{}]*)\}\}`)
var dollarBracePattern = regexp.MustCompile(`\$\{([^{}]*)\}`)

// Interpolate runs the `{{ … }}` pass over text, evaluating each
// enclosed expression against e's current store.
func (e *Evaluator) Interpolate(text string) string {
	return doubleBracePattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := match[2 : len(match)-2]
		return e.evalInterpolationExpr(inner)
	})
}

// InterpolateDollar runs the `${ … }` pass used inside print arguments.
func (e *Evaluator) InterpolateDollar(text string) string {
	return dollarBracePattern.ReplaceAllStringFunc(text, func(match string) string {
		inner := match[2 : len(match)-1]
		return e.evalInterpolationExpr(inner)
	})
}

func (e *Evaluator) evalInterpolationExpr(src string) string {
	node, err := parser.ParseExpressionString("interpolation", src)
	if err != nil {
		return ""
	}
	v, sig, err := e.Eval(node)
	if err != nil || !sig.IsNone() {
		return ""
	}
	return v.String()
}
