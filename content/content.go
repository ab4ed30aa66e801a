// Package content implements the directive-splicing processor that
// makes XMD a Markdown preprocessor rather than a standalone language
// (spec.md §4.7): it walks an input document, dispatches
// `<!-- xmd: ... -->` directives against a shared evaluator and store,
// and runs a final `{{ name }}` interpolation pass over the assembled
// output. Grounded line-for-line on the scanning/if-stack/endfor-depth
// algorithm in
// _examples/original_source/src/ast_process_xmd_content/ast_process_xmd_content.c,
// transcribed from C's manual buffer-doubling into a Go
// strings.Builder and from byte-pointer arithmetic into string slicing
// with explicit offsets.
package content

import (
	"strings"

	"github.com/akaoio/xmd/ast"
	"github.com/akaoio/xmd/eval"
	"github.com/akaoio/xmd/parser"
	"github.com/akaoio/xmd/value"
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	xmdPrefix    = "xmd:"
)

// Processor walks Markdown input and produces processed Markdown,
// sharing one Evaluator (and its Store) across the whole document and
// every loop iteration within it (spec.md §5).
type Processor struct {
	Eval    *eval.Evaluator
	ifStack []ifFrame
}

// New constructs a Processor over an existing evaluator.
func New(e *eval.Evaluator) *Processor {
	return &Processor{Eval: e}
}

// ifFrame is one level of the if/elif/else/endif state machine spec.md
// §4.6 specifies: output is emitted only while every frame on the
// stack has ConditionMet true.
type ifFrame struct {
	ConditionMet   bool
	BranchExecuted bool
}

func (p *Processor) shouldExecute() bool {
	for _, f := range p.ifStack {
		if !f.ConditionMet {
			return false
		}
	}
	return true
}

func (p *Processor) pushIf(cond bool) {
	p.ifStack = append(p.ifStack, ifFrame{ConditionMet: cond, BranchExecuted: cond})
}

func (p *Processor) applyElif(cond func() bool) {
	if len(p.ifStack) == 0 {
		return
	}
	top := &p.ifStack[len(p.ifStack)-1]
	if top.BranchExecuted {
		top.ConditionMet = false
		return
	}
	result := cond()
	top.ConditionMet = result
	if result {
		top.BranchExecuted = true
	}
}

func (p *Processor) applyElse() {
	if len(p.ifStack) == 0 {
		return
	}
	top := &p.ifStack[len(p.ifStack)-1]
	top.ConditionMet = !top.BranchExecuted
	top.BranchExecuted = true
}

func (p *Processor) popIf() {
	if len(p.ifStack) == 0 {
		return
	}
	p.ifStack = p.ifStack[:len(p.ifStack)-1]
}

// Process runs the full algorithm (spec.md §4.7, steps 1-4) over input
// and returns the processed Markdown.
func (p *Processor) Process(input string) (string, error) {
	var out strings.Builder
	pos := 0

	for pos < len(input) {
		rel := strings.Index(input[pos:], commentOpen)
		if rel == -1 {
			if p.shouldExecute() {
				out.WriteString(input[pos:])
			}
			break
		}
		commentStart := pos + rel

		if p.shouldExecute() {
			out.WriteString(input[pos:commentStart])
		}

		closeRel := strings.Index(input[commentStart+len(commentOpen):], commentClose)
		if closeRel == -1 {
			// Malformed comment: no closing delimiter. Copy through
			// verbatim and stop, matching the original's behaviour of
			// treating an unterminated comment as the end of input.
			if p.shouldExecute() {
				out.WriteString(input[commentStart:])
			}
			break
		}
		innerStart := commentStart + len(commentOpen)
		innerEnd := innerStart + closeRel
		afterComment := innerEnd + len(commentClose)

		inner := strings.TrimSpace(input[innerStart:innerEnd])
		if !strings.HasPrefix(inner, xmdPrefix) {
			if p.shouldExecute() {
				out.WriteString(input[commentStart:afterComment])
			}
			pos = afterComment
			continue
		}

		directive := strings.TrimSpace(strings.TrimPrefix(inner, xmdPrefix))

		if indexVar, varName, iterExpr, ok := parseForHeader(directive); ok && p.shouldExecute() {
			endforAt, afterEndfor, found := findMatchingEndfor(input[afterComment:])
			if !found {
				// No matching endfor: treat the rest of the input as
				// an unterminated loop body and stop, rather than
				// guessing at recovery.
				pos = len(input)
				continue
			}
			body := input[afterComment : afterComment+endforAt]
			if err := p.runForLoop(indexVar, varName, iterExpr, body, &out); err != nil {
				return "", err
			}
			pos = afterComment + afterEndfor
			continue
		}

		p.dispatchDirective(directive, &out)
		pos = afterComment
	}

	return p.Eval.Interpolate(out.String()), nil
}

// parseForHeader recognises both `for name in expr` and the indexed
// form `for i, name in expr` (spec.md §8 mandatory scenario 4), mirroring
// ast.ForLoop's IndexVar/ValueVar split (ast.go). indexVar is empty for
// the single-variable form. Returns ok=false for anything else,
// including a bare `for` with no `in`.
func parseForHeader(directive string) (indexVar, varName, iterExpr string, ok bool) {
	if !strings.HasPrefix(directive, "for ") {
		return "", "", "", false
	}
	rest := strings.TrimSpace(directive[len("for "):])
	idx := strings.Index(rest, " in ")
	if idx == -1 {
		return "", "", "", false
	}
	head := strings.TrimSpace(rest[:idx])
	iterExpr = strings.TrimSpace(rest[idx+len(" in "):])

	if comma := strings.Index(head, ","); comma != -1 {
		indexVar = strings.TrimSpace(head[:comma])
		varName = strings.TrimSpace(head[comma+1:])
	} else {
		varName = head
	}
	return indexVar, varName, iterExpr, true
}

// findMatchingEndfor scans s (the content immediately following a for
// directive's closing `-->`) for the `<!-- xmd: endfor -->` that closes
// it, tracking nested for/endfor pairs at the same depth exactly as
// ast_find_matching_endfor does. Returns the offset of the matching
// endfor's `<!--` and the offset just past its `-->`, both relative to
// s; found is false if no match exists before s runs out.
func findMatchingEndfor(s string) (commentStart, afterComment int, found bool) {
	depth := 1
	pos := 0
	for {
		rel := strings.Index(s[pos:], commentOpen)
		if rel == -1 {
			return 0, 0, false
		}
		cs := pos + rel
		closeRel := strings.Index(s[cs+len(commentOpen):], commentClose)
		if closeRel == -1 {
			return 0, 0, false
		}
		innerStart := cs + len(commentOpen)
		innerEnd := innerStart + closeRel
		after := innerEnd + len(commentClose)

		inner := strings.TrimSpace(s[innerStart:innerEnd])
		if strings.HasPrefix(inner, xmdPrefix) {
			directive := strings.TrimSpace(strings.TrimPrefix(inner, xmdPrefix))
			switch {
			case strings.HasPrefix(directive, "for "):
				depth++
			case directive == "endfor":
				depth--
				if depth == 0 {
					return cs, after, true
				}
			}
		}
		pos = after
	}
}

// runForLoop evaluates iterExpr, iterates its array elements binding
// varName (and indexVar, for the indexed form) to each (cloned, per
// spec.md §7 supplement #5), and recursively processes body for every
// iteration, concatenating the per-iteration outputs (spec.md §4.7
// step 3's `for` bullet). A non-array iterable or an evaluation error
// yields zero iterations rather than aborting the document.
func (p *Processor) runForLoop(indexVar, varName, iterExpr string, body string, out *strings.Builder) error {
	node, err := parser.ParseExpressionString("for-iterable", iterExpr)
	if err != nil {
		return nil
	}
	iterable, sig, err := p.Eval.Eval(node)
	if err != nil || !sig.IsNone() || !iterable.IsArray() {
		return nil
	}

	for i, item := range iterable.Items() {
		if indexVar != "" {
			p.Eval.Store.Set(indexVar, value.Number(float64(i)))
		}
		p.Eval.Store.Set(varName, item.Clone())
		result, err := p.Process(body)
		if err != nil {
			return err
		}
		out.WriteString(result)
	}
	return nil
}

// dispatchDirective handles every non-for directive keyword spec.md
// §4.7 step 3 lists. if/elif/else/endif always update the if-stack
// regardless of the current execution state (an `if` nested inside a
// false branch must still push a frame so its matching `endif` pops
// the right one); every other directive is skipped outright when the
// if-stack says not to execute.
func (p *Processor) dispatchDirective(directive string, out *strings.Builder) {
	switch {
	case strings.HasPrefix(directive, "if "):
		cond := strings.TrimSpace(directive[len("if "):])
		p.pushIf(p.evalConditionString(cond))
		return
	case strings.HasPrefix(directive, "elif "):
		cond := strings.TrimSpace(directive[len("elif "):])
		p.applyElif(func() bool { return p.evalConditionString(cond) })
		return
	case directive == "else":
		p.applyElse()
		return
	case directive == "endif":
		p.popIf()
		return
	case directive == "endfor":
		// A stray endfor with no matching for (already consumed by
		// runForLoop's scan) is a no-op.
		return
	}

	if !p.shouldExecute() {
		return
	}

	switch {
	case strings.HasPrefix(directive, "set "):
		p.evalSetDirective(strings.TrimSpace(directive[len("set "):]))
	case strings.HasPrefix(directive, "exec "):
		p.transformExecDirective(strings.TrimSpace(directive[len("exec "):]), out)
	case strings.HasPrefix(directive, "import "):
		p.transformImportDirective(strings.TrimSpace(directive[len("import "):]))
	default:
		p.evalGeneralDirective(directive, out)
	}
}

func (p *Processor) evalConditionString(src string) bool {
	node, err := parser.ParseExpressionString("condition", src)
	if err != nil {
		return false
	}
	v, sig, err := p.Eval.Eval(node)
	if err != nil || !sig.IsNone() {
		return false
	}
	return v.IsTrue()
}

// evalSetDirective parses the tail as an assignment statement and
// evaluates it for its store side effect; `set` never produces output
// (spec.md §4.7 step 3).
func (p *Processor) evalSetDirective(src string) {
	stmts, err := parser.ParseStatementsString("set", src)
	if err != nil {
		return
	}
	prog := &ast.Program{Statements: stmts}
	p.Eval.Eval(prog)
}

// transformExecDirective builds the equivalent of an `exec(...)` call from
// the directive's tail and appends its string result to out (spec.md
// §4.7 step 3). A command already wrapped in a matching pair of quotes
// has them stripped first (SPEC_FULL.md §7 supplement, mirroring the
// `import` quote-stripping the original applies).
func (p *Processor) transformExecDirective(cmd string, out *strings.Builder) {
	cmd = stripMatchingQuotes(cmd)
	call := &ast.CallExpr{Name: "exec", Args: []ast.Node{&ast.StringLiteral{Value: cmd}}}
	v, sig, err := p.Eval.Eval(call)
	if err != nil || !sig.IsNone() {
		return
	}
	out.WriteString(v.String())
}

// transformImportDirective parses the tail as an import path, loads the
// module, and merges its exports into the current store. Import never
// produces output (spec.md §4.7 step 3).
func (p *Processor) transformImportDirective(path string) {
	path = stripMatchingQuotes(path)
	imp := &ast.Import{Path: &ast.StringLiteral{Value: path}}
	p.Eval.Eval(imp)
}

// evalGeneralDirective parses the tail as a general statement sequence
// and, when the resulting value is a string, appends it to out
// (spec.md §4.7 step 3's fallback bullet).
func (p *Processor) evalGeneralDirective(directive string, out *strings.Builder) {
	stmts, err := parser.ParseStatementsString("directive", directive)
	if err != nil {
		return
	}
	prog := &ast.Program{Statements: stmts}
	v, sig, err := p.Eval.Eval(prog)
	if err != nil || !sig.IsNone() || v == nil {
		return
	}
	if v.IsString() {
		out.WriteString(v.RawString())
	}
}

// stripMatchingQuotes removes one layer of surrounding single or
// double quotes, so both `import "lib.md"` and `import lib.md` resolve
// the same path (SPEC_FULL.md §7 supplement #1, grounded on
// ast_process_xmd_content.c's filename quote-stripping).
func stripMatchingQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
