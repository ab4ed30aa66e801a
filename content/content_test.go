package content

import (
	"testing"

	"github.com/akaoio/xmd/eval"
	"github.com/akaoio/xmd/store"
	"github.com/akaoio/xmd/value"

	"github.com/gkampitakis/go-snaps/snaps"
)

func newProcessor() *Processor {
	return New(eval.New(store.New()))
}

func TestVariableSubstitution(t *testing.T) {
	p := newProcessor()
	out, err := p.Process("<!-- xmd: set name = \"world\" -->\nHello, {{ name }}!\n")
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "\nHello, world!\n" {
		t.Errorf("got %q", out)
	}
}

func TestConditionalDirective(t *testing.T) {
	p := newProcessor()
	src := "<!-- xmd: set show = true -->" +
		"<!-- xmd: if show -->\nvisible\n<!-- xmd: else -->\nhidden\n<!-- xmd: endif -->"
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "\nvisible\n" {
		t.Errorf("got %q", out)
	}
}

func TestConditionalFalseBranch(t *testing.T) {
	p := newProcessor()
	src := "<!-- xmd: set show = false -->" +
		"<!-- xmd: if show -->\nvisible\n<!-- xmd: else -->\nhidden\n<!-- xmd: endif -->"
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "\nhidden\n" {
		t.Errorf("got %q", out)
	}
}

func TestElifChain(t *testing.T) {
	p := newProcessor()
	src := "<!-- xmd: set x = 5 -->" +
		"<!-- xmd: if x > 10 -->\nbig\n" +
		"<!-- xmd: elif x > 2 -->\nmedium\n" +
		"<!-- xmd: else -->\nsmall\n" +
		"<!-- xmd: endif -->"
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "\nmedium\n" {
		t.Errorf("got %q", out)
	}
}

func TestForLoopOverLiteralArray(t *testing.T) {
	p := newProcessor()
	src := "<!-- xmd: for item in [1, 2, 3] -->\n- {{ item }}\n<!-- xmd: endfor -->"
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	want := "\n- 1\n\n- 2\n\n- 3\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestIndexedForLoop(t *testing.T) {
	p := newProcessor()
	src := `<!-- xmd: for i, x in ["p", "q"] -->{{i}}:{{x}} <!-- xmd: endfor -->`
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	want := "0:p 1:q "
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestNestedForLoop(t *testing.T) {
	p := newProcessor()
	src := "<!-- xmd: for row in [[1, 2], [3, 4]] -->" +
		"<!-- xmd: for cell in row -->{{ cell }} <!-- xmd: endfor -->" +
		"\n<!-- xmd: endfor -->"
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	want := "1 2 \n3 4 \n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestForLoopVariableRemainsBoundAfterward(t *testing.T) {
	p := newProcessor()
	_, err := p.Process("<!-- xmd: for item in [1, 2] --><!-- xmd: endfor -->")
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	v, ok := p.Eval.Store.Get("item")
	if !ok {
		t.Fatal("expected loop variable to remain bound to its last value")
	}
	if v.Num() != 2 {
		t.Errorf("got %v, want 2 (last iteration's value)", v.Num())
	}
}

func TestUserFunctionDefinedViaGeneralDirective(t *testing.T) {
	p := newProcessor()
	src := "<!-- xmd: function double(x)\nreturn x * 2\nend -->" +
		"<!-- xmd: set result = double(21) -->{{ result }}"
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "42" {
		t.Errorf("got %q, want 42", out)
	}
}

func TestJoinWithCustomSeparatorInDirective(t *testing.T) {
	p := newProcessor()
	out, err := p.Process(`<!-- xmd: set parts = join([1, 2, 3], "-") -->{{ parts }}`)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "1-2-3" {
		t.Errorf("got %q, want 1-2-3", out)
	}
}

func TestNonXMDCommentPassesThroughVerbatim(t *testing.T) {
	p := newProcessor()
	out, err := p.Process("<!-- a regular comment --> text")
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "<!-- a regular comment --> text" {
		t.Errorf("got %q", out)
	}
}

func TestImportProducesNoOutput(t *testing.T) {
	p := newProcessor()
	out, err := p.Process(`<!-- xmd: import "lib.md" -->after`)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "after" {
		t.Errorf("got %q, want \"after\" (import must not emit output)", out)
	}
}

func TestGeneralDirectiveAppendsOnlyStringResults(t *testing.T) {
	p := newProcessor()
	out, err := p.Process(`<!-- xmd: 1 + 1 -->`)
	if out != "" {
		t.Errorf("got %q, want empty (non-string result must not be appended)", out)
	}
	if err != nil {
		t.Fatalf("process error: %v", err)
	}

	p2 := newProcessor()
	out2, err2 := p2.Process(`<!-- xmd: "literal text" -->`)
	if err2 != nil {
		t.Fatalf("process error: %v", err2)
	}
	if out2 != "literal text" {
		t.Errorf("got %q, want \"literal text\"", out2)
	}
}

func TestSharedStoreAcrossProcessCalls(t *testing.T) {
	e := eval.New(store.New())
	e.Store.Set("greeting", value.String("hi"))
	p := New(e)
	out, err := p.Process("{{ greeting }}")
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	if out != "hi" {
		t.Errorf("got %q, want hi", out)
	}
}

func TestDocumentSnapshot(t *testing.T) {
	p := newProcessor()
	src := "# Report\n" +
		"<!-- xmd: set total = 0 -->" +
		"<!-- xmd: for n in [1, 2, 3] -->" +
		"<!-- xmd: total += n -->" +
		"<!-- xmd: endfor -->" +
		"\nTotal: {{ total }}\n"
	out, err := p.Process(src)
	if err != nil {
		t.Fatalf("process error: %v", err)
	}
	snaps.MatchSnapshot(t, out)
}
