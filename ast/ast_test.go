package ast

import "testing"

func TestPositionPropagates(t *testing.T) {
	pos := Position{Filename: "f.md", Line: 3, Column: 7}
	n := &Identifier{Base: Base{Position: pos}, Name: "x"}
	if n.Pos() != pos {
		t.Errorf("got %+v, want %+v", n.Pos(), pos)
	}
}

func TestConditionalChainsElif(t *testing.T) {
	inner := &Conditional{Condition: &BooleanLiteral{Value: false}, Then: &Block{}}
	outer := &Conditional{
		Condition: &BooleanLiteral{Value: true},
		Then:      &Block{},
		Else:      inner,
	}
	chained, ok := outer.Else.(*Conditional)
	if !ok || chained != inner {
		t.Errorf("expected Else to chain to the elif conditional")
	}
}

func TestForLoopIndexedForm(t *testing.T) {
	loop := &ForLoop{IndexVar: "i", ValueVar: "x", Body: &Block{}}
	if loop.IndexVar != "i" || loop.ValueVar != "x" {
		t.Errorf("got %+v", loop)
	}
}
