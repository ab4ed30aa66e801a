package value

import "testing"

func TestStringConversionTotal(t *testing.T) {
	cases := []struct {
		v    *Value
		want string
	}{
		{Null(), ""},
		{String("hi"), "hi"},
		{Number(42), "42"},
		{Number(3.5), "3.5"},
		{Boolean(true), "true"},
		{Boolean(false), "false"},
		{Array([]*Value{Number(1), String("a")}), `[1, "a"]`},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		v    *Value
		want bool
	}{
		{Null(), false},
		{Boolean(true), true},
		{Boolean(false), false},
		{Number(0), false},
		{Number(1), true},
		{String(""), false},
		{String("x"), true},
		{EmptyArray(), true},
		{FromObject(NewObject()), true},
	}
	for _, c := range cases {
		if got := c.v.IsTrue(); got != c.want {
			t.Errorf("IsTrue(%s) = %v, want %v", c.v.String(), got, c.want)
		}
	}
}

func TestEqualityCrossType(t *testing.T) {
	if Number(1).Equal(String("1")) {
		t.Error("cross-type equality should be false")
	}
	if !Number(1).Equal(Number(1)) {
		t.Error("equal numbers should compare equal")
	}
	if !Null().Equal(Null()) {
		t.Error("null should equal null")
	}
}

func TestObjectPreservesInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", Number(1))
	o.Set("a", Number(2))
	o.Set("z", Number(3)) // replace, should not move position
	want := []string{"z", "a"}
	got := o.Keys()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d: got %s, want %s", i, got[i], want[i])
		}
	}
	v, _ := o.Get("z")
	if v.Num() != 3 {
		t.Errorf("expected replaced value 3, got %v", v.Num())
	}
}

func TestCloneDeepCopiesArraysAndObjects(t *testing.T) {
	orig := Array([]*Value{Number(1)})
	clone := orig.Clone()
	clone.Items()[0] = Number(99)
	if orig.Items()[0].Num() != 1 {
		t.Error("mutating clone's elements slice affected original backing array")
	}

	o := NewObject()
	o.Set("k", Number(1))
	origObj := FromObject(o)
	cloneObj := origObj.Clone()
	cloneObj.Obj().Set("k", Number(2))
	v, _ := origObj.Obj().Get("k")
	if v.Num() != 1 {
		t.Error("mutating cloned object affected original")
	}
}
