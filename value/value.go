// Package value implements XMD's closed runtime value model: string,
// number, boolean, array, object, and null (spec.md §3/§4.4). This is a
// deliberate departure from the teacher's own value.go, which wraps an
// arbitrary Go interface{} via reflection for host-language interop — a
// shape XMD has no use for, since its Non-goals rule out "type inference
// beyond runtime tagged values" (see DESIGN.md). Values here carry no
// manual reference count: spec.md §9 calls the source's refcounting a
// pattern to replace with "the target language's shared-ownership
// primitive", which for Go is simply the garbage collector.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged runtime value every XMD expression produces.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	arr  []*Value
	obj  *Object
}

// Object is an insertion-ordered string-keyed map (SPEC_FULL.md §10,
// open-question #4: the original's hash map left iteration order
// unspecified; this expansion commits to insertion order since a human
// reads the rendered Markdown).
type Object struct {
	keys   []string
	values map[string]*Value
}

// NewObject returns an empty, insertion-ordered object.
func NewObject() *Object {
	return &Object{values: make(map[string]*Value)}
}

// Set inserts or replaces a key, preserving first-insertion position.
func (o *Object) Set(key string, v *Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value for key, or (nil, false) if absent.
func (o *Object) Get(key string) (*Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len reports the number of entries.
func (o *Object) Len() int { return len(o.keys) }

func (o *Object) clone() *Object {
	n := NewObject()
	for _, k := range o.keys {
		n.Set(k, o.values[k].Clone())
	}
	return n
}

// --- Constructors ---

func Null() *Value                { return &Value{kind: KindNull} }
func String(s string) *Value      { return &Value{kind: KindString, str: s} }
func Number(n float64) *Value     { return &Value{kind: KindNumber, num: n} }
func Boolean(b bool) *Value       { return &Value{kind: KindBoolean, b: b} }
func Array(items []*Value) *Value { return &Value{kind: KindArray, arr: items} }
func FromObject(o *Object) *Value { return &Value{kind: KindObject, obj: o} }
func EmptyArray() *Value          { return Array(nil) }

// --- Accessors ---

func (v *Value) Kind() Kind       { return v.kind }
func (v *Value) IsNull() bool     { return v == nil || v.kind == KindNull }
func (v *Value) IsString() bool   { return v != nil && v.kind == KindString }
func (v *Value) IsNumber() bool   { return v != nil && v.kind == KindNumber }
func (v *Value) IsBoolean() bool  { return v != nil && v.kind == KindBoolean }
func (v *Value) IsArray() bool    { return v != nil && v.kind == KindArray }
func (v *Value) IsObject() bool   { return v != nil && v.kind == KindObject }

// RawString returns the string payload; callers must check IsString.
func (v *Value) RawString() string { return v.str }

// Num returns the number payload; callers must check IsNumber.
func (v *Value) Num() float64 { return v.num }

// Bool returns the boolean payload; callers must check IsBoolean.
func (v *Value) Bool() bool { return v.b }

// Items returns the array's elements; callers must check IsArray.
func (v *Value) Items() []*Value { return v.arr }

// Obj returns the object payload; callers must check IsObject.
func (v *Value) Obj() *Object { return v.obj }

// Clone deep-copies arrays and objects so that binding a value (e.g. a
// for-loop variable) never lets mutation alias the source collection —
// SPEC_FULL.md §7 supplement #5, grounded on the original's
// `variable_copy(item)` before `store_set` in the for-loop body.
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}
	switch v.kind {
	case KindArray:
		items := make([]*Value, len(v.arr))
		for i, e := range v.arr {
			items[i] = e.Clone()
		}
		return Array(items)
	case KindObject:
		return FromObject(v.obj.clone())
	default:
		cp := *v
		return &cp
	}
}

// String is the total string conversion spec.md §3 requires: numbers
// render with up to 15 significant digits, booleans as "true"/"false",
// null as the empty string, composites as a bracketed/braced textual form.
func (v *Value) String() string {
	if v.IsNull() {
		return ""
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindArray:
		parts := make([]string, len(v.arr))
		for i, e := range v.arr {
			parts[i] = e.debugForm()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		parts := make([]string, 0, v.obj.Len())
		for _, k := range v.obj.Keys() {
			val, _ := v.obj.Get(k)
			parts = append(parts, k+": "+val.debugForm())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// debugForm is like String but quotes string elements, so that an array
// of strings renders as `[a, b]` -> `["a", "b"]` inside a composite's
// textual form, matching how a human expects a nested literal to read.
func (v *Value) debugForm() string {
	if v.IsString() {
		return strconv.Quote(v.str)
	}
	return v.String()
}

func formatNumber(n float64) string {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', 15, 64)
}

// IsTrue implements spec.md §4.4 truthiness: boolean as itself, number
// non-zero, string non-empty, null false, array/object true.
func (v *Value) IsTrue() bool {
	if v.IsNull() {
		return false
	}
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.num != 0
	case KindString:
		return v.str != ""
	case KindArray, KindObject:
		return true
	default:
		return false
	}
}

// Equal implements spec.md §4.4 equality: byte-wise on strings, IEEE on
// numbers, trivial on booleans, false across mismatched types except
// where documented (both-null compares equal).
func (v *Value) Equal(other *Value) bool {
	if v.IsNull() && other.IsNull() {
		return true
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBoolean:
		return v.b == other.b
	default:
		return false
	}
}

// GoString aids debugging (fmt %#v) without exposing internal fields.
func (v *Value) GoString() string {
	return fmt.Sprintf("value.Value{%s %q}", v.kind, v.String())
}
