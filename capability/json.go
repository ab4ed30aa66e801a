package capability

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/akaoio/xmd/value"
)

// ValueFromJSON parses text as JSON and converts it into an XMD value
// using gjson's result tree rather than encoding/json's struct-tag
// model, since an XMD object has no Go struct backing it (spec.md §3's
// object value is a purely dynamic string-keyed map). Invalid JSON
// yields null, matching the evaluator's general fallback posture.
func ValueFromJSON(text string) *value.Value {
	if !gjson.Valid(text) {
		return value.Null()
	}
	return fromGJSON(gjson.Parse(text))
}

func fromGJSON(r gjson.Result) *value.Value {
	switch r.Type {
	case gjson.String:
		return value.String(r.String())
	case gjson.Number:
		return value.Number(r.Float())
	case gjson.True:
		return value.Boolean(true)
	case gjson.False:
		return value.Boolean(false)
	case gjson.JSON:
		if r.IsArray() {
			var items []*value.Value
			r.ForEach(func(_, elem gjson.Result) bool {
				items = append(items, fromGJSON(elem))
				return true
			})
			return value.Array(items)
		}
		obj := value.NewObject()
		r.ForEach(func(key, elem gjson.Result) bool {
			obj.Set(key.String(), fromGJSON(elem))
			return true
		})
		return value.FromObject(obj)
	default:
		return value.Null()
	}
}

// ValueToJSON serializes an XMD value to JSON text, assembling the
// document bottom-up with sjson.SetRaw/Set rather than encoding/json's
// reflect-based Marshal — the write-side counterpart to ValueFromJSON.
func ValueToJSON(v *value.Value) string {
	return jsonForValue(v)
}

func jsonForValue(v *value.Value) string {
	switch {
	case v.IsNull():
		return "null"
	case v.IsString():
		return scalarJSON(v.RawString())
	case v.IsNumber():
		return scalarJSON(v.Num())
	case v.IsBoolean():
		return scalarJSON(v.Bool())
	case v.IsArray():
		doc := "[]"
		for i, item := range v.Items() {
			doc, _ = sjson.SetRaw(doc, strconv.Itoa(i), jsonForValue(item))
		}
		return doc
	case v.IsObject():
		doc := "{}"
		for _, k := range v.Obj().Keys() {
			elem, _ := v.Obj().Get(k)
			doc, _ = sjson.SetRaw(doc, k, jsonForValue(elem))
		}
		return doc
	default:
		return "null"
	}
}

// scalarJSON renders a single Go scalar as properly escaped JSON by
// round-tripping it through sjson.Set (for correct quoting/escaping)
// and gjson.Get (to pull back just that value's raw JSON text).
func scalarJSON(v interface{}) string {
	doc, err := sjson.Set("", "v", v)
	if err != nil {
		return "null"
	}
	return gjson.Get(doc, "v").Raw
}
