// Package hipack implements the HiPack human-editable, JSON-like textual
// data interchange format: a streaming parser that turns a byte stream into
// a tree of Values, and a writer that serializes that tree back out in
// either indented or compact form.
//
// The format supports six value kinds — integer, float, bool, string, list,
// and dict — plus an optional set of per-value annotations. See
// _examples/original_source (aperezdc/hipack-c) for the reference C
// implementation this package is grounded on.
package hipack

import "math"

// Kind identifies which of the six HiPack value variants a Value holds.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindBool
	KindString
	KindList
	KindDict
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	default:
		return "unknown"
	}
}

// Value is the tagged union representing any HiPack datum: an integer,
// float, bool, string, list, or dict, plus an optional annotation set.
//
// A Value is a plain (copyable) struct; List and Dict are held by pointer,
// so copying a Value that wraps a container shares that container, the same
// way copying a Go slice or map header shares the backing storage.
type Value struct {
	kind  Kind
	i     int32
	f     float64
	b     bool
	s     string
	list  *List
	dict  *Dict
	annot *AnnotationSet
}

// Int returns a Value holding a signed 32-bit integer.
func Int(v int32) Value { return Value{kind: KindInteger, i: v} }

// Float returns a Value holding an IEEE-754 binary64 float.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Bool returns a Value holding a boolean.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Str returns a Value holding a string.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// ListValue returns a Value wrapping an existing List.
func ListValue(l *List) Value { return Value{kind: KindList, list: l} }

// DictValue returns a Value wrapping an existing Dict.
func DictValue(d *Dict) Value { return Value{kind: KindDict, dict: d} }

// Kind reports which variant the Value holds.
func (v Value) Kind() Kind { return v.kind }

// AsInteger returns the integer payload and true, or (0, false) if the
// Value is not an integer.
func (v Value) AsInteger() (int32, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the float payload and true, or (0, false) if the Value is
// not a float.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsBool returns the boolean payload and true, or (false, false) if the
// Value is not a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsString returns the string payload and true, or ("", false) if the
// Value is not a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// AsList returns the underlying List and true, or (nil, false) if the
// Value is not a list.
func (v Value) AsList() (*List, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsDict returns the underlying Dict and true, or (nil, false) if the
// Value is not a dict.
func (v Value) AsDict() (*Dict, bool) {
	if v.kind != KindDict {
		return nil, false
	}
	return v.dict, true
}

// Annotations returns the Value's annotation set, or nil if it carries no
// annotations. An empty annotation set is never returned: per the data
// model, a Value either has no annotations or a non-empty set of them.
func (v Value) Annotations() *AnnotationSet {
	if v.annot.Len() == 0 {
		return nil
	}
	return v.annot
}

// WithAnnotation returns a copy of v with name added to its annotation set.
// The copy gets a fresh annotation set, so v's own set is left unchanged.
// Values are handled functionally (parsed bottom-up, annotated, then stored
// into a container) rather than mutated in place, since a Value is
// ordinarily held by value.
func (v Value) WithAnnotation(name string) Value {
	annot := newAnnotationSet()
	for _, n := range v.annot.Names() {
		annot.Add(n)
	}
	annot.Add(name)
	v.annot = annot
	return v
}

// Equal reports whether a and b are the same HiPack value: their kinds
// match and their payloads compare equal. Integers and bools compare
// exactly; floats compare with absolute tolerance 1e-15; strings compare
// byte-for-byte; lists and dicts compare recursively. Annotations are not
// considered, matching the default equality spec.
func Equal(a, b Value) bool {
	return equal(a, b, false)
}

// EqualAnnotated is like Equal but additionally requires that a and b carry
// the same set of annotation names, recursively. Annotations are sets (the
// dict-of-true representation), so order never matters, only membership.
func EqualAnnotated(a, b Value) bool {
	return equal(a, b, true)
}

const floatTolerance = 1e-15

func equal(a, b Value, withAnnotations bool) bool {
	if a.kind != b.kind {
		return false
	}
	if withAnnotations && !annotationsEqual(a.annot, b.annot) {
		return false
	}

	switch a.kind {
	case KindInteger:
		return a.i == b.i
	case KindFloat:
		return math.Abs(a.f-b.f) <= floatTolerance
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindList:
		return listEqual(a.list, b.list, withAnnotations)
	case KindDict:
		return dictEqual(a.dict, b.dict, withAnnotations)
	default:
		return false
	}
}

func annotationsEqual(a, b *AnnotationSet) bool {
	aLen, bLen := 0, 0
	if a != nil {
		aLen = a.Len()
	}
	if b != nil {
		bLen = b.Len()
	}
	if aLen != bLen {
		return false
	}
	if aLen == 0 {
		return true
	}
	for _, name := range a.Names() {
		if !b.Has(name) {
			return false
		}
	}
	return true
}

func listEqual(a, b *List, withAnnotations bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if !equal(a.At(i), b.At(i), withAnnotations) {
			return false
		}
	}
	return true
}

func dictEqual(a, b *Dict, withAnnotations bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Len() != b.Len() {
		return false
	}
	ok := true
	a.ForEach(func(key string, av Value) bool {
		bv, found := b.Get(key)
		if !found || !equal(av, bv, withAnnotations) {
			ok = false
			return false
		}
		return true
	})
	return ok
}
