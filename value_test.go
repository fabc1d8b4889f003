package hipack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualScalars(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal integers", Int(42), Int(42), true},
		{"different integers", Int(42), Int(43), false},
		{"equal floats within tolerance", Float(1.0), Float(1.0 + 1e-16), true},
		{"floats outside tolerance", Float(1.0), Float(1.0001), false},
		{"equal bools", Bool(true), Bool(true), true},
		{"different bools", Bool(true), Bool(false), false},
		{"equal strings", Str("hi"), Str("hi"), true},
		{"different kinds", Int(1), Str("1"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestEqualContainers(t *testing.T) {
	l1 := ListValue(NewList(Int(1), Str("a")))
	l2 := ListValue(NewList(Int(1), Str("a")))
	l3 := ListValue(NewList(Int(1), Str("b")))
	assert.True(t, Equal(l1, l2))
	assert.False(t, Equal(l1, l3))

	d1 := NewDict()
	d1.Set("x", Int(1))
	d1.Set("y", Bool(true))
	d2 := NewDict()
	d2.Set("y", Bool(true))
	d2.Set("x", Int(1))
	assert.True(t, Equal(DictValue(d1), DictValue(d2)), "dict equality must not depend on insertion order")

	d3 := NewDict()
	d3.Set("x", Int(2))
	d3.Set("y", Bool(true))
	assert.False(t, Equal(DictValue(d1), DictValue(d3)))
}

func TestAnnotationsIgnoredByDefaultEquality(t *testing.T) {
	plain := Int(1)
	annotated := Int(1).WithAnnotation("secret")

	assert.True(t, Equal(plain, annotated))
	assert.False(t, EqualAnnotated(plain, annotated))
	assert.True(t, EqualAnnotated(annotated, annotated.WithAnnotation("secret")))
}

func TestWithAnnotationDedup(t *testing.T) {
	v := Bool(true).WithAnnotation("secret").WithAnnotation("readonly").WithAnnotation("secret")
	names := v.Annotations().Names()
	assert.Len(t, names, 2)
	assert.True(t, v.Annotations().Has("secret"))
	assert.True(t, v.Annotations().Has("readonly"))
}

func TestAccessorsRejectWrongKind(t *testing.T) {
	v := Str("hello")
	_, ok := v.AsInteger()
	assert.False(t, ok)
	s, ok := v.AsString()
	assert.True(t, ok)
	assert.Equal(t, "hello", s)
}
