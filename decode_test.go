package hipack

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScalars(t *testing.T) {
	dict, err := Unmarshal([]byte(`
		i: 42,
		neg: -7,
		hex: 0x2A,
		oct: 017,
		flt: 3.5,
		exp: 1.5e3,
		yes: True,
		no: False,
		s: "hello",
	`))
	require.NoError(t, err)

	assertInt(t, dict, "i", 42)
	assertInt(t, dict, "neg", -7)
	assertInt(t, dict, "hex", 42)
	assertInt(t, dict, "oct", 15)
	assertFloat(t, dict, "flt", 3.5)
	assertFloat(t, dict, "exp", 1500)
	assertBool(t, dict, "yes", true)
	assertBool(t, dict, "no", false)
	assertString(t, dict, "s", "hello")
}

func TestParseBareZeroIsDecimal(t *testing.T) {
	dict, err := Unmarshal([]byte(`z: 0,`))
	require.NoError(t, err)
	assertInt(t, dict, "z", 0)
}

func TestParseIntegerOverflowIsHardError(t *testing.T) {
	_, err := Unmarshal([]byte(`n: 99999999999,`))
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "invalid numeric value", perr.Message)
}

func TestParseInt32Boundaries(t *testing.T) {
	dict, err := Unmarshal([]byte(`max: 2147483647, min: -2147483648,`))
	require.NoError(t, err)
	assertInt(t, dict, "max", 2147483647)
	assertInt(t, dict, "min", -2147483648)
}

func TestParseStringEscapes(t *testing.T) {
	dict, err := Unmarshal([]byte(`x: "a\tb\n\41",`))
	require.NoError(t, err)
	assertString(t, dict, "x", "a\tb\nA")
}

func TestParseStringInvalidEscape(t *testing.T) {
	_, err := Unmarshal([]byte(`x: "\q",`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid escape sequence")
}

func TestParseUnterminatedString(t *testing.T) {
	_, err := Unmarshal([]byte(`x: "abc`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string value")
}

func TestParseListAndDict(t *testing.T) {
	dict, err := Unmarshal([]byte(`
		nums: [1, 2, 3],
		nested: {a: 1, b: [True, False]},
	`))
	require.NoError(t, err)

	numsVal, ok := dict.Get("nums")
	require.True(t, ok)
	lst, ok := numsVal.AsList()
	require.True(t, ok)
	assert.Equal(t, 3, lst.Len())
	assert.Equal(t, int32(2), mustInt(lst.At(1)))

	nestedVal, ok := dict.Get("nested")
	require.True(t, ok)
	nested, ok := nestedVal.AsDict()
	require.True(t, ok)
	assertInt(t, nested, "a", 1)
}

func TestParseAnnotations(t *testing.T) {
	// The leading letter of a bool literal is case-insensitive ('T' or
	// 't'), but the remaining letters must match exactly, so "true" (all
	// lowercase) is just as valid as "True".
	dict, err := Unmarshal([]byte(`flag: :secret :readonly true`))
	require.NoError(t, err)

	v, ok := dict.Get("flag")
	require.True(t, ok)
	b, ok := v.AsBool()
	require.True(t, ok)
	assert.True(t, b)

	annot := v.Annotations()
	require.NotNil(t, annot)
	assert.True(t, annot.Has("secret"))
	assert.True(t, annot.Has("readonly"))
	assert.Equal(t, 2, annot.Len())
}

func TestParseDuplicateAnnotation(t *testing.T) {
	_, err := Unmarshal([]byte(`flag: :secret :secret True,`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate annotation")
}

func TestParseMissingSeparator(t *testing.T) {
	_, err := Unmarshal([]byte(`key "value",`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing separator")
}

func TestParseBraceWrappedTopLevel(t *testing.T) {
	dict, err := Unmarshal([]byte(`{ a: 1, b: 2 }`))
	require.NoError(t, err)
	assertInt(t, dict, "a", 1)
	assertInt(t, dict, "b", 2)
}

func TestParseUnterminatedMessage(t *testing.T) {
	_, err := Unmarshal([]byte(`{ a: 1`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated message")
}

func TestParseComment(t *testing.T) {
	dict, err := Unmarshal([]byte("# a full-line comment\nkey: 1, # trailing comment\n"))
	require.NoError(t, err)
	assertInt(t, dict, "key", 1)
}

func TestParseEmptyDocument(t *testing.T) {
	dict, err := Unmarshal([]byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, dict.Len())
}

func TestParseErrorLineColumn(t *testing.T) {
	_, err := Unmarshal([]byte("a: 1,\nb: \"unterminated"))
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)
}

func TestDecoderFromReader(t *testing.T) {
	dec := NewDecoder(strings.NewReader(`a: 1,`))
	dict, err := dec.Decode()
	require.NoError(t, err)
	assertInt(t, dict, "a", 1)
}

func assertInt(t *testing.T, d *Dict, key string, want int32) {
	t.Helper()
	v, ok := d.Get(key)
	require.True(t, ok, "missing key %q", key)
	got, ok := v.AsInteger()
	require.True(t, ok, "key %q is not an integer", key)
	assert.Equal(t, want, got)
}

func assertFloat(t *testing.T, d *Dict, key string, want float64) {
	t.Helper()
	v, ok := d.Get(key)
	require.True(t, ok, "missing key %q", key)
	got, ok := v.AsFloat()
	require.True(t, ok, "key %q is not a float", key)
	assert.InDelta(t, want, got, 1e-9)
}

func assertBool(t *testing.T, d *Dict, key string, want bool) {
	t.Helper()
	v, ok := d.Get(key)
	require.True(t, ok, "missing key %q", key)
	got, ok := v.AsBool()
	require.True(t, ok, "key %q is not a bool", key)
	assert.Equal(t, want, got)
}

func assertString(t *testing.T, d *Dict, key string, want string) {
	t.Helper()
	v, ok := d.Get(key)
	require.True(t, ok, "missing key %q", key)
	got, ok := v.AsString()
	require.True(t, ok, "key %q is not a string", key)
	assert.Equal(t, want, got)
}
