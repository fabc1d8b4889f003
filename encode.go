package hipack

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Mode selects between the writer's two output styles.
type Mode bool

const (
	// Indented produces two-space-per-level indented, newline-separated
	// output, matching HIPACK_WRITER_INDENTED in the reference writer.
	Indented Mode = false
	// Compact produces output with no added whitespace, matching
	// HIPACK_WRITER_COMPACT; the only space it writes is the one that
	// separates an annotation chain from a following scalar value.
	Compact Mode = true
)

// writerCompact is the sentinel depth value used internally, mirroring the
// reference writer's indent field doubling as both a mode flag (-1 means
// compact) and, in indented mode, the current nesting depth.
const writerCompact = -1

// Writer serializes a Dict (and the Values it contains) to an io.Writer in
// either indented or compact form. A Writer is not safe for concurrent
// use; HiPack documents are written synchronously from one goroutine, same
// as the reference implementation's single-threaded writer handle.
type Writer struct {
	w      io.Writer
	indent int
	err    error
}

// NewWriter returns a Writer that writes to w in the given mode.
func NewWriter(w io.Writer, mode Mode) *Writer {
	wr := &Writer{w: w}
	if mode == Compact {
		wr.indent = writerCompact
	}
	return wr
}

func (w *Writer) indented() bool { return w.indent != writerCompact }

func (w *Writer) moreIndent() {
	if w.indented() {
		w.indent++
	}
}

func (w *Writer) lessIndent() {
	if w.indented() {
		w.indent--
	}
}

func (w *Writer) writeByte(b byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write([]byte{b})
}

func (w *Writer) writeRaw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *Writer) writeIndentation() {
	if !w.indented() {
		return
	}
	for i := 0; i < w.indent*2; i++ {
		w.writeByte(' ')
	}
}

// Write serializes dict as the top-level message: a bare sequence of
// key-value items, with no enclosing braces.
func (w *Writer) Write(dict *Dict) error {
	if w.indented() {
		w.indent = 0
	}
	if dict == nil {
		return nil
	}
	w.writeKeyValueItems(dict)
	return w.err
}

func (w *Writer) writeKeyValueItems(dict *Dict) {
	dict.ForEach(func(key string, val Value) bool {
		w.writeIndentation()
		w.writeRaw(key)
		// An annotated list or dict also needs the ':' separator: without
		// it the parser would take the first annotation's ':' as the
		// separator and read the annotation name as the value.
		if isScalarKind(val.Kind()) || val.Annotations() != nil {
			w.writeByte(':')
		}
		if w.indented() {
			w.writeByte(' ')
		}
		w.writeAnnotatedValue(val)
		w.writeByte(',')
		if w.indented() {
			w.writeByte('\n')
		}
		return w.err == nil
	})
}

func isScalarKind(k Kind) bool {
	switch k {
	case KindInteger, KindFloat, KindBool, KindString:
		return true
	default:
		return false
	}
}

// writeAnnotatedValue emits a value's annotation chain (if any) followed
// by the value itself. A mandatory separating space is inserted after the
// last annotation when the value is a scalar: bare keys (and therefore
// annotation names) may contain digits, letters, '+', '-' and '"', so a
// scalar value glued directly onto an annotation name would otherwise be
// re-lexed as part of that name. Lists and dicts are self-delimiting
// ('[' and '{' are not legal key characters) so no such space is needed
// before them.
func (w *Writer) writeAnnotatedValue(val Value) {
	var names []string
	if a := val.Annotations(); a != nil {
		names = a.Names()
	}
	for _, name := range names {
		w.writeByte(':')
		w.writeRaw(name)
	}
	if len(names) > 0 && isScalarKind(val.Kind()) {
		w.writeByte(' ')
	}
	w.writeValue(val)
}

func (w *Writer) writeValue(val Value) {
	switch val.Kind() {
	case KindInteger:
		i, _ := val.AsInteger()
		w.writeInteger(i)
	case KindFloat:
		f, _ := val.AsFloat()
		w.writeFloat(f)
	case KindBool:
		b, _ := val.AsBool()
		w.writeBool(b)
	case KindString:
		s, _ := val.AsString()
		w.writeString(s)
	case KindList:
		l, _ := val.AsList()
		w.writeList(l)
	case KindDict:
		d, _ := val.AsDict()
		w.writeDict(d)
	}
}

func (w *Writer) writeBool(b bool) {
	if b {
		w.writeRaw("True")
	} else {
		w.writeRaw("False")
	}
}

func (w *Writer) writeInteger(v int32) {
	w.writeRaw(strconv.FormatInt(int64(v), 10))
}

// writeFloat uses strconv's shortest-round-trip formatter, the standard
// library equivalent of the reference writer's external fpconv_dtoa, and
// appends ".0" when the result would otherwise look like an integer.
func (w *Writer) writeFloat(v float64) {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	w.writeRaw(s)
	if !strings.ContainsAny(s, ".eE") {
		w.writeRaw(".0")
	}
}

func (w *Writer) writeString(s string) {
	w.writeByte('"')
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '\t':
			w.writeRaw(`\t`)
		case '\n':
			w.writeRaw(`\n`)
		case '\r':
			w.writeRaw(`\r`)
		case '"':
			w.writeRaw(`\"`)
		case '\\':
			w.writeRaw(`\\`)
		default:
			if ch < 0x20 {
				w.writeByte('\\')
				if ch < 16 {
					w.writeByte('0')
				}
				w.writeRaw(strconv.FormatInt(int64(ch), 16))
			} else {
				w.writeByte(ch)
			}
		}
	}
	w.writeByte('"')
}

func (w *Writer) writeList(l *List) {
	w.writeByte('[')
	if l.Len() > 0 {
		if w.indented() {
			w.writeByte('\n')
		}
		w.moreIndent()
		for _, item := range l.Items() {
			w.writeIndentation()
			w.writeAnnotatedValue(item)
			w.writeByte(',')
			if w.indented() {
				w.writeByte('\n')
			}
		}
		w.lessIndent()
		w.writeIndentation()
	}
	w.writeByte(']')
}

func (w *Writer) writeDict(d *Dict) {
	w.writeByte('{')
	if d.Len() > 0 {
		if w.indented() {
			w.writeByte('\n')
		}
		w.moreIndent()
		w.writeKeyValueItems(d)
		w.lessIndent()
		w.writeIndentation()
	}
	w.writeByte('}')
}

// Marshal serializes dict in the given mode and returns the result.
func Marshal(dict *Dict, mode Mode) ([]byte, error) {
	var buf bytes.Buffer
	w := NewWriter(&buf, mode)
	if err := w.Write(dict); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
