package hipack

// lexer tracks one byte of lookahead over a Source, along with the current
// line/column position, and transparently skips '#' line comments. It is
// the direct counterpart of nextchar_raw/nextchar/skipwhite in the
// reference parser: this package just gives each step an explicit Go error
// return instead of the C code's out-parameter status flag.
type lexer struct {
	src  Source
	look int
	line int
	col  int
}

func newLexer(src Source) *lexer {
	return &lexer{src: src, line: 1}
}

// advanceRaw consumes exactly one character from the source, without
// comment skipping, updating line/col the same way the reference lexer
// does: column increments on every consumed byte, and resets to zero right
// before that increment when the byte is a newline (so the newline itself
// is column 1 of the next line). EOF and error positions leave line/col
// unchanged, so they describe the most recently consumed character.
func (l *lexer) advanceRaw() error {
	ch := l.src.NextChar()
	if ch == chIOError {
		return ErrIO
	}
	if ch == '\n' {
		l.col = 0
		l.line++
	}
	if ch != chEOF {
		l.col++
	}
	l.look = ch
	return nil
}

// advance consumes one character, skipping over a '#' line comment if one
// starts at that position. Only a single comment is consumed per call,
// exactly like the reference nextchar: the newline ending a comment (or
// EOF) is left in place for the next advance to see.
func (l *lexer) advance() error {
	if err := l.advanceRaw(); err != nil {
		return err
	}
	if l.look == '#' {
		for l.look != '\n' && l.look != chEOF {
			if err := l.advanceRaw(); err != nil {
				return err
			}
		}
	}
	return nil
}

func isWhitespace(ch int) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func (l *lexer) skipWhitespace() error {
	for isWhitespace(l.look) {
		if err := l.advance(); err != nil {
			return err
		}
	}
	return nil
}

func isKeyChar(ch int) bool {
	if ch < 0 || ch > 255 {
		return false
	}
	switch ch {
	case ' ', '\t', '\n', '\r', '[', ']', '{', '}', ':', ',':
		return false
	}
	return true
}

func isOctalNonzeroDigit(ch int) bool { return ch >= '1' && ch <= '7' }

func isNumberChar(ch int) bool {
	switch {
	case ch >= '0' && ch <= '9':
		return true
	case ch >= 'a' && ch <= 'f':
		return true
	case ch >= 'A' && ch <= 'F':
		return true
	case ch == '.' || ch == '+' || ch == '-':
		return true
	default:
		return false
	}
}

func isHexDigit(ch int) bool {
	switch {
	case ch >= '0' && ch <= '9', ch >= 'a' && ch <= 'f', ch >= 'A' && ch <= 'F':
		return true
	default:
		return false
	}
}

func hexDigitValue(ch int) int {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0'
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10
	default:
		return 0
	}
}
