package hipack

import "strconv"

// parser implements the recursive-descent grammar described by the
// reference parse_message/parse_keyval_items/parse_value family of
// functions, generalized with the annotation grammar those functions don't
// have (HiPack values may carry zero or more ":name" annotations right
// before the value itself).
type parser struct {
	lex *lexer
}

func (p *parser) look() int { return p.lex.look }

func (p *parser) advance() error { return p.lex.advance() }

func (p *parser) skipWhitespace() error { return p.lex.skipWhitespace() }

// expectChar consumes ch if it is the current lookahead, returning errMsg
// otherwise. It is the Go counterpart of the reference matchchar helper.
func (p *parser) expectChar(ch byte, errMsg error) error {
	if p.look() != int(ch) {
		return errMsg
	}
	return p.advance()
}

// parseMessage parses a whole document: either a brace-delimited dict, or
// a bare sequence of key-value items running to end of input.
func (p *parser) parseMessage() (*Dict, error) {
	if err := p.skipWhitespace(); err != nil {
		return nil, err
	}
	if p.look() == chEOF {
		return NewDict(), nil
	}
	if p.look() == '{' {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.skipWhitespace(); err != nil {
			return nil, err
		}
		dict, err := p.parseKeyValueItems('}')
		if err != nil {
			return nil, err
		}
		if err := p.expectChar('}', errUnterminatedMessage); err != nil {
			return nil, err
		}
		return dict, nil
	}
	return p.parseKeyValueItems(chEOF)
}

// parseKeyValueItems parses "key sep annotations* value" items separated
// by commas and/or whitespace, until eos (either '}' or chEOF) is reached.
func (p *parser) parseKeyValueItems(eos int) (*Dict, error) {
	dict := NewDict()
	for p.look() != eos {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, errMissingDictKey
		}
		if err := p.parseSeparator(); err != nil {
			return nil, err
		}
		val, err := p.parseAnnotatedValue()
		if err != nil {
			return nil, err
		}
		dict.Set(key, val)

		if p.look() == ',' {
			if err := p.advance(); err != nil {
				return nil, err
			}
		} else if p.look() != eos && !isWhitespace(p.look()) {
			break
		}
		if err := p.skipWhitespace(); err != nil {
			return nil, err
		}
	}
	return dict, nil
}

// parseKey reads a bare key: one or more bytes that aren't whitespace,
// '[', ']', '{', '}', ':', or ','.
func (p *parser) parseKey() (string, error) {
	var buf []byte
	for isKeyChar(p.look()) {
		buf = append(buf, byte(p.look()))
		if err := p.advance(); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}

// parseSeparator consumes the separator between a key and its value: a
// ':' (optionally followed by whitespace), bare whitespace, or nothing at
// all when the value is a list or dict (those are self-delimiting).
func (p *parser) parseSeparator() error {
	gotSeparator := false
	if isWhitespace(p.look()) {
		gotSeparator = true
		if err := p.skipWhitespace(); err != nil {
			return err
		}
	}
	switch p.look() {
	case ':':
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.skipWhitespace(); err != nil {
			return err
		}
		gotSeparator = true
	case '{', '[':
		gotSeparator = true
	}
	if !gotSeparator {
		return errMissingSeparator
	}
	return nil
}

// parseAnnotatedValue parses zero or more ':' NAME annotation groups
// followed by the value they annotate.
func (p *parser) parseAnnotatedValue() (Value, error) {
	var names []string
	for p.look() == ':' {
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		name, err := p.parseKey()
		if err != nil {
			return Value{}, err
		}
		if name == "" {
			return Value{}, errUnexpectedInput
		}
		for _, n := range names {
			if n == name {
				return Value{}, errDuplicateAnnotation
			}
		}
		names = append(names, name)
		if err := p.skipWhitespace(); err != nil {
			return Value{}, err
		}
	}

	val, err := p.parseValue()
	if err != nil {
		return Value{}, err
	}
	for _, n := range names {
		val = val.WithAnnotation(n)
	}
	return val, nil
}

func (p *parser) parseValue() (Value, error) {
	switch {
	case p.look() == '"':
		return p.parseString()
	case p.look() == '[':
		return p.parseList()
	case p.look() == '{':
		return p.parseDict()
	case p.look() == 'T' || p.look() == 't' || p.look() == 'F' || p.look() == 'f':
		return p.parseBool()
	default:
		return p.parseNumber()
	}
}

func (p *parser) parseString() (Value, error) {
	if p.look() != '"' {
		return Value{}, errUnexpectedInput
	}
	// The string body is read without comment skipping: a '#' inside a
	// string is an ordinary byte.
	if err := p.lex.advanceRaw(); err != nil {
		return Value{}, err
	}

	var buf []byte
	for p.look() != '"' && p.look() != chEOF {
		ch := p.look()
		if ch == '\\' {
			if err := p.lex.advanceRaw(); err != nil {
				return Value{}, err
			}
			switch p.look() {
			case '"':
				ch = '"'
			case '\\':
				ch = '\\'
			case 'n':
				ch = '\n'
			case 'r':
				ch = '\r'
			case 't':
				ch = '\t'
			default:
				hi := p.look()
				if !isHexDigit(hi) {
					return Value{}, errInvalidEscape
				}
				if err := p.lex.advanceRaw(); err != nil {
					return Value{}, err
				}
				lo := p.look()
				if !isHexDigit(lo) {
					return Value{}, errInvalidEscape
				}
				ch = hexDigitValue(hi)*16 + hexDigitValue(lo)
			}
		}
		buf = append(buf, byte(ch))
		if err := p.lex.advanceRaw(); err != nil {
			return Value{}, err
		}
	}
	if err := p.expectChar('"', errUnterminatedString); err != nil {
		return Value{}, err
	}
	return Str(string(buf)), nil
}

func (p *parser) parseList() (Value, error) {
	if err := p.advance(); err != nil { // consume '['
		return Value{}, err
	}
	if err := p.skipWhitespace(); err != nil {
		return Value{}, err
	}

	lst := NewList()
	for p.look() != ']' {
		val, err := p.parseAnnotatedValue()
		if err != nil {
			return Value{}, err
		}
		lst.Append(val)

		gotWhitespace := isWhitespace(p.look())
		if err := p.skipWhitespace(); err != nil {
			return Value{}, err
		}
		if p.look() == ',' {
			if err := p.advance(); err != nil {
				return Value{}, err
			}
		} else if !gotWhitespace && !isWhitespace(p.look()) {
			break
		}
		if err := p.skipWhitespace(); err != nil {
			return Value{}, err
		}
	}

	if err := p.expectChar(']', errUnterminatedList); err != nil {
		return Value{}, err
	}
	return ListValue(lst), nil
}

func (p *parser) parseDict() (Value, error) {
	if err := p.advance(); err != nil { // consume '{'
		return Value{}, err
	}
	if err := p.skipWhitespace(); err != nil {
		return Value{}, err
	}
	dict, err := p.parseKeyValueItems('}')
	if err != nil {
		return Value{}, err
	}
	if err := p.expectChar('}', errUnterminatedDict); err != nil {
		return Value{}, err
	}
	return DictValue(dict), nil
}

func (p *parser) parseBool() (Value, error) {
	switch p.look() {
	case 'T', 't':
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		if err := p.expectChar('r', errInvalidBool); err != nil {
			return Value{}, err
		}
		if err := p.expectChar('u', errInvalidBool); err != nil {
			return Value{}, err
		}
		if err := p.expectChar('e', errInvalidBool); err != nil {
			return Value{}, err
		}
		return Bool(true), nil
	case 'F', 'f':
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		if err := p.expectChar('a', errInvalidBool); err != nil {
			return Value{}, err
		}
		if err := p.expectChar('l', errInvalidBool); err != nil {
			return Value{}, err
		}
		if err := p.expectChar('s', errInvalidBool); err != nil {
			return Value{}, err
		}
		if err := p.expectChar('e', errInvalidBool); err != nil {
			return Value{}, err
		}
		return Bool(false), nil
	default:
		return Value{}, errInvalidBool
	}
}

// parseNumber ports parse_number's sub-state machine: an optional sign,
// then either a "0x"/"0X" hex integer, a "0" followed by octal digits
// 1-7, or a decimal integer/float, tracking at most one '.' and one
// exponent marker for the decimal case. Unlike the reference
// implementation (which has a TODO acknowledging it truncates silently on
// overflow) out-of-range integers are a hard error here.
func (p *parser) parseNumber() (Value, error) {
	var buf []byte

	if p.look() == '+' || p.look() == '-' {
		buf = append(buf, byte(p.look()))
		if err := p.advance(); err != nil {
			return Value{}, err
		}
	}

	isHex, isOctal := false, false
	if p.look() == '0' {
		buf = append(buf, '0')
		if err := p.advance(); err != nil {
			return Value{}, err
		}
		if p.look() == 'x' || p.look() == 'X' {
			buf = append(buf, byte(p.look()))
			if err := p.advance(); err != nil {
				return Value{}, err
			}
			isHex = true
		} else if isOctalNonzeroDigit(p.look()) {
			isOctal = true
		}
	}

	dotSeen, expSeen := false, false
	for isNumberChar(p.look()) {
		if !isHex && (p.look() == 'e' || p.look() == 'E') {
			if expSeen {
				return Value{}, errInvalidNumber
			}
			expSeen = true
			buf = append(buf, byte(p.look()))
			if err := p.advance(); err != nil {
				return Value{}, err
			}
			if p.look() == '+' || p.look() == '-' {
				buf = append(buf, byte(p.look()))
				if err := p.advance(); err != nil {
					return Value{}, err
				}
			}
			continue
		}

		if p.look() == '.' {
			if dotSeen || isHex || isOctal {
				return Value{}, errInvalidNumber
			}
			dotSeen = true
		}
		if p.look() == '-' || p.look() == '+' {
			return Value{}, errInvalidNumber
		}
		buf = append(buf, byte(p.look()))
		if err := p.advance(); err != nil {
			return Value{}, err
		}
	}

	if len(buf) == 0 {
		return Value{}, errInvalidNumber
	}
	numStr := string(buf)

	switch {
	case isHex:
		if dotSeen || expSeen {
			return Value{}, errInvalidNumber
		}
		return p.convertHexInteger(numStr)
	case isOctal:
		if dotSeen || expSeen {
			return Value{}, errInvalidNumber
		}
		return convertInteger(numStr, 8)
	case dotSeen || expSeen:
		f, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return Value{}, errInvalidNumber
		}
		return Float(f), nil
	default:
		return convertInteger(numStr, 10)
	}
}

func convertInteger(numStr string, base int) (Value, error) {
	v, err := strconv.ParseInt(numStr, base, 32)
	if err != nil {
		return Value{}, errInvalidNumber
	}
	return Int(int32(v)), nil
}

// convertHexInteger strips the "0x"/"0X" marker (keeping any leading sign)
// before delegating to strconv, since strconv.ParseInt with an explicit
// non-zero base does not itself accept that prefix.
func (p *parser) convertHexInteger(numStr string) (Value, error) {
	sign := ""
	body := numStr
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		sign = body[:1]
		body = body[1:]
	}
	if len(body) >= 2 && body[0] == '0' && (body[1] == 'x' || body[1] == 'X') {
		body = body[2:]
	}
	v, err := strconv.ParseInt(sign+body, 16, 32)
	if err != nil {
		return Value{}, errInvalidNumber
	}
	return Int(int32(v)), nil
}
