package hipack

import (
	"bytes"
	"errors"
	"io"
)

// Decoder reads a single HiPack document from a Source. Unlike
// encoding/json's Decoder it does not support decoding a stream of
// multiple documents back to back: a HiPack stream carries exactly one
// top-level message, same as the reference hipack_read.
type Decoder struct {
	src Source
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: NewReaderSource(r)}
}

// NewDecoderFromSource returns a Decoder reading from an arbitrary Source,
// for callers that need a character source other than an io.Reader.
func NewDecoderFromSource(src Source) *Decoder {
	return &Decoder{src: src}
}

// Decode reads and parses the whole document, returning its top-level
// dict.
func (d *Decoder) Decode() (*Dict, error) {
	return parseFromSource(d.src)
}

// Parse reads and parses a whole HiPack document from r.
func Parse(r io.Reader) (*Dict, error) {
	return parseFromSource(NewReaderSource(r))
}

// Unmarshal parses a HiPack document held entirely in memory.
func Unmarshal(data []byte) (*Dict, error) {
	return parseFromSource(NewReaderSource(bytes.NewReader(data)))
}

func parseFromSource(src Source) (*Dict, error) {
	lx := newLexer(src)
	if err := lx.advance(); err != nil {
		return nil, newParseError(err, lx)
	}
	p := &parser{lex: lx}
	dict, err := p.parseMessage()
	if err != nil {
		return nil, newParseError(err, lx)
	}
	return dict, nil
}

func newParseError(err error, lx *lexer) *ParseError {
	pe := &ParseError{Line: lx.line, Column: lx.col}
	if errors.Is(err, ErrIO) {
		pe.Message = ErrIO.Error()
		pe.Err = ErrIO
	} else {
		pe.Message = err.Error()
	}
	return pe
}
