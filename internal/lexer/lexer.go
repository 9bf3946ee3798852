// Copyright 2025 The Unilog Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package lexer turns a byte stream into the token sequence defined
// by package token: a pull-based producer of one token per call to
// Next, leaving the stream positioned just past the consumed token.
package lexer

import (
	"bufio"
	"fmt"
	"io"

	"github.com/unilog-lang/unilog/internal/report"
	"github.com/unilog-lang/unilog/internal/token"
)

// Lexer reads tokens from an underlying byte stream. It is not safe
// for concurrent use; see internal/single for the enforcement of
// unilog's single-threaded execution model at the executor layer.
type Lexer struct {
	r         *bufio.Reader
	line, col int
}

// New wraps r in a Lexer. r is read byte-at-a-time through a
// bufio.Reader rather than being buffered up front, so a Lexer works
// equally well over a small in-memory string or a large file.
func New(r io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(r), line: 1, col: 1}
}

// Next produces the next token. When the stream is exhausted after
// skipping any trailing whitespace and comments, Next returns
// io.EOF — a recoverable "no more tokens" signal distinct from a
// fatal *report.SourceError.
func (l *Lexer) Next() (token.Token, error) {
	if err := l.skipWhitespaceAndComments(); err != nil {
		return token.Token{}, err
	}

	b, err := l.peek()
	if err == io.EOF {
		return token.Token{}, io.EOF
	}
	pos := report.Pos{Line: l.line, Col: l.col}

	switch {
	case b == ';':
		l.advance()
		return token.Token{Kind: token.Eol, Pos: pos}, nil
	case b == '|':
		l.advance()
		return token.Token{Kind: token.ListSeparator, Pos: pos}, nil
	case b == '[':
		l.advance()
		return token.Token{Kind: token.ListOpen, Pos: pos}, nil
	case b == ']':
		l.advance()
		return token.Token{Kind: token.ListClose, Pos: pos}, nil
	case isUpper(b) || b == '_':
		text := l.readIdentifier()
		return token.Token{Kind: token.Variable, Text: text, Pos: pos}, nil
	case b == '\'' || b == '"':
		text, lexErr := l.readQuotedAtom(b)
		if lexErr != nil {
			return token.Token{}, lexErr.WithPos(pos)
		}
		return token.Token{Kind: token.Atom, Text: text, Pos: pos}, nil
	case isLower(b):
		text := l.readIdentifier()
		return token.Token{Kind: token.Atom, Text: text, Pos: pos}, nil
	default:
		l.advance()
		return token.Token{}, report.New(report.InvalidLexeme,
			fmt.Sprintf("unexpected byte %q", b)).WithPos(pos)
	}
}

func (l *Lexer) skipWhitespaceAndComments() error {
	for {
		b, err := l.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch {
		case isSpace(b):
			l.advance()
		case b == '#':
			for {
				b, err := l.peek()
				if err == io.EOF || b == '\n' {
					break
				}
				l.advance()
			}
		default:
			return nil
		}
	}
}

// readIdentifier accumulates the run of [A-Za-z0-9_] starting at the
// current position, stopping (without consuming) on any other byte,
// including whitespace, structural tokens, or end-of-stream.
func (l *Lexer) readIdentifier() string {
	var buf []byte
	for {
		b, err := l.peek()
		if err != nil || !isIdentByte(b) {
			break
		}
		buf = append(buf, b)
		l.advance()
	}
	return string(buf)
}

// readQuotedAtom reads the body of a quoted atom opened by quote,
// applying escape processing, and consumes the matching closing
// quote.
func (l *Lexer) readQuotedAtom(quote byte) (string, *report.SourceError) {
	l.advance() // consume opening quote
	var buf []byte
	for {
		b, err := l.readByte()
		if err == io.EOF {
			return "", report.New(report.UnterminatedQuote, "end of input before closing quote")
		}
		if b == '\n' {
			return "", report.New(report.UnterminatedQuote, "literal newline in quoted atom")
		}
		if b == quote {
			return string(buf), nil
		}
		if b == '\\' {
			decoded, escErr := l.readEscape()
			if escErr != nil {
				return "", escErr
			}
			buf = append(buf, decoded)
			continue
		}
		buf = append(buf, b)
	}
}

var escapeTable = map[byte]byte{
	'0': 0x00,
	'a': 0x07,
	'b': 0x08,
	't': 0x09,
	'n': 0x0A,
	'v': 0x0B,
	'f': 0x0C,
	'r': 0x0D,
}

// readEscape decodes one backslash escape, leaving the stream just
// past it. Per the escape set: named letters map to their control
// byte, \xHH maps to the byte value of two hex digits, and any other
// byte maps to itself.
func (l *Lexer) readEscape() (byte, *report.SourceError) {
	b, err := l.readByte()
	if err == io.EOF {
		return 0, report.New(report.UnterminatedQuote, "end of input after escape introducer")
	}
	if mapped, ok := escapeTable[b]; ok {
		return mapped, nil
	}
	if b == 'x' {
		hi, err1 := l.readByte()
		lo, err2 := l.readByte()
		if err1 == io.EOF || err2 == io.EOF || !isHexDigit(hi) || !isHexDigit(lo) {
			return 0, report.New(report.BadEscape, "\\x escape requires two hex digits")
		}
		return hexValue(hi)<<4 | hexValue(lo), nil
	}
	return b, nil
}

func (l *Lexer) peek() (byte, error) {
	b, err := l.r.Peek(1)
	if err != nil {
		return 0, io.EOF
	}
	return b[0], nil
}

func (l *Lexer) readByte() (byte, error) {
	b, err := l.r.ReadByte()
	if err != nil {
		return 0, io.EOF
	}
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b, nil
}

func (l *Lexer) advance() {
	_, _ = l.readByte()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentByte(b byte) bool {
	return isUpper(b) || isLower(b) || isDigit(b) || b == '_'
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexValue(b byte) byte {
	switch {
	case isDigit(b):
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
