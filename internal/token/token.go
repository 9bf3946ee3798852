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

// Package token defines the closed set of lexical categories the
// lexer produces: eol, list-open, list-close, list-separator,
// variable, and atom.
package token

import (
	"fmt"

	"github.com/unilog-lang/unilog/internal/report"
)

// Kind is the closed set of token kinds. There is no "other" case:
// any byte shape that does not map to one of these fails lexing
// before a token is produced.
type Kind int

const (
	Eol Kind = iota
	ListOpen
	ListClose
	ListSeparator
	Variable
	Atom
)

func (k Kind) String() string {
	switch k {
	case Eol:
		return "eol"
	case ListOpen:
		return "list-open"
	case ListClose:
		return "list-close"
	case ListSeparator:
		return "list-separator"
	case Variable:
		return "variable"
	case Atom:
		return "atom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is a tagged value drawn from the closed Kind set above.
// Variable and Atom carry Text (the identifier or the unescaped atom
// body, respectively); the structural kinds carry no text. Pos is the
// position of the token's first byte, used only for diagnostics.
type Token struct {
	Kind Kind
	Text string
	Pos  report.Pos
}

// Canonical renders t in the concrete syntax from which it would
// relex to the same token, used by the lexer's round-trip property
// tests. Atom text that is not a bare unquoted lexeme is rendered
// quoted.
func (t Token) Canonical() string {
	switch t.Kind {
	case Eol:
		return ";"
	case ListOpen:
		return "["
	case ListClose:
		return "]"
	case ListSeparator:
		return "|"
	case Variable:
		return t.Text
	case Atom:
		if isBareAtom(t.Text) {
			return t.Text
		}
		return quoteAtom(t.Text)
	default:
		return ""
	}
}

func isBareAtom(s string) bool {
	if s == "" {
		return false
	}
	if s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_'
		if !isAlnum {
			return false
		}
	}
	return true
}

func quoteAtom(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '\'')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\'':
			out = append(out, '\\', '\'')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		default:
			out = append(out, c)
		}
	}
	out = append(out, '\'')
	return string(out)
}
