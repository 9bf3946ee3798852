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

// Package report defines unilog's closed error taxonomy and the
// reporter/handler pair used to surface failures from the lexer,
// parsers, and executor to a file-level driver.
package report

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// Kind is a closed enumeration of the error kinds named in the
// front-end's error taxonomy: lex errors, parse errors, and execution
// errors, plus the errors propagated from the unification substrate.
type Kind int

const (
	// Lex errors.
	UnterminatedQuote Kind = iota
	InvalidLexeme
	BadEscape

	// Parse errors.
	MalformedTerm
	UnexpectedListClose
	UnexpectedListSeparator
	InvalidCommand
	MalformedStatement
	NoEol

	// Execution errors.
	NotAFile
	FileOpenFailed
	DeclTheoremFailed
	DeclRedirFailed
	InferenceFailed

	// Engine errors, propagated from the unification substrate.
	UnifyFailed
	ConsListFailed
	GetAtomCharsFailed
	PutAtomCharsFailed
	PutNilFailed
)

func (k Kind) String() string {
	switch k {
	case UnterminatedQuote:
		return "UnterminatedQuote"
	case InvalidLexeme:
		return "InvalidLexeme"
	case BadEscape:
		return "BadEscape"
	case MalformedTerm:
		return "MalformedTerm"
	case UnexpectedListClose:
		return "UnexpectedListClose"
	case UnexpectedListSeparator:
		return "UnexpectedListSeparator"
	case InvalidCommand:
		return "InvalidCommand"
	case MalformedStatement:
		return "MalformedStatement"
	case NoEol:
		return "NoEol"
	case NotAFile:
		return "NotAFile"
	case FileOpenFailed:
		return "FileOpenFailed"
	case DeclTheoremFailed:
		return "DeclTheoremFailed"
	case DeclRedirFailed:
		return "DeclRedirFailed"
	case InferenceFailed:
		return "InferenceFailed"
	case UnifyFailed:
		return "UnifyFailed"
	case ConsListFailed:
		return "ConsListFailed"
	case GetAtomCharsFailed:
		return "GetAtomCharsFailed"
	case PutAtomCharsFailed:
		return "PutAtomCharsFailed"
	case PutNilFailed:
		return "PutNilFailed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Pos is a line/column carrier. Per spec, unilog does not track
// source locations beyond the failing token itself; Pos is that
// token's own position, not a general span.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// SourceError is the single error type returned by the lexer, term
// parser, statement parser, and executor. Kind is always one of the
// closed enum values above; Detail is a short human phrase and Token
// is the raw text of the offending token, if any.
type SourceError struct {
	Kind   Kind
	Pos    Pos
	Detail string
	Token  string
}

func (e *SourceError) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" (near %q)", truncate(e.Token, 40))
	}
	if e.Pos.Line != 0 {
		msg = fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

// truncate shortens s to at most width grapheme clusters, appending
// an ellipsis if it was cut. Using grapheme clusters (not bytes or
// runes) keeps multi-byte atom text from being sliced mid-character
// when rendered in the single diagnostic line required by the error
// handling design.
func truncate(s string, width int) string {
	if uniseg.GraphemeClusterCount(s) <= width {
		return s
	}
	g := uniseg.NewGraphemes(s)
	var out []byte
	for n := 0; n < width && g.Next(); n++ {
		out = append(out, []byte(g.Str())...)
	}
	return string(out) + "…"
}

// New builds a SourceError of the given kind with a detail phrase.
func New(kind Kind, detail string) *SourceError {
	return &SourceError{Kind: kind, Detail: detail}
}

// WithToken returns a copy of e with Token set, mirroring
// ErrorWithPos's builder style.
func (e *SourceError) WithToken(tok string) *SourceError {
	cp := *e
	cp.Token = tok
	return &cp
}

// WithPos returns a copy of e with Pos set.
func (e *SourceError) WithPos(pos Pos) *SourceError {
	cp := *e
	cp.Pos = pos
	return &cp
}
