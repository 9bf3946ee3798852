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

// Package parser implements the term parser (s-expression style term
// builder over the token stream) and the statement parser (dispatch
// on a leading command atom into one of the four statement variants).
package parser

import (
	"io"

	"github.com/unilog-lang/unilog/internal/report"
	"github.com/unilog-lang/unilog/internal/term"
	"github.com/unilog-lang/unilog/internal/token"
)

// tokenSource is the minimal pull interface the parsers need from the
// lexer: one token per call, io.EOF when the stream is exhausted.
type tokenSource interface {
	Next() (token.Token, error)
}

// termParser reads terms from a tokenSource under one Scope, shared
// across every term-parse call that belongs to a single statement so
// that repeated variable identifiers within that statement denote the
// same logical slot.
type termParser struct {
	toks  tokenSource
	arena *term.Arena
	scope *term.Scope
}

func newTermParser(toks tokenSource, arena *term.Arena, scope *term.Scope) *termParser {
	return &termParser{toks: toks, arena: arena, scope: scope}
}

// parseTerm reads exactly one logical term. inList indicates whether
// a ListClose/ListSeparator encountered as the *leading* token of this
// call is a legal list terminator (only true while parsing inside a
// list's sub-parser) or a top-level parse error.
func (p *termParser) parseTerm(inList bool) (term.Handle, error) {
	tok, err := p.toks.Next()
	if err == io.EOF {
		return 0, report.New(report.MalformedTerm, "unexpected end of input while reading a term")
	}
	if err != nil {
		return 0, err
	}

	switch tok.Kind {
	case token.Atom:
		return p.arena.Atom(tok.Text), nil
	case token.Variable:
		return p.scope.Resolve(tok.Text), nil
	case token.ListOpen:
		return p.parseList()
	case token.ListClose:
		if inList {
			return 0, errListTerminator(tok)
		}
		return 0, report.New(report.MalformedTerm, "unexpected ']'").WithToken("]").WithPos(tok.Pos)
	case token.ListSeparator:
		if inList {
			return 0, errListTerminator(tok)
		}
		return 0, report.New(report.MalformedTerm, "unexpected '|'").WithToken("|").WithPos(tok.Pos)
	case token.Eol:
		return 0, report.New(report.MalformedTerm, "unexpected ';'").WithToken(";").WithPos(tok.Pos)
	default:
		return 0, report.New(report.MalformedTerm, "unrecognized token")
	}
}

// errListTerminator is a private sentinel carried on report.SourceError
// so parseList can tell "this token legally ended the list" apart from
// "parseTerm failed". It reuses SourceError's Kind field as the marker
// (UnexpectedListClose or UnexpectedListSeparator). parseList consumes
// it when it ends the element run; when it is read in place of the
// single tail term after '|' (as in "[a|]" or "[|]"), parseList returns
// it to the caller as the parse error.
func errListTerminator(tok token.Token) *report.SourceError {
	kind := report.MalformedTerm
	if tok.Kind == token.ListClose {
		kind = report.UnexpectedListClose
	} else {
		kind = report.UnexpectedListSeparator
	}
	return &report.SourceError{Kind: kind, Pos: tok.Pos}
}

// parseList repeatedly parses sub-terms into an ordered buffer until a
// sub-parse reads a legal terminator. ListClose terminates with a nil
// tail; ListSeparator requires exactly one more term followed by
// ListClose.
func (p *termParser) parseList() (term.Handle, error) {
	var elems []term.Handle
	for {
		h, err := p.parseTerm(true)
		if se, ok := err.(*report.SourceError); ok {
			switch se.Kind {
			case report.UnexpectedListClose:
				return p.arena.List(elems, p.arena.Nil()), nil
			case report.UnexpectedListSeparator:
				tail, terr := p.parseTerm(true)
				if terr != nil {
					return 0, terr
				}
				closeTok, nerr := p.toks.Next()
				if nerr != nil || closeTok.Kind != token.ListClose {
					return 0, report.New(report.MalformedTerm,
						"expected ']' after list tail").WithPos(closeTok.Pos)
				}
				return p.arena.List(elems, tail), nil
			}
		}
		if err != nil {
			return 0, err
		}
		elems = append(elems, h)
	}
}
