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

package parser

import (
	"io"

	"github.com/unilog-lang/unilog/internal/report"
	"github.com/unilog-lang/unilog/internal/term"
	"github.com/unilog-lang/unilog/internal/token"
)

// command is the fixed set of leading atoms a statement may open with,
// together with the positional term arity each one requires.
type command struct {
	kind  StatementKind
	arity int
}

var commands = map[string]command{
	"axiom": {AxiomStatement, 2}, // tag, theorem
	"guide": {GuideStatement, 3}, // tag, args, guide-body
	"infer": {InferStatement, 3}, // tag, theorem, guide-body
	"refer": {ReferStatement, 2}, // tag, file-path
}

// ParseStatement reads one complete statement, ending in an Eol token
// which it consumes. Every call opens exactly one fresh arena and
// scope: a statement's variables never escape it, and the returned
// Statement.Arena is the only arena its handles are valid in. On any
// failure the caller should treat the whole statement as void — there
// is no partial statement to recover.
//
// io.EOF from the underlying token source (with no tokens consumed
// yet) is returned verbatim so the driver loop can distinguish a
// clean end of file from a malformed final statement.
func ParseStatement(toks tokenSource) (*Statement, error) {
	stmt, _, err := ParseStatementIn(toks, term.NewArena())
	return stmt, err
}

// ParseStatementIn parses one statement the same way ParseStatement
// does, but within a Frame opened on the caller-supplied arena instead
// of a brand new one. This is what lets a driver looping over many
// statements from the same file (internal/executor's refer loop) reuse
// one long-lived Arena and discard each statement's Frame the moment
// it is done with it, rather than allocate (and wait on the garbage
// collector to reclaim) a fresh Arena per statement.
//
// On success, the returned Frame is open and must eventually be
// discarded by the caller — typically right after the statement's term
// handles have been consumed (e.g. by Executor.Execute), since nothing
// about the returned Statement survives its Frame being discarded. On
// failure the Frame is discarded before returning, and the returned
// Frame is nil.
func ParseStatementIn(toks tokenSource, arena *term.Arena) (*Statement, *term.Frame, error) {
	frame := arena.OpenFrame()

	stmt, err := parseStatementBody(toks, arena)
	if err != nil {
		frame.Discard()
		return nil, nil, err
	}
	return stmt, frame, nil
}

func parseStatementBody(toks tokenSource, arena *term.Arena) (*Statement, error) {
	lead, err := toks.Next()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	if lead.Kind != token.Atom {
		return nil, report.New(report.InvalidCommand, "statement must begin with a command atom").
			WithPos(lead.Pos)
	}
	cmd, ok := commands[lead.Text]
	if !ok {
		return nil, report.New(report.InvalidCommand, "unrecognized command '"+lead.Text+"'").
			WithToken(lead.Text).WithPos(lead.Pos)
	}

	scope := term.NewScope(arena)
	tp := newTermParser(toks, arena, scope)

	args := make([]term.Handle, cmd.arity)
	for i := 0; i < cmd.arity; i++ {
		h, terr := tp.parseTerm(false)
		if terr != nil {
			return nil, terr
		}
		args[i] = h
	}

	eol, terr := toks.Next()
	if terr == io.EOF {
		return nil, report.New(report.NoEol, "statement must be terminated by ';'").WithPos(eol.Pos)
	}
	if terr != nil {
		return nil, terr
	}
	if eol.Kind != token.Eol {
		return nil, report.New(report.MalformedStatement, "unexpected token after statement arguments; expected ';'").
			WithToken(eol.Text).WithPos(eol.Pos)
	}

	stmt := &Statement{Kind: cmd.kind, Arena: arena, Tag: args[0]}
	switch cmd.kind {
	case AxiomStatement:
		stmt.Theorem = args[1]
	case GuideStatement:
		stmt.Args = args[1]
		stmt.Guide = args[2]
	case InferStatement:
		stmt.Theorem = args[1]
		stmt.Guide = args[2]
	case ReferStatement:
		stmt.FilePath = args[1]
	}
	return stmt, nil
}
