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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilog-lang/unilog/internal/lexer"
	"github.com/unilog-lang/unilog/internal/report"
	"github.com/unilog-lang/unilog/internal/term"
)

func parseOne(t *testing.T, src string) (*Statement, error) {
	t.Helper()
	return ParseStatement(lexer.New(strings.NewReader(src)))
}

func TestParseAxiomStatement(t *testing.T) {
	stmt, err := parseOne(t, "axiom t1 [a b c];")
	require.NoError(t, err)
	assert.Equal(t, AxiomStatement, stmt.Kind)

	tagView := stmt.Arena.View(stmt.Tag)
	assert.Equal(t, term.KindAtom, tagView.Kind)
	assert.Equal(t, "t1", tagView.Text)
	assert.Equal(t, "[a b c]", stmt.Arena.Print(stmt.Theorem))
}

func TestParseGuideStatement(t *testing.T) {
	stmt, err := parseOne(t, "guide g1 [X] [foo X];")
	require.NoError(t, err)
	assert.Equal(t, GuideStatement, stmt.Kind)
	assert.Equal(t, "[_G0]", stmt.Arena.Print(stmt.Args))
	assert.Equal(t, "[foo _G0]", stmt.Arena.Print(stmt.Guide))
}

func TestParseInferStatement(t *testing.T) {
	stmt, err := parseOne(t, "infer i1 [a] g1;")
	require.NoError(t, err)
	assert.Equal(t, InferStatement, stmt.Kind)
	assert.Equal(t, "[a]", stmt.Arena.Print(stmt.Theorem))
	assert.Equal(t, "g1", stmt.Arena.Print(stmt.Guide))
}

func TestParseReferStatement(t *testing.T) {
	stmt, err := parseOne(t, "refer m1 \"lib/m1.ul\";")
	require.NoError(t, err)
	assert.Equal(t, ReferStatement, stmt.Kind)
	assert.Equal(t, "lib/m1.ul", stmt.Arena.View(stmt.FilePath).Text)
}

func TestParseListTailSyntax(t *testing.T) {
	stmt, err := parseOne(t, "axiom t [a b | T];")
	require.NoError(t, err)
	v := stmt.Arena.View(stmt.Theorem)
	require.Equal(t, term.KindCons, v.Kind)
	assert.Equal(t, "a", stmt.Arena.View(v.Head).Text)
	tail := stmt.Arena.View(v.Tail)
	require.Equal(t, term.KindCons, tail.Kind)
	assert.Equal(t, "b", stmt.Arena.View(tail.Head).Text)
	assert.Equal(t, term.KindVar, stmt.Arena.View(tail.Tail).Kind)
}

func TestParseVariableSharingWithinStatement(t *testing.T) {
	stmt, err := parseOne(t, "axiom t [X X];")
	require.NoError(t, err)
	v := stmt.Arena.View(stmt.Theorem)
	first := stmt.Arena.Resolve(v.Head)
	second := stmt.Arena.Resolve(stmt.Arena.View(v.Tail).Head)
	assert.Equal(t, first, second)
}

func TestParseUnrecognizedCommandFails(t *testing.T) {
	_, err := parseOne(t, "bogus t1 a;")
	require.Error(t, err)
	se, ok := err.(*report.SourceError)
	require.True(t, ok)
	assert.Equal(t, report.InvalidCommand, se.Kind)
}

func TestParseMissingEolFails(t *testing.T) {
	_, err := parseOne(t, "axiom t1 a")
	require.Error(t, err)
	se, ok := err.(*report.SourceError)
	require.True(t, ok)
	assert.Equal(t, report.NoEol, se.Kind)
}

func TestParseExtraTrailingTokenFailsAsMalformed(t *testing.T) {
	_, err := parseOne(t, "axiom t1 a b;")
	require.Error(t, err)
	se, ok := err.(*report.SourceError)
	require.True(t, ok)
	assert.Equal(t, report.MalformedStatement, se.Kind)
}

func TestParseCleanEOFBetweenStatements(t *testing.T) {
	_, err := parseOne(t, "")
	assert.Equal(t, io.EOF, err)
}

func TestParseStatementInReusesArenaAcrossFrames(t *testing.T) {
	arena := term.NewArena()
	lx := lexer.New(strings.NewReader("axiom t1 a; axiom t2 b;"))

	s1, frame1, err := ParseStatementIn(lx, arena)
	require.NoError(t, err)
	assert.Same(t, arena, s1.Arena)
	assert.Equal(t, "a", arena.View(s1.Theorem).Text)
	frame1.Discard()

	s2, frame2, err := ParseStatementIn(lx, arena)
	require.NoError(t, err)
	assert.Same(t, arena, s2.Arena)
	assert.Equal(t, "b", arena.View(s2.Theorem).Text)
	frame2.Discard()

	_, _, err = ParseStatementIn(lx, arena)
	assert.Equal(t, io.EOF, err)
}

func TestParseStatementInDiscardsFrameOnFailure(t *testing.T) {
	arena := term.NewArena()
	lx := lexer.New(strings.NewReader("axiom t1 a"))

	_, frame, err := ParseStatementIn(lx, arena)
	require.Error(t, err)
	assert.Nil(t, frame)
}

func TestParseMultipleStatementsSequentially(t *testing.T) {
	lx := lexer.New(strings.NewReader("axiom t1 a; axiom t2 b;"))
	s1, err := ParseStatement(lx)
	require.NoError(t, err)
	assert.Equal(t, "t1", s1.Arena.View(s1.Tag).Text)

	s2, err := ParseStatement(lx)
	require.NoError(t, err)
	assert.Equal(t, "t2", s2.Arena.View(s2.Tag).Text)

	_, err = ParseStatement(lx)
	assert.Equal(t, io.EOF, err)
}

func TestParseRoundTripThroughPrintAndEqualForms(t *testing.T) {
	stmt, err := parseOne(t, "axiom t [X X Y | Z];")
	require.NoError(t, err)
	printed := stmt.Arena.Print(stmt.Theorem)

	reparsed, err := parseOne(t, "axiom t2 "+printed+";")
	require.NoError(t, err)

	assert.True(t, term.EqualForms(stmt.Arena, stmt.Theorem, reparsed.Arena, reparsed.Theorem))
}
