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

package lexer

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unilog-lang/unilog/internal/report"
	"github.com/unilog-lang/unilog/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, error) {
	t.Helper()
	l := New(strings.NewReader(src))
	var toks []token.Token
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return toks, nil
		}
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func TestLexStructuralTokens(t *testing.T) {
	toks, err := lexAll(t, "; | [ ]")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, token.Eol, toks[0].Kind)
	assert.Equal(t, token.ListSeparator, toks[1].Kind)
	assert.Equal(t, token.ListOpen, toks[2].Kind)
	assert.Equal(t, token.ListClose, toks[3].Kind)
}

func TestLexVariableAndAtom(t *testing.T) {
	toks, err := lexAll(t, "Xyz_1 abc_2")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Variable, toks[0].Kind)
	assert.Equal(t, "Xyz_1", toks[0].Text)
	assert.Equal(t, token.Atom, toks[1].Kind)
	assert.Equal(t, "abc_2", toks[1].Text)
}

func TestLexUnderscoreIsVariable(t *testing.T) {
	toks, err := lexAll(t, "_ _foo")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Variable, toks[0].Kind)
	assert.Equal(t, "_", toks[0].Text)
	assert.Equal(t, token.Variable, toks[1].Kind)
	assert.Equal(t, "_foo", toks[1].Text)
}

func TestLexQuotedAtomEscapes(t *testing.T) {
	toks, err := lexAll(t, `'hi\n\x41'`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.Atom, toks[0].Kind)
	assert.Equal(t, "hi\nA", toks[0].Text)
}

func TestLexQuotedAtomEscapeFallthrough(t *testing.T) {
	toks, err := lexAll(t, `"a\qb"`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "aqb", toks[0].Text)
}

func TestLexEmptyQuotedAtom(t *testing.T) {
	toks, err := lexAll(t, `''`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "", toks[0].Text)
}

func TestLexDoubleAndSingleQuotesIndistinguishable(t *testing.T) {
	single, err := lexAll(t, `'abc'`)
	require.NoError(t, err)
	double, err := lexAll(t, `"abc"`)
	require.NoError(t, err)
	assert.Equal(t, single, double)
}

func TestLexUnterminatedQuote(t *testing.T) {
	_, err := lexAll(t, `'abc`)
	require.Error(t, err)
	var sourceErr *report.SourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.Equal(t, report.UnterminatedQuote, sourceErr.Kind)
}

func TestLexUnterminatedQuoteOnNewline(t *testing.T) {
	_, err := lexAll(t, "'abc\ndef'")
	require.Error(t, err)
	var sourceErr *report.SourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.Equal(t, report.UnterminatedQuote, sourceErr.Kind)
}

func TestLexBadHexEscape(t *testing.T) {
	_, err := lexAll(t, `'\xzz'`)
	require.Error(t, err)
	var sourceErr *report.SourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.Equal(t, report.BadEscape, sourceErr.Kind)
}

func TestLexInvalidLexeme(t *testing.T) {
	_, err := lexAll(t, "@")
	require.Error(t, err)
	var sourceErr *report.SourceError
	require.True(t, errors.As(err, &sourceErr))
	assert.Equal(t, report.InvalidLexeme, sourceErr.Kind)
}

func TestLexCommentsAndWhitespaceAreIdempotent(t *testing.T) {
	base, err := lexAll(t, "axiom a0 x ;")
	require.NoError(t, err)

	padded, err := lexAll(t, "  axiom  # a comment\n a0\tx\n;  # trailing\n")
	require.NoError(t, err)

	require.Len(t, padded, len(base))
	for i := range base {
		assert.Equal(t, base[i].Kind, padded[i].Kind)
		assert.Equal(t, base[i].Text, padded[i].Text)
	}
}

func TestLexCommentRunsToEOFWithoutTrailingNewline(t *testing.T) {
	toks, err := lexAll(t, "a # no newline here")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "a", toks[0].Text)
}

func TestLexHashInsideQuotedAtomIsNotAComment(t *testing.T) {
	toks, err := lexAll(t, `'a # b'`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, "a # b", toks[0].Text)
}

// TestLexRoundTrip exercises the universal lexer property: relexing
// the canonical rendering of a token sequence reproduces it.
func TestLexRoundTrip(t *testing.T) {
	toks, err := lexAll(t, `axiom a0 [P P|T] 'weird atom' ;`)
	require.NoError(t, err)

	var sb strings.Builder
	for i, tok := range toks {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Canonical())
	}

	relexed, err := lexAll(t, sb.String())
	require.NoError(t, err)
	require.Equal(t, len(toks), len(relexed))
	for i := range toks {
		assert.Equal(t, toks[i].Kind, relexed[i].Kind)
		assert.Equal(t, toks[i].Text, relexed[i].Text)
	}
}
