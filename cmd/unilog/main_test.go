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

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandSucceedsOnWellFormedFile(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"testdata/success.ul"})

	require.NoError(t, cmd.Execute())
}

func TestRootCommandFailsOnMalformedFile(t *testing.T) {
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"testdata/malformed.ul"})

	assert.Error(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "failed to execute file")
}

func TestRootCommandGlobExpandsPositionalArgs(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"testdata/*.ul"})

	// success.ul and malformed.ul both match; malformed.ul fails, so
	// the overall run reports failure even though success.ul ran fine.
	assert.Error(t, cmd.Execute())
}

func TestExpandGlobsPassesThroughNonMatchingPaths(t *testing.T) {
	files, err := expandGlobs([]string{"testdata/no-such-file.ul"})
	require.NoError(t, err)
	assert.Equal(t, []string{"testdata/no-such-file.ul"}, files)
}

func TestExpandGlobsExpandsWildcard(t *testing.T) {
	files, err := expandGlobs([]string{"testdata/*.ul"})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
