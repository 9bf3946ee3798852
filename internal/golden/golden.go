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

// Package golden provides a framework for writing file-based golden
// tests over a corpus of `.ul` fixtures: each input file's expected
// execution output is stored alongside it, and Corpus.Run diffs the
// observed output against it.
package golden

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus: a way of doing table-driven
// tests where the "table" is a directory of fixture files on disk.
type Corpus struct {
	// Root is the test data directory, relative to the directory of
	// the file that calls Run.
	Root string

	// Refresh names an environment variable holding a glob of test
	// names to regenerate expected output for, instead of comparing.
	Refresh string

	// Extensions are the file extensions (without a dot) that define
	// a test case, e.g. "ul".
	Extensions []string

	// Outputs are the expected side files for each test case, found
	// by appending ".<Extension>" to the input file's own path.
	Outputs []Output
}

// Output is one expected side file of a test case.
type Output struct {
	// Extension is appended to the test case's own path to form the
	// golden file's path, e.g. "stdout" for "foo.ul.stdout".
	Extension string

	// Compare defaults to CompareAndDiff if nil.
	Compare CompareFunc
}

// CompareFunc compares got against want, returning an empty string on
// a match or a human-readable diff otherwise.
type CompareFunc func(got, want string) string

// Run executes a golden test: test is called once per fixture file
// found under c.Root, and is expected to populate outputs (one slot
// per c.Outputs, in order) with what that fixture actually produced.
func (c Corpus) Run(t *testing.T, test func(t *testing.T, path, text string, outputs []string)) {
	root := filepath.Join(callerDir(), c.Root)

	var tests []string
	err := filepath.Walk(root, func(p string, fi fs.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		for _, extn := range c.Extensions {
			if strings.HasSuffix(p, "."+extn) {
				tests = append(tests, p)
				break
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: error walking testdata %q: %v", root, err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
	}

	for _, path := range tests {
		testName, _ := filepath.Rel(root, path)
		testName = filepath.ToSlash(testName)

		t.Run(testName, func(t *testing.T) {
			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error reading fixture %q: %v", path, err)
			}

			results := make([]string, len(c.Outputs))
			panicked, stack := catch(func() { test(t, path, string(input), results) })
			if panicked != nil {
				t.Logf("test panicked: %v\n%s", panicked, stack)
				t.Fail()
			}

			matchesRefresh, _ := doublestar.Match(refresh, testName)
			for i, output := range c.Outputs {
				if panicked != nil && results[i] == "" {
					continue
				}
				goldenPath := path + "." + output.Extension

				if refresh == "" || !matchesRefresh {
					want, err := os.ReadFile(goldenPath)
					if err != nil && !errors.Is(err, os.ErrNotExist) {
						t.Fatalf("golden: error reading golden file %q: %v", goldenPath, err)
					}
					cmp := output.Compare
					if cmp == nil {
						cmp = CompareAndDiff
					}
					if diff := cmp(results[i], string(want)); diff != "" {
						t.Errorf("output mismatch for %q:\n%s", goldenPath, diff)
					}
					continue
				}

				if results[i] == "" {
					if err := os.Remove(goldenPath); err != nil && !errors.Is(err, os.ErrNotExist) {
						t.Fatalf("golden: error deleting golden file %q: %v", goldenPath, err)
					}
					continue
				}
				if err := os.WriteFile(goldenPath, []byte(results[i]), 0o600); err != nil {
					t.Fatalf("golden: error writing golden file %q: %v", goldenPath, err)
				}
			}
		})
	}
}

// CompareAndDiff is a CompareFunc returning a unified diff of got vs
// want when they differ.
func CompareAndDiff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// callerDir returns the directory of the file that called Run, so
// Corpus.Root can be given relative to the _test.go file rather than
// to whatever directory `go test` happens to run from.
func callerDir() string {
	_, file, _, ok := runtime.Caller(2)
	if !ok {
		panic("golden: could not determine calling test file's directory")
	}
	return filepath.Dir(file)
}

func catch(cb func()) (recovered any, stack []byte) {
	defer func() {
		recovered = recover()
		if recovered != nil {
			stack = debug.Stack()
		}
	}()
	cb()
	return
}
