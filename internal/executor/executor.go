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

// Package executor walks a sequence of statements against a
// module-path stack, driving side effects on the fact store and
// prover. refer recursion is not cycle-checked: a pathological
// self-referential chain of refer statements recurses until Go's
// goroutine stack is exhausted, exactly as the system this was built
// from leaves it unchecked.
package executor

import (
	"io"
	"os"
	"path/filepath"

	"github.com/unilog-lang/unilog/internal/lexer"
	"github.com/unilog-lang/unilog/internal/parser"
	"github.com/unilog-lang/unilog/internal/prover"
	"github.com/unilog-lang/unilog/internal/report"
	"github.com/unilog-lang/unilog/internal/single"
	"github.com/unilog-lang/unilog/internal/store"
	"github.com/unilog-lang/unilog/internal/term"
)

// Executor ties the fact store and prover to the module-path discipline
// that refer execution threads through recursive file expansion. Every
// entry point is guarded against concurrent use by a single shared
// Guard, since the store and the process's current working directory
// are both mutated without synchronization.
type Executor struct {
	store  *store.Store
	prover *prover.Prover
	guard  single.Guard

	// pathArena is the long-lived arena module-path handles live in.
	// It outlives any one statement's own transient frame, which is
	// exactly why module-path tags must be Promoted into it as they
	// are pushed (see Execute's refer case).
	pathArena *term.Arena
}

// New returns an Executor over the given Store and Prover.
func New(s *store.Store, p *prover.Prover) *Executor {
	return &Executor{store: s, prover: p, pathArena: term.NewArena()}
}

// RootModulePath returns the empty module path handle, valid in this
// Executor's own path arena — the module path a top-level entry file
// is executed under.
func (e *Executor) RootModulePath() term.Handle {
	return e.pathArena.Nil()
}

// Execute dispatches stmt, whose term handles live in stmt.Arena,
// against modulePath (a handle in e's own path arena).
func (e *Executor) Execute(stmt *parser.Statement, modulePath term.Handle) error {
	e.guard.Check()

	switch stmt.Kind {
	case parser.AxiomStatement:
		if !e.store.DeclTheorem(e.pathArena, modulePath, stmt.Arena, stmt.Tag, stmt.Theorem) {
			return report.New(report.DeclTheoremFailed, "duplicate (module-path, tag) in fact store")
		}
		return nil

	case parser.GuideStatement:
		if !e.store.DeclRedir(e.pathArena, modulePath, stmt.Arena, stmt.Tag, stmt.Args, stmt.Guide) {
			return report.New(report.DeclRedirFailed, "duplicate (module-path, tag) in fact store")
		}
		return nil

	case parser.InferStatement:
		if !e.prover.Prove(e.pathArena, modulePath, stmt.Arena, stmt.Theorem, stmt.Guide) {
			return report.New(report.InferenceFailed, "guide does not establish the stated theorem")
		}
		if !e.store.DeclTheorem(e.pathArena, modulePath, stmt.Arena, stmt.Tag, stmt.Theorem) {
			return report.New(report.DeclTheoremFailed, "duplicate (module-path, tag) in fact store")
		}
		return nil

	case parser.ReferStatement:
		return e.executeRefer(stmt, modulePath)

	default:
		return report.New(report.MalformedStatement, "unrecognized statement kind")
	}
}

// executeRefer implements refer's discipline: open the file, push the
// tag onto the module path, change into the referee's parent
// directory, run every statement in the file under the new path, and
// restore the original directory — on every exit path, success or
// failure.
func (e *Executor) executeRefer(stmt *parser.Statement, modulePath term.Handle) error {
	pathView := stmt.Arena.View(stmt.FilePath)
	if pathView.Kind != term.KindAtom {
		return report.New(report.NotAFile, "refer file_path must be an atom")
	}
	filePath := pathView.Text

	f, err := os.Open(filePath)
	if err != nil {
		return report.New(report.FileOpenFailed, err.Error()).WithToken(filePath)
	}
	defer f.Close()

	cwd, err := os.Getwd()
	if err != nil {
		return report.New(report.FileOpenFailed, "could not read working directory: "+err.Error())
	}
	parentDir := filepath.Dir(filePath)
	if err := os.Chdir(parentDir); err != nil {
		return report.New(report.FileOpenFailed, err.Error()).WithToken(parentDir)
	}
	defer os.Chdir(cwd)

	newPath := e.pathArena.Cons(term.Promote(stmt.Arena, stmt.Tag, e.pathArena), modulePath)

	// One Arena is shared across every statement in this file: each
	// iteration opens a Frame, parses into it, runs Execute (which
	// promotes anything that must survive into the store's or the
	// path Arena's own long-lived storage), and discards the Frame —
	// reusing the same backing storage statement after statement
	// instead of allocating a throwaway Arena per statement.
	arena := term.NewArena()
	lx := lexer.New(f)
	for {
		child, frame, perr := parser.ParseStatementIn(lx, arena)
		if perr == io.EOF {
			return nil
		}
		if perr != nil {
			return perr
		}
		err := e.Execute(child, newPath)
		frame.Discard()
		if err != nil {
			return err
		}
	}
}
