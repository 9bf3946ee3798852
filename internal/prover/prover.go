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

// Package prover is a minimal stand-in for full proof search, which is
// explicitly out of scope: it exists to make the executor's
// execute(Infer{...}) success and failure branches real and testable
// instead of permanently unreachable code. It supports exactly two
// tactics: restating an already-proved theorem (matched up to
// consistent variable renaming), or citing an already-proved tag as
// the justification.
package prover

import (
	"github.com/unilog-lang/unilog/internal/store"
	"github.com/unilog-lang/unilog/internal/term"
)

// restateGuide is the guide atom meaning "the theorem must already be
// provable on its own, with no cited tag" — the trivial tactic.
const restateGuide = "true"

// Prover resolves infer statements against a fact Store.
type Prover struct {
	store *store.Store
}

// New returns a Prover backed by s.
func New(s *store.Store) *Prover {
	return &Prover{store: s}
}

// Prove decides whether theorem follows from guide at modulePath,
// consulting the store at modulePath and every enclosing module path
// (the suffixes of the module-path cons-list, outward to the empty
// path). modulePath lives in mpArena — the executor's own long-lived
// path arena — while theorem and guide live in stmtArena, the
// statement's own transient arena; in the executor these are two
// different arenas, which is why Prove (like store.Store's methods)
// takes them as separate pairs instead of assuming one caller-supplied
// arena. Passing the same arena for both also works.
//
//   - guide = atom("true"): theorem must already be registered as a
//     proved theorem (under any tag) at modulePath or an enclosing
//     module path.
//   - guide = any other atom: that atom names a tag; theorem must
//     equal_forms the theorem already proved under that tag at
//     modulePath or an enclosing module path.
//   - any other guide shape: no tactic this prover understands; fails.
func (p *Prover) Prove(mpArena *term.Arena, modulePath term.Handle, stmtArena *term.Arena, theorem, guide term.Handle) bool {
	guideView := stmtArena.View(guide)
	if guideView.Kind != term.KindAtom {
		return false
	}

	paths := ancestorPaths(mpArena, modulePath)

	if guideView.Text == restateGuide {
		for _, path := range paths {
			if p.anyTheoremMatches(mpArena, path, stmtArena, theorem) {
				return true
			}
		}
		return false
	}

	tag := stmtArena.Atom(guideView.Text)
	for _, path := range paths {
		cited, ok := p.store.Theorem(mpArena, path, stmtArena, tag)
		if !ok {
			continue
		}
		if term.EqualForms(stmtArena, theorem, p.store.Arena(), cited) {
			return true
		}
	}
	return false
}

func (p *Prover) anyTheoremMatches(mpArena *term.Arena, modulePath term.Handle, stmtArena *term.Arena, theorem term.Handle) bool {
	found := false
	p.store.Scan(func(path, _ term.Handle, entry *store.Entry) bool {
		if entry.Kind != store.TheoremEntry {
			return true
		}
		if !term.EqualForms(p.store.Arena(), path, mpArena, modulePath) {
			return true
		}
		if term.EqualForms(stmtArena, theorem, p.store.Arena(), entry.Theorem) {
			found = true
			return false
		}
		return true
	})
	return found
}

// ancestorPaths returns modulePath followed by each successively
// shorter tail of its cons-list, ending with the empty path — the
// search order "current or an enclosing module path" requires.
func ancestorPaths(arena *term.Arena, modulePath term.Handle) []term.Handle {
	paths := []term.Handle{modulePath}
	cur := modulePath
	for {
		v := arena.View(cur)
		if v.Kind != term.KindCons {
			break
		}
		cur = v.Tail
		paths = append(paths, cur)
	}
	return paths
}
