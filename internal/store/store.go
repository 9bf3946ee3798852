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

// Package store implements the fact database: the executor's external
// collaborator mapping (module-path, tag) to either a proved theorem
// or a registered guide body. The store, not the executor, is
// responsible for rejecting duplicate declarations at the same key.
package store

import (
	"github.com/tidwall/btree"

	"github.com/unilog-lang/unilog/internal/term"
)

// EntryKind distinguishes what a Store slot holds: a proved theorem
// (from axiom or a successful infer) or a guide body (from guide).
type EntryKind int

const (
	TheoremEntry EntryKind = iota
	GuideEntry
)

// Entry is one fact-store slot. Every term handle here lives in the
// store's own long-lived Arena — callers hand in handles from their
// own transient per-statement arena, and the store promotes them on
// the way in so they survive that arena's frame being released.
type Entry struct {
	Kind EntryKind

	ModulePath term.Handle
	Tag        term.Handle

	Theorem term.Handle // TheoremEntry

	Args  term.Handle // GuideEntry
	Guide term.Handle // GuideEntry
}

// Store is the fact database, ordered by a canonical string key
// derived from (module-path, tag) so that iteration — used by the
// CLI's debug dump and by tests asserting key order — is
// deterministic; it follows that key order, not declaration order. It is not safe for concurrent use, matching
// unilog's single-threaded execution model (internal/single).
type Store struct {
	arena   *term.Arena
	entries btree.Map[string, *Entry]
}

// New returns an empty Store with its own backing Arena. The Arena
// lives exactly as long as the Store does: there is no frame
// discipline here, since entries are meant to outlive any single
// statement or refer expansion.
func New() *Store {
	return &Store{arena: term.NewArena()}
}

// Arena exposes the store's own long-lived term arena, so callers
// (tests, the CLI's dump mode) can resolve and print handles returned
// from Theorem/Guide lookups.
func (s *Store) Arena() *term.Arena {
	return s.arena
}

// key renders the canonical string identifying a (module-path, tag)
// pair already resolved in the store's own arena. Two structurally
// identical terms always print identically (Print's synthetic
// variable names are assigned purely by traversal order), so this is
// sound as an exact-match key — it is not a formal-equivalence
// comparison, and does not need to be: the store's duplicate-rejection
// contract is about the literal key terms a caller supplies, not
// about proof-theoretic equivalence of keys.
func (s *Store) key(modulePath, tag term.Handle) string {
	return s.arena.Print(modulePath) + "\x00" + s.arena.Print(tag)
}

// DeclTheorem registers theorem as a proved fact at (modulePath, tag).
// modulePath lives in mpArena (typically the executor's long-lived
// module-path arena, since a path is threaded across many statements'
// frames); tag and theorem live in stmtArena (the one statement's own
// frame). All three are promoted into the store's own arena, which is
// the only place it is safe to compare them against each other.
// Reports false if an entry already exists at that key — rejecting
// duplicate declarations is the store's responsibility, not the
// executor's.
func (s *Store) DeclTheorem(mpArena *term.Arena, modulePath term.Handle, stmtArena *term.Arena, tag, theorem term.Handle) bool {
	promotedPath := term.Promote(mpArena, modulePath, s.arena)
	promotedTag := term.Promote(stmtArena, tag, s.arena)
	k := s.key(promotedPath, promotedTag)
	if _, exists := s.entries.Get(k); exists {
		return false
	}
	entry := &Entry{
		Kind:       TheoremEntry,
		ModulePath: promotedPath,
		Tag:        promotedTag,
		Theorem:    term.Promote(stmtArena, theorem, s.arena),
	}
	s.entries.Set(k, entry)
	return true
}

// DeclRedir registers a guide body as a (not yet proved) redirection
// at (modulePath, tag): the matching half of DeclTheorem for guide
// statements. Arena conventions mirror DeclTheorem.
func (s *Store) DeclRedir(mpArena *term.Arena, modulePath term.Handle, stmtArena *term.Arena, tag, args, guide term.Handle) bool {
	promotedPath := term.Promote(mpArena, modulePath, s.arena)
	promotedTag := term.Promote(stmtArena, tag, s.arena)
	k := s.key(promotedPath, promotedTag)
	if _, exists := s.entries.Get(k); exists {
		return false
	}
	entry := &Entry{
		Kind:       GuideEntry,
		ModulePath: promotedPath,
		Tag:        promotedTag,
		Args:       term.Promote(stmtArena, args, s.arena),
		Guide:      term.Promote(stmtArena, guide, s.arena),
	}
	s.entries.Set(k, entry)
	return true
}

// Theorem looks up a proved theorem at (modulePath, tag). modulePath
// and tag may come from different arenas, per DeclTheorem's
// convention; the returned handle is valid in s.Arena().
func (s *Store) Theorem(mpArena *term.Arena, modulePath term.Handle, tagArena *term.Arena, tag term.Handle) (term.Handle, bool) {
	promotedPath := term.Promote(mpArena, modulePath, s.arena)
	promotedTag := term.Promote(tagArena, tag, s.arena)
	entry, ok := s.entries.Get(s.key(promotedPath, promotedTag))
	if !ok || entry.Kind != TheoremEntry {
		return 0, false
	}
	return entry.Theorem, true
}

// Guide looks up a registered guide body at (modulePath, tag).
func (s *Store) Guide(mpArena *term.Arena, modulePath term.Handle, tagArena *term.Arena, tag term.Handle) (args, guide term.Handle, ok bool) {
	promotedPath := term.Promote(mpArena, modulePath, s.arena)
	promotedTag := term.Promote(tagArena, tag, s.arena)
	entry, found := s.entries.Get(s.key(promotedPath, promotedTag))
	if !found || entry.Kind != GuideEntry {
		return 0, 0, false
	}
	return entry.Args, entry.Guide, true
}

// Len reports the number of entries currently in the store.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Scan calls fn for every entry in ascending key order, stopping
// early if fn returns false. Entry handles are valid in s.Arena().
func (s *Store) Scan(fn func(modulePath, tag term.Handle, entry *Entry) bool) {
	s.entries.Scan(func(_ string, entry *Entry) bool {
		return fn(entry.ModulePath, entry.Tag, entry)
	})
}
