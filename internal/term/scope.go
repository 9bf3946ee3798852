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

package term

import "golang.org/x/exp/maps"

// anonymousIdentifier is the identifier that is never inserted into a
// Scope and always produces a distinct fresh variable.
const anonymousIdentifier = "_"

// Scope is a per-statement mapping from variable identifier to term
// handle. The first occurrence of a named identifier allocates a
// fresh variable and inserts it; later occurrences unify a fresh
// handle against the stored one, so all occurrences of one identifier
// within a statement denote the same logical slot. A Scope is created
// empty at each statement boundary and dropped when the statement is
// emitted — it holds no allocation of its own beyond the map.
type Scope struct {
	arena *Arena
	vars  map[string]Handle
}

// NewScope creates an empty scope table bound to arena.
func NewScope(arena *Arena) *Scope {
	return &Scope{arena: arena, vars: make(map[string]Handle)}
}

// Resolve implements the term parser's variable-token dispatch: `_`
// always allocates a fresh, untracked variable; any other identifier
// is looked up, allocating on first occurrence and unifying a fresh
// handle against the stored one on repeat occurrences.
func (s *Scope) Resolve(identifier string) Handle {
	if identifier == anonymousIdentifier {
		return s.arena.FreshVar()
	}
	if existing, ok := s.vars[identifier]; ok {
		fresh := s.arena.FreshVar()
		s.arena.Unify(fresh, existing)
		return fresh
	}
	fresh := s.arena.FreshVar()
	s.vars[identifier] = fresh
	return fresh
}

// Identifiers returns the named (non-"_") identifiers seen so far, in
// no particular order.
func (s *Scope) Identifiers() []string {
	return maps.Keys(s.vars)
}
