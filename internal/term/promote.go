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

// Promote deep-copies the closed term rooted at h from src into dst,
// preserving h's internal variable-sharing pattern (two occurrences
// of the same source variable become two occurrences of the same
// destination variable). A term that must outlive the statement frame
// that built it is promoted into a longer-lived arena — here, a
// separate Arena value entirely (e.g. the fact store's permanent
// arena) rather than an outer mark in the same Arena, since a single
// Arena's allocation table is a simple append-only stack and cannot
// retroactively gain space below a frame that is still open.
func Promote(src *Arena, h Handle, dst *Arena) Handle {
	seen := make(map[Handle]Handle)
	return promote(src, h, dst, seen)
}

func promote(src *Arena, h Handle, dst *Arena, seen map[Handle]Handle) Handle {
	r := src.Resolve(h)
	if out, ok := seen[r]; ok {
		return out
	}
	n := src.at(r)
	switch n.kind {
	case KindVar:
		fresh := dst.FreshVar()
		seen[r] = fresh
		return fresh
	case KindNil:
		out := dst.Nil()
		seen[r] = out
		return out
	case KindAtom:
		out := dst.Atom(n.text)
		seen[r] = out
		return out
	case KindCons:
		// Children are promoted first, with no placeholder for the cons
		// itself. Unify has no occurs check, so a variable bound to a
		// cons that contains it makes a cyclic term, which this
		// recursion does not terminate on; the parser's only Unify
		// call binds a fresh variable to another variable and never
		// builds such a cycle.
		head := promote(src, n.head, dst, seen)
		tail := promote(src, n.tail, dst, seen)
		out := dst.Cons(head, tail)
		seen[r] = out
		return out
	default:
		panic("term: unreachable kind in promote")
	}
}
