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

// Package term implements the logical term model: atoms, variables,
// nil, and cons-pairs, allocated in a scoped Arena whose Frames mirror
// the unification engine's "foreign frame" discipline — allocations
// inside a frame are released together when the frame is discarded.
package term

import "fmt"

// Kind is the closed shape of a term: atom, variable, nil, or cons.
type Kind int

const (
	KindAtom Kind = iota
	KindVar
	KindNil
	KindCons
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindVar:
		return "variable"
	case KindNil:
		return "nil"
	case KindCons:
		return "cons"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Handle is an opaque reference to a term living in some Arena.
// Handles allocated in one Arena are meaningless in another; use
// Promote to move a closed term across arenas. The zero Handle never
// refers to a real term.
type Handle uint32

// Nil reports whether h is the zero handle (no term, not the same as
// a term of KindNil).
func (h Handle) Nil() bool { return h == 0 }

type node struct {
	kind Kind
	text string // KindAtom
	ref  Handle // KindVar: 0 if unbound, else the term this variable is bound to
	head Handle // KindCons
	tail Handle // KindCons
}

// Arena is a scoped term-allocation region: a LIFO stack of Frames,
// each of which discards every handle allocated since it was opened.
// Storage is a single flat, append-only slice, the same compressed
// layout a bump allocator over an immutable parsed AST would use,
// adapted here to additionally support discarding a suffix of the
// table on Frame release, since a term arena backs a transient
// per-statement workspace rather than a value that only ever grows.
type Arena struct {
	nodes  []node
	frames []*Frame // open Frames, outermost first
}

// NewArena returns an empty, ready-to-use Arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) at(h Handle) *node {
	if h == 0 || int(h) > len(a.nodes) {
		panic("term: use of invalid or freed handle")
	}
	return &a.nodes[h-1]
}

func (a *Arena) alloc(n node) Handle {
	a.nodes = append(a.nodes, n)
	return Handle(len(a.nodes))
}

// Atom allocates a new atom term with the given text.
func (a *Arena) Atom(text string) Handle {
	return a.alloc(node{kind: KindAtom, text: text})
}

// Nil allocates a new nil (empty list) term.
func (a *Arena) Nil() Handle {
	return a.alloc(node{kind: KindNil})
}

// Cons allocates a new cons-pair of head and tail.
func (a *Arena) Cons(head, tail Handle) Handle {
	return a.alloc(node{kind: KindCons, head: head, tail: tail})
}

// FreshVar allocates a new, as-yet-unbound variable.
func (a *Arena) FreshVar() Handle {
	return a.alloc(node{kind: KindVar})
}

// List builds the right-folded cons chain cons(es[0], cons(es[1], ...
// cons(es[n-1], tail))), the canonical shape for list literals.
func (a *Arena) List(es []Handle, tail Handle) Handle {
	result := tail
	for i := len(es) - 1; i >= 0; i-- {
		result = a.Cons(es[i], result)
	}
	return result
}

// Resolve follows a chain of bound variables until it reaches an
// unbound variable or a non-variable term, the term-level analogue of
// union-find's find operation.
func (a *Arena) Resolve(h Handle) Handle {
	for {
		n := a.at(h)
		if n.kind != KindVar || n.ref == 0 {
			return h
		}
		h = n.ref
	}
}

// View is a resolved, read-only snapshot of a term's shape.
type View struct {
	Kind       Kind
	Text       string // KindAtom
	Head, Tail Handle // KindCons
	Handle     Handle // the resolved handle itself
}

// View resolves h and returns a snapshot of its shape.
func (a *Arena) View(h Handle) View {
	r := a.Resolve(h)
	n := a.at(r)
	return View{Kind: n.kind, Text: n.text, Head: n.head, Tail: n.tail, Handle: r}
}

// Unify attempts to make h1 and h2 denote the same term, binding
// whichever side (or both) is an unbound variable. It does not
// support backtracking: a binding made by Unify is permanent for the
// lifetime of the arena (or until the allocating Frame is discarded,
// which simply forgets the variable's storage entirely).
func (a *Arena) Unify(h1, h2 Handle) bool {
	r1, r2 := a.Resolve(h1), a.Resolve(h2)
	if r1 == r2 {
		return true
	}
	n1, n2 := a.at(r1), a.at(r2)
	if n1.kind == KindVar {
		n1.ref = r2
		return true
	}
	if n2.kind == KindVar {
		n2.ref = r1
		return true
	}
	if n1.kind != n2.kind {
		return false
	}
	switch n1.kind {
	case KindNil:
		return true
	case KindAtom:
		return n1.text == n2.text
	case KindCons:
		return a.Unify(n1.head, n2.head) && a.Unify(n1.tail, n2.tail)
	default:
		return false
	}
}

// Frame is a scoped allocation region within an Arena. Opening a
// Frame records the Arena's current high-water mark; Discard trims
// the Arena back to that mark, releasing every handle allocated since
// Open in one step. Frames must be discarded in LIFO order.
type Frame struct {
	arena *Arena
	mark  int
}

// OpenFrame begins a new scoped allocation region.
func (a *Arena) OpenFrame() *Frame {
	f := &Frame{arena: a, mark: len(a.nodes)}
	a.frames = append(a.frames, f)
	return f
}

// Discard releases every handle allocated in this frame. f must be
// the innermost open frame of its arena; discarding out of order is a
// programming error and panics, mirroring the "use after free"
// panic in at — an invariant violation, not a recoverable condition.
func (f *Frame) Discard() {
	a := f.arena
	if len(a.frames) == 0 || a.frames[len(a.frames)-1] != f {
		panic("term: frames must be discarded in LIFO order")
	}
	a.frames = a.frames[:len(a.frames)-1]
	a.nodes = a.nodes[:f.mark]
}
