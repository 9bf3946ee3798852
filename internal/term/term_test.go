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

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeSharesVariableAcrossOccurrences(t *testing.T) {
	a := NewArena()
	s := NewScope(a)

	x1 := s.Resolve("X")
	x2 := s.Resolve("X")
	y := s.Resolve("Y")

	assert.Equal(t, a.Resolve(x1), a.Resolve(x2))
	assert.NotEqual(t, a.Resolve(x1), a.Resolve(y))
}

func TestScopeUnderscoreIsAlwaysDistinct(t *testing.T) {
	a := NewArena()
	s := NewScope(a)

	u1 := s.Resolve("_")
	u2 := s.Resolve("_")
	assert.NotEqual(t, a.Resolve(u1), a.Resolve(u2))
}

func TestEqualFormsListSharing(t *testing.T) {
	build := func(pattern []string) (*Arena, Handle) {
		a := NewArena()
		s := NewScope(a)
		es := make([]Handle, len(pattern))
		for i, id := range pattern {
			es[i] = s.Resolve(id)
		}
		return a, a.List(es, a.Nil())
	}

	aArena, aTerm := build([]string{"X", "X", "Y"})
	bArena, bTerm := build([]string{"A", "A", "B"})
	assert.True(t, EqualForms(aArena, aTerm, bArena, bTerm))

	cArena, cTerm := build([]string{"A", "A", "A"})
	assert.False(t, EqualForms(aArena, aTerm, cArena, cTerm))
}

func TestEqualFormsAtomsAreNotVariables(t *testing.T) {
	a := NewArena()
	atoms := a.List([]Handle{a.Atom("a"), a.Atom("a"), a.Atom("a")}, a.Nil())

	b := NewArena()
	s := NewScope(b)
	vars := b.List([]Handle{s.Resolve("A"), s.Resolve("A"), s.Resolve("A")}, b.Nil())

	assert.False(t, EqualForms(a, atoms, b, vars))
}

func TestConsListShapeAndTail(t *testing.T) {
	a := NewArena()
	s := NewScope(a)

	tailVar := s.Resolve("T")
	list := a.List([]Handle{a.Atom("a"), a.Atom("b")}, tailVar)

	v := a.View(list)
	require.Equal(t, KindCons, v.Kind)
	head := a.View(v.Head)
	assert.Equal(t, KindAtom, head.Kind)
	assert.Equal(t, "a", head.Text)

	second := a.View(v.Tail)
	require.Equal(t, KindCons, second.Kind)
	assert.Equal(t, "b", a.View(second.Head).Text)
	assert.Equal(t, a.Resolve(tailVar), a.Resolve(second.Tail))

	want := View{Kind: KindAtom, Text: "b", Handle: second.Head}
	if diff := cmp.Diff(want, a.View(second.Head)); diff != "" {
		t.Errorf("head view mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameDiscardReleasesAllocations(t *testing.T) {
	a := NewArena()
	a.Atom("outer")

	f := a.OpenFrame()
	a.Atom("inner-1")
	a.Atom("inner-2")
	before := len(a.nodes)
	f.Discard()

	assert.Less(t, len(a.nodes), before)
	assert.Equal(t, 1, len(a.nodes))
}

func TestFrameDiscardPanicsOutOfOrder(t *testing.T) {
	a := NewArena()
	outer := a.OpenFrame()
	inner := a.OpenFrame()
	_ = inner

	assert.Panics(t, func() {
		outer.Discard()
	})
}

func TestPromotePreservesVariableSharing(t *testing.T) {
	src := NewArena()
	frame := src.OpenFrame()
	s := NewScope(src)
	theorem := src.List([]Handle{s.Resolve("X"), s.Resolve("X"), s.Resolve("Y")}, src.Nil())

	dst := NewArena()
	promoted := Promote(src, theorem, dst)
	frame.Discard()

	v := dst.View(promoted)
	require.Equal(t, KindCons, v.Kind)
	first := dst.Resolve(v.Head)
	secondList := dst.View(v.Tail)
	second := dst.Resolve(secondList.Head)
	assert.Equal(t, first, second)

	thirdList := dst.View(secondList.Tail)
	third := dst.Resolve(dst.View(thirdList.Head).Handle)
	assert.NotEqual(t, first, third)
}

func TestUnifyAtomMismatch(t *testing.T) {
	a := NewArena()
	assert.True(t, a.Unify(a.Atom("x"), a.Atom("x")))
	assert.False(t, a.Unify(a.Atom("x"), a.Atom("y")))
}

func TestPrintGivesSharedVariableOneName(t *testing.T) {
	a := NewArena()
	s := NewScope(a)
	theorem := a.List([]Handle{s.Resolve("P"), s.Resolve("P")}, a.Nil())
	printed := a.Print(theorem)
	assert.Equal(t, "[_G0 _G0]", printed)
}
