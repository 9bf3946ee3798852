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

// EqualForms decides formal equivalence: whether there is a bijection
// between the variables of the term rooted at a (in arena aArena) and
// the variables of the term rooted at b (in arena bArena) such that
// applying it to a yields a term structurally identical to b, with no
// variable of a mapping to a non-variable of b or vice versa.
//
// The reference algorithm mutates the arena, binding paired variables
// to freshly generated unique atoms so that a later encounter of the
// same variable is forced to match the same label; that is only safe
// inside a disposable frame, since the bindings are not meant to be
// observed afterward. EqualForms instead threads a bijection map
// through the traversal without touching either arena — an equally
// sound non-destructive alternative that needs no frame discipline
// from callers at all.
func EqualForms(aArena *Arena, a Handle, bArena *Arena, b Handle) bool {
	bij := newBijection()
	return equalForms(aArena, a, bArena, b, bij)
}

type bijection struct {
	aToB map[Handle]Handle
	bToA map[Handle]Handle
}

func newBijection() *bijection {
	return &bijection{aToB: make(map[Handle]Handle), bToA: make(map[Handle]Handle)}
}

func equalForms(aArena *Arena, a Handle, bArena *Arena, b Handle, bij *bijection) bool {
	va := aArena.View(a)
	vb := bArena.View(b)

	aIsVar := va.Kind == KindVar
	bIsVar := vb.Kind == KindVar
	if aIsVar != bIsVar {
		// No variable of a may map to a non-variable of b, or vice versa.
		return false
	}
	if aIsVar {
		if mapped, ok := bij.aToB[va.Handle]; ok {
			return mapped == vb.Handle
		}
		if mapped, ok := bij.bToA[vb.Handle]; ok {
			return mapped == va.Handle
		}
		bij.aToB[va.Handle] = vb.Handle
		bij.bToA[vb.Handle] = va.Handle
		return true
	}

	if va.Kind != vb.Kind {
		return false
	}
	switch va.Kind {
	case KindNil:
		return true
	case KindAtom:
		return va.Text == vb.Text
	case KindCons:
		return equalForms(aArena, va.Head, bArena, vb.Head, bij) &&
			equalForms(aArena, va.Tail, bArena, vb.Tail, bij)
	default:
		return false
	}
}
