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
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Print renders h in the concrete s-expression syntax parse() accepts,
// used by the round-trip property test (parse(print(t)) is formally
// equivalent to t) and by the fact store's keys. Unbound variables print as
// a synthetic name so the output is at least syntactically valid;
// re-parsing it will of course mint distinct fresh variables, which
// is exactly what the round-trip property checks for via EqualForms
// rather than deep equality.
func (a *Arena) Print(h Handle) string {
	var sb strings.Builder
	names := make(map[Handle]string)
	a.print(h, &sb, names)
	return sb.String()
}

func (a *Arena) print(h Handle, sb *strings.Builder, names map[Handle]string) {
	v := a.View(h)
	switch v.Kind {
	case KindNil:
		sb.WriteString("[]")
	case KindAtom:
		sb.WriteString(token(v.Text))
	case KindVar:
		name, ok := names[v.Handle]
		if !ok {
			name = fmt.Sprintf("_G%d", len(names))
			names[v.Handle] = name
		}
		sb.WriteString(name)
	case KindCons:
		sb.WriteByte('[')
		a.print(v.Head, sb, names)
		rest := v.Tail
		for {
			rv := a.View(rest)
			if rv.Kind == KindNil {
				break
			}
			if rv.Kind == KindCons {
				sb.WriteByte(' ')
				a.print(rv.Head, sb, names)
				rest = rv.Tail
				continue
			}
			sb.WriteByte('|')
			a.print(rest, sb, names)
			break
		}
		sb.WriteByte(']')
	}
}

// token renders atom text as a bare word when possible, quoting it
// otherwise, mirroring token.Token.Canonical for atoms.
func token(text string) string {
	if text != "" && text[0] >= 'a' && text[0] <= 'z' {
		bare := true
		for i := 1; i < len(text); i++ {
			c := text[i]
			if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_') {
				bare = false
				break
			}
		}
		if bare {
			return text
		}
	}
	return "'" + strings.NewReplacer("\\", "\\\\", "'", "\\'", "\n", "\\n").Replace(text) + "'"
}

// Dump renders h as a structural debug dump via go-spew, for the
// CLI's --debug-dump-terms flag. Unlike Print, this exposes raw
// handles and sharing, which is the point: Print shows what a term
// means, Dump shows how it is actually laid out in the arena.
func (a *Arena) Dump(h Handle) string {
	v := a.View(h)
	switch v.Kind {
	case KindCons:
		return spew.Sdump(struct {
			Kind       string
			Head, Tail View
		}{Kind: "cons", Head: a.View(v.Head), Tail: a.View(v.Tail)})
	default:
		return spew.Sdump(v)
	}
}
