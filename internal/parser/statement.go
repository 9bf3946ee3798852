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

package parser

import "github.com/unilog-lang/unilog/internal/term"

// StatementKind is the closed set of top-level statement variants.
type StatementKind int

const (
	AxiomStatement StatementKind = iota
	GuideStatement
	InferStatement
	ReferStatement
)

func (k StatementKind) String() string {
	switch k {
	case AxiomStatement:
		return "axiom"
	case GuideStatement:
		return "guide"
	case InferStatement:
		return "infer"
	case ReferStatement:
		return "refer"
	default:
		return "unknown"
	}
}

// Statement is a tagged variant over the four top-level statement
// kinds. Every variant carries a Tag term used as a fact-store key;
// tags are not constrained to be atoms by the parser. All of a
// Statement's term handles are allocated in Arena, the frame opened
// for that one statement by the statement parser — only the fields
// relevant to Kind are meaningfully populated.
type Statement struct {
	Kind  StatementKind
	Arena *term.Arena

	Tag term.Handle

	Theorem term.Handle // Axiom, Infer

	Args  term.Handle // Guide
	Guide term.Handle // Guide, Infer

	FilePath term.Handle // Refer
}
