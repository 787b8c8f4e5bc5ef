// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package graph implements the variant graph of a multi-version document.
//
// A document is a list of [Pair]s. Every pair is an arc of a directed acyclic graph, labeled with
// text and the set of versions that read it. The list order is a topological order of that graph:
// reading the pairs of a version in list order reproduces the version text.
//
// During a merge the pairs are turned into cards of a [List], a doubly linked arena of mutable
// arcs that can be split, extended by a version, and reordered. A [Tracker] simulates the implicit
// nodes of the graph to validate the structure. See [Verify] for the exact rules.
package graph

import (
	"fmt"

	"znkr.io/mvd/internal/vset"
)

// Pair is a single arc of the variant graph.
type Pair struct {
	// Versions that read this pair. Never empty in a valid document.
	Versions vset.Set
	// Kind of the pair, see [Kind].
	Kind Kind
	// Data is the text of an ordinary or parent pair. Children have no data of their own.
	Data []rune
	// ID links a parent with its children. It's zero for ordinary pairs.
	ID int
}

// IsBlank reports whether p is an ordinary pair without text.
func (p Pair) IsBlank() bool { return p.Kind == Ordinary && len(p.Data) == 0 }

// IsHint reports whether the hint bit is set on p.
func (p Pair) IsHint() bool { return p.Versions.Hint() }

func (p Pair) String() string {
	switch p.Kind {
	case Parent:
		return fmt.Sprintf("%v P%d %q", p.Versions, p.ID, string(p.Data))
	case Child:
		return fmt.Sprintf("%v C%d", p.Versions, p.ID)
	default:
		return fmt.Sprintf("%v %q", p.Versions, string(p.Data))
	}
}
