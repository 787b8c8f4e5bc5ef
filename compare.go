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

package mvd

import "slices"

//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op

// Op describes an edit operation.
type Op int

const (
	Match  Op = iota // Text is read by both versions
	Delete           // Text is only read by the first version
	Insert           // Text is only read by the second version
)

// Edit is a run of text that's read by one or both of two versions.
type Edit struct {
	Op   Op
	Text []rune
}

// Compare returns the differences between versions a and b as a sequence of edits that turns the
// text of a into the text of b. Adjacent edits with the same operation are combined.
//
// Compare reads the differences straight from the pair list, so it reports the alignment that was
// established when the versions were merged.
func (d Document) Compare(a, b int) []Edit {
	parents := d.parents()
	var edits []Edit
	for _, p := range d.Pairs {
		var op Op
		switch inA, inB := p.Versions.Has(a), p.Versions.Has(b); {
		case inA && inB:
			op = Match
		case inA:
			op = Delete
		case inB:
			op = Insert
		default:
			continue
		}
		data := d.data(p, parents)
		if len(data) == 0 {
			continue
		}
		if n := len(edits); n > 0 && edits[n-1].Op == op {
			edits[n-1].Text = append(edits[n-1].Text, data...)
			continue
		}
		edits = append(edits, Edit{Op: op, Text: slices.Clone(data)})
	}
	return edits
}
