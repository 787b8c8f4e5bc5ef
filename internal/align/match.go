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

package align

import (
	"znkr.io/mvd/internal/graph"
	"znkr.io/mvd/internal/suffixtree"
	"znkr.io/mvd/internal/vset"
)

// pos is a position in the graph. For the end of a segment, off is the offset after the last
// rune read.
type pos struct {
	card graph.CardID
	off  int
}

// segment is a contiguous match between a path in the graph and the text.
type segment struct {
	start, end pos
	versions   vset.Set // versions that read the whole path
	text       int      // offset in the text
	length     int
}

// candidate is a chain of segments with increasing graph and text positions.
type candidate struct {
	segs       []segment
	length     int  // total length of all segments
	shadow     bool // can be extended to the left, only counts towards frequencies
	transposed bool
}

// text returns the text offset of the first segment.
func (c *candidate) text() int { return c.segs[0].text }

// end returns the text offset after the last segment.
func (c *candidate) end() int {
	last := c.segs[len(c.segs)-1]
	return last.text + last.length
}

// matchState is a branch point that still has to be followed.
type matchState struct {
	card        graph.CardID
	versions    vset.Set
	tp          suffixtree.Pos
	first, last pos
}

// match reads the graph from a start position along all branches.
type match struct {
	card        graph.CardID
	off         int
	versions    vset.Set
	tp          suffixtree.Pos
	first, last pos
	stack       []matchState
}

func (m *match) reset(d *deck, c graph.CardID, off int) {
	*m = match{
		card:     c,
		off:      off,
		versions: d.list.Versions(c),
		tp:       d.tree.Root(),
		first:    pos{c, off},
		stack:    m.stack[:0],
	}
}

// single extends the match along the current branch until the graph and the text differ. It
// returns the matched segment if it's unique in the text. Branches are pushed on the stack.
func (m *match) single(d *deck) (segment, bool) {
	for {
		data := d.list.Data(m.card)
		if m.off == len(data) {
			branches := d.next(m.card, m.versions)
			if len(branches) == 0 {
				break
			}
			for _, b := range branches[1:] {
				m.stack = append(m.stack, matchState{
					card:     b.Card,
					versions: b.Versions,
					tp:       m.tp,
					first:    m.first,
					last:     m.last,
				})
			}
			m.card, m.off, m.versions = branches[0].Card, 0, branches[0].Versions
			continue
		}
		if !d.tree.Advance(&m.tp, data[m.off]) {
			break
		}
		m.off++
		m.last = pos{m.card, m.off}
	}
	if m.tp.Depth() == 0 {
		return segment{}, false
	}
	s, ok := d.tree.Leaf(m.tp)
	if !ok {
		return segment{}, false
	}
	return segment{
		start:    m.first,
		end:      m.last,
		versions: m.versions.Clone(),
		text:     d.start + s,
		length:   m.tp.Depth(),
	}, true
}

// pop continues with the most recent branch point. It returns false if there's none left.
func (m *match) pop() bool {
	if len(m.stack) == 0 {
		return false
	}
	st := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	m.card, m.off, m.versions = st.card, 0, st.versions
	m.tp, m.first, m.last = st.tp, st.first, st.last
	return true
}
