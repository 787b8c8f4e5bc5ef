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
	"slices"

	"znkr.io/mvd/internal/graph"
)

// alignment is a segment of the new text that still needs to be aligned.
type alignment struct {
	start, end int
	priority   int
}

// push queues a, keeping the pending alignments ordered by priority, highest first. Alignments
// with equal priority are processed in the order they were pushed.
func (m *merger) push(a alignment) {
	if a.start >= a.end {
		return
	}
	i, _ := slices.BinarySearchFunc(m.pending, a.priority, func(p alignment, prio int) int {
		if p.priority >= prio {
			return -1
		}
		return 1
	})
	m.pending = slices.Insert(m.pending, i, a)
}

// pop returns the pending alignment with the highest priority.
func (m *merger) pop() (alignment, bool) {
	if len(m.pending) == 0 {
		return alignment{}, false
	}
	a := m.pending[0]
	m.pending = slices.Delete(m.pending, 0, 1)
	return a, true
}

// layout describes the position of an alignment in the current list.
type layout struct {
	offset map[graph.CardID]int // rune offset of every card in list order
	total  int

	// The direct arcs of the new version right before and after the alignment, or Nil at the
	// start or end of the document.
	left, right graph.CardID
}

func (m *merger) layout(a alignment) layout {
	lay := layout{
		offset: make(map[graph.CardID]int),
		left:   graph.Nil,
		right:  graph.Nil,
	}
	for c := range m.list.All() {
		lay.offset[c] = lay.total
		n := m.list.Len(c)
		if t, ok := m.direct[c]; ok {
			if t+n <= a.start {
				lay.left = c
			}
			if t >= a.end && lay.right == graph.Nil {
				lay.right = c
			}
		}
		lay.total += n
	}
	return lay
}

// distance returns the number of runes in list order that c jumps over to reach the position of
// the alignment, less the length of c itself; zero if c lies between the bounds. Swapping two
// blocks of equal length costs nothing, moving a short block over a long one costs the
// difference.
func (lay *layout) distance(list *graph.List, c *candidate) int {
	first, last := c.segs[0].start, c.segs[len(c.segs)-1].end
	ms := lay.offset[first.card] + first.off
	me := lay.offset[last.card] + last.off
	jumped := 0
	if lay.left != graph.Nil {
		if le := lay.offset[lay.left] + list.Len(lay.left); me <= le {
			jumped = le - me
		}
	}
	if lay.right != graph.Nil {
		if rs := lay.offset[lay.right]; ms >= rs {
			jumped = ms - rs
		}
	}
	return max(0, jumped-(me-ms))
}

// transposed reports whether c can't be read by the new version between the bounds of the
// alignment without going back in the graph.
func (lay *layout) transposed(nodes *graph.Nodes, c *candidate) bool {
	first, last := c.segs[0].start.card, c.segs[len(c.segs)-1].end.card
	from, to := nodes.Start(), nodes.End()
	if lay.left != graph.Nil {
		from = nodes.After(lay.left)
	}
	if lay.right != graph.Nil {
		to = nodes.Before(lay.right)
	}
	return !nodes.Reaches(from, nodes.Before(first)) || !nodes.Reaches(nodes.After(last), to)
}
