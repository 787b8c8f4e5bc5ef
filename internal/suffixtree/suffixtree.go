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

// Package suffixtree implements a suffix tree over a rune slice, built in linear time with
// Ukkonen's algorithm.
//
// The tree is used to find maximal unique matches: a string read from the graph is unique in the
// text if, and only if, reading it from the root ends on an edge that leads to a leaf. The tree
// appends a terminator to the text that can't be matched, so that every suffix ends in its own
// leaf.
//
// Nodes live in a single arena and are addressed by index. Edges are labeled with a range of the
// text. Leaf edges are open ended while the tree is built.
package suffixtree

import "slices"

// terminator is appended to the text; it never occurs in the text itself and Advance refuses to
// read it.
const terminator rune = -1

// open marks the end of a leaf edge, which always extends to the end of the text.
const open = -1

const root = 0

type node struct {
	start, end int32 // label of the edge leading to this node
	link       int32 // suffix link, internal nodes only
	suffix     int32 // start of the suffix for leaves, -1 for internal nodes
	kids       children
}

// Tree is a suffix tree. It's immutable once built.
type Tree struct {
	text  []rune
	nodes []node
}

// New builds the suffix tree of text.
func New(text []rune) *Tree {
	t := &Tree{
		text:  append(slices.Clip(text), terminator),
		nodes: make([]node, 0, 2*len(text)+2),
	}
	t.nodes = append(t.nodes, node{suffix: -1})
	t.build()
	return t
}

// Len returns the length of the text, without terminator.
func (t *Tree) Len() int { return len(t.text) - 1 }

func (t *Tree) edgeLen(n int32, e int) int {
	end := int(t.nodes[n].end)
	if end == open {
		end = e
	}
	return end - int(t.nodes[n].start)
}

func (t *Tree) leaf(start, suffix int) int32 {
	t.nodes = append(t.nodes, node{start: int32(start), end: open, suffix: int32(suffix)})
	return int32(len(t.nodes) - 1)
}

func (t *Tree) internal(start, end int32) int32 {
	t.nodes = append(t.nodes, node{start: start, end: end, suffix: -1})
	return int32(len(t.nodes) - 1)
}

func (t *Tree) build() {
	var (
		activeNode   int32 = root
		activeEdge   int
		activeLength int
		remainder    int
	)
	for i, c := range t.text {
		e := i + 1
		remainder++
		lastNew := int32(-1)
		for remainder > 0 {
			if activeLength == 0 {
				activeEdge = i
			}
			next, ok := t.nodes[activeNode].kids.get(t.text[activeEdge])
			if !ok {
				l := t.leaf(i, i-remainder+1)
				t.nodes[activeNode].kids.put(t.text[activeEdge], l)
				if lastNew >= 0 {
					t.nodes[lastNew].link = activeNode
					lastNew = -1
				}
			} else {
				if n := t.edgeLen(next, e); activeLength >= n {
					// Walk down to the next node and try again.
					activeEdge += n
					activeLength -= n
					activeNode = next
					continue
				}
				if t.text[int(t.nodes[next].start)+activeLength] == c {
					// The suffix is already in the tree, it's implicit until the next iteration.
					if lastNew >= 0 && activeNode != root {
						t.nodes[lastNew].link = activeNode
						lastNew = -1
					}
					activeLength++
					break
				}
				start := t.nodes[next].start
				split := t.internal(start, start+int32(activeLength))
				t.nodes[activeNode].kids.put(t.text[activeEdge], split)
				l := t.leaf(i, i-remainder+1)
				t.nodes[split].kids.put(c, l)
				t.nodes[next].start += int32(activeLength)
				t.nodes[split].kids.put(t.text[t.nodes[next].start], next)
				if lastNew >= 0 {
					t.nodes[lastNew].link = split
				}
				lastNew = split
			}
			remainder--
			if activeNode == root && activeLength > 0 {
				activeLength--
				activeEdge = i - remainder + 1
			} else if activeNode != root {
				activeNode = t.nodes[activeNode].link
			}
		}
	}
}

// Pos is a position in the tree, reached by reading a string from the root.
type Pos struct {
	node  int32 // last node passed
	child int32 // edge currently read, -1 if the position is at node
	off   int32 // runes read on the current edge
	depth int   // runes read since the root
}

// Root returns the position of the empty string.
func (t *Tree) Root() Pos { return Pos{child: -1} }

// Depth returns the number of runes read to reach p.
func (p Pos) Depth() int { return p.depth }

// Advance reads r at p. It returns false and leaves p unchanged if the text doesn't continue
// with r at p.
func (t *Tree) Advance(p *Pos, r rune) bool {
	if r == terminator {
		return false
	}
	if p.child < 0 {
		n, ok := t.nodes[p.node].kids.get(r)
		if !ok {
			return false
		}
		p.child, p.off = n, 1
	} else {
		if t.text[t.nodes[p.child].start+p.off] != r {
			return false
		}
		p.off++
	}
	p.depth++
	if int(p.off) == t.edgeLen(p.child, len(t.text)) {
		p.node, p.child, p.off = p.child, -1, 0
	}
	return true
}

// Leaf returns the start of the only occurrence of the string read to reach p, if the string
// is unique in the text.
func (t *Tree) Leaf(p Pos) (int, bool) {
	if p.depth == 0 {
		return 0, false
	}
	n := p.child
	if n < 0 {
		n = p.node
	}
	if s := t.nodes[n].suffix; s >= 0 {
		return int(s), true
	}
	return 0, false
}
