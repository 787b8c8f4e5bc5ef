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

package suffixtree

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func (c *children) len() int {
	if c.m != nil {
		return len(c.m)
	}
	return len(c.list)
}

func (c *children) appendTo(s []int32) []int32 {
	if c.m != nil {
		for _, n := range c.m {
			s = append(s, n)
		}
		return s
	}
	for _, e := range c.list {
		s = append(s, e.n)
	}
	return s
}

// find reads s from the root. It returns the position and whether all of s could be read.
func find(t *Tree, s []rune) (Pos, bool) {
	p := t.Root()
	for _, r := range s {
		if !t.Advance(&p, r) {
			return p, false
		}
	}
	return p, true
}

// count returns the number of occurrences of the string read to reach p.
func count(t *Tree, p Pos) int {
	n := p.child
	if n < 0 {
		n = p.node
	}
	total := 0
	stack := []int32{n}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.nodes[n].suffix >= 0 {
			if int(t.nodes[n].suffix) < t.Len() {
				total++ // The terminator suffix doesn't occur in the text.
			}
			continue
		}
		stack = t.nodes[n].kids.appendTo(stack)
	}
	return total
}

func occurrences(text, s []rune) []int {
	var out []int
	for i := 0; i+len(s) <= len(text); i++ {
		if slices.Equal(text[i:i+len(s)], s) {
			out = append(out, i)
		}
	}
	return out
}

func checkAllSubstrings(t *testing.T, text []rune) {
	t.Helper()
	tree := New(text)
	if tree.Len() != len(text) {
		t.Fatalf("Len() = %d, want %d", tree.Len(), len(text))
	}
	for i := range text {
		for j := i + 1; j <= len(text); j++ {
			s := text[i:j]
			p, ok := find(tree, s)
			if !ok {
				t.Fatalf("%q: substring %q not found", string(text), string(s))
			}
			if p.Depth() != len(s) {
				t.Fatalf("%q: Depth() = %d after reading %q", string(text), p.Depth(), string(s))
			}
			occ := occurrences(text, s)
			if got := count(tree, p); got != len(occ) {
				t.Fatalf("%q: count(%q) = %d, want %d", string(text), string(s), got, len(occ))
			}
			start, unique := tree.Leaf(p)
			if unique != (len(occ) == 1) {
				t.Fatalf("%q: Leaf(%q) unique = %v, want %v", string(text), string(s), unique, len(occ) == 1)
			}
			if unique && start != occ[0] {
				t.Fatalf("%q: Leaf(%q) = %d, want %d", string(text), string(s), start, occ[0])
			}
		}
	}
}

func TestKnownTexts(t *testing.T) {
	for _, text := range []string{
		"a",
		"aa",
		"banana",
		"mississippi",
		"abcabxabcd",
		"the cat quietly sat",
		"xabxac",
		"dedododeeodo",
	} {
		t.Run(text, func(t *testing.T) {
			checkAllSubstrings(t, []rune(text))
		})
	}
}

func TestRandomTexts(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for range 200 {
		n := 1 + rng.IntN(40)
		alphabet := 1 + rng.IntN(4)
		text := make([]rune, n)
		for i := range text {
			text[i] = 'a' + rune(rng.IntN(alphabet))
		}
		checkAllSubstrings(t, text)
	}
}

func TestNotFound(t *testing.T) {
	tree := New([]rune("banana"))
	for _, s := range []string{"x", "bananas", "nab", "aa"} {
		if _, ok := find(tree, []rune(s)); ok {
			t.Errorf("find(%q) succeeded", s)
		}
	}
	p := tree.Root()
	if tree.Advance(&p, terminator) {
		t.Errorf("Advance read the terminator")
	}
	if _, ok := tree.Leaf(p); ok {
		t.Errorf("root is a leaf")
	}
}

func TestAdvanceKeepsPositionOnMismatch(t *testing.T) {
	tree := New([]rune("banana"))
	p, _ := find(tree, []rune("an"))
	q := p
	if tree.Advance(&q, 'x') {
		t.Fatalf("Advance(x) succeeded")
	}
	if q != p {
		t.Errorf("position changed on mismatch: %+v != %+v", q, p)
	}
	if !tree.Advance(&q, 'a') || q.Depth() != 3 {
		t.Errorf("Advance(a) failed after mismatch")
	}
}

func TestWideNode(t *testing.T) {
	// The root has more children than fit into a list.
	text := []rune("abcdefghij")
	tree := New(text)
	if got, want := tree.nodes[root].kids.len(), len(text)+1; got != want {
		t.Errorf("root has %d children, want %d", got, want)
	}
	if tree.nodes[root].kids.m == nil {
		t.Errorf("root children still in a list")
	}
	checkAllSubstrings(t, text)
}
