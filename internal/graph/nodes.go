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

package graph

import (
	"fmt"

	"znkr.io/mvd/internal/vset"
)

// Tracker simulates the implicit nodes of a variant graph while its arcs are visited in list
// order.
//
// All versions start at the start node. An arc departs from the nodes its versions are at and
// arrives at a new node. If the versions are at different nodes, these nodes are fused into one;
// that's only possible while none of them has been departed from yet (sealed). When all arcs are
// visited, all versions must be fusable into a single end node, and every node must be left by
// exactly the versions that entered it.
type Tracker struct {
	all    vset.Set
	at     []int // version -> raw node
	up     []int // union-find forest over raw nodes
	sealed []bool
	in     []vset.Set
	out    []vset.Set
}

// NewTracker returns a tracker with all versions at the start node 0.
func NewTracker(versions vset.Set) *Tracker {
	t := &Tracker{
		all: versions.Versions(),
		at:  make([]int, versions.Max()+1),
	}
	t.node(t.all)
	return t
}

func (t *Tracker) node(in vset.Set) int {
	n := len(t.up)
	t.up = append(t.up, n)
	t.sealed = append(t.sealed, false)
	t.in = append(t.in, in.Clone())
	t.out = append(t.out, vset.Set{})
	return n
}

func (t *Tracker) find(n int) int {
	for t.up[n] != n {
		t.up[n] = t.up[t.up[n]]
		n = t.up[n]
	}
	return n
}

// Node returns the node version v is currently at.
func (t *Tracker) Node(v int) int { return t.find(t.at[v]) }

// Root returns the node that n has been fused into.
func (t *Tracker) Root(n int) int { return t.find(n) }

// Sealed reports whether node n has been departed from.
func (t *Tracker) Sealed(n int) bool { return t.sealed[t.find(n)] }

// Nodes returns the distinct nodes the versions vs are at, ordered by their first version.
func (t *Tracker) Nodes(vs vset.Set) []int {
	var roots []int
	for v := range vs.All() {
		if v == vset.Hint || v >= len(t.at) {
			continue
		}
		r := t.find(t.at[v])
		seen := false
		for _, o := range roots {
			if o == r {
				seen = true
				break
			}
		}
		if !seen {
			roots = append(roots, r)
		}
	}
	return roots
}

// CanDepart reports whether an arc with the versions vs can be added.
func (t *Tracker) CanDepart(vs vset.Set) bool {
	vs = vs.Versions()
	if vs.IsEmpty() || !t.all.Contains(vs) {
		return false
	}
	roots := t.Nodes(vs)
	if len(roots) == 1 {
		return true
	}
	for _, r := range roots {
		if t.sealed[r] {
			return false
		}
	}
	return true
}

// Depart adds an arc with the versions vs and returns its start and end node. The hint bit is
// ignored.
func (t *Tracker) Depart(vs vset.Set) (from, to int, err error) {
	vs = vs.Versions()
	from, err = t.join(vs)
	if err != nil {
		return -1, -1, err
	}
	t.sealed[from] = true
	t.out[from].UnionWith(vs)
	to = t.node(vs)
	for v := range vs.All() {
		t.at[v] = to
	}
	return from, to, nil
}

// Follow moves version v along an arc from -> to that was departed before without v. v must be
// at from.
func (t *Tracker) Follow(v, from, to int) {
	from, to = t.find(from), t.find(to)
	t.out[from].Add(v)
	t.in[to].Add(v)
	t.at[v] = to
}

// Unfollow reverts [Tracker.Follow].
func (t *Tracker) Unfollow(v, from, to int) {
	from, to = t.find(from), t.find(to)
	t.out[from].Remove(v)
	t.in[to].Remove(v)
	t.at[v] = from
}

func (t *Tracker) join(vs vset.Set) (int, error) {
	if vs.IsEmpty() {
		return -1, fmt.Errorf("%w: arc without versions", ErrMalformed)
	}
	if !t.all.Contains(vs) {
		return -1, fmt.Errorf("%w: unknown versions %v", ErrMalformed, vset.Difference(vs, t.all))
	}
	roots := t.Nodes(vs)
	if len(roots) > 1 {
		for _, r := range roots {
			if t.sealed[r] {
				return -1, &UnbalancedError{Index: -1, In: t.in[r].Clone(), Out: t.out[r].Clone()}
			}
		}
		for _, r := range roots[1:] {
			t.up[r] = roots[0]
			t.in[roots[0]].UnionWith(t.in[r])
			t.out[roots[0]].UnionWith(t.out[r])
		}
	}
	return roots[0], nil
}

// Finish fuses all versions into the end node and checks that every node is balanced. It
// returns the end node.
func (t *Tracker) Finish() (int, error) {
	if t.all.IsEmpty() {
		return 0, nil
	}
	end, err := t.join(t.all)
	if err != nil {
		return -1, err
	}
	t.out[end].UnionWith(t.all)
	for n := range t.up {
		if t.find(n) != n {
			continue
		}
		if !t.in[n].Equal(t.out[n]) {
			return -1, &UnbalancedError{Index: -1, In: t.in[n].Clone(), Out: t.out[n].Clone()}
		}
	}
	return end, nil
}

// Nodes is a snapshot of the graph structure of a list, restricted to a set of versions.
type Nodes struct {
	t        *Tracker
	from, to map[CardID]int
	end      int
	succ     map[int][]int
}

// Nodes computes the graph structure of the list as seen by the versions vs. Cards that don't
// carry any of these versions are ignored.
func (l *List) Nodes(vs vset.Set) (*Nodes, error) {
	n := &Nodes{
		t:    NewTracker(vs),
		from: make(map[CardID]int),
		to:   make(map[CardID]int),
		succ: make(map[int][]int),
	}
	for c := range l.All() {
		cvs := vset.Intersection(l.cards[c].versions, n.t.all)
		if cvs.IsEmpty() {
			continue
		}
		from, to, err := n.t.Depart(cvs)
		if err != nil {
			return nil, err
		}
		n.from[c], n.to[c] = from, to
	}
	end, err := n.t.Finish()
	if err != nil {
		return nil, err
	}
	n.end = end
	for c, from := range n.from {
		a, b := n.t.find(from), n.t.find(n.to[c])
		n.succ[a] = append(n.succ[a], b)
	}
	return n, nil
}

// Start returns the start node of the graph.
func (n *Nodes) Start() int { return n.t.find(0) }

// End returns the end node of the graph.
func (n *Nodes) End() int { return n.t.find(n.end) }

// Before returns the node card c departs from.
func (n *Nodes) Before(c CardID) int { return n.t.find(n.from[c]) }

// After returns the node card c arrives at.
func (n *Nodes) After(c CardID) int { return n.t.find(n.to[c]) }

// Reaches reports whether there's a path from node a to node b. Every node reaches itself.
func (n *Nodes) Reaches(a, b int) bool {
	a, b = n.t.find(a), n.t.find(b)
	if a == b {
		return true
	}
	seen := map[int]bool{a: true}
	queue := []int{a}
	for len(queue) > 0 {
		x := queue[0]
		queue = queue[1:]
		for _, y := range n.succ[x] {
			if y == b {
				return true
			}
			if !seen[y] {
				seen[y] = true
				queue = append(queue, y)
			}
		}
	}
	return false
}
