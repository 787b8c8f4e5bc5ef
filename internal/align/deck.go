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
	"cmp"
	"math"

	"znkr.io/mvd/internal/graph"
	"znkr.io/mvd/internal/rankq"
	"znkr.io/mvd/internal/suffixtree"
	"znkr.io/mvd/internal/vset"
)

// deck finds the candidates for a MUM between the graph and a segment of the new text.
type deck struct {
	list  *graph.List
	tree  *suffixtree.Tree
	text  []rune // the complete new text
	start int    // the segment of text starts here, tree holds the rest of it
	v     int    // the new version
	kdist int
	queue *rankq.Queue[*candidate]
	m     match
}

// newDeck returns a deck for text[start:end]. It takes over the queue and empties it.
func newDeck(list *graph.List, text []rune, start, end, v, kdist int, queue *rankq.Queue[*candidate]) *deck {
	queue.Reset()
	return &deck{
		list:  list,
		tree:  suffixtree.New(text[start:end]),
		text:  text,
		start: start,
		v:     v,
		kdist: kdist,
		queue: queue,
	}
}

// byRank orders candidates by length, longest first, and then by text offset.
func byRank(a, b *candidate) int {
	if c := cmp.Compare(b.length, a.length); c != 0 {
		return c
	}
	return cmp.Compare(a.text(), b.text())
}

// next returns the branches after c that don't belong to the new version.
func (d *deck) next(c graph.CardID, vs vset.Set) []graph.Branch {
	branches := d.list.NextCards(c, vs)
	out := branches[:0]
	for _, b := range branches {
		if !d.list.Versions(b.Card).Has(d.v) {
			out = append(out, b)
		}
	}
	return out
}

// fill starts a match at every position of every card that the new version doesn't read.
func (d *deck) fill() {
	for c := range d.list.All() {
		if d.list.Versions(c).Has(d.v) {
			continue
		}
		for i := range d.list.Len(c) {
			d.run(c, i)
		}
	}
}

// run matches from (c, i) and queues the best candidate.
func (d *deck) run(c graph.CardID, i int) {
	m := &d.m
	m.reset(d, c, i)
	var best *candidate
	for {
		if s, ok := m.single(d); ok && (best == nil || s.length > best.length) {
			best = &candidate{segs: []segment{s}, length: s.length}
		}
		if !m.pop() {
			break
		}
	}
	if best == nil {
		return
	}
	if t := best.text(); i > 0 && t > d.start && d.list.Data(c)[i-1] == d.text[t-1] {
		best.shadow = true
	} else {
		d.extend(best)
	}
	d.queue.Insert(best)
}

// extend chains segments to c as long as a segment longer than kdist follows within kdist
// skipped runes in the graph and in the text.
func (d *deck) extend(c *candidate) {
	for {
		last := c.segs[len(c.segs)-1]
		var best segment
		for g := 0; g <= d.kdist; g++ {
			at, vs, ok := d.skip(last.end, last.versions, g)
			if !ok {
				break
			}
			for k := 0; k <= d.kdist; k++ {
				if g == 0 && k == 0 {
					continue
				}
				s := d.follow(at, vs, last.text+last.length+k)
				if s.length > d.kdist && s.length > best.length {
					best = s
				}
			}
		}
		if best.length == 0 {
			return
		}
		c.segs = append(c.segs, best)
		c.length += best.length
	}
}

// skip moves n runes forward in the graph, following the first branch of vs. The returned
// position is at a rune, unless the graph ends.
func (d *deck) skip(p pos, vs vset.Set, n int) (pos, vset.Set, bool) {
	for {
		if p.off == d.list.Len(p.card) {
			branches := d.next(p.card, vs)
			if len(branches) == 0 {
				return p, vs, n == 0
			}
			p, vs = pos{branches[0].Card, 0}, branches[0].Versions
			continue
		}
		if n == 0 {
			return p, vs, true
		}
		p.off++
		n--
	}
}

// follow compares the graph at p with the text at t for as long as they agree.
func (d *deck) follow(p pos, vs vset.Set, t int) segment {
	s := segment{text: t}
	end := d.start + d.tree.Len()
	for t+s.length < end {
		data := d.list.Data(p.card)
		if p.off == len(data) {
			branches := d.next(p.card, vs)
			if len(branches) == 0 {
				break
			}
			p, vs = pos{branches[0].Card, 0}, branches[0].Versions
			continue
		}
		if data[p.off] != d.text[t+s.length] {
			break
		}
		if s.length == 0 {
			s.start = p
		}
		p.off++
		s.length++
		s.end = p
		s.versions = vs
	}
	s.versions = s.versions.Clone()
	return s
}

// mum returns the best candidate that's unique in the graph and accepted by accept.
func (d *deck) mum(accept func(*candidate) bool) *candidate {
	for d.queue.Len() > 0 {
		it, _ := d.queue.Pop()
		if it.Freq > 1 || it.Value.shadow {
			continue
		}
		if accept(it.Value) {
			return it.Value
		}
	}
	return nil
}

// withinThreshold reports whether a transposition of the given length may be merged at the
// given distance.
func withinThreshold(distance, length int) bool {
	return math.Pow(float64(length), 1.618) > float64(distance)
}
