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
	"znkr.io/mvd/internal/vset"
)

// deviant is text of the new version that's not a direct arc. It's kept as a detached chain of
// cards until the graph is reconciled.
type deviant struct {
	text int
	head graph.CardID
}

// split cuts cards so that every segment of c starts and ends at a card boundary and returns
// the cards read by each segment. Segments are cut from right to left, so that the positions of
// the segments not cut yet stay valid.
func (m *merger) split(c *candidate) [][]graph.CardID {
	segs := c.segs
	for i := len(segs) - 1; i >= 0; i-- {
		_, end := m.path(segs[i])
		if end.off < m.list.Len(end.card) {
			m.cut(end.card, end.off, segs[:i+1])
		}
		if start := segs[i].start; start.off > 0 {
			m.cut(start.card, start.off, segs[:i+1])
		}
	}
	runs := make([][]graph.CardID, len(segs))
	for i, s := range segs {
		runs[i], _ = m.path(s)
	}
	return runs
}

// cut splits card c at off and moves the start of all segments behind the cut to the new card.
func (m *merger) cut(c graph.CardID, off int, segs []segment) {
	_, cuts := m.list.Split(c, off)
	for _, cut := range cuts {
		for i := range segs {
			if p := &segs[i].start; p.card == cut.Card && p.off >= cut.Off {
				*p = pos{cut.Right, p.off - cut.Off}
			}
		}
		if t, ok := m.direct[cut.Card]; ok {
			m.direct[cut.Right] = t + cut.Off
		}
	}
}

// path returns the cards read by s and the position after its last rune.
func (m *merger) path(s segment) ([]graph.CardID, pos) {
	cards := []graph.CardID{s.start.card}
	p := s.start
	n := 0
	for {
		if step := min(m.list.Len(p.card)-p.off, s.length-n); step > 0 {
			p.off += step
			n += step
		}
		if n == s.length {
			return cards, p
		}
		next := m.list.NextCards(p.card, s.versions)
		if len(next) == 0 {
			panic("never reached")
		}
		p = pos{next[0].Card, 0}
		cards = append(cards, p.card)
	}
}

// mergeDirect adds the new version to all cards of c.
func (m *merger) mergeDirect(c *candidate, runs [][]graph.CardID) {
	for i, s := range c.segs {
		t := s.text
		for _, card := range runs[i] {
			m.list.AddVersion(card, m.v)
			m.direct[card] = t
			t += m.list.Len(card)
		}
	}
	m.between(c)
}

// mergeTransposed makes every card of c a parent and adds a child for the new version.
func (m *merger) mergeTransposed(c *candidate, runs [][]graph.CardID) {
	for i, s := range c.segs {
		head := graph.Nil
		for _, card := range runs[i] {
			if m.list.Len(card) == 0 {
				continue
			}
			ch := m.list.NewChild(card, vset.Of(m.v))
			if head == graph.Nil {
				head = ch
			} else {
				m.list.Attach(head, ch)
			}
		}
		m.deviants = append(m.deviants, deviant{s.text, head})
	}
	m.between(c)
}

// between adds the text skipped between the segments of c as deviants.
func (m *merger) between(c *candidate) {
	for i := 1; i < len(c.segs); i++ {
		prev := c.segs[i-1]
		from, to := prev.text+prev.length, c.segs[i].text
		if from < to {
			m.deviants = append(m.deviants, deviant{from, m.list.NewCard(vset.Of(m.v), m.text[from:to])})
		}
	}
}

// discard adds the text of a as new text.
func (m *merger) discard(a alignment) {
	m.deviants = append(m.deviants, deviant{a.start, m.list.NewCard(vset.Of(m.v), m.text[a.start:a.end])})
	m.stats.Discards++
}
