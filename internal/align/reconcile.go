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
	"fmt"
	"slices"

	"znkr.io/mvd/internal/graph"
	"znkr.io/mvd/internal/vset"
)

// reconcile splices all deviants into the list.
//
// The list is walked with a live node tracker. Cards of the old versions only are visited as
// they are. Before each direct arc B of the new version, the deviants with smaller text offsets
// are inserted as a chain C. If B can't depart from the node the new version arrives at after
// C, a blank E for the old versions of B is inserted before C, such that the list reads E, C, B.
// If there are no deviants but the new version can't reach B, it joins a visited blank that
// leaves its node, or else a blank for the new version alone is used as C. A sentinel arc for
// all versions, marked with the hint bit, stands in for the end of the document.
func (m *merger) reconcile() error {
	slices.SortStableFunc(m.deviants, func(a, b deviant) int { return cmp.Compare(a.text, b.text) })

	all := vset.Range(1, m.v+1)
	vOnly := vset.Of(m.v)
	hint := all.Clone()
	hint.SetHint(true)
	sentinel := m.list.NewCard(hint, nil)
	m.list.PushBack(sentinel)
	m.direct[sentinel] = len(m.text)

	t := graph.NewTracker(all)
	var blanks []arc
	next, last := 0, 0
	for c := m.list.Head(); c != graph.Nil; c = m.list.Next(c) {
		vs := m.list.Versions(c)
		if !vs.Has(m.v) {
			from, to, err := t.Depart(vs)
			if err != nil {
				return fmt.Errorf("reconciling version %d: %w", m.v, err)
			}
			if m.list.Kind(c) == graph.Ordinary && m.list.Len(c) == 0 {
				blanks = append(blanks, arc{c, from, to})
			}
			continue
		}
		at, ok := m.direct[c]
		if !ok {
			panic("never reached")
		}
		if at < last {
			return fmt.Errorf("%w: version %d reads offset %d after %d", graph.ErrUnbalanced, m.v, at, last)
		}
		last = at

		head := graph.Nil
		for ; next < len(m.deviants) && m.deviants[next].text < at; next++ {
			if head == graph.Nil {
				head = m.deviants[next].head
			} else {
				m.list.Attach(head, m.deviants[next].head)
			}
		}
		if head == graph.Nil && !t.CanDepart(vs) && m.joinBlank(t, blanks, vs) {
			m.log.Debug("reconcile", "version", m.v, "at", at, "joined", true)
		}
		if head == graph.Nil && t.CanDepart(vs) {
			if _, _, err := t.Depart(vs); err != nil {
				return fmt.Errorf("reconciling version %d: %w", m.v, err)
			}
			continue
		}
		if head == graph.Nil {
			head = m.list.NewCard(vOnly, nil)
		}

		old := vset.Difference(vs.Versions(), vOnly)
		vNode := t.Node(m.v)
		nodes := t.Nodes(old)
		blank := slices.Contains(nodes, vNode) || slices.ContainsFunc(nodes, t.Sealed)
		m.log.Debug("reconcile", "version", m.v, "at", at, "blank", blank)
		if blank {
			e := m.list.NewCard(old, nil)
			m.list.InsertBefore(e, c)
			if _, _, err := t.Depart(old); err != nil {
				return fmt.Errorf("reconciling version %d: %w", m.v, err)
			}
		}
		m.list.SpliceBefore(head, c)
		for x := head; x != c; x = m.list.Next(x) {
			if _, _, err := t.Depart(m.list.Versions(x)); err != nil {
				return fmt.Errorf("reconciling version %d: %w", m.v, err)
			}
		}
		if _, _, err := t.Depart(vs); err != nil {
			return fmt.Errorf("reconciling version %d: %w", m.v, err)
		}
	}
	m.list.Remove(sentinel)
	if next < len(m.deviants) {
		panic("never reached")
	}
	return nil
}

// arc is a visited card with the nodes it departed from and arrived at.
type arc struct {
	card     graph.CardID
	from, to int
}

// joinBlank adds the new version to a visited blank that leaves the node the new version is at,
// if that lets it depart with vs. The most recent blank is tried first.
func (m *merger) joinBlank(t *graph.Tracker, blanks []arc, vs vset.Set) bool {
	for i := len(blanks) - 1; i >= 0; i-- {
		b := blanks[i]
		if m.list.Versions(b.card).Has(m.v) || t.Root(b.from) != t.Node(m.v) {
			continue
		}
		t.Follow(m.v, b.from, b.to)
		if t.CanDepart(vs) {
			m.list.AddVersion(b.card, m.v)
			return true
		}
		t.Unfollow(m.v, b.from, b.to)
	}
	return false
}
