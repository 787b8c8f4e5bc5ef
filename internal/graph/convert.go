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

import "fmt"

// FromPairs converts a document into a list of cards. The returned orphanage knows every parent
// id of the document and hands out fresh ones.
func FromPairs(pairs []Pair) (*List, *Orphanage, error) {
	l := NewList()
	o := NewOrphanage()
	for i, p := range pairs {
		c := l.alloc(card{versions: p.Versions.Clone(), kind: p.Kind, id: p.ID})
		switch p.Kind {
		case Ordinary:
			l.cards[c].data = p.Data[:len(p.Data):len(p.Data)]
		case Parent:
			l.cards[c].data = p.Data[:len(p.Data):len(p.Data)]
			waiting, err := o.AddParent(p.ID, c)
			if err != nil {
				return nil, nil, fmt.Errorf("pair %d: %w", i, err)
			}
			for _, ch := range waiting {
				l.adopt(c, ch)
			}
		case Child:
			l.cards[c].parent = Nil
			if parent, ok := o.AddChild(p.ID, c); ok {
				l.adopt(parent, c)
			}
		default:
			return nil, nil, malformed(i, "unknown kind %v", p.Kind)
		}
		l.PushBack(c)
	}
	if err := o.check(); err != nil {
		return nil, nil, err
	}
	return l, o, nil
}

// ToPairs converts the list back into a document. Parents that don't have an id yet get a fresh
// one from o. It also returns the indices of all parents and children that were created during
// this pass.
func (l *List) ToPairs(o *Orphanage) ([]Pair, []int, error) {
	for c := range l.All() {
		if cd := &l.cards[c]; cd.kind == Parent && cd.id == 0 {
			cd.id = o.NextID()
		}
	}
	check := NewOrphanage()
	var pairs []Pair
	var created []int
	for c := range l.All() {
		cd := &l.cards[c]
		p := Pair{Versions: cd.versions.Clone(), Kind: cd.kind}
		switch cd.kind {
		case Ordinary:
			p.Data = cd.data
		case Parent:
			p.Data, p.ID = cd.data, cd.id
			if _, err := check.AddParent(p.ID, c); err != nil {
				return nil, nil, err
			}
		case Child:
			p.ID = l.cards[cd.parent].id
			check.AddChild(p.ID, c)
		}
		if cd.fresh && cd.kind != Ordinary {
			created = append(created, len(pairs))
		}
		pairs = append(pairs, p)
	}
	if err := check.check(); err != nil {
		return nil, nil, err
	}
	return pairs, created, nil
}
