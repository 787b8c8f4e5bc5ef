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
	"iter"

	"znkr.io/mvd/internal/vset"
)

// CardID identifies a card in a [List].
type CardID int32

// Nil is the id of no card.
const Nil CardID = -1

type card struct {
	versions vset.Set
	kind     Kind
	data     []rune   // Ordinary and Parent only
	parent   CardID   // Child only
	children []CardID // Parent only
	id       int      // persistent parent id, 0 if not yet assigned
	fresh    bool     // became a parent or child during this pass

	prev, next CardID
}

// List is a doubly linked list of cards backed by an arena. Cards are never freed while a list
// is alive, a CardID stays valid until the list is discarded.
//
// Cards that are not (yet) part of the list proper can be linked into detached chains with
// [List.Attach]. Most list operations work on detached chains as well.
type List struct {
	cards      []card
	head, tail CardID
}

// NewList returns an empty list.
func NewList() *List {
	return &List{head: Nil, tail: Nil}
}

func (l *List) alloc(c card) CardID {
	c.prev, c.next = Nil, Nil
	if c.kind != Child {
		c.parent = Nil
	}
	l.cards = append(l.cards, c)
	return CardID(len(l.cards) - 1)
}

// NewCard allocates a detached ordinary card.
func (l *List) NewCard(vs vset.Set, data []rune) CardID {
	return l.alloc(card{versions: vs.Clone(), kind: Ordinary, data: data[:len(data):len(data)]})
}

// NewChild allocates a detached child of c. If c is ordinary, it's promoted to a parent; if c
// is a child, the new card becomes a sibling.
func (l *List) NewChild(c CardID, vs vset.Set) CardID {
	p := l.Promote(c)
	ch := l.alloc(card{versions: vs.Clone(), kind: Child, parent: p, fresh: true})
	l.cards[p].children = append(l.cards[p].children, ch)
	return ch
}

// Promote turns an ordinary card into a parent and returns it. For a child, it returns its
// parent.
func (l *List) Promote(c CardID) CardID {
	switch l.cards[c].kind {
	case Child:
		return l.cards[c].parent
	case Ordinary:
		if len(l.cards[c].data) == 0 {
			panic("promoting a blank card")
		}
		l.cards[c].kind = Parent
		l.cards[c].fresh = true
	}
	return c
}

func (l *List) adopt(p, ch CardID) {
	l.cards[ch].parent = p
	l.cards[p].children = append(l.cards[p].children, ch)
}

// Head returns the first card of the list.
func (l *List) Head() CardID { return l.head }

// Tail returns the last card of the list.
func (l *List) Tail() CardID { return l.tail }

// Next returns the card after c, or Nil.
func (l *List) Next(c CardID) CardID { return l.cards[c].next }

// Prev returns the card before c, or Nil.
func (l *List) Prev(c CardID) CardID { return l.cards[c].prev }

// All iterates over the list from head to tail.
func (l *List) All() iter.Seq[CardID] {
	return l.Chain(l.head)
}

// Chain iterates over the cards from c following the next links.
func (l *List) Chain(c CardID) iter.Seq[CardID] {
	return func(yield func(CardID) bool) {
		for ; c != Nil; c = l.cards[c].next {
			if !yield(c) {
				return
			}
		}
	}
}

// PushBack appends a detached card to the end of the list.
func (l *List) PushBack(c CardID) {
	if l.tail == Nil {
		l.head, l.tail = c, c
		return
	}
	l.InsertAfter(c, l.tail)
}

// InsertAfter links the detached card c directly after at.
func (l *List) InsertAfter(c, at CardID) {
	next := l.cards[at].next
	l.cards[c].prev, l.cards[c].next = at, next
	l.cards[at].next = c
	if next != Nil {
		l.cards[next].prev = c
	} else if at == l.tail {
		l.tail = c
	}
}

// InsertBefore links the detached card c directly before at.
func (l *List) InsertBefore(c, at CardID) {
	prev := l.cards[at].prev
	l.cards[c].prev, l.cards[c].next = prev, at
	l.cards[at].prev = c
	if prev != Nil {
		l.cards[prev].next = c
	} else if at == l.head {
		l.head = c
	}
}

// Attach appends the detached chain starting at c to the detached chain starting at head.
func (l *List) Attach(head, c CardID) {
	last := head
	for l.cards[last].next != Nil {
		last = l.cards[last].next
	}
	l.cards[last].next = c
	l.cards[c].prev = last
}

// SpliceBefore moves the detached chain starting at head in front of at.
func (l *List) SpliceBefore(head, at CardID) {
	for c := head; c != Nil; {
		next := l.cards[c].next
		l.cards[c].next = Nil
		l.cards[c].prev = Nil
		l.InsertBefore(c, at)
		c = next
	}
}

// Remove unlinks c from the list.
func (l *List) Remove(c CardID) {
	prev, next := l.cards[c].prev, l.cards[c].next
	if prev != Nil {
		l.cards[prev].next = next
	} else if l.head == c {
		l.head = next
	}
	if next != Nil {
		l.cards[next].prev = prev
	} else if l.tail == c {
		l.tail = prev
	}
	l.cards[c].prev, l.cards[c].next = Nil, Nil
}

// Versions returns the versions of c. The result must not be modified.
func (l *List) Versions(c CardID) vset.Set { return l.cards[c].versions }

// AddVersion adds version v to c.
func (l *List) AddVersion(c CardID, v int) { l.cards[c].versions.Add(v) }

// Kind returns the kind of c.
func (l *List) Kind(c CardID) Kind { return l.cards[c].kind }

// Parent returns the parent of a child card, or Nil.
func (l *List) Parent(c CardID) CardID { return l.cards[c].parent }

// Data returns the text of c. Children return the data of their parent.
func (l *List) Data(c CardID) []rune {
	if l.cards[c].kind == Child {
		return l.cards[l.cards[c].parent].data
	}
	return l.cards[c].data
}

// Len returns the length of the text of c.
func (l *List) Len(c CardID) int { return len(l.Data(c)) }

// Branch is a group of versions that continue with the same card.
type Branch struct {
	Card     CardID
	Versions vset.Set
}

// NextCards returns the cards that the versions vs read after c, grouped by card and ordered by
// list position. Versions that don't continue after c are dropped.
func (l *List) NextCards(c CardID, vs vset.Set) []Branch {
	rest := vs.Clone()
	var out []Branch
	for n := l.cards[c].next; n != Nil && !rest.IsEmpty(); n = l.cards[n].next {
		if !rest.Intersects(l.cards[n].versions) {
			continue
		}
		g := vset.Intersection(rest, l.cards[n].versions)
		rest.DifferenceWith(g)
		out = append(out, Branch{n, g})
	}
	return out
}

// Cut records that Card was split at Off, with Right holding the text from Off on.
type Cut struct {
	Card, Right CardID
	Off         int
}

// Split cuts c in two at off, so that c keeps the text before off and the returned card, linked
// directly after c, holds the rest. A parent is split together with all of its children, and a
// child is split by splitting its parent. All cuts are reported, in parent first order.
func (l *List) Split(c CardID, off int) (CardID, []Cut) {
	root := c
	if l.cards[c].kind == Child {
		root = l.cards[c].parent
	}
	rc := l.cards[root]
	if off <= 0 || off >= len(rc.data) {
		panic(fmt.Sprintf("split offset %d out of range (0, %d)", off, len(rc.data)))
	}
	right := l.alloc(card{
		versions: rc.versions.Clone(),
		kind:     rc.kind,
		data:     rc.data[off:],
		fresh:    rc.kind == Parent,
	})
	l.cards[root].data = rc.data[:off:off]
	l.InsertAfter(right, root)
	cuts := []Cut{{root, right, off}}
	for _, ch := range rc.children {
		cr := l.alloc(card{versions: l.cards[ch].versions.Clone(), kind: Child, parent: right, fresh: true})
		l.cards[right].children = append(l.cards[right].children, cr)
		l.InsertAfter(cr, ch)
		cuts = append(cuts, Cut{ch, cr, off})
	}
	for _, cut := range cuts {
		if cut.Card == c {
			return cut.Right, cuts
		}
	}
	panic("never reached")
}

// String renders the list, one card per line.
func (l *List) String() string {
	var s []byte
	for c := range l.All() {
		cd := &l.cards[c]
		switch cd.kind {
		case Parent:
			s = fmt.Appendf(s, "%v P#%d %q\n", cd.versions, c, string(cd.data))
		case Child:
			s = fmt.Appendf(s, "%v C#%d\n", cd.versions, cd.parent)
		default:
			s = fmt.Appendf(s, "%v %q\n", cd.versions, string(cd.data))
		}
	}
	return string(s)
}
