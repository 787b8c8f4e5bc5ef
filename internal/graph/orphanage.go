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
	"maps"
	"slices"
)

// Orphanage links children to their parents by id. Children may appear before their parent, they
// are kept as orphans until the parent shows up.
type Orphanage struct {
	parents map[int]CardID
	adopted map[int]int
	orphans map[int][]CardID
	next    int
}

// NewOrphanage returns an empty orphanage.
func NewOrphanage() *Orphanage {
	return &Orphanage{
		parents: make(map[int]CardID),
		adopted: make(map[int]int),
		orphans: make(map[int][]CardID),
		next:    1,
	}
}

// AddParent registers parent c with the given id and returns all orphans waiting for it.
func (o *Orphanage) AddParent(id int, c CardID) ([]CardID, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: parent id %d", ErrMalformed, id)
	}
	if _, ok := o.parents[id]; ok {
		return nil, fmt.Errorf("%w: duplicate parent id %d", ErrMalformed, id)
	}
	o.parents[id] = c
	o.next = max(o.next, id+1)
	waiting := o.orphans[id]
	delete(o.orphans, id)
	o.adopted[id] += len(waiting)
	return waiting, nil
}

// AddChild registers child c. If its parent is known, it's returned; otherwise c becomes an
// orphan.
func (o *Orphanage) AddChild(id int, c CardID) (CardID, bool) {
	if p, ok := o.parents[id]; ok {
		o.adopted[id]++
		return p, true
	}
	o.orphans[id] = append(o.orphans[id], c)
	return Nil, false
}

// Orphans returns the sorted ids that children reference but no parent provides.
func (o *Orphanage) Orphans() []int {
	return slices.Sorted(maps.Keys(o.orphans))
}

// Childless returns the sorted ids of parents without any child.
func (o *Orphanage) Childless() []int {
	var ids []int
	for id := range o.parents {
		if o.adopted[id] == 0 {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// NextID returns an id that no registered parent uses.
func (o *Orphanage) NextID() int {
	id := o.next
	o.next++
	return id
}

func (o *Orphanage) check() error {
	if ids := o.Orphans(); len(ids) > 0 {
		return fmt.Errorf("%w: no parent for id(s) %v", ErrOrphan, ids)
	}
	if ids := o.Childless(); len(ids) > 0 {
		return fmt.Errorf("%w: parent id(s) %v without children", ErrMalformed, ids)
	}
	return nil
}
