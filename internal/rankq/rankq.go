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

// Package rankq implements a bounded queue that keeps the best ranked items and counts how often
// each rank was offered.
package rankq

import "slices"

// Item is an entry of the queue.
type Item[T any] struct {
	Value T
	// Freq is the number of times a value with the same rank was inserted.
	Freq int
}

// Queue keeps at most a fixed number of items, ordered by a comparison function. Items that
// compare equal are considered the same entry; inserting them again only increases the frequency
// of the entry already in the queue.
type Queue[T any] struct {
	items []Item[T] // sorted, best first
	limit int
	cmp   func(a, b T) int
}

// New returns a queue holding at most limit items. cmp must return a negative number if a ranks
// before b, zero if both have the same rank, and a positive number otherwise.
func New[T any](limit int, cmp func(a, b T) int) *Queue[T] {
	limit = max(limit, 1)
	return &Queue[T]{
		items: make([]Item[T], 0, limit),
		limit: limit,
		cmp:   cmp,
	}
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int { return len(q.items) }

// Insert offers v to the queue. If an item with the same rank is in the queue, its frequency is
// incremented. Otherwise, v is inserted if the queue isn't full or if v ranks before the worst
// item, which is then dropped. It reports whether the queue changed.
func (q *Queue[T]) Insert(v T) bool {
	i, found := slices.BinarySearchFunc(q.items, v, func(it Item[T], v T) int {
		return q.cmp(it.Value, v)
	})
	if found {
		q.items[i].Freq++
		return true
	}
	if len(q.items) == q.limit {
		if i == len(q.items) {
			return false
		}
		q.items = q.items[:len(q.items)-1]
	}
	q.items = slices.Insert(q.items, i, Item[T]{Value: v, Freq: 1})
	return true
}

// Pop removes and returns the best item.
func (q *Queue[T]) Pop() (Item[T], bool) {
	if len(q.items) == 0 {
		var zero Item[T]
		return zero, false
	}
	it := q.items[0]
	q.items = slices.Delete(q.items, 0, 1)
	return it, true
}

// Reset removes all items.
func (q *Queue[T]) Reset() {
	clear(q.items)
	q.items = q.items[:0]
}
