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

// Package vset provides a growable bit vector of version ids.
//
// Bit 0 is reserved for the hint flag, versions are numbered from 1. A Set is a value, but it
// shares its backing words when copied; use [Set.Clone] before mutating a copy.
package vset

import (
	"iter"
	"math/bits"
	"slices"
	"strconv"
	"strings"
)

// Hint is the reserved bit that marks a transient hint pair.
const Hint = 0

// Set is an ordered set of small non-negative integers.
type Set struct {
	w []uint64
}

// Of returns a set containing vs.
func Of(vs ...int) Set {
	var s Set
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Range returns a set containing all versions in [lo, hi).
func Range(lo, hi int) Set {
	var s Set
	for v := lo; v < hi; v++ {
		s.Add(v)
	}
	return s
}

// Add inserts v, growing the set if needed.
func (s *Set) Add(v int) {
	if v < 0 {
		panic("vset: negative version " + strconv.Itoa(v))
	}
	i := v >> 6
	if i >= len(s.w) {
		s.grow(i + 1)
	}
	s.w[i] |= 1 << (v & 63)
}

// grow reallocates so that copies sharing the old words never observe the new ones.
func (s *Set) grow(n int) {
	w := make([]uint64, n)
	copy(w, s.w)
	s.w = w
}

// Remove deletes v.
func (s *Set) Remove(v int) {
	if i := v >> 6; v >= 0 && i < len(s.w) {
		s.w[i] &^= 1 << (v & 63)
	}
}

// Has reports whether v is in the set.
func (s Set) Has(v int) bool {
	i := v >> 6
	return v >= 0 && i < len(s.w) && s.w[i]&(1<<(v&63)) != 0
}

// Hint reports whether the hint bit is set.
func (s Set) Hint() bool { return s.Has(Hint) }

// SetHint sets or clears the hint bit.
func (s *Set) SetHint(on bool) {
	if on {
		s.Add(Hint)
	} else {
		s.Remove(Hint)
	}
}

// Versions returns a copy of s without the hint bit.
func (s Set) Versions() Set {
	c := s.Clone()
	c.Remove(Hint)
	return c
}

// Len returns the number of elements in the set (cardinality).
func (s Set) Len() int {
	n := 0
	for _, w := range s.w {
		n += bits.OnesCount64(w)
	}
	return n
}

// IsEmpty reports whether no bit is set.
func (s Set) IsEmpty() bool {
	for _, w := range s.w {
		if w != 0 {
			return false
		}
	}
	return true
}

// NextSet returns the smallest element >= i, or -1 if there is none.
func (s Set) NextSet(i int) int {
	if i < 0 {
		i = 0
	}
	wi := i >> 6
	if wi >= len(s.w) {
		return -1
	}
	w := s.w[wi] >> (i & 63)
	if w != 0 {
		return i + bits.TrailingZeros64(w)
	}
	for wi++; wi < len(s.w); wi++ {
		if s.w[wi] != 0 {
			return wi<<6 + bits.TrailingZeros64(s.w[wi])
		}
	}
	return -1
}

// Max returns the largest element, or -1 for an empty set.
func (s Set) Max() int {
	for i := len(s.w) - 1; i >= 0; i-- {
		if s.w[i] != 0 {
			return i<<6 + 63 - bits.LeadingZeros64(s.w[i])
		}
	}
	return -1
}

// All iterates over the elements in ascending order.
func (s Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for v := s.NextSet(0); v >= 0; v = s.NextSet(v + 1) {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone returns a copy that doesn't share memory with s.
func (s Set) Clone() Set {
	return Set{slices.Clone(s.w)}
}

// Equal reports whether s and t have identical bit patterns. Trailing zero words are ignored.
func (s Set) Equal(t Set) bool {
	a, b := s.w, t.w
	if len(a) < len(b) {
		a, b = b, a
	}
	for i, w := range a {
		var o uint64
		if i < len(b) {
			o = b[i]
		}
		if w != o {
			return false
		}
	}
	return true
}

// Intersects reports whether s and t share at least one element.
func (s Set) Intersects(t Set) bool {
	for i := range min(len(s.w), len(t.w)) {
		if s.w[i]&t.w[i] != 0 {
			return true
		}
	}
	return false
}

// Contains reports whether t is a subset of s.
func (s Set) Contains(t Set) bool {
	for i, w := range t.w {
		var o uint64
		if i < len(s.w) {
			o = s.w[i]
		}
		if w&^o != 0 {
			return false
		}
	}
	return true
}

// UnionWith adds all elements of t to s.
func (s *Set) UnionWith(t Set) {
	if len(t.w) > len(s.w) {
		s.grow(len(t.w))
	}
	for i, w := range t.w {
		s.w[i] |= w
	}
}

// IntersectWith removes all elements from s that are not in t.
func (s *Set) IntersectWith(t Set) {
	for i := range s.w {
		if i < len(t.w) {
			s.w[i] &= t.w[i]
		} else {
			s.w[i] = 0
		}
	}
}

// DifferenceWith removes all elements of t from s.
func (s *Set) DifferenceWith(t Set) {
	for i := range min(len(s.w), len(t.w)) {
		s.w[i] &^= t.w[i]
	}
}

// Union returns a new set with the elements of a and b.
func Union(a, b Set) Set {
	c := a.Clone()
	c.UnionWith(b)
	return c
}

// Intersection returns a new set with the elements common to a and b.
func Intersection(a, b Set) Set {
	c := a.Clone()
	c.IntersectWith(b)
	return c
}

// Difference returns a new set with the elements of a that are not in b.
func Difference(a, b Set) Set {
	c := a.Clone()
	c.DifferenceWith(b)
	return c
}

// String renders the set as "{1,2,5}". The hint bit is rendered as "h".
func (s Set) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for v := range s.All() {
		if sb.Len() > 1 {
			sb.WriteByte(',')
		}
		if v == Hint {
			sb.WriteByte('h')
		} else {
			sb.WriteString(strconv.Itoa(v))
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// Parse parses the output of [Set.String].
func Parse(str string) (Set, bool) {
	str, ok := strings.CutPrefix(str, "{")
	if !ok {
		return Set{}, false
	}
	str, ok = strings.CutSuffix(str, "}")
	if !ok {
		return Set{}, false
	}
	var s Set
	if str == "" {
		return s, true
	}
	for f := range strings.SplitSeq(str, ",") {
		f = strings.TrimSpace(f)
		if f == "h" {
			s.SetHint(true)
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil || v <= 0 {
			return Set{}, false
		}
		s.Add(v)
	}
	return s, true
}
