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
	"errors"
	"fmt"

	"znkr.io/mvd/internal/vset"
)

// Verify checks that pairs form a valid document with the versions 1 to n:
//
//   - every pair carries at least one version, none of them larger than n, and no hint bit,
//   - ordinary pairs have no id, parents have a positive unique id and data, children have the
//     id of an existing parent and no data of their own,
//   - the pairs in list order form a variant graph, as simulated by a [Tracker].
//
// Structural violations are reported as [*UnbalancedError].
func Verify(pairs []Pair, n int) error {
	t := NewTracker(vset.Range(1, n+1))
	o := NewOrphanage()
	for i, p := range pairs {
		switch {
		case p.Versions.IsEmpty():
			return malformed(i, "no versions")
		case p.Versions.Hint():
			return malformed(i, "hint bit set")
		case p.Versions.Max() > n:
			return malformed(i, "version %d out of range", p.Versions.Max())
		}
		switch p.Kind {
		case Ordinary:
			if p.ID != 0 {
				return malformed(i, "ordinary pair with id %d", p.ID)
			}
		case Parent:
			if len(p.Data) == 0 {
				return malformed(i, "parent without data")
			}
			// Pair indices stand in for card ids.
			if _, err := o.AddParent(p.ID, CardID(i)); err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}
		case Child:
			if len(p.Data) != 0 {
				return malformed(i, "child with data")
			}
			o.AddChild(p.ID, CardID(i))
		default:
			return malformed(i, "unknown kind %v", p.Kind)
		}
		if _, _, err := t.Depart(p.Versions); err != nil {
			var ue *UnbalancedError
			if errors.As(err, &ue) {
				ue.Index = i
			}
			return err
		}
	}
	if _, err := t.Finish(); err != nil {
		return err
	}
	return o.check()
}
