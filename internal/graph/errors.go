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

var (
	// ErrUnbalanced is returned when a node of the graph can't be formed, either because versions
	// would have to join a node after it was left, or because the versions entering a node differ
	// from the versions leaving it.
	ErrUnbalanced = errors.New("unbalanced node")
	// ErrOrphan is returned when a child references a parent that doesn't exist.
	ErrOrphan = errors.New("child without parent")
	// ErrMalformed is returned for pairs that are inconsistent on their own.
	ErrMalformed = errors.New("malformed pair")
)

// UnbalancedError describes a node that violates the graph invariant.
type UnbalancedError struct {
	// Index of the pair at which the violation was detected, or -1 at the end of the document.
	Index int
	// In and Out are the versions entering and leaving the offending node.
	In, Out vset.Set
}

func (e *UnbalancedError) Error() string {
	where := "at end of document"
	if e.Index >= 0 {
		where = fmt.Sprintf("at pair %d", e.Index)
	}
	return fmt.Sprintf("unbalanced node %s: incoming %v, outgoing %v", where, e.In, e.Out)
}

func (e *UnbalancedError) Unwrap() error { return ErrUnbalanced }

func malformed(i int, format string, args ...any) error {
	return fmt.Errorf("%w at pair %d: %s", ErrMalformed, i, fmt.Sprintf(format, args...))
}
