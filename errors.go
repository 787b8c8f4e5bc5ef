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

package mvd

import (
	"errors"

	"znkr.io/mvd/internal/graph"
)

var (
	// ErrInvalidDocument is returned by [Merge] if its input isn't a valid document.
	ErrInvalidDocument = errors.New("invalid document")
	// ErrRoundTrip is returned by [Collate] if a version doesn't read back as its text.
	ErrRoundTrip = errors.New("version doesn't match its text")
	// ErrUnbalanced reports a node whose incoming and outgoing versions differ.
	ErrUnbalanced = graph.ErrUnbalanced
	// ErrOrphan reports a child without a parent.
	ErrOrphan = graph.ErrOrphan
	// ErrMalformed reports a pair that can't appear in a document, e.g. one without versions.
	ErrMalformed = graph.ErrMalformed
)

// UnbalancedError describes the first unbalanced node found by [Document.Verify].
type UnbalancedError = graph.UnbalancedError
