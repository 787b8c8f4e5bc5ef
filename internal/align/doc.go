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

// Package align merges a new version into a variant graph.
//
// # Overview
//
// The new text T is aligned against the text already recorded in the graph, one segment of T
// at a time. For each segment, every position of the graph that doesn't belong to the new
// version yet is used as the start of a match: the graph is read along the versions of the
// start card while the string read is looked up in a suffix tree of the segment. Where versions
// part ways, the match branches and every branch is followed. A match is only useful if it
// ends on a leaf of the suffix tree, that is, if it occurs exactly once in the segment.
//
// The best candidate, the longest match that occurs once in the graph and once in the segment,
// is a maximal unique match (MUM). Matches can be chained across small differences: a
// following segment may start up to KDist characters later in the graph and in the text.
//
// # Direct and transposed matches
//
// The new version already reads some arcs of the graph (direct arcs). A MUM between the
// neighbouring direct arcs of the segment is merged directly: the new version is added to
// every card it spans. A MUM elsewhere in the graph is a transposition: the spanned cards are
// promoted to parents and the new version reads a child of each of them. Transpositions are
// only accepted if they're long compared to their distance from the segment's position in the
// graph (length^1.618 > distance).
//
// The text before and after a MUM is aligned recursively, longest MUM first. Text without any
// acceptable MUM is inserted as new text (discard).
//
// # Reconciliation
//
// Discards, children, and text skipped between chained segments (deviants) are not part of
// the graph until the end of the merge. Then, the list is walked once and every deviant is
// spliced in before the next direct arc of the new version, together with blank arcs that keep
// the graph well formed. See [graph.Verify] for the structural rules.
package align
