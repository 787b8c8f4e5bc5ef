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

// Package mvd stores many versions of a text in a single multi-version document (MVD) and merges
// new versions into it.
//
// A [Document] is a variant graph serialized as a list of [Pair] values. Each pair carries a
// fragment of text and the set of versions that read it. Reading the pairs in order and keeping
// those that contain version v yields the text of v, see [Document.Version].
//
// [Merge] adds a new version. It repeatedly looks for the longest match between the new text and
// the existing versions that occurs exactly once in both (a maximal unique match, or MUM), adds
// the new version to the matched pairs, and continues with the unmatched text on both sides.
// Matches that can't be reached in order are merged as transpositions: the matched text is
// stored once, as a parent pair, and referenced by a child pair at the new location. Text that
// doesn't match anything is inserted as new pairs.
//
// Performance: A merge builds a suffix tree over the new text once per aligned range, so the
// runtime is roughly O(N * M) in the worst case, where N is the size of the document and M is the
// number of MUMs. Matching uses bounded memory, see [QueueCapacity].
package mvd
