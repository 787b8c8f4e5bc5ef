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
	"fmt"
	"slices"

	"znkr.io/mvd/internal/align"
	"znkr.io/mvd/internal/config"
	"znkr.io/mvd/internal/graph"
	"znkr.io/mvd/internal/vset"
)

// VersionSet is a set of version ids. Versions are numbered from 1.
type VersionSet = vset.Set

// Versions returns a set containing vs.
func Versions(vs ...int) VersionSet { return vset.Of(vs...) }

// Pair is a single arc of the variant graph, see [graph.Pair].
type Pair = graph.Pair

// Kind distinguishes ordinary pairs from the parents and children of transpositions.
type Kind = graph.Kind

const (
	// Ordinary pairs carry their own text.
	Ordinary = graph.Ordinary
	// Parent pairs carry text that's shared with one or more children.
	Parent = graph.Parent
	// Child pairs read the text of the parent with the same id.
	Child = graph.Child
)

// Document is a multi-version document.
type Document struct {
	// Versions is the number of versions in the document. Version ids are 1..Versions.
	Versions int
	// Pairs is the serialized variant graph.
	Pairs []Pair
}

// New returns a document with text as its only version. This is the same as merging text into
// the empty document.
func New(text []rune) Document {
	return Document{
		Versions: 1,
		Pairs:    []Pair{{Versions: vset.Of(1), Data: append([]rune(nil), text...)}},
	}
}

// Verify checks that d is a well-formed variant graph: every version is a single path from start
// to end, and every child has a parent.
func (d Document) Verify() error {
	return graph.Verify(d.Pairs, d.Versions)
}

// Version returns the text of version v, or nil if v isn't a version of d.
func (d Document) Version(v int) []rune {
	if v < 1 || v > d.Versions {
		return nil
	}
	parents := d.parents()
	var out []rune
	for _, p := range d.Pairs {
		if p.Versions.Has(v) {
			out = append(out, d.data(p, parents)...)
		}
	}
	return out
}

// parents indexes parent pairs by id.
func (d Document) parents() map[int]int {
	parents := make(map[int]int)
	for i, p := range d.Pairs {
		if p.Kind == Parent {
			parents[p.ID] = i
		}
	}
	return parents
}

func (d Document) data(p Pair, parents map[int]int) []rune {
	if p.Kind != Child {
		return p.Data
	}
	i, ok := parents[p.ID]
	if !ok {
		return nil
	}
	return d.Pairs[i].Data
}

// Stats counts what a merge did.
type Stats = align.Stats

// Result is the outcome of [Merge].
type Result struct {
	// Document is the merged document.
	Document Document
	// Created lists the indices of pairs that became a parent or a child during the merge.
	Created []int
	// Stats about the merge.
	Stats Stats
}

// Merge adds text as version d.Versions+1 to d. The input document isn't modified.
//
// Merge returns an error wrapping [ErrInvalidDocument] if d isn't a valid document. Unless
// [NoVerify] is used, the merged document is verified too; a failure there indicates a bug.
func Merge(d Document, text []rune, opts ...Option) (Result, error) {
	return merge(d, text, config.FromOptions(opts, config.All))
}

func merge(d Document, text []rune, cfg config.Config) (Result, error) {
	if err := d.Verify(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	res, err := align.Merge(d.Pairs, d.Versions, text, cfg)
	if err != nil {
		return Result{}, fmt.Errorf("merging version %d: %w", d.Versions+1, err)
	}
	out := Document{Versions: d.Versions + 1, Pairs: res.Pairs}
	if cfg.Verify {
		if err := out.Verify(); err != nil {
			return Result{}, fmt.Errorf("merging version %d: %w", out.Versions, err)
		}
	}
	return Result{Document: out, Created: res.Created, Stats: res.Stats}, nil
}

// Collate merges texts, in order, into a new document and returns it with the stats of every
// merge. The document is verified after every merge and every version must read back as the
// text it was merged from, otherwise Collate returns an error wrapping [ErrRoundTrip].
//
// All options but [NoVerify] are allowed.
func Collate(texts [][]rune, opts ...Option) (Document, []Stats, error) {
	cfg := config.FromOptions(opts, config.All&^config.NoVerify)
	var d Document
	stats := make([]Stats, 0, len(texts))
	for _, text := range texts {
		res, err := merge(d, text, cfg)
		if err != nil {
			return Document{}, nil, err
		}
		d = res.Document
		stats = append(stats, res.Stats)
	}
	for i, text := range texts {
		if !slices.Equal(d.Version(i+1), text) {
			return Document{}, nil, fmt.Errorf("%w: version %d", ErrRoundTrip, i+1)
		}
	}
	return d, stats, nil
}
