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

package align

import (
	"log/slog"
	"slices"

	"znkr.io/mvd/internal/config"
	"znkr.io/mvd/internal/graph"
	"znkr.io/mvd/internal/rankq"
	"znkr.io/mvd/internal/vset"
)

// Stats counts what a merge did.
type Stats struct {
	// Mums is the number of maximal unique matches merged, direct or transposed.
	Mums int
	// Transpositions is the number of MUMs merged as transpositions.
	Transpositions int
	// Discards is the number of text segments inserted as new text.
	Discards int
}

// Result is the outcome of a merge.
type Result struct {
	// Pairs of the merged document.
	Pairs []graph.Pair
	// Created are the indices of pairs that became a parent or child during the merge.
	Created []int
	Stats   Stats
}

type merger struct {
	cfg  config.Config
	log  *slog.Logger
	list *graph.List
	text []rune
	v    int      // the new version
	old  vset.Set // all versions before the merge

	pending  []alignment
	direct   map[graph.CardID]int // text offset of every direct arc of v
	deviants []deviant
	stats    Stats
	queue    *rankq.Queue[*candidate] // shared by all decks
}

// Merge adds text as version n+1 to the document pairs with n versions. The document must be
// valid, see [graph.Verify]; it's not modified.
func Merge(pairs []graph.Pair, n int, text []rune, cfg config.Config) (Result, error) {
	list, orphanage, err := graph.FromPairs(pairs)
	if err != nil {
		return Result{}, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	m := &merger{
		cfg:    cfg,
		log:    log,
		list:   list,
		text:   slices.Clone(text),
		v:      n + 1,
		old:    vset.Range(1, n+1),
		direct: make(map[graph.CardID]int),
		queue:  rankq.New(cfg.QueueCapacity, byRank),
	}
	m.push(alignment{0, len(m.text), len(m.text)})
	for {
		a, ok := m.pop()
		if !ok {
			break
		}
		if err := m.align(a); err != nil {
			return Result{}, err
		}
	}
	if err := m.reconcile(); err != nil {
		return Result{}, err
	}
	out, created, err := list.ToPairs(orphanage)
	if err != nil {
		return Result{}, err
	}
	m.log.Debug("merged", "version", m.v, "pairs", len(out), "mums", m.stats.Mums,
		"transpositions", m.stats.Transpositions, "discards", m.stats.Discards)
	return Result{Pairs: out, Created: created, Stats: m.stats}, nil
}

// align finds the best MUM for a, merges it, and queues the text before and after it.
func (m *merger) align(a alignment) error {
	nodes, err := m.list.Nodes(m.old)
	if err != nil {
		return err
	}
	lay := m.layout(a)
	d := newDeck(m.list, m.text, a.start, a.end, m.v, m.cfg.KDist, m.queue)
	d.fill()
	c := d.mum(func(c *candidate) bool {
		c.transposed = lay.transposed(nodes, c)
		if !c.transposed {
			return true
		}
		return c.length >= m.cfg.MinTransposeLength && withinThreshold(lay.distance(m.list, c), c.length)
	})
	if c == nil {
		m.log.Debug("discard", "version", m.v, "start", a.start, "end", a.end)
		m.discard(a)
		return nil
	}
	m.log.Debug("mum", "version", m.v, "start", a.start, "end", a.end,
		"text", c.text(), "length", c.length, "segments", len(c.segs), "transposed", c.transposed)

	runs := m.split(c)
	m.stats.Mums++
	if c.transposed {
		m.stats.Transpositions++
		m.mergeTransposed(c, runs)
	} else {
		m.mergeDirect(c, runs)
	}
	m.push(alignment{a.start, c.text(), c.length})
	m.push(alignment{c.end(), a.end, c.length})
	return nil
}
