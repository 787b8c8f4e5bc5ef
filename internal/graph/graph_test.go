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
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/mvd/internal/vset"
)

func ord(text string, vs ...int) Pair {
	return Pair{Versions: vset.Of(vs...), Data: []rune(text)}
}

func parent(id int, text string, vs ...int) Pair {
	return Pair{Versions: vset.Of(vs...), Kind: Parent, Data: []rune(text), ID: id}
}

func child(id int, vs ...int) Pair {
	return Pair{Versions: vset.Of(vs...), Kind: Child, ID: id}
}

func render(pairs []Pair) []string {
	out := make([]string, len(pairs))
	for i, p := range pairs {
		out[i] = p.String()
	}
	return out
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []Pair
		versions int
		want     error
	}{
		{
			name:     "empty",
			versions: 1,
		},
		{
			name:     "no-versions",
			versions: 0,
		},
		{
			name:     "single",
			pairs:    []Pair{ord("abc", 1)},
			versions: 1,
		},
		{
			name: "insertion",
			pairs: []Pair{
				ord("the cat ", 1, 2),
				ord("", 1),
				ord("quietly ", 2),
				ord("sat", 1, 2),
			},
			versions: 2,
		},
		{
			name: "insertion-without-blank",
			pairs: []Pair{
				ord("the cat ", 1, 2),
				ord("quietly ", 2),
				ord("sat", 1, 2),
			},
			versions: 2,
			want:     ErrUnbalanced,
		},
		{
			name: "transposition",
			pairs: []Pair{
				parent(1, "A", 1),
				ord("", 2),
				ord("B", 1, 2),
				ord("", 1),
				child(1, 2),
			},
			versions: 2,
		},
		{
			name: "child-before-parent",
			pairs: []Pair{
				child(7, 2),
				ord("", 1),
				ord("B", 1, 2),
				ord("", 2),
				parent(7, "A", 1),
			},
			versions: 2,
		},
		{
			name:     "missing-version",
			pairs:    []Pair{ord("abc", 1)},
			versions: 2,
			want:     ErrUnbalanced,
		},
		{
			name:     "orphan",
			pairs:    []Pair{child(3, 1)},
			versions: 1,
			want:     ErrOrphan,
		},
		{
			name:     "childless-parent",
			pairs:    []Pair{parent(1, "abc", 1)},
			versions: 1,
			want:     ErrMalformed,
		},
		{
			name: "duplicate-parent",
			pairs: []Pair{
				parent(1, "a", 1),
				parent(1, "b", 1),
				child(1, 1),
			},
			versions: 1,
			want:     ErrMalformed,
		},
		{
			name:     "child-with-data",
			pairs:    []Pair{{Versions: vset.Of(1), Kind: Child, ID: 1, Data: []rune("x")}},
			versions: 1,
			want:     ErrMalformed,
		},
		{
			name:     "ordinary-with-id",
			pairs:    []Pair{{Versions: vset.Of(1), ID: 4, Data: []rune("x")}},
			versions: 1,
			want:     ErrMalformed,
		},
		{
			name:     "empty-versions",
			pairs:    []Pair{ord("abc")},
			versions: 1,
			want:     ErrMalformed,
		},
		{
			name:     "hint",
			pairs:    []Pair{ord("abc", vset.Hint, 1)},
			versions: 1,
			want:     ErrMalformed,
		},
		{
			name:     "version-out-of-range",
			pairs:    []Pair{ord("abc", 1, 3)},
			versions: 2,
			want:     ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Verify(tt.pairs, tt.versions)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Verify(...) = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Verify(...) = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifyReportsIndex(t *testing.T) {
	pairs := []Pair{
		ord("the cat ", 1, 2),
		ord("quietly ", 2),
		ord("sat", 1, 2),
	}
	err := Verify(pairs, 2)
	var ue *UnbalancedError
	if !errors.As(err, &ue) {
		t.Fatalf("Verify(...) = %v, want *UnbalancedError", err)
	}
	if ue.Index != 2 {
		t.Errorf("Index = %d, want 2", ue.Index)
	}
	if got, want := ue.Out.String(), "{2}"; got != want {
		t.Errorf("Out = %s, want %s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	pairs := []Pair{
		child(7, 2),
		ord("", 1),
		ord("B", 1, 2),
		ord("", 2),
		parent(7, "A", 1),
	}
	l, o, err := FromPairs(pairs)
	if err != nil {
		t.Fatal(err)
	}
	got, created, err := l.ToPairs(o)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(render(pairs), render(got)); diff != "" {
		t.Errorf("round trip differs [-want,+got]:\n%s", diff)
	}
	if len(created) != 0 {
		t.Errorf("created = %v, want none", created)
	}
	if got := o.NextID(); got != 8 {
		t.Errorf("NextID() = %d, want 8", got)
	}
}

func TestFromPairsOrphan(t *testing.T) {
	_, _, err := FromPairs([]Pair{child(1, 1), ord("x", 1)})
	if !errors.Is(err, ErrOrphan) {
		t.Fatalf("FromPairs(...) = %v, want %v", err, ErrOrphan)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		pairs []Pair
		card  CardID
		off   int
		data  string // text of the returned card
		want  []string
		cuts  int
	}{
		{
			name:  "ordinary",
			pairs: []Pair{ord("abcd", 1)},
			card:  0,
			off:   1,
			data:  "bcd",
			want:  []string{`{1} "a"`, `{1} "bcd"`},
			cuts:  1,
		},
		{
			name:  "parent",
			pairs: []Pair{parent(1, "abcd", 1), child(1, 2)},
			card:  0,
			off:   2,
			data:  "cd",
			want:  []string{`{1} P1 "ab"`, `{1} P2 "cd"`, `{2} C1`, `{2} C2`},
			cuts:  2,
		},
		{
			name:  "child",
			pairs: []Pair{parent(1, "abcd", 1), child(1, 2), child(1, 3)},
			card:  2,
			off:   3,
			data:  "d",
			want: []string{
				`{1} P1 "abc"`, `{1} P2 "d"`,
				`{2} C1`, `{2} C2`,
				`{3} C1`, `{3} C2`,
			},
			cuts: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, o, err := FromPairs(tt.pairs)
			if err != nil {
				t.Fatal(err)
			}
			right, cuts := l.Split(tt.card, tt.off)
			if got := string(l.Data(right)); got != tt.data {
				t.Errorf("Data(right) = %q, want %q", got, tt.data)
			}
			if l.Next(tt.card) != right {
				t.Errorf("right half not linked after card")
			}
			if len(cuts) != tt.cuts {
				t.Errorf("got %d cuts, want %d", len(cuts), tt.cuts)
			}
			got, _, err := l.ToPairs(o)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, render(got)); diff != "" {
				t.Errorf("result differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestPromoteAndCreated(t *testing.T) {
	l, o, err := FromPairs([]Pair{ord("A", 1), ord("B", 1)})
	if err != nil {
		t.Fatal(err)
	}
	ch := l.NewChild(0, vset.Of(2))
	if got := l.Kind(0); got != Parent {
		t.Errorf("Kind() = %v, want %v", got, Parent)
	}
	if got := string(l.Data(ch)); got != "A" {
		t.Errorf("Data(child) = %q, want %q", got, "A")
	}
	l.PushBack(ch)
	got, created, err := l.ToPairs(o)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{`{1} P1 "A"`, `{1} "B"`, `{2} C1`}
	if diff := cmp.Diff(want, render(got)); diff != "" {
		t.Errorf("result differs [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 2}, created); diff != "" {
		t.Errorf("created differs [-want,+got]:\n%s", diff)
	}
}

func TestNextCards(t *testing.T) {
	l, _, err := FromPairs([]Pair{
		ord("x", 1, 2, 3),
		ord("a", 1),
		ord("b", 2, 3),
		ord("c", 1),
	})
	if err != nil {
		t.Fatal(err)
	}
	got := l.NextCards(0, vset.Of(1, 2, 3))
	want := []string{"1:{1}", "2:{2,3}"}
	var gotS []string
	for _, b := range got {
		gotS = append(gotS, string(rune('0'+b.Card))+":"+b.Versions.String())
	}
	if diff := cmp.Diff(want, gotS); diff != "" {
		t.Errorf("NextCards differs [-want,+got]:\n%s", diff)
	}
	if got := l.NextCards(3, vset.Of(1)); len(got) != 0 {
		t.Errorf("NextCards at tail = %v, want none", got)
	}
}

func TestListEditing(t *testing.T) {
	l := NewList()
	a := l.NewCard(vset.Of(1), []rune("a"))
	c := l.NewCard(vset.Of(1), []rune("c"))
	l.PushBack(a)
	l.PushBack(c)
	b := l.NewCard(vset.Of(1), []rune("b"))
	l.InsertBefore(b, c)
	x := l.NewCard(vset.Of(2), []rune("x"))
	y := l.NewCard(vset.Of(2), []rune("y"))
	l.Attach(x, y)
	l.SpliceBefore(x, a)
	l.Remove(c)

	var got string
	for id := range l.All() {
		got += string(l.Data(id))
	}
	if got != "xyab" {
		t.Errorf("list = %q, want %q", got, "xyab")
	}
	if l.Head() != x || l.Tail() != b {
		t.Errorf("head/tail = %d/%d, want %d/%d", l.Head(), l.Tail(), x, b)
	}
	if l.Prev(a) != y || l.Next(b) != Nil {
		t.Errorf("links broken")
	}
}

func TestNodesReaches(t *testing.T) {
	// Versions 1 and 2 branch after "x" and meet again before "z".
	l, _, err := FromPairs([]Pair{
		ord("x", 1, 2),
		ord("a", 1),
		ord("b", 2),
		ord("z", 1, 2),
	})
	if err != nil {
		t.Fatal(err)
	}
	n, err := l.Nodes(vset.Of(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if !n.Reaches(n.Start(), n.End()) {
		t.Errorf("start doesn't reach end")
	}
	if n.Reaches(n.After(1), n.Before(2)) {
		t.Errorf("parallel branches reach each other")
	}
	if !n.Reaches(n.After(0), n.Before(2)) || !n.Reaches(n.After(2), n.Before(3)) {
		t.Errorf("connected arcs don't reach each other")
	}
	if n.Reaches(n.After(3), n.Before(0)) {
		t.Errorf("graph has a back edge")
	}
	if n.After(1) != n.After(2) {
		t.Errorf("branches don't meet")
	}
}

func TestTrackerCanDepart(t *testing.T) {
	tr := NewTracker(vset.Of(1, 2))
	if !tr.CanDepart(vset.Of(1, 2)) {
		t.Fatalf("can't depart from start")
	}
	if _, _, err := tr.Depart(vset.Of(1)); err != nil {
		t.Fatal(err)
	}
	// Version 2 is left at the sealed start node.
	if tr.CanDepart(vset.Of(1, 2)) {
		t.Errorf("CanDepart({1,2}) = true, want false")
	}
	if !tr.CanDepart(vset.Of(2)) {
		t.Errorf("CanDepart({2}) = false, want true")
	}
	if _, _, err := tr.Depart(vset.Of(1, 2)); !errors.Is(err, ErrUnbalanced) {
		t.Errorf("Depart({1,2}) = %v, want %v", err, ErrUnbalanced)
	}
	if tr.CanDepart(vset.Of(3)) {
		t.Errorf("CanDepart({3}) = true for unknown version")
	}
}
