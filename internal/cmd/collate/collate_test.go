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

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
	"znkr.io/mvd"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// witnesses writes texts to files in a temporary directory and returns their names.
func witnesses(t *testing.T, texts ...string) []string {
	t.Helper()
	dir := t.TempDir()
	var files []string
	for i, text := range texts {
		name := filepath.Join(dir, string(rune('a'+i))+".txt")
		if err := os.WriteFile(name, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		files = append(files, name)
	}
	return files
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func render(doc mvd.Document) []string {
	out := make([]string, len(doc.Pairs))
	for i, p := range doc.Pairs {
		out[i] = p.String()
	}
	return out
}

func TestMergeYAML(t *testing.T) {
	files := witnesses(t, "the cat sat", "the cat quietly sat")
	out, err := run(t, "merge", "--format", "yaml", files[0], files[1])
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	doc, names, err := readYAML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("can't read merge output: %v\n%s", err, out)
	}
	want := []string{
		`{1,2} "the cat "`,
		`{1} ""`,
		`{2} "quietly "`,
		`{1,2} "sat"`,
	}
	if diff := cmp.Diff(want, render(doc)); diff != "" {
		t.Errorf("merged document differs [-want,+got]:\n%s", diff)
	}
	if diff := cmp.Diff(files, names); diff != "" {
		t.Errorf("witnesses differ [-want,+got]:\n%s", diff)
	}
}

func TestMergeTable(t *testing.T) {
	files := witnesses(t, "AB", "BA")
	out, err := run(t, "merge", files[0], files[1])
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	want := strings.Join([]string{
		`   0  {1}    P1    "A"`,
		`   1  {2}          ""`,
		`   2  {1,2}        "B"`,
		`   3  {1}          ""`,
		`   4  {2}    C1`,
		"version 1: " + files[0],
		"version 2: " + files[1],
	}, "\n") + "\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("table differs [-want,+got]:\n%s", diff)
	}
}

func TestMergeUnknownFormat(t *testing.T) {
	files := witnesses(t, "abc")
	if _, err := run(t, "merge", "--format", "xml", files[0]); err == nil {
		t.Errorf("merge --format xml succeeded, want error")
	}
}

func TestMergeMaxRunes(t *testing.T) {
	files := witnesses(t, "short", "this one is too long")
	_, err := run(t, "merge", "--max-runes", "10", files[0], files[1])
	if err == nil || !strings.Contains(err.Error(), "exceed the limit") {
		t.Errorf("merge --max-runes 10 = %v, want limit error", err)
	}
}

func TestCheck(t *testing.T) {
	texts := []string{"the cat sat on the mat", "the cat sat", "on the mat the cat sat"}
	files := witnesses(t, texts...)
	doc := filepath.Join(t.TempDir(), "doc.yaml")
	if _, err := run(t, append([]string{"merge", "-o", doc}, files...)...); err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	out, err := run(t, append([]string{"check", doc}, files...)...)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.HasPrefix(out, "ok "+doc+": 3 versions") {
		t.Errorf("check printed %q", out)
	}

	// Witnesses in the wrong order don't match.
	if _, err := run(t, "check", doc, files[1], files[0], files[2]); !errors.Is(err, mvd.ErrRoundTrip) {
		t.Errorf("check with swapped witnesses = %v, want %v", err, mvd.ErrRoundTrip)
	}
}

func TestCheckInvalid(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "doc.yaml")
	data := `versions: 2
pairs:
  - versions: "{1,2}"
    data: "the cat "
  - versions: "{2}"
    data: "quietly "
  - versions: "{1,2}"
    data: sat
`
	if err := os.WriteFile(doc, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "check", doc); !errors.Is(err, mvd.ErrUnbalanced) {
		t.Errorf("check = %v, want %v", err, mvd.ErrUnbalanced)
	}
}

func TestDiff(t *testing.T) {
	files := witnesses(t, "the cat sat", "the cat quietly sat")
	doc := filepath.Join(t.TempDir(), "doc.yaml")
	if _, err := run(t, "merge", "-o", doc, files[0], files[1]); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	tests := []struct {
		a, b string
		want string
	}{
		{"1", "2", "the cat {+quietly +}sat\n"},
		{"2", "1", "the cat [-quietly -]sat\n"},
		{"2", "2", "the cat quietly sat\n"},
	}
	for _, tt := range tests {
		out, err := run(t, "diff", doc, tt.a, tt.b)
		if err != nil {
			t.Fatalf("diff %s %s failed: %v", tt.a, tt.b, err)
		}
		if diff := cmp.Diff(tt.want, out); diff != "" {
			t.Errorf("diff %s %s differs [-want,+got]:\n%s", tt.a, tt.b, diff)
		}
	}
	if _, err := run(t, "diff", doc, "1", "3"); err == nil {
		t.Errorf("diff with version out of range succeeded, want error")
	}
}

func TestExtractEncoding(t *testing.T) {
	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte{'c', 'a', 'f', 0xe9}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte{'c', 'a', 'f', 0xe9, 's'}, 0o644); err != nil {
		t.Fatal(err)
	}
	doc := filepath.Join(dir, "doc.yaml")
	if _, err := run(t, "merge", "-e", "windows-1252", "-o", doc, a, b); err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	out, err := run(t, "extract", "-e", "windows-1252", doc, "2")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if diff := cmp.Diff([]byte{'c', 'a', 'f', 0xe9, 's'}, []byte(out)); diff != "" {
		t.Errorf("extract differs [-want,+got]:\n%s", diff)
	}
	out, err = run(t, "extract", doc, "1")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if diff := cmp.Diff("café", out); diff != "" {
		t.Errorf("extract as utf-8 differs [-want,+got]:\n%s", diff)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	var doc mvd.Document
	for _, text := range []string{"AB", "BA", ""} {
		res, err := mvd.Merge(doc, []rune(text))
		if err != nil {
			t.Fatal(err)
		}
		doc = res.Document
	}
	var buf bytes.Buffer
	if err := writeYAML(&buf, doc, nil); err != nil {
		t.Fatal(err)
	}
	got, _, err := readYAML(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := got.Verify(); err != nil {
		t.Fatalf("decoded document is invalid: %v", err)
	}
	if diff := cmp.Diff(render(doc), render(got)); diff != "" {
		t.Errorf("round trip differs [-want,+got]:\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, d := range []document{
		{Versions: 1, Pairs: []pair{{Versions: "1"}}},
		{Versions: 1, Pairs: []pair{{Versions: "{1}", Kind: "sibling"}}},
	} {
		if _, err := d.decode(); err == nil {
			t.Errorf("decode(%+v) succeeded, want error", d)
		}
	}
}
