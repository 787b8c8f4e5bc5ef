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

package charset

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		enc  string
		in   []byte
		want string
	}{
		{"utf-8", "utf-8", []byte("héllo wörld ✓"), "héllo wörld ✓"},
		{"utf-8-label", "UTF8", []byte("abc"), "abc"},
		{"windows-1252", "windows-1252", []byte{'h', 0xe9, 'l', 'l', 'o'}, "héllo"},
		{"latin1", "latin1", []byte{'h', 0xe9}, "hé"},
		{"utf-16le", "utf-16le", []byte{'h', 0, 'i', 0}, "hi"},
		{"utf-16be", "utf-16be", []byte{0, 'h', 0, 'i'}, "hi"},
		{"empty", "utf-8", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.in, tt.enc)
			if err != nil {
				t.Fatalf("Convert(...) failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("Convert(...) differs [-want,+got]:\n%s", diff)
			}
			n, err := Measure(tt.in, tt.enc)
			if err != nil {
				t.Fatalf("Measure(...) failed: %v", err)
			}
			if want := len([]rune(tt.want)); n != want {
				t.Errorf("Measure(...) = %d, want %d", n, want)
			}
		})
	}
}

func TestRevert(t *testing.T) {
	for _, enc := range []string{"utf-8", "windows-1252", "utf-16le"} {
		in := []rune("héllo")
		b, err := Revert(in, enc)
		if err != nil {
			t.Fatalf("Revert(%q) failed: %v", enc, err)
		}
		got, err := Convert(b, enc)
		if err != nil {
			t.Fatalf("Convert(%q) failed: %v", enc, err)
		}
		if diff := cmp.Diff(string(in), string(got)); diff != "" {
			t.Errorf("round trip through %s differs [-want,+got]:\n%s", enc, diff)
		}
	}

	b, err := Revert([]rune("é"), "windows-1252")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{0xe9}, b); diff != "" {
		t.Errorf("Revert(é) differs [-want,+got]:\n%s", diff)
	}
}

func TestRevertUnsupportedRune(t *testing.T) {
	if _, err := Revert([]rune("✓"), "windows-1252"); err == nil {
		t.Errorf("Revert(✓, windows-1252) succeeded, want error")
	}
}

func TestUnknownEncoding(t *testing.T) {
	if _, err := Convert([]byte("x"), "klingon"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("Convert(...) = %v, want %v", err, ErrUnknownEncoding)
	}
	if _, err := Measure([]byte("x"), "klingon"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("Measure(...) = %v, want %v", err, ErrUnknownEncoding)
	}
	if _, err := Revert([]rune("x"), "klingon"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("Revert(...) = %v, want %v", err, ErrUnknownEncoding)
	}
}
