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

// Package charset converts witness files between their on-disk encoding and the runes a document
// is built from.
//
// Encodings are named by their WHATWG labels, e.g. "utf-8", "utf-16le", "windows-1252" or
// "iso-8859-2". Note that "iso-8859-1" and "latin1" are treated as "windows-1252", as browsers do.
package charset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for encoding names that aren't recognized.
var ErrUnknownEncoding = errors.New("unknown encoding")

func lookup(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return enc, nil
}

// Measure returns the number of runes b decodes to, without materializing them.
func Measure(b []byte, name string) (int, error) {
	enc, err := lookup(name)
	if err != nil {
		return 0, err
	}
	r := bufio.NewReader(transform.NewReader(bytes.NewReader(b), enc.NewDecoder()))
	n := 0
	for {
		_, _, err := r.ReadRune()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return 0, fmt.Errorf("decoding %s: %w", name, err)
		}
		n++
	}
}

// Convert decodes b from the named encoding. Invalid input is replaced by U+FFFD.
func Convert(b []byte, name string) ([]rune, error) {
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return bytes.Runes(out), nil
}

// Revert encodes r in the named encoding. It fails if r contains a rune the encoding can't
// represent.
func Revert(r []rune, name string) ([]byte, error) {
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(string(r)))
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	return out, nil
}
