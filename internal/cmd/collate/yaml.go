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
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"znkr.io/mvd"
	"znkr.io/mvd/internal/vset"
)

// document is the YAML representation of an [mvd.Document].
type document struct {
	Versions  int      `yaml:"versions"`
	Witnesses []string `yaml:"witnesses,omitempty"`
	Pairs     []pair   `yaml:"pairs"`
}

type pair struct {
	Versions string `yaml:"versions"`
	Kind     string `yaml:"kind,omitempty"`
	ID       int    `yaml:"id,omitempty"`
	Data     string `yaml:"data,omitempty"`
}

func encodeDocument(doc mvd.Document, witnesses []string) document {
	out := document{
		Versions:  doc.Versions,
		Witnesses: witnesses,
		Pairs:     make([]pair, len(doc.Pairs)),
	}
	for i, p := range doc.Pairs {
		out.Pairs[i] = pair{Versions: p.Versions.String(), ID: p.ID, Data: string(p.Data)}
		switch p.Kind {
		case mvd.Parent:
			out.Pairs[i].Kind = "parent"
		case mvd.Child:
			out.Pairs[i].Kind = "child"
		}
	}
	return out
}

func (d *document) decode() (mvd.Document, error) {
	doc := mvd.Document{Versions: d.Versions, Pairs: make([]mvd.Pair, len(d.Pairs))}
	for i, p := range d.Pairs {
		vs, ok := vset.Parse(p.Versions)
		if !ok {
			return mvd.Document{}, fmt.Errorf("pair %d: invalid version set %q", i, p.Versions)
		}
		var kind mvd.Kind
		switch p.Kind {
		case "", "ordinary":
			kind = mvd.Ordinary
		case "parent":
			kind = mvd.Parent
		case "child":
			kind = mvd.Child
		default:
			return mvd.Document{}, fmt.Errorf("pair %d: unknown kind %q", i, p.Kind)
		}
		doc.Pairs[i] = mvd.Pair{Versions: vs, Kind: kind, Data: []rune(p.Data), ID: p.ID}
	}
	return doc, nil
}

func writeYAML(w io.Writer, doc mvd.Document, witnesses []string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(encodeDocument(doc, witnesses)); err != nil {
		return err
	}
	return enc.Close()
}

func readYAML(r io.Reader) (mvd.Document, []string, error) {
	var d document
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return mvd.Document{}, nil, err
	}
	doc, err := d.decode()
	if err != nil {
		return mvd.Document{}, nil, err
	}
	return doc, d.Witnesses, nil
}

// loadDocument reads and verifies the document stored in the named file.
func loadDocument(name string) (mvd.Document, []string, error) {
	f, err := os.Open(name)
	if err != nil {
		return mvd.Document{}, nil, err
	}
	defer f.Close()
	doc, witnesses, err := readYAML(f)
	if err != nil {
		return mvd.Document{}, nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := doc.Verify(); err != nil {
		return mvd.Document{}, nil, fmt.Errorf("%s: %w", name, err)
	}
	return doc, witnesses, nil
}
