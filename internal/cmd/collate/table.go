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
	"strconv"
	"strings"

	"github.com/fatih/color"
	"znkr.io/mvd"
)

var (
	versionColor = color.New(color.FgCyan)
	parentColor  = color.New(color.FgGreen, color.Bold)
	childColor   = color.New(color.FgYellow)
	deleteColor  = color.New(color.FgRed)
	insertColor  = color.New(color.FgGreen)
	okColor      = color.New(color.FgGreen, color.Bold)
)

// writeTable prints one pair per line: index, versions, parent or child id, and data.
func writeTable(w io.Writer, doc mvd.Document, witnesses []string) error {
	width := 0
	for _, p := range doc.Pairs {
		width = max(width, len(p.Versions.String()))
	}
	for i, p := range doc.Pairs {
		vs := p.Versions.String()
		kind := "    "
		switch p.Kind {
		case mvd.Parent:
			kind = parentColor.Sprintf("P%-3d", p.ID)
		case mvd.Child:
			kind = childColor.Sprintf("C%-3d", p.ID)
		}
		data := ""
		if p.Kind != mvd.Child {
			data = strconv.Quote(string(p.Data))
		}
		line := fmt.Sprintf("%4d  %s%s  %s  %s", i, versionColor.Sprint(vs), strings.Repeat(" ", width-len(vs)), kind, data)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	for i, name := range witnesses {
		if _, err := fmt.Fprintf(w, "version %d: %s\n", i+1, name); err != nil {
			return err
		}
	}
	return nil
}
