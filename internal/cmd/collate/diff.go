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

	"github.com/spf13/cobra"
	"znkr.io/mvd"
)

func newDiffCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "diff document a b",
		Short: "Show the differences between two versions as a word diff",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			a, err := parseVersion(doc, args[1])
			if err != nil {
				return err
			}
			b, err := parseVersion(doc, args[2])
			if err != nil {
				return err
			}
			return writeDiff(cmd.OutOrStdout(), doc.Compare(a, b))
		},
	}
}

func parseVersion(doc mvd.Document, arg string) (int, error) {
	v, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q", arg)
	}
	if v < 1 || v > doc.Versions {
		return 0, fmt.Errorf("version %d out of range [1, %d]", v, doc.Versions)
	}
	return v, nil
}

func writeDiff(w io.Writer, edits []mvd.Edit) error {
	for _, e := range edits {
		var err error
		switch e.Op {
		case mvd.Match:
			_, err = fmt.Fprint(w, string(e.Text))
		case mvd.Delete:
			_, err = deleteColor.Fprintf(w, "[-%s-]", string(e.Text))
		case mvd.Insert:
			_, err = insertColor.Fprintf(w, "{+%s+}", string(e.Text))
		default:
			panic("never reached")
		}
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
