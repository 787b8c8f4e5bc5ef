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
	"slices"

	"github.com/spf13/cobra"
	"znkr.io/mvd"
)

func newCheckCommand(g *globals) *cobra.Command {
	var parallel int
	cmd := &cobra.Command{
		Use:   "check document [witness...]",
		Short: "Verify a document and, optionally, that its versions match the witness files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			if files := args[1:]; len(files) > 0 {
				texts, err := readWitnesses(cmd.Context(), files, g.encoding, 0, parallel)
				if err != nil {
					return err
				}
				if err := validate(doc, files, texts); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d versions, %d pairs\n",
				okColor.Sprint("ok"), args[0], doc.Versions, len(doc.Pairs))
			return err
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", 4, "number of witnesses to decode in parallel")
	return cmd
}

// validate checks that every version of doc reads back as the witness it was merged from.
func validate(doc mvd.Document, files []string, texts [][]rune) error {
	if len(texts) != doc.Versions {
		return fmt.Errorf("document has %d versions, got %d witnesses", doc.Versions, len(texts))
	}
	for i, text := range texts {
		if !slices.Equal(doc.Version(i+1), text) {
			return fmt.Errorf("%w: version %d doesn't match %s", mvd.ErrRoundTrip, i+1, files[i])
		}
	}
	return nil
}
