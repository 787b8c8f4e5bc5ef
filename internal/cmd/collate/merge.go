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
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"znkr.io/mvd"
	"znkr.io/mvd/charset"
	"znkr.io/mvd/internal/config"
)

type mergeOptions struct {
	format       string
	output       string
	kdist        int
	queue        int
	minTranspose int
	maxRunes     int
	parallel     int
}

func newMergeCommand(g *globals) *cobra.Command {
	var opts mergeOptions
	cmd := &cobra.Command{
		Use:   "merge witness...",
		Short: "Merge witness files, in order, into a new document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := g.logger(cmd.ErrOrStderr())
			return runMerge(cmd.Context(), cmd.OutOrStdout(), log, g.encoding, &opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "table", "output format, table or yaml")
	f.StringVarP(&opts.output, "output", "o", "", "write the document to this file, implies --format=yaml")
	f.IntVar(&opts.kdist, "kdist", config.Default.KDist, "characters that may be skipped when chaining matches")
	f.IntVar(&opts.queue, "queue", config.Default.QueueCapacity, "number of candidate matches to keep")
	f.IntVar(&opts.minTranspose, "min-transpose", config.Default.MinTransposeLength, "minimum length of a transposition")
	f.IntVar(&opts.maxRunes, "max-runes", 0, "if >0, reject witnesses longer than this")
	f.IntVar(&opts.parallel, "parallel", runtime.GOMAXPROCS(0), "number of witnesses to decode in parallel")
	return cmd
}

func runMerge(ctx context.Context, w io.Writer, log *slog.Logger, enc string, opts *mergeOptions, files []string) error {
	format := opts.format
	if opts.output != "" {
		format = "yaml"
	}
	if format != "table" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}

	texts, err := readWitnesses(ctx, files, enc, opts.maxRunes, opts.parallel)
	if err != nil {
		return err
	}

	mopts := []mvd.Option{
		mvd.KDist(opts.kdist),
		mvd.QueueCapacity(opts.queue),
		mvd.MinTransposeLength(opts.minTranspose),
		mvd.Logger(log),
	}
	doc, stats, err := mvd.Collate(texts, mopts...)
	if err != nil {
		return err
	}
	for i, st := range stats {
		log.Info("merged witness", "file", files[i], "version", i+1,
			"mums", st.Mums, "transpositions", st.Transpositions, "discards", st.Discards)
	}
	log.Info("collated", "versions", doc.Versions, "pairs", len(doc.Pairs))

	return writeTo(w, opts.output, func(w io.Writer) error {
		if format == "yaml" {
			return writeYAML(w, doc, files)
		}
		return writeTable(w, doc, files)
	})
}

// readWitnesses reads and decodes files concurrently. The result is in the order of files.
func readWitnesses(ctx context.Context, files []string, enc string, maxRunes, parallel int) ([][]rune, error) {
	texts := make([][]rune, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, parallel))
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			if maxRunes > 0 {
				n, err := charset.Measure(b, enc)
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				if n > maxRunes {
					return fmt.Errorf("%s: %d runes exceed the limit of %d", file, n, maxRunes)
				}
			}
			text, err := charset.Convert(b, enc)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}
