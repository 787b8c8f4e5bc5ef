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

// collate merges witness files into a multi-version document and inspects stored documents.
//
// Documents are stored as YAML. A typical session looks like this:
//
//	collate merge -o doc.yaml a.txt b.txt c.txt
//	collate check doc.yaml a.txt b.txt c.txt
//	collate diff doc.yaml 1 3
//	collate extract doc.yaml 2
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// globals are the flags shared by all commands.
type globals struct {
	verbose  bool
	encoding string
}

func newRootCommand() *cobra.Command {
	var g globals
	root := &cobra.Command{
		Use:           "collate",
		Short:         "Merge witness files into a multi-version document",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := root.PersistentFlags()
	f.BoolVarP(&g.verbose, "verbose", "v", false, "log merge details to stderr")
	f.StringVarP(&g.encoding, "encoding", "e", "utf-8", "encoding of witness files")
	root.AddCommand(
		newMergeCommand(&g),
		newCheckCommand(&g),
		newDiffCommand(),
		newExtractCommand(&g),
	)
	return root
}

func (g *globals) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// writeTo calls write with w, or with the named file if name isn't empty.
func writeTo(w io.Writer, name string, write func(io.Writer) error) error {
	if name == "" {
		return write(w)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
