// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v2"

	"github.com/sdictviewer/sdict-go"
)

type reindex struct {
	path string
}

func (r *reindex) Run(c *cli.Context) error {
	d, err := sdict.Open(r.path)
	if err != nil {
		return fmt.Errorf("%w: opening dictionary: %w", ErrSdict, err)
	}
	defer func() { _ = d.Close(true) }()

	words, err := d.AllWords()
	if err != nil {
		return fmt.Errorf("%w: scanning full index: %w", ErrSdict, err)
	}

	bar := progressbar.Default(int64(len(words)), "densifying")
	var lastIndex int
	d.Densify(words, func(p sdict.DensifyProgress) {
		if p.Index < lastIndex {
			lastIndex = 0
			bar.Reset()
		}
		_ = bar.Set(p.Index)
		lastIndex = p.Index
	})
	_ = bar.Finish()

	if _, err := fmt.Fprintf(c.App.Writer, "reindexed %d words to short-index depth %d\n", len(words), d.ShortIndexDepth()); err != nil {
		return fmt.Errorf("%w: %w", ErrSdict, err)
	}
	return nil
}

func newReindexCommand() *cli.Command {
	return &cli.Command{
		Name:      "reindex",
		Usage:     "force a full scan and short-index densification pass",
		ArgsUsage: "PATH",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("%w: expected PATH argument", ErrFlagParse)
			}
			r := &reindex{path: c.Args().Get(0)}
			return r.Run(c)
		},
	}
}
