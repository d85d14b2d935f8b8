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

	"github.com/urfave/cli/v2"

	"github.com/sdictviewer/sdict-go"
)

type lookup struct {
	path        string
	prefix      string
	showSkipped bool
	persist     bool
}

func (l *lookup) Run(c *cli.Context) error {
	d, err := sdict.Open(l.path)
	if err != nil {
		return fmt.Errorf("%w: opening dictionary: %w", ErrSdict, err)
	}
	defer func() { _ = d.Close(l.persist) }()

	it := d.LookupFrom(l.prefix)
	for {
		item, ok := it.Next()
		if !ok {
			break
		}
		switch item.Kind {
		case sdict.KindMatched:
			if _, err := fmt.Fprintf(c.App.Writer, "%s\t%d\n", item.Matched.Word, item.Matched.ArticlePointer); err != nil {
				return fmt.Errorf("%w: %w", ErrSdict, err)
			}
		case sdict.KindSkipped:
			if l.showSkipped {
				if _, err := fmt.Fprintf(c.App.Writer, "(skipped) %s\n", item.Skipped.Word); err != nil {
					return fmt.Errorf("%w: %w", ErrSdict, err)
				}
			}
		}
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("%w: walking full index: %w", ErrSdict, err)
	}
	return nil
}

func newLookupCommand() *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "look up words by prefix",
		ArgsUsage: "PATH PREFIX",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skipped",
				Usage: "also print words traversed but not matched",
			},
			&cli.BoolFlag{
				Name:  "no-persist",
				Usage: "do not write the index cache sidecar on exit",
			},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return fmt.Errorf("%w: expected PATH and PREFIX arguments", ErrFlagParse)
			}
			l := &lookup{
				path:        c.Args().Get(0),
				prefix:      c.Args().Get(1),
				showSkipped: c.Bool("skipped"),
				persist:     !c.Bool("no-persist"),
			}
			return l.Run(c)
		},
	}
}
