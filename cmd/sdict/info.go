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

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/sdictviewer/sdict-go"
)

type info struct {
	path string
}

func (i *info) Run(c *cli.Context) error {
	d, err := sdict.Open(i.path)
	if err != nil {
		return fmt.Errorf("%w: opening dictionary: %w", ErrSdict, err)
	}
	defer func() { _ = d.Close(false) }()

	h := d.Header()
	tbl := table.New("field", "value")
	tbl.AddRow("title", d.Title())
	tbl.AddRow("version", d.Version())
	tbl.AddRow("copyright", d.Copyright())
	tbl.AddRow("word language", d.WordLanguage())
	tbl.AddRow("article language", d.ArticleLanguage())
	tbl.AddRow("on-disk short index depth", h.ShortIndexDepth)
	tbl.AddRow("loaded short index depth", d.ShortIndexDepth())
	tbl.AddRow("short index rows", h.ShortIndexLength)
	tbl.AddRow("word count", h.NumWords)
	tbl.Print()

	return nil
}

func newInfoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print dictionary header and index metadata",
		ArgsUsage: "PATH",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return fmt.Errorf("%w: expected PATH argument", ErrFlagParse)
			}
			i := &info{path: c.Args().Get(0)}
			return i.Run(c)
		},
	}
}
