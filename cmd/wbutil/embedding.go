// Copyright 2025 Ian Lewis
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
	"strings"

	"github.com/urfave/cli/v2"
)

var importCommand = &cli.Command{
	Name:  "import",
	Usage: "Embed the German headwords for similarity search",
	Action: func(c *cli.Context) error {
		d, err := openDictionary(c)
		if err != nil {
			return err
		}
		defer d.Close()

		n, err := d.ImportEmbeddings(c.Context)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.App.Writer, "imported %d headwords with %s\n", n, d.Embedder().Model())
		return nil
	},
}

var similarCommand = &cli.Command{
	Name:      "similar",
	Usage:     "List German headwords similar to a word",
	ArgsUsage: "WORD...",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Usage:   "print at most `N` headwords",
			Aliases: []string{"n"},
			Value:   10,
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: missing word", ErrFlagParse)
		}

		d, err := openDictionary(c)
		if err != nil {
			return err
		}
		defer d.Close()

		hits, err := d.Similar(c.Context, strings.Join(c.Args().Slice(), " "), c.Int("limit"))
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Fprintln(c.App.Writer, "no results")
			return nil
		}

		tbl := newTable(c.App.Writer, "Headword", "Similarity")
		for _, h := range hits {
			tbl.AddRow(h.ID, fmt.Sprintf("%.3f", h.Similarity))
		}
		tbl.Print()
		return nil
	},
}
