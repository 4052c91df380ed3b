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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-woerterbuch/langdetect"
)

var suggestCommand = &cli.Command{
	Name:      "suggest",
	Usage:     "List headwords starting with a prefix",
	ArgsUsage: "PREFIX",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Usage:   "print at most `N` headwords",
			Aliases: []string{"n"},
			Value:   10,
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}

		d, err := openDictionary(c)
		if err != nil {
			return err
		}
		defer d.Close()

		for _, w := range d.Suggest(c.Context, c.Args().First(), c.Int("limit")) {
			fmt.Fprintln(c.App.Writer, w)
		}
		return nil
	},
}

var genderCommand = &cli.Command{
	Name:      "gender",
	Usage:     "Classify the gender of German nouns",
	ArgsUsage: "NOUN...",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: missing noun", ErrFlagParse)
		}

		d, err := openDictionary(c)
		if err != nil {
			return err
		}
		defer d.Close()

		tbl := newTable(c.App.Writer, "Noun", "Article", "Gender", "Confidence", "Method")
		for _, w := range c.Args().Slice() {
			r, err := d.Gender(c.Context, w)
			if err != nil {
				return err
			}
			tbl.AddRow(w, orDash(r.Gender.Article()), r.Gender, fmt.Sprintf("%.2f", r.Confidence), r.Method)
		}
		tbl.Print()
		return nil
	},
}

var detectCommand = &cli.Command{
	Name:      "detect",
	Usage:     "Detect the language of queries",
	ArgsUsage: "QUERY...",
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: missing query", ErrFlagParse)
		}

		// Detection needs no dictionary data.
		d := langdetect.New(nil)
		tbl := newTable(c.App.Writer, "Query", "Language", "Confidence", "Lean", "Rule")
		for _, q := range c.Args().Slice() {
			r := d.Detect(q)
			tbl.AddRow(q, r.Language, r.Confidence, r.Lean(), orDash(r.Rule))
		}
		tbl.Print()
		return nil
	},
}
