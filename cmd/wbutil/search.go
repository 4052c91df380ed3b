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

	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/langdetect"
	"github.com/ianlewis/go-woerterbuch/search"
)

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "Search the dictionaries",
	ArgsUsage: "QUERY...",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "from",
			Usage:   "prefer queries in `LANG` (de or en)",
			Aliases: []string{"f"},
		},
		&cli.BoolFlag{
			Name:  "examples",
			Usage: "print example sentences",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return fmt.Errorf("%w: missing query", ErrFlagParse)
		}
		pref, err := preference(c.String("from"))
		if err != nil {
			return err
		}

		d, err := openDictionary(c)
		if err != nil {
			return err
		}
		defer d.Close()

		res, err := d.Search(c.Context, strings.Join(c.Args().Slice(), " "), pref)
		if err != nil {
			return err
		}

		fmt.Fprintf(c.App.Writer, "%s (%s, %s, %s)\n\n", res.Query, res.Language, res.Confidence, res.Strategy)
		if len(res.Groups) == 0 {
			fmt.Fprintln(c.App.Writer, "no results")
			return nil
		}

		tbl := newTable(c.App.Writer, "Headword", "Gender", "Type", "Translations", "Score")
		for _, g := range res.Groups {
			tbl.AddRow(headword(g), genderLabel(g.Gender, g.GenderConfidence), orDash(string(g.WordType)),
				strings.Join(g.Translations, "; "), fmt.Sprintf("%.2f", g.Score))
		}
		tbl.Print()

		if !c.Bool("examples") {
			return nil
		}
		for _, g := range res.Groups {
			for _, ex := range g.Examples {
				fmt.Fprintf(c.App.Writer, "\n%s\n  %s\n", ex.Source, ex.Target)
			}
		}
		return nil
	},
}

func preference(lang string) (search.Preference, error) {
	switch strings.ToLower(lang) {
	case "":
		return search.Preference{}, nil
	case "de", "deu", "german":
		return search.Preference{Source: langdetect.German, Target: langdetect.English}, nil
	case "en", "eng", "english":
		return search.Preference{Source: langdetect.English, Target: langdetect.German}, nil
	default:
		return search.Preference{}, fmt.Errorf("%w: unknown language %q", ErrFlagParse, lang)
	}
}

// headword returns the headword with its article.
func headword(g *search.Group) string {
	if a := g.Gender.Article(); a != "" {
		return a + " " + g.Headword
	}
	return g.Headword
}

func genderLabel(g gender.Gender, confidence float64) string {
	if g == "" || g == gender.Unknown {
		return "-"
	}
	return fmt.Sprintf("%s (%.2f)", g, confidence)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
