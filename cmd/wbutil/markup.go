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
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-woerterbuch/langdetect"
	"github.com/ianlewis/go-woerterbuch/markup"
)

var parseCommand = &cli.Command{
	Name:      "parse",
	Usage:     "Extract definitions and examples from wiki text",
	ArgsUsage: "WORD [FILE]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "lang",
			Usage: "the text describes a word in `LANG` (de or en)",
			Value: "de",
		},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 || c.NArg() > 2 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}
		pref, err := preference(c.String("lang"))
		if err != nil {
			return err
		}
		lang := pref.Source
		if lang == "" {
			lang = langdetect.German
		}

		text, err := readInput(c, c.Args().Get(1))
		if err != nil {
			return err
		}

		e := markup.New(nil).Parse(c.Args().First(), text, lang)
		if e.Empty() {
			fmt.Fprintln(c.App.Writer, "nothing found")
			return nil
		}

		w := c.App.Writer
		fmt.Fprintf(w, "Word:       %s\n", e.Word)
		fmt.Fprintf(w, "Type:       %s\n", orDash(string(e.WordType)))
		if lang == langdetect.German {
			fmt.Fprintf(w, "Gender:     %s\n", orDash(string(e.Gender)))
		}
		if e.Pronunciation != nil {
			fmt.Fprintf(w, "IPA:        %s\n", orDash(e.Pronunciation.IPA))
		}
		if e.Etymology != "" {
			fmt.Fprintf(w, "Etymology:  %s\n", e.Etymology)
		}
		if len(e.Synonyms) > 0 {
			fmt.Fprintf(w, "Synonyms:   %s\n", strings.Join(e.Synonyms, ", "))
		}
		printList(w, "Definitions", e.Definitions)
		printList(w, "Examples", e.Examples)
		return nil
	},
}

var pronCommand = &cli.Command{
	Name:      "pron",
	Usage:     "Extract the pronunciation from wiki text",
	ArgsUsage: "[FILE]",
	Action: func(c *cli.Context) error {
		if c.NArg() > 1 {
			return fmt.Errorf("%w: unexpected number of arguments", ErrFlagParse)
		}

		text, err := readInput(c, c.Args().First())
		if err != nil {
			return err
		}

		p := markup.ExtractPronunciation(text)
		if p == nil {
			fmt.Fprintln(c.App.Writer, "nothing found")
			return nil
		}
		fmt.Fprintf(c.App.Writer, "IPA:    %s\n", orDash(p.IPA))
		fmt.Fprintf(c.App.Writer, "Audio:  %s\n", orDash(p.AudioURL))
		return nil
	},
}

// readInput reads path, or standard input when path is empty or "-".
func readInput(c *cli.Context, path string) (string, error) {
	var r io.Reader = c.App.Reader
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrWbutil, err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: reading input: %w", ErrWbutil, err)
	}
	return string(b), nil
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for i, item := range items {
		fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
}
