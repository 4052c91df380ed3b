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

	"github.com/ianlewis/go-woerterbuch"
	"github.com/ianlewis/go-woerterbuch/archive"
	"github.com/ianlewis/go-woerterbuch/embedding"
)

var infoCommand = &cli.Command{
	Name:  "info",
	Usage: "List the dictionaries",
	Action: func(c *cli.Context) error {
		d, err := openDictionary(c)
		if err != nil {
			return err
		}
		defer d.Close()

		if err := d.Init(c.Context); err != nil {
			return err
		}

		w := c.App.Writer
		fmt.Fprintf(w, "Data:        %s\n", d.Dir())
		fmt.Fprintf(w, "Embedder:    %s (fallback: %t)\n\n", d.Embedder().Model(), embedding.IsFallback(d.Embedder()))

		tbl := newTable(w, "Archive", "Entries", "Name", "URL", "Status")
		for _, arc := range []struct {
			name string
			a    *archive.Archive
		}{
			{woerterbuch.GermanEnglish, d.German()},
			{woerterbuch.EnglishGerman, d.English()},
		} {
			name, a := arc.name, arc.a
			info, err := a.Info(c.Context)
			if err != nil {
				return err
			}
			status := "ok"
			if err := a.Err(); err != nil {
				status = err.Error()
			}
			tbl.AddRow(name, a.Len(), orDash(info.Short), orDash(info.URL), status)
		}
		tbl.Print()
		return nil
	},
}
