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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-woerterbuch"
	"github.com/ianlewis/go-woerterbuch/config"
	"github.com/ianlewis/go-woerterbuch/internal/logging"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrWbutil is a parent error for all command errors.
var ErrWbutil = errors.New("wbutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrWbutil)

// ErrNoData indicates that no dictionary data directory was found.
var ErrNoData = fmt.Errorf("%w: no data directory", ErrWbutil)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

//nolint:gochecknoinits // init needed needed for global variable.
func init() {
	// Set the HelpFlag to a random name so that it isn't used. `cli` handles
	// the flag with the root command such that it takes a command name argument
	// which conflicts with our own help flag.
	//
	// This flag is hidden by the help output.
	// See: github.com/urfave/cli/issues/1809
	cli.HelpFlag = &cli.BoolFlag{
		// NOTE: Use a random name no one would guess.
		Name:               "d41d8cd98f00b204e980",
		DisableDefaultText: true,
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.Data.Dir = dir
	}
	if level := c.String("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = firstExisting(dataLocations())
	}
	return cfg, nil
}

// firstExisting returns the first path that is a directory.
func firstExisting(paths []string) string {
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && fi.IsDir() {
			return p
		}
	}
	return ""
}

// openDictionary opens the dictionary described by the configuration and
// flags.
func openDictionary(c *cli.Context) (*woerterbuch.Dictionary, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	if cfg.Data.Dir == "" {
		return nil, fmt.Errorf("%w: searched %s", ErrNoData, strings.Join(dataLocations(), ", "))
	}

	log := logging.New(c.App.ErrWriter, cfg.Log)
	slog.SetDefault(log)

	return woerterbuch.Open(c.Context, cfg.Data.Dir, woerterbuch.OptionsFromConfig(cfg, log))
}

// newTable returns a table writing to w with an underlined header.
func newTable(w io.Writer, columns ...interface{}) table.Table {
	headerFmt := color.New(color.Underline).SprintfFunc()
	return table.New(columns...).WithWriter(w).WithHeaderFormatter(headerFmt)
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s
`, c.App.Name, versionInfo.GitVersion, strings.Join(copyrightNames, "\n"), versionInfo.String())
	return err
}

func newWoerterbuchApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Search German and English dictionaries.",
		Description: strings.Join([]string{
			"Offline German and English dictionary utility written in Go.",
			"http://github.com/ianlewis/go-woerterbuch",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{config.PathEnv},
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "read dictionaries from `DIR`",
				Aliases: []string{"d"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log at `LEVEL` (debug, info, warn, error)",
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "help",
				Usage:              "print this help text and exit",
				Aliases:            []string{"h"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelp:        true,
		HideHelpCommand: true,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			searchCommand,
			suggestCommand,
			genderCommand,
			detectCommand,
			parseCommand,
			pronCommand,
			infoCommand,
			importCommand,
			similarCommand,
		},
	}
}
