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

// Package fallback provides a small built-in table of common German words. It
// is consulted when the dictionary archives have no match.
package fallback

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ianlewis/go-woerterbuch/archive"
	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/internal/folding"
)

// minCompoundPart is the minimum length of each part of a compound.
const minCompoundPart = 3

//go:embed words.yaml
var wordsYAML []byte

// ErrInvalidTable is returned when a word table cannot be parsed.
var ErrInvalidTable = errors.New("invalid word table")

// Entry is a word from the table.
type Entry struct {
	// Word is the German word.
	Word         string
	Translations []string
	Definitions  []string
	Examples     []archive.Example
	WordType     gender.WordType
	Gender       gender.Gender
	IPA          string

	// Level is the CEFR level of the word.
	Level string

	// Parts holds the words a compound was built from. It is empty for
	// words found directly in the table.
	Parts []string
}

type yamlExample struct {
	DE string `yaml:"de"`
	EN string `yaml:"en"`
}

type yamlWord struct {
	Word         string        `yaml:"word"`
	Article      string        `yaml:"article"`
	Type         string        `yaml:"type"`
	Level        string        `yaml:"level"`
	IPA          string        `yaml:"ipa"`
	Translations []string      `yaml:"translations"`
	Definitions  []string      `yaml:"definitions"`
	Examples     []yamlExample `yaml:"examples"`
}

// Table is an in-memory word table. It is safe for concurrent use.
type Table struct {
	words   map[string]*Entry
	english map[string][]*Entry
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	return Load(bytes.NewReader(wordsYAML))
})

// Default returns the built-in table.
func Default() *Table {
	t, err := defaultTable()
	if err != nil {
		panic(err)
	}
	return t
}

// Load reads a YAML word table.
func Load(r io.Reader) (*Table, error) {
	var words []yamlWord
	if err := yaml.NewDecoder(r).Decode(&words); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	t := &Table{
		words:   make(map[string]*Entry, len(words)),
		english: make(map[string][]*Entry),
	}
	for i, w := range words {
		if strings.TrimSpace(w.Word) == "" {
			return nil, fmt.Errorf("%w: entry %d has no word", ErrInvalidTable, i)
		}
		e := &Entry{
			Word:         w.Word,
			Translations: w.Translations,
			Definitions:  w.Definitions,
			WordType:     gender.WordType(w.Type),
			Gender:       gender.FromArticle(w.Article),
			IPA:          w.IPA,
			Level:        w.Level,
		}
		for _, ex := range w.Examples {
			e.Examples = append(e.Examples, archive.Example{Source: ex.DE, Target: ex.EN})
		}

		key := foldGerman(w.Word)
		if _, ok := t.words[key]; ok {
			continue
		}
		t.words[key] = e
		for _, tr := range w.Translations {
			k := foldEnglish(tr)
			t.english[k] = append(t.english[k], e)
		}
	}
	return t, nil
}

// Len returns the number of words in the table.
func (t *Table) Len() int {
	return len(t.words)
}

// Lookup returns the German word. If it is not in the table, it is tried as
// a compound of two known words; the compound takes the gender and word type
// of its last part. Lookup returns nil when nothing matches.
func (t *Table) Lookup(ctx context.Context, word string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := foldGerman(word)
	if key == "" {
		return nil, nil
	}
	if e, ok := t.words[key]; ok {
		return e, nil
	}
	return t.compound(key), nil
}

// LookupEnglish returns the German words translated by the English word.
func (t *Table) LookupEnglish(ctx context.Context, word string) ([]*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := foldEnglish(word)
	if key == "" {
		return nil, nil
	}
	if es, ok := t.english[key]; ok {
		return es, nil
	}
	return t.english["to "+key], nil
}

func (t *Table) compound(key string) *Entry {
	runes := []rune(key)
	if len(runes) < 2*minCompoundPart {
		return nil
	}
	// Longest head first.
	for i := len(runes) - minCompoundPart; i >= minCompoundPart; i-- {
		first, ok := t.words[string(runes[:i])]
		if !ok {
			continue
		}
		rest := string(runes[i:])
		last, ok := t.words[rest]
		if !ok && strings.HasPrefix(rest, "s") && utf8.RuneCountInString(rest) > minCompoundPart {
			// Fugen-s, as in Arbeitszeit.
			last, ok = t.words[rest[1:]]
		}
		if !ok {
			continue
		}

		word := key
		if last.WordType == gender.Noun {
			word = capitalize(word)
		}
		e := &Entry{
			Word:        word,
			WordType:    last.WordType,
			Gender:      last.Gender,
			Definitions: []string{fmt.Sprintf("compound of %s + %s", first.Word, last.Word)},
			Parts:       []string{first.Word, last.Word},
		}
		if len(first.Translations) > 0 && len(last.Translations) > 0 {
			e.Translations = []string{first.Translations[0] + " " + last.Translations[0]}
		}
		return e
	}
	return nil
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return strings.ToUpper(string(r)) + s[n:]
}

func foldGerman(s string) string {
	return folding.String(folding.German, s)
}

func foldEnglish(s string) string {
	return folding.String(folding.English, s)
}
