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

// Package markup extracts structured dictionary data from semi-structured
// wiki text.
//
// Each field of an Entry is extracted by an ordered list of pattern
// families. The first family that produces a match wins. Input is never
// assumed to be well formed and parsing never fails; fields that no family
// matches are left empty.
package markup

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/langdetect"
)

// Entry is the structured content of a wiki page.
type Entry struct {
	Word     string
	Language langdetect.Language

	Definitions   []string
	Examples      []string
	Etymology     string
	Pronunciation *Pronunciation
	Synonyms      []string
	WordType      gender.WordType

	// Gender is only set for German entries.
	Gender gender.Gender
}

// Empty reports whether nothing was extracted.
func (e *Entry) Empty() bool {
	return len(e.Definitions) == 0 && len(e.Examples) == 0 && len(e.Synonyms) == 0 &&
		e.Etymology == "" && e.Pronunciation == nil
}

// Options are options for a Parser.
type Options struct {
	MaxDefinitions int
	MaxExamples    int
	MaxSynonyms    int
}

// DefaultOptions are the default parser options.
var DefaultOptions = &Options{
	MaxDefinitions: 5,
	MaxExamples:    5,
	MaxSynonyms:    8,
}

var (
	definitionSections = compileSections(
		section{name: "Bedeutungen", minLevel: 2, maxLevel: 4},
		section{name: "Definitionen", minLevel: 3, maxLevel: 3},
		section{name: "Definition", minLevel: 3, maxLevel: 3},
		section{name: "Meaning", minLevel: 3, maxLevel: 4},
		section{name: "Noun", minLevel: 3, maxLevel: 4},
		section{name: "Verb", minLevel: 3, maxLevel: 4},
		section{name: "Adjective", minLevel: 3, maxLevel: 4},
		section{name: "Adverb", minLevel: 3, maxLevel: 4},
	)
	exampleSections = compileSections(
		section{name: "Beispiele", minLevel: 3, maxLevel: 4},
		section{name: "Examples", minLevel: 3, maxLevel: 4},
	)
	etymologySections = compileSections(
		section{name: "Herkunft", minLevel: 3, maxLevel: 4},
		section{name: "Etymology", minLevel: 3, maxLevel: 4},
	)
	synonymSections = compileSections(
		section{name: "Synonyme", minLevel: 3, maxLevel: 4},
		section{name: "Synonyms", minLevel: 3, maxLevel: 4},
	)
)

var (
	itemREs = []*regexp.Regexp{
		regexp.MustCompile(`^:\[\d+[a-z]?\]\s*(.+)`),
		regexp.MustCompile(`^#\s*(.+)`),
		regexp.MustCompile(`^\d+\.\s*(.+)`),
	}
	exampleItemREs = []*regexp.Regexp{
		regexp.MustCompile(`^:\[\d+[a-z]?\]\s*["'„“](.+?)["'“”]`),
		itemREs[0],
		regexp.MustCompile(`^#\s*["'„“](.+?)["'“”]`),
		itemREs[1],
	}

	simpleDefinitionREs = []*regexp.Regexp{
		regexp.MustCompile(`:\s*\[?\d+\]?\s*(.{20,})`),
		regexp.MustCompile(`#\s*(.{20,})`),
		regexp.MustCompile(`\d+\.\s*(.{20,})`),
	}
	simpleExampleREs = []*regexp.Regexp{
		regexp.MustCompile(`"([^"\n]{15,100})"`),
		regexp.MustCompile(`'([^'\n]{15,100})'`),
	}

	wordTypeREs = []*regexp.Regexp{
		regexp.MustCompile(`\{\{Wortart\|([^|{}]+)`),
		regexp.MustCompile(`(?m)^={2,4}\s*(Substantiv|Verb|Adjektiv|Adverb|Pronomen|Präposition|Konjunktion|Numerale|Interjektion)\s*={2,4}`),
		regexp.MustCompile(`(?m)^={2,4}\s*(Noun|Verb|Adjective|Adverb|Pronoun|Preposition|Conjunction|Numeral|Interjection)\s*={2,4}`),
	}

	nominativeRE = regexp.MustCompile(`(?i)Nominativ\s+Singular\s*=?\s*(der|die|das)\b`)
	genderWordRE = regexp.MustCompile(`(?i)\b(maskulin|männlich|feminin|weiblich|neutrum|sächlich)\b`)
)

var wordTypes = map[string]gender.WordType{
	"substantiv":   gender.Noun,
	"noun":         gender.Noun,
	"verb":         gender.Verb,
	"adjektiv":     gender.Adjective,
	"adjective":    gender.Adjective,
	"adverb":       gender.Adverb,
	"pronomen":     gender.Pronoun,
	"pronoun":      gender.Pronoun,
	"präposition":  gender.Preposition,
	"preposition":  gender.Preposition,
	"konjunktion":  gender.Conjunction,
	"conjunction":  gender.Conjunction,
	"numerale":     gender.Numeral,
	"numeral":      gender.Numeral,
	"interjektion": gender.Interjection,
	"interjection": gender.Interjection,
}

var genderWords = map[string]gender.Gender{
	"maskulin": gender.Masculine,
	"männlich": gender.Masculine,
	"feminin":  gender.Feminine,
	"weiblich": gender.Feminine,
	"neutrum":  gender.Neuter,
	"sächlich": gender.Neuter,
}

// Parser parses wiki text. A Parser is safe for concurrent use.
type Parser struct {
	opts Options
}

// New returns a new Parser.
func New(options *Options) *Parser {
	if options == nil {
		options = DefaultOptions
	}
	return &Parser{opts: *options}
}

// Parse extracts an Entry for word from raw wiki text in the given
// language.
func (p *Parser) Parse(word, raw string, lang langdetect.Language) *Entry {
	e := &Entry{
		Word:     word,
		Language: lang,
	}
	if strings.TrimSpace(raw) == "" {
		return e
	}

	e.Definitions = items(raw, definitionSections, itemREs, longerThan(5), p.opts.MaxDefinitions)
	if len(e.Definitions) == 0 {
		e.Definitions = simpleDefinitions(raw)
	}
	valid := func(s string) bool { return ValidExample(s, lang) }
	e.Examples = items(raw, exampleSections, exampleItemREs, valid, p.opts.MaxExamples)
	if len(e.Examples) == 0 {
		e.Examples = simpleExamples(raw, valid, p.opts.MaxExamples)
	}
	e.Etymology = etymology(raw)
	e.Pronunciation = ExtractPronunciation(raw)
	e.Synonyms = synonyms(raw, p.opts.MaxSynonyms)
	e.WordType = wordType(raw)
	if lang == langdetect.German {
		e.Gender = wikiGender(word, raw)
	}
	return e
}

// items returns the cleaned list items of the first section family that
// yields any. Items not accepted by keep are skipped.
func items(raw string, sections []compiledSection, res []*regexp.Regexp, keep func(string) bool, limit int) []string {
	for _, s := range sections {
		body, ok := s.body(raw)
		if !ok {
			continue
		}
		var out []string
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "{{") || strings.HasPrefix(line, "==") {
				continue
			}
			for _, re := range res {
				m := re.FindStringSubmatch(line)
				if m == nil {
					continue
				}
				if v := Clean(m[1]); keep(v) {
					out = appendUnique(out, v)
				}
				break
			}
			if len(out) == limit {
				break
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func simpleDefinitions(raw string) []string {
	for _, re := range simpleDefinitionREs {
		var out []string
		for _, m := range re.FindAllStringSubmatch(raw, 3) {
			if v := Clean(m[1]); utf8.RuneCountInString(v) > 10 {
				out = appendUnique(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// longerThan returns a filter accepting strings longer than n runes.
func longerThan(n int) func(string) bool {
	return func(s string) bool { return utf8.RuneCountInString(s) > n }
}

func simpleExamples(raw string, keep func(string) bool, limit int) []string {
	for _, re := range simpleExampleREs {
		var out []string
		for _, m := range re.FindAllStringSubmatch(raw, -1) {
			if len(out) == min(limit, 3) {
				break
			}
			if v := Clean(m[1]); keep(v) {
				out = appendUnique(out, v)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func etymology(raw string) string {
	for _, s := range etymologySections {
		body, ok := s.body(raw)
		if !ok {
			continue
		}
		var parts []string
		for _, line := range strings.Split(body, "\n") {
			if v := Clean(stripMarker(line)); v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return ""
}

func synonyms(raw string, limit int) []string {
	for _, s := range synonymSections {
		body, ok := s.body(raw)
		if !ok {
			continue
		}
		var out []string
		for _, line := range strings.Split(body, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "{{") || strings.HasPrefix(line, "==") {
				continue
			}
			for _, syn := range strings.FieldsFunc(stripMarker(line), func(r rune) bool { return r == ',' || r == ';' }) {
				if v := Clean(syn); utf8.RuneCountInString(v) > 2 {
					out = appendUnique(out, v)
				}
				if len(out) == limit {
					return out
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func wordType(raw string) gender.WordType {
	for _, re := range wordTypeREs {
		if m := re.FindStringSubmatch(raw); m != nil {
			if t, ok := wordTypes[strings.ToLower(strings.TrimSpace(m[1]))]; ok {
				return t
			}
		}
	}
	return gender.TaggedWordType(raw)
}

func wikiGender(word, raw string) gender.Gender {
	if r := gender.Explicit(word, raw); r != nil {
		return r.Gender
	}
	if m := nominativeRE.FindStringSubmatch(raw); m != nil {
		return gender.FromArticle(m[1])
	}
	if m := genderWordRE.FindStringSubmatch(raw); m != nil {
		return genderWords[strings.ToLower(m[1])]
	}
	return gender.Unknown
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}
