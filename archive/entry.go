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

package archive

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/temporal-IPA/tipa/pkg/ipa"

	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/langdetect"
	"github.com/ianlewis/go-woerterbuch/markup"
)

// Example is an example sentence and its translation.
type Example struct {
	Source string
	Target string
}

// Entry is a parsed dictionary entry.
type Entry struct {
	// Headword is the headword as stored in the index.
	Headword string

	// Normalized is the normalized headword used as the lookup key.
	Normalized string

	// Translations are the translations in the order they appear.
	Translations []string

	// Gender is the gender given by explicit markup. It is only set for
	// German headwords.
	Gender gender.Gender

	// WordType is the part of speech.
	WordType gender.WordType

	Examples []Example

	// Raw is the entry text.
	Raw string

	Source langdetect.Language
	Target langdetect.Language
}

const minExampleSide = 10

var (
	bracketREs = []*regexp.Regexp{
		regexp.MustCompile(`<[^<>]*>`),
		regexp.MustCompile(`\[[^\[\]]*\]`),
		regexp.MustCompile(`\([^()]*\)`),
		regexp.MustCompile(`\{[^{}]*\}`),
	}

	quotedExampleRE = regexp.MustCompile(`^\s*["„“]([^"„“”]+)["“”]\s*[-–—:]\s*(.+)$`)
	colonExampleRE  = regexp.MustCompile(`^\s*([^:]+):\s*(.+)$`)
)

var skipPrefixes = []string{"see:", "synonym:", "synonyms:", "antonym:", "antonyms:"}

var leadingArticles = []string{"der ", "die ", "das ", "the ", "a ", "an "}

// germanLetters are letters that are not IPA on their own.
const germanLetters = "äöüßÄÖÜéèáàâêîôûç"

func (a *Archive) parse(headword, raw string) *Entry {
	e := &Entry{
		Headword:   headword,
		Normalized: a.Normalize(headword),
		Raw:        raw,
		Source:     a.opts.Source,
		Target:     a.opts.Target,
	}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	exampleLines := make(map[int]bool)
	for i, line := range lines {
		if len(e.Examples) == a.opts.MaxExamples {
			break
		}
		if ex, ok := a.example(line); ok {
			e.Examples = append(e.Examples, ex)
			exampleLines[i] = true
		}
	}

	seen := make(map[string]bool)
	lowerHead := strings.ToLower(headword)
	for i, line := range lines {
		if exampleLines[i] || skipLine(line) {
			continue
		}
		for _, tr := range splitTranslations(line) {
			lower := strings.ToLower(tr)
			if lower == lowerHead || seen[lower] || utf8.RuneCountInString(tr) <= 2 || looksIPA(tr) {
				continue
			}
			seen[lower] = true
			e.Translations = append(e.Translations, tr)
			if len(e.Translations) == a.opts.MaxTranslations {
				break
			}
		}
		if len(e.Translations) == a.opts.MaxTranslations {
			break
		}
	}

	switch a.opts.Source {
	case langdetect.German:
		e.Gender = gender.Unknown
		if r := gender.Explicit(headword, raw); r != nil {
			e.Gender = r.Gender
		}
		e.WordType = gender.GermanWordType(headword, firstLine(raw))
	default:
		e.WordType = gender.TaggedWordType(firstLine(raw))
	}
	return e
}

func skipLine(line string) bool {
	l := strings.ToLower(strings.TrimSpace(line))
	for _, p := range skipPrefixes {
		if strings.HasPrefix(l, p) {
			return true
		}
	}
	return false
}

// splitTranslations removes annotations from line and splits it into
// translation candidates.
func splitTranslations(line string) []string {
	for _, re := range bracketREs {
		line = re.ReplaceAllString(line, " ")
	}
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == ';' || r == '|' || r == '/' || r == ','
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Join(strings.Fields(p), " ")
		p = strings.TrimFunc(p, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSpace(r)
		})
		lower := strings.ToLower(p)
		for _, art := range leadingArticles {
			if strings.HasPrefix(lower, art) && len(p) > len(art) {
				p = p[len(art):]
				break
			}
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// looksIPA reports whether s contains a character only used in phonetic
// transcriptions.
func looksIPA(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII && !strings.ContainsRune(germanLetters, r) && strings.ContainsRune(ipa.Charset, r) {
			return true
		}
	}
	return false
}

// example parses an example line in one of the forms
//
//	"source" - target
//	Source: Target.
//	source | target
func (a *Archive) example(line string) (Example, bool) {
	var src, tgt string
	if m := quotedExampleRE.FindStringSubmatch(line); m != nil {
		src, tgt = m[1], m[2]
	} else if m := colonExampleRE.FindStringSubmatch(line); m != nil && sentencePair(m[1], m[2]) {
		src, tgt = m[1], m[2]
	} else if l, r, ok := strings.Cut(line, "|"); ok && !strings.Contains(r, "|") {
		src, tgt = l, r
	} else {
		return Example{}, false
	}

	src = strings.TrimSpace(src)
	tgt = strings.Trim(strings.TrimSpace(tgt), `"„“”`)
	if utf8.RuneCountInString(src) < minExampleSide || utf8.RuneCountInString(tgt) < minExampleSide {
		return Example{}, false
	}
	if !markup.ValidExample(src, a.opts.Source) {
		return Example{}, false
	}
	return Example{Source: src, Target: tgt}, true
}

// sentencePair reports whether a colon separated line reads as a sentence
// and its translation rather than a label and a note.
func sentencePair(src, tgt string) bool {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(src))
	tgt = strings.TrimRight(strings.TrimSpace(tgt), `"“”`)
	return unicode.IsUpper(r) && strings.ContainsAny(tgt[max(len(tgt)-1, 0):], ".!?")
}

func firstLine(s string) string {
	first, _, _ := strings.Cut(s, "\n")
	return first
}
