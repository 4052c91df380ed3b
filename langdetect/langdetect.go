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

// Package langdetect guesses whether a dictionary query is German or English.
package langdetect

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Language is a detected query language.
type Language string

const (
	// Unknown is returned when nothing about the query hints at a language.
	Unknown Language = "unknown"

	// German is the German language.
	German Language = "german"

	// English is the English language.
	English Language = "english"

	// Ambiguous is returned when the query could be either language.
	Ambiguous Language = "ambiguous"
)

// Confidence is a coarse confidence tier.
type Confidence int

const (
	// Low confidence.
	Low Confidence = iota

	// Medium confidence.
	Medium

	// High confidence.
	High
)

// String implements fmt.Stringer.
func (c Confidence) String() string {
	switch c {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// Result is the outcome of a detection.
type Result struct {
	Language   Language
	Confidence Confidence

	// Rule names the rule that decided the result.
	Rule string

	// GermanScore and EnglishScore are the cue counts used when no rule
	// decided the result.
	GermanScore  int
	EnglishScore int
}

// Lean returns the language the cue scores point to, or Ambiguous on a tie.
func (r Result) Lean() Language {
	switch {
	case r.Language == German || r.Language == English:
		return r.Language
	case r.GermanScore > r.EnglishScore:
		return German
	case r.EnglishScore > r.GermanScore:
		return English
	default:
		return Ambiguous
	}
}

// Options are the word lists used by a Detector.
type Options struct {
	// NounEndings are endings that mark a capitalized word as a German noun.
	NounEndings []string

	// GermanEndings mark a word as German regardless of case.
	GermanEndings []string

	// GermanVerbPrefixes mark a word ending in -en as a German verb.
	GermanVerbPrefixes []string

	// FunctionWords is the closed list of English function words.
	FunctionWords []string

	// EnglishWords are common English words that look German, such as
	// "mother" or "winter".
	EnglishWords []string

	// EnglishEndings mark a word as English.
	EnglishEndings []string
}

// DefaultOptions are the default word lists.
var DefaultOptions = &Options{
	NounEndings: []string{
		"ung", "heit", "keit", "schaft", "chen", "lein", "ling", "nis", "tum",
		"ion", "tät", "ei", "ik", "en", "er", "el",
	},
	GermanEndings: []string{
		"ung", "heit", "keit", "schaft", "chen", "lein",
	},
	GermanVerbPrefixes: []string{
		"ge", "be", "ver", "ent", "zer", "aus", "ein", "auf", "über", "unter",
	},
	FunctionWords: []string{
		"a", "an", "the", "and", "or", "but", "if", "of", "to", "in", "on", "at",
		"by", "for", "from", "with", "without", "about", "into", "over", "under",
		"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
		"do", "does", "did", "will", "would", "could", "should", "may", "might",
		"can", "must", "shall", "this", "that", "these", "those", "it", "its",
		"he", "she", "we", "they", "you", "his", "her", "our", "their", "your",
		"not", "no", "yes", "what", "which", "who", "whom", "whose", "where",
		"when", "why", "how",
	},
	EnglishWords: []string{
		"mother", "father", "brother", "sister", "daughter", "water", "paper",
		"number", "winter", "summer", "center", "meter", "liter", "computer",
		"monster", "master", "disaster", "register", "minister", "semester",
		"character", "parameter", "apple", "house", "garden", "children",
	},
	EnglishEndings: []string{
		"ing", "ness", "ful", "less", "ous", "ship", "able", "ible", "ly",
	},
}

// Detector detects the language of single words and short phrases. A
// Detector is safe for concurrent use.
type Detector struct {
	opts          *Options
	functionWords map[string]bool
	englishWords  map[string]bool
}

// New returns a new Detector.
func New(options *Options) *Detector {
	if options == nil {
		options = DefaultOptions
	}
	d := &Detector{
		opts:          options,
		functionWords: make(map[string]bool, len(options.FunctionWords)),
		englishWords:  make(map[string]bool, len(options.EnglishWords)),
	}
	for _, w := range options.FunctionWords {
		d.functionWords[w] = true
	}
	for _, w := range options.EnglishWords {
		d.englishWords[w] = true
	}
	return d
}

// Detect classifies the query. Rules are tried in priority order:
// German diacritics, German noun and verb shapes, English function words,
// English word shapes. Queries no rule decides are ambiguous or unknown
// with low confidence.
func (d *Detector) Detect(query string) Result {
	word := strings.TrimSpace(query)
	if word == "" {
		return Result{Language: Unknown, Confidence: Low, Rule: "empty"}
	}
	lower := cases.Lower(language.German).String(word)

	if strings.ContainsAny(word, "äöüßÄÖÜẞ") {
		return Result{Language: German, Confidence: High, Rule: "diacritics"}
	}

	fields := strings.Fields(lower)
	last := fields[len(fields)-1]

	if !d.englishWords[last] {
		if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) && hasSuffix(last, d.opts.NounEndings, 2) {
			return Result{Language: German, Confidence: Medium, Rule: "noun-ending"}
		}
		if hasSuffix(last, d.opts.GermanEndings, 2) {
			return Result{Language: German, Confidence: Medium, Rule: "german-ending"}
		}
		if strings.HasSuffix(last, "en") && hasPrefix(last, d.opts.GermanVerbPrefixes, 3) {
			return Result{Language: German, Confidence: Medium, Rule: "verb-prefix"}
		}
	}

	if len(fields) > 1 {
		for _, f := range fields {
			if d.functionWords[f] {
				return Result{Language: English, Confidence: High, Rule: "function-word"}
			}
		}
	} else if d.functionWords[lower] {
		return Result{Language: English, Confidence: High, Rule: "function-word"}
	}

	if d.englishWords[last] {
		return Result{Language: English, Confidence: Medium, Rule: "english-word"}
	}
	if hasSuffix(last, d.opts.EnglishEndings, 2) {
		return Result{Language: English, Confidence: Medium, Rule: "english-ending"}
	}

	res := Result{
		Language:     Ambiguous,
		Confidence:   Low,
		Rule:         "cues",
		GermanScore:  germanCues(lower),
		EnglishScore: englishCues(lower),
	}
	if !strings.ContainsFunc(word, unicode.IsLetter) {
		res.Language = Unknown
		res.Rule = "no-letters"
	}
	return res
}

// hasSuffix reports whether word ends with one of the suffixes and keeps at
// least minStem runes before it.
func hasSuffix(word string, suffixes []string, minStem int) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(word, s) && utf8.RuneCountInString(word)-utf8.RuneCountInString(s) >= minStem {
			return true
		}
	}
	return false
}

func hasPrefix(word string, prefixes []string, minRest int) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(word, p) && utf8.RuneCountInString(word)-utf8.RuneCountInString(p) >= minRest {
			return true
		}
	}
	return false
}

var (
	germanClusters  = []string{"sch", "ei", "ie", "eu", "tz", "pf", "ck", "cht", "ß"}
	englishClusters = []string{"th", "wh", "sh", "ph", "gh", "qu", "ough", "ee", "oo", "ea", "w", "y"}
)

func germanCues(word string) int {
	n := 0
	for _, c := range germanClusters {
		if strings.Contains(word, c) {
			n++
		}
	}
	for _, e := range []string{"en", "er", "el", "e"} {
		if strings.HasSuffix(word, e) {
			n++
			break
		}
	}
	return n
}

func englishCues(word string) int {
	n := 0
	for _, c := range englishClusters {
		if strings.Contains(word, c) {
			n++
		}
	}
	return n
}
