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

package gender

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// WordType is a part of speech.
type WordType string

const (
	// UnknownType is an undetermined part of speech.
	UnknownType WordType = ""

	Noun         WordType = "noun"
	Verb         WordType = "verb"
	Adjective    WordType = "adjective"
	Adverb       WordType = "adverb"
	Preposition  WordType = "preposition"
	Conjunction  WordType = "conjunction"
	Pronoun      WordType = "pronoun"
	Interjection WordType = "interjection"
	Numeral      WordType = "numeral"
)

var tagParts = map[string]WordType{
	"n":      Noun,
	"noun":   Noun,
	"masc":   Noun,
	"fem":    Noun,
	"neut":   Noun,
	"m":      Noun,
	"f":      Noun,
	"v":      Verb,
	"vt":     Verb,
	"vi":     Verb,
	"vr":     Verb,
	"verb":   Verb,
	"adj":    Adjective,
	"adv":    Adverb,
	"prep":   Preposition,
	"conj":   Conjunction,
	"pron":   Pronoun,
	"interj": Interjection,
	"num":    Numeral,
}

var tagRE = regexp.MustCompile(`<([^<>]+)>`)

// TaggedWordType returns the part of speech named by the first recognized
// tag in raw, such as <n> or <vt>.
func TaggedWordType(raw string) WordType {
	for _, m := range tagRE.FindAllStringSubmatch(raw, -1) {
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(part)), ".")
			if t, ok := tagParts[part]; ok {
				return t
			}
		}
	}
	return UnknownType
}

var adjectiveEndings = []string{"lich", "isch", "ig", "bar", "sam", "haft", "los", "voll"}

// GermanWordType returns the part of speech of a German word. Tags in raw
// are used first, then the shape of the word.
func GermanWordType(word, raw string) WordType {
	if t := TaggedWordType(raw); t != UnknownType {
		return t
	}

	word = strings.TrimSpace(word)
	if word == "" || strings.ContainsRune(word, ' ') {
		return UnknownType
	}
	if r, _ := utf8.DecodeRuneInString(word); unicode.IsUpper(r) {
		return Noun
	}
	n := utf8.RuneCountInString(word)
	for _, e := range adjectiveEndings {
		if strings.HasSuffix(word, e) && n > len(e)+2 {
			return Adjective
		}
	}
	if n > 4 && (strings.HasSuffix(word, "en") || strings.HasSuffix(word, "eln") || strings.HasSuffix(word, "ern")) {
		return Verb
	}
	return UnknownType
}
