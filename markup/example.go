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

package markup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ianlewis/go-woerterbuch/langdetect"
)

const (
	minExampleLen = 10
	maxExampleLen = 200
)

var exampleFunctionWords = map[langdetect.Language][]string{
	langdetect.German:  {"der", "die", "das", "ein", "eine", "ist", "sind", "hat", "haben", "ich", "wir", "nicht"},
	langdetect.English: {"the", "a", "an", "is", "are", "was", "has", "have", "i", "we", "not"},
}

var exampleLetters = map[langdetect.Language]string{
	langdetect.German: "äöüßÄÖÜ",
}

// ValidExample reports whether s is plausible as an example sentence in
// the given language. It must be 10 to 200 runes long with at least three
// words, not be all uppercase, and contain a diacritic or a function word of
// the language.
func ValidExample(s string, lang langdetect.Language) bool {
	s = strings.TrimSpace(s)
	n := utf8.RuneCountInString(s)
	if n < minExampleLen || n > maxExampleLen {
		return false
	}
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
	if len(words) < 3 {
		return false
	}
	if strings.ToUpper(s) == s {
		return false
	}
	if letters := exampleLetters[lang]; letters != "" && strings.ContainsAny(s, letters) {
		return true
	}
	for _, w := range words {
		w = strings.ToLower(w)
		for _, fw := range exampleFunctionWords[lang] {
			if w == fw {
				return true
			}
		}
	}
	return false
}
