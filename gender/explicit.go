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
)

// tagPatterns match gender tags. The first submatch is the gender code.
var tagPatterns = []*regexp.Regexp{
	// FreeDict style: <masc>, <fem, sg>, <neut, n, pl>.
	regexp.MustCompile(`<[^<>]*?\b(masc|fem|neut)\b\.?[^<>]*>`),
	// Wiki templates: {{Genus|m}}, {{m}}.
	regexp.MustCompile(`\{\{\s*(?:Genus\s*\|\s*)?([mfn])\s*\}\}`),
	// Braces: {m}.
	regexp.MustCompile(`\{\s*([mfn])\s*\}`),
	// Key value: Genus=m.
	regexp.MustCompile(`(?i)\bGenus\s*=\s*([mfn])\b`),
}

var anyArticle = regexp.MustCompile(`(?:^|[^\p{L}])([Dd]er|[Dd]ie|[Dd]as)\s+\p{Lu}`)

func tagGender(code string) Gender {
	switch strings.ToLower(code) {
	case "m", "masc":
		return Masculine
	case "f", "fem":
		return Feminine
	case "n", "neut":
		return Neuter
	default:
		return Unknown
	}
}

// Explicit returns the gender stated explicitly for headword in the entry
// text raw, or nil if there is none. An article directly before the
// headword takes precedence over tags, which take precedence over the only
// article on the headword line. A bare <n> is the noun tag, not neuter.
func Explicit(headword, raw string) *Result {
	headword = strings.TrimSpace(headword)
	if headword == "" || raw == "" {
		return nil
	}

	// der/die/das directly before the headword.
	anchored := regexp.MustCompile(`(?i)(?:^|[^\p{L}])(der|die|das)\s+` + regexp.QuoteMeta(headword) + `(?:$|[^\p{L}])`)
	if m := anchored.FindStringSubmatch(raw); m != nil {
		return explicitResult(FromArticle(m[1]))
	}

	// Tags on the headword line first, then anywhere.
	line := headwordLine(headword, raw)
	for _, text := range []string{line, raw} {
		for _, p := range tagPatterns {
			if m := p.FindStringSubmatch(text); m != nil {
				return explicitResult(tagGender(m[1]))
			}
		}
	}

	if !strings.Contains(strings.ToLower(line), strings.ToLower(headword)) {
		return nil
	}
	if m := anyArticle.FindAllStringSubmatch(line, -1); len(m) == 1 {
		return explicitResult(FromArticle(m[0][1]))
	}
	return nil
}

func explicitResult(g Gender) *Result {
	if g == Unknown {
		return nil
	}
	return &Result{Gender: g, Confidence: 1.0, Method: MethodExplicit}
}

// headwordLine returns the first line of raw that contains headword, or the
// first line.
func headwordLine(headword, raw string) string {
	lines := strings.Split(raw, "\n")
	lower := strings.ToLower(headword)
	for _, l := range lines {
		if strings.Contains(strings.ToLower(l), lower) {
			return l
		}
	}
	return lines[0]
}
