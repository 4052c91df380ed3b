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
	"regexp"
	"strings"
	"unicode"

	"github.com/temporal-IPA/tipa/pkg/ipa"
)

// CommonsURL is the base URL audio file names are resolved against.
const CommonsURL = "https://upload.wikimedia.org/wikipedia/commons/"

// Pronunciation is a pronunciation of a word.
type Pronunciation struct {
	// IPA is the transcription without surrounding slashes or brackets.
	IPA string

	// AudioURL is a link to a recording.
	AudioURL string
}

var (
	ipaTemplateRE  = regexp.MustCompile(`\{\{IPA\|de\|([^{}]+)\}\}`)
	lautschriftRE  = regexp.MustCompile(`\{\{Lautschrift\|([^{}|]+)[^{}]*\}\}`)
	pronTemplateRE = regexp.MustCompile(`\{\{pron\|([^{}]+)\}\}`)
	slashedRE      = regexp.MustCompile(`/([^/\n]+)/`)
	bracketedRE    = regexp.MustCompile(`\[([^\[\]\n]+)\]`)

	audioTemplateRE = regexp.MustCompile(`\{\{(?:Audio|audio|IPA audio)\|([^{}|]+)`)
	audioLinkRE     = regexp.MustCompile(`https?://[^\s{}|\]]+\.(?:ogg|mp3)`)
)

var pronunciationSections = compileSections(
	section{name: "Aussprache", minLevel: 2, maxLevel: 4},
	section{name: "Pronunciation", minLevel: 2, maxLevel: 4},
)

// ExtractPronunciation returns the IPA transcription and audio link found
// in text, or nil if there is neither.
func ExtractPronunciation(text string) *Pronunciation {
	p := &Pronunciation{
		IPA:      extractIPA(text),
		AudioURL: extractAudio(text),
	}
	if p.IPA == "" && p.AudioURL == "" {
		return nil
	}
	return p
}

func extractIPA(text string) string {
	if m := ipaTemplateRE.FindStringSubmatch(text); m != nil {
		if v := ipaCandidate(strings.Split(m[1], "|")[0]); v != "" {
			return v
		}
	}
	if m := lautschriftRE.FindStringSubmatch(text); m != nil {
		if v := ipaCandidate(m[1]); v != "" {
			return v
		}
	}
	for _, m := range pronTemplateRE.FindAllStringSubmatch(text, -1) {
		for _, param := range strings.Split(m[1], "|") {
			if v := ipaCandidate(param); v != "" && !isLangCode(v) {
				return v
			}
		}
	}

	body, ok := firstSection(text, pronunciationSections)
	if !ok {
		return ""
	}
	for _, re := range []*regexp.Regexp{slashedRE, bracketedRE} {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			if v := ipaCandidate(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// ipaCandidate trims a transcription and returns it if it looks like IPA.
func ipaCandidate(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.Trim(s, "/[]"))
	if s == "" || strings.ContainsAny(s, "{}|=:") {
		return ""
	}
	// List markers such as [1] are not transcriptions.
	if strings.TrimFunc(s, func(r rune) bool { return unicode.IsDigit(r) || unicode.IsSpace(r) }) == "" {
		return ""
	}
	if !strings.ContainsAny(s, ipa.Charset) {
		return ""
	}
	return s
}

func isLangCode(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

func extractAudio(text string) string {
	if m := audioTemplateRE.FindStringSubmatch(text); m != nil {
		if file := strings.TrimSpace(m[1]); file != "" {
			return CommonsURL + strings.ReplaceAll(file, " ", "_")
		}
	}
	return audioLinkRE.FindString(text)
}
