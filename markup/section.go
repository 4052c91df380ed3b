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
)

// section names a wiki section header. Headers of any level between
// minLevel and maxLevel match.
type section struct {
	name     string
	minLevel int
	maxLevel int
}

func (s section) header() *regexp.Regexp {
	return regexp.MustCompile(`(?mi)^(={2,6})\s*` + regexp.QuoteMeta(s.name) + `\s*={2,6}\s*$`)
}

type compiledSection struct {
	re       *regexp.Regexp
	minLevel int
	maxLevel int
}

func compileSections(sections ...section) []compiledSection {
	out := make([]compiledSection, len(sections))
	for i, s := range sections {
		out[i] = compiledSection{re: s.header(), minLevel: s.minLevel, maxLevel: s.maxLevel}
	}
	return out
}

// body returns the text after the first matching header up to the next
// header. Subsections end the body.
func (s compiledSection) body(text string) (string, bool) {
	for _, loc := range s.re.FindAllStringSubmatchIndex(text, -1) {
		level := loc[3] - loc[2]
		if level < s.minLevel || level > s.maxLevel {
			continue
		}
		rest := text[loc[1]:]
		var b strings.Builder
		for _, line := range strings.Split(strings.TrimPrefix(rest, "\n"), "\n") {
			if headerLevel(line) > 0 {
				break
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
		return b.String(), true
	}
	return "", false
}

// headerLevel returns the level of a header line, or 0 if line is not a
// header.
func headerLevel(line string) int {
	line = strings.TrimSpace(line)
	n := 0
	for n < len(line) && line[n] == '=' {
		n++
	}
	if n < 2 || !strings.HasSuffix(line, strings.Repeat("=", n)) || len(line) <= 2*n {
		return 0
	}
	return n
}

// firstSection returns the body of the first section family that is
// present in text.
func firstSection(text string, sections []compiledSection) (string, bool) {
	for _, s := range sections {
		if b, ok := s.body(text); ok {
			return b, true
		}
	}
	return "", false
}
