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

	"github.com/k3a/html2text"
	"golang.org/x/net/html"
)

var (
	pipedLinkRE = regexp.MustCompile(`\[\[[^|\]]*\|([^\]]+)\]\]`)
	linkRE      = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	templateRE  = regexp.MustCompile(`\{\{[^{}]*\}\}`)
	boldRE      = regexp.MustCompile(`'''([^']+)'''`)
	italicRE    = regexp.MustCompile(`''([^']+)''`)
	markerRE    = regexp.MustCompile(`^\s*(?::\[\d+[a-z]?\]|[#*:]+|\d+\.)\s*`)
)

// Clean removes wiki and HTML markup from text and folds whitespace.
func Clean(text string) string {
	text = pipedLinkRE.ReplaceAllString(text, "$1")
	text = linkRE.ReplaceAllString(text, "$1")
	// Nested templates are removed from the inside out.
	for templateRE.MatchString(text) {
		text = templateRE.ReplaceAllString(text, "")
	}
	text = boldRE.ReplaceAllString(text, "$1")
	text = italicRE.ReplaceAllString(text, "$1")
	if strings.ContainsAny(text, "<&") {
		text = html.UnescapeString(html2text.HTML2Text(text))
	}
	return strings.Join(strings.Fields(text), " ")
}

// stripMarker removes a leading list marker such as ":[1]", "#" or "1.".
func stripMarker(line string) string {
	return markerRE.ReplaceAllString(line, "")
}
