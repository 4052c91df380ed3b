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

package search

import (
	"github.com/ianlewis/go-woerterbuch/archive"
	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/internal/folding"
)

// Group is a German headword with its English translations, merged from
// every source that mentioned it.
type Group struct {
	// Headword is the German headword.
	Headword string

	Translations []string
	Examples     []archive.Example
	WordType     gender.WordType

	Gender           gender.Gender
	GenderConfidence float64
	GenderMethod     gender.Method

	// Score is 1 for exact matches. Related words found by similarity
	// search score lower.
	Score float64

	// Related is set for groups added by similarity search.
	Related bool
}

// Key returns the case folded headword.
func (g *Group) Key() string {
	return folding.String(folding.German, g.Headword)
}

// Merge unions the translations and examples of o into g. Gender and word
// type are taken from o when it knows more. Merging a group with itself
// leaves it unchanged.
func (g *Group) Merge(o *Group) {
	if g == o {
		return
	}
	g.Translations = unionFold(g.Translations, o.Translations)
	g.Examples = unionExamples(g.Examples, o.Examples)
	if g.WordType == gender.UnknownType {
		g.WordType = o.WordType
	}
	if knownGender(o.Gender) && o.GenderConfidence > g.GenderConfidence {
		g.Gender = o.Gender
		g.GenderConfidence = o.GenderConfidence
		g.GenderMethod = o.GenderMethod
	}
	g.Score = max(g.Score, o.Score)
	g.Related = g.Related && o.Related
}

// Merge merges groups with the same case folded headword, keeping the order
// in which headwords first appear. The input groups are not modified.
func Merge(groups ...*Group) []*Group {
	out := make([]*Group, 0, len(groups))
	byKey := make(map[string]*Group, len(groups))
	for _, g := range groups {
		if g == nil {
			continue
		}
		k := g.Key()
		if prev, ok := byKey[k]; ok {
			prev.Merge(g)
			continue
		}
		c := g.clone()
		byKey[k] = c
		out = append(out, c)
	}
	return out
}

func (g *Group) clone() *Group {
	c := *g
	c.Translations = append([]string(nil), g.Translations...)
	c.Examples = append([]archive.Example(nil), g.Examples...)
	return &c
}

func unionFold(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			k := folding.String(folding.English, s)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, s)
		}
	}
	return out
}

func unionExamples(a, b []archive.Example) []archive.Example {
	seen := make(map[archive.Example]bool, len(a)+len(b))
	out := make([]archive.Example, 0, len(a)+len(b))
	for _, list := range [][]archive.Example{a, b} {
		for _, ex := range list {
			if seen[ex] {
				continue
			}
			seen[ex] = true
			out = append(out, ex)
		}
	}
	return out
}
