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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		word     string
		raw      string
		expected Result
	}{
		{
			name:     "article phrase",
			word:     "die Frau kocht",
			expected: Result{Gender: Feminine, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "anchored article beats earlier article",
			word:     "Mutter",
			raw:      "der Vater und die Mutter",
			expected: Result{Gender: Feminine, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "freedict tag",
			word:     "Apfel",
			raw:      "Apfel /ˈapfl̩/ <masc, n, sg>\napple",
			expected: Result{Gender: Masculine, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "brace tag",
			word:     "Brot",
			raw:      "Brot {n}\nbread",
			expected: Result{Gender: Neuter, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "noun tag is not neuter",
			word:     "Hund",
			raw:      "Hund /hʊnt/ <n>\ndog; hound",
			expected: Result{Gender: Masculine, Confidence: 0.85, Method: MethodCompound},
		},
		{
			name:     "article on another line",
			word:     "Mutter",
			raw:      "Mutter /ˈmʊtɐ/\nmother\nsiehe auch: der Vater",
			expected: Result{Gender: Feminine, Confidence: 0.85, Method: MethodCompound},
		},
		{
			name:     "wiki template",
			word:     "Katze",
			raw:      "{{Wortart|Substantiv|Deutsch}}, {{Genus|f}}",
			expected: Result{Gender: Feminine, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "key value",
			word:     "Tisch",
			raw:      "Genus=m",
			expected: Result{Gender: Masculine, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "known noun",
			word:     "mutter",
			expected: Result{Gender: Feminine, Confidence: 0.85, Method: MethodCompound},
		},
		{
			name:     "compound",
			word:     "Schraubenmutter",
			expected: Result{Gender: Feminine, Confidence: 0.85, Method: MethodCompound},
		},
		{
			name:     "neuter compound",
			word:     "Krankenhaus",
			expected: Result{Gender: Neuter, Confidence: 0.70, Method: MethodCompound},
		},
		{
			name:     "compound keeps last part",
			word:     "Muttertag",
			expected: Result{Gender: Masculine, Confidence: 0.85, Method: MethodCompound},
		},
		{
			name:     "very high ending",
			word:     "Zeitung",
			expected: Result{Gender: Feminine, Confidence: 0.95, Method: MethodRuleHigh},
		},
		{
			name:     "diminutive",
			word:     "Häuschen",
			expected: Result{Gender: Neuter, Confidence: 0.95, Method: MethodRuleHigh},
		},
		{
			name:     "high ending",
			word:     "Motor",
			expected: Result{Gender: Masculine, Confidence: 0.85, Method: MethodRuleHigh},
		},
		{
			name:     "medium ending",
			word:     "Lehrer",
			expected: Result{Gender: Masculine, Confidence: 0.70, Method: MethodRuleMedium},
		},
		{
			name:     "medium ending too short",
			word:     "Ger",
			expected: Result{Gender: Unknown, Method: MethodUnknown},
		},
		{
			name:     "keyword",
			word:     "Frauenbewegungsrat",
			expected: Result{Gender: Feminine, Confidence: 0.70, Method: MethodKeyword},
		},
		{
			name:     "unknown",
			word:     "Xyz",
			expected: Result{Gender: Unknown, Method: MethodUnknown},
		},
		{
			name:     "empty",
			word:     "  ",
			expected: Result{Gender: Unknown, Method: MethodUnknown},
		},
	}

	c := New(nil)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := c.Classify(test.word, test.raw)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Errorf("Classify(%q, %q) (-want, +got):\n%s", test.word, test.raw, diff)
			}
		})
	}
}

func TestClassifier_MinConfidence(t *testing.T) {
	t.Parallel()

	opts := *DefaultOptions
	opts.MinConfidence = 0.8
	c := New(&opts)

	if got, want := c.Classify("Lehrer", ""), (Result{Gender: Unknown, Method: MethodUnknown}); got != want {
		t.Errorf("Classify(Lehrer): got %+v, want %+v", got, want)
	}
	if got := c.Classify("Zeitung", ""); got.Gender != Feminine {
		t.Errorf("Classify(Zeitung): got %q, want %q", got.Gender, Feminine)
	}
}

func TestClassifier_Cached(t *testing.T) {
	t.Parallel()

	c := New(nil)
	first := c.Classify("Schraubenmutter", "")
	second := c.Classify("Schraubenmutter", "")
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("cached result (-want, +got):\n%s", diff)
	}
	if c.compounds.Len() != 1 {
		t.Errorf("cache len: got %d, want 1", c.compounds.Len())
	}
}

func TestExplicit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		headword string
		raw      string
		expected *Result
	}{
		{
			name:     "no markup",
			headword: "Haus",
			raw:      "house; home",
			expected: nil,
		},
		{
			name:     "tag on headword line wins",
			headword: "Mutter",
			raw:      "Mutter <fem>\nmother\nsee also: Vater <masc>",
			expected: &Result{Gender: Feminine, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "n inside tag list is not neuter",
			headword: "Hund",
			raw:      "Hund <masc, n, sg>",
			expected: &Result{Gender: Masculine, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "article not before a noun",
			headword: "Hund",
			raw:      "dog (der kleine Hund)",
			expected: nil,
		},
		{
			name:     "lone article on headword line",
			headword: "Kind",
			raw:      "Kind, das Kleine\nchild",
			expected: &Result{Gender: Neuter, Confidence: 1.0, Method: MethodExplicit},
		},
		{
			name:     "lone article without headword",
			headword: "Baum",
			raw:      "tree, das Gewächs",
			expected: nil,
		},
		{
			name:     "article on another line",
			headword: "Mutter",
			raw:      "Mutter /ˈmʊtɐ/\nmother\nsiehe auch: der Vater",
			expected: nil,
		},
		{
			name:     "two articles on headword line",
			headword: "Baum",
			raw:      "Baum: der Stamm, die Rinde",
			expected: nil,
		},
		{
			name:     "short noun tag",
			headword: "Hund",
			raw:      "Hund <n>\ndog",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Explicit(test.headword, test.raw)); diff != "" {
				t.Errorf("Explicit(%q, %q) (-want, +got):\n%s", test.headword, test.raw, diff)
			}
		})
	}
}

func TestGermanWordType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word     string
		raw      string
		expected WordType
	}{
		{word: "Haus", expected: Noun},
		{word: "laufen", raw: "laufen <vi>", expected: Verb},
		{word: "sprechen", expected: Verb},
		{word: "freundlich", expected: Adjective},
		{word: "schön", raw: "schön <adj>", expected: Adjective},
		{word: "schnell", raw: "<adv>", expected: Adverb},
		{word: "und", expected: UnknownType},
	}

	for _, test := range tests {
		t.Run(test.word, func(t *testing.T) {
			t.Parallel()

			if got := GermanWordType(test.word, test.raw); got != test.expected {
				t.Errorf("GermanWordType(%q, %q): got %q, want %q", test.word, test.raw, got, test.expected)
			}
		})
	}
}

func TestGender_Article(t *testing.T) {
	t.Parallel()

	for g, want := range map[Gender]string{Masculine: "der", Feminine: "die", Neuter: "das", Unknown: ""} {
		if got := g.Article(); got != want {
			t.Errorf("%q.Article(): got %q, want %q", g, got, want)
		}
		if g != Unknown && FromArticle(want) != g {
			t.Errorf("FromArticle(%q): got %q, want %q", want, FromArticle(want), g)
		}
	}
}
