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

// Package gender determines the grammatical gender and word type of German
// words.
//
// Gender is decided by a cascade of strategies evaluated in a fixed order:
//  1. Explicit markup in the entry text (articles and gender tags).
//  2. Compound analysis against known terminal nouns.
//  3. Ending rules in confidence tiers.
//  4. Gendered keywords contained in the word.
//
// The first strategy that produces a result wins.
package gender

import (
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Gender is a grammatical gender.
type Gender string

const (
	// Unknown is an undetermined gender.
	Unknown Gender = "unknown"

	// Masculine is the masculine gender (der).
	Masculine Gender = "masculine"

	// Feminine is the feminine gender (die).
	Feminine Gender = "feminine"

	// Neuter is the neuter gender (das).
	Neuter Gender = "neuter"
)

// Article returns the nominative singular definite article for the gender,
// or the empty string for Unknown.
func (g Gender) Article() string {
	switch g {
	case Masculine:
		return "der"
	case Feminine:
		return "die"
	case Neuter:
		return "das"
	default:
		return ""
	}
}

// FromArticle returns the gender for a definite article.
func FromArticle(article string) Gender {
	switch strings.ToLower(article) {
	case "der":
		return Masculine
	case "die":
		return Feminine
	case "das":
		return Neuter
	default:
		return Unknown
	}
}

// Method names the strategy that produced a Result.
type Method string

const (
	// MethodExplicit is explicit markup in the entry text.
	MethodExplicit Method = "explicit-markup"

	// MethodRuleHigh is a high confidence ending rule.
	MethodRuleHigh Method = "linguistic-rule-high"

	// MethodRuleMedium is a medium confidence ending rule.
	MethodRuleMedium Method = "linguistic-rule-medium"

	// MethodCompound is compound word analysis.
	MethodCompound Method = "compound-analysis"

	// MethodKeyword is gendered keyword containment.
	MethodKeyword Method = "keyword-match"

	// MethodUnknown means no strategy applied.
	MethodUnknown Method = "unknown"
)

// Result is the outcome of a gender classification.
type Result struct {
	Gender     Gender
	Confidence float64
	Method     Method
}

// unknown is returned when no strategy applies.
var unknown = Result{Gender: Unknown, Confidence: 0, Method: MethodUnknown}

// Options configure a Classifier. Confidence values are policy, not
// linguistics, and may be tuned.
type Options struct {
	// CompoundConfidence is the confidence of masculine and feminine
	// compound matches.
	CompoundConfidence float64

	// CompoundNeuterConfidence is the confidence of neuter compound matches.
	CompoundNeuterConfidence float64

	// VeryHighConfidence is the confidence of the strongest ending rules
	// (-ung, -heit, -chen, ...).
	VeryHighConfidence float64

	// HighConfidence is the confidence of strong but less regular endings
	// (-or, -ist, ...).
	HighConfidence float64

	// MediumConfidence is the confidence of weak ending rules.
	MediumConfidence float64

	// KeywordConfidence is the confidence of keyword matches.
	KeywordConfidence float64

	// MinCompoundLen is the shortest word, in runes, analyzed as a compound.
	// Known nouns shorter than this still match exactly.
	MinCompoundLen int

	// MinMediumLen is the shortest word, in runes, that medium ending rules
	// apply to.
	MinMediumLen int

	// MinConfidence is the lowest confidence reported. Weaker results are
	// reported as Unknown.
	MinConfidence float64

	// CacheSize is the number of compound analyses kept in memory.
	CacheSize int

	// Logger is the logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions are the default classifier options.
var DefaultOptions = &Options{
	CompoundConfidence:       0.85,
	CompoundNeuterConfidence: 0.70,
	VeryHighConfidence:       0.95,
	HighConfidence:           0.85,
	MediumConfidence:         0.70,
	KeywordConfidence:        0.70,
	MinCompoundLen:           6,
	MinMediumLen:             5,
	CacheSize:                4096,
}

// strategy returns nil to fall through to the next strategy.
type strategy func(c *Classifier, in *input) *Result

type input struct {
	word  string
	lower string
	raw   string
}

// Classifier classifies German nouns by gender. A Classifier is safe for
// concurrent use.
type Classifier struct {
	opts       Options
	strategies []strategy
	compounds  *lru.Cache[string, Result]
	log        *slog.Logger
}

// New returns a new Classifier.
func New(options *Options) *Classifier {
	if options == nil {
		options = DefaultOptions
	}
	opts := *options
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultOptions.CacheSize
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, Result](opts.CacheSize)

	return &Classifier{
		opts: opts,
		strategies: []strategy{
			(*Classifier).explicit,
			(*Classifier).compound,
			(*Classifier).endings,
			(*Classifier).keywords,
		},
		compounds: cache,
		log:       log.With("component", "gender"),
	}
}

// Classify determines the gender of word. raw is the entry text the word
// came from and may be empty. If word itself starts with an article, as in
// "die Frau", the article is used as explicit markup.
func (c *Classifier) Classify(word, raw string) Result {
	headword, text := splitArticle(strings.TrimSpace(word)), raw
	if text == "" {
		text = strings.TrimSpace(word)
	}
	if headword == "" {
		return unknown
	}

	in := &input{
		word:  headword,
		lower: cases.Lower(language.German).String(headword),
		raw:   text,
	}
	for _, s := range c.strategies {
		r := s(c, in)
		if r == nil {
			continue
		}
		if r.Confidence < c.opts.MinConfidence {
			c.log.Debug("result below threshold",
				slog.String("word", headword),
				slog.String("method", string(r.Method)),
				slog.Float64("confidence", r.Confidence),
			)
			return unknown
		}
		return *r
	}
	return unknown
}

// splitArticle returns the noun of an "article noun ..." phrase, or the word
// itself.
func splitArticle(word string) string {
	fields := strings.Fields(word)
	if len(fields) >= 2 && FromArticle(fields[0]) != Unknown {
		return strings.Trim(fields[1], ".,;:!?\"'")
	}
	return word
}

func (c *Classifier) explicit(in *input) *Result {
	return Explicit(in.word, in.raw)
}

func (c *Classifier) compound(in *input) *Result {
	if r, ok := c.compounds.Get(in.lower); ok {
		if r.Gender == Unknown {
			return nil
		}
		return &r
	}

	r := unknown
	if noun, g, ok := terminalNoun(in.lower); ok {
		if noun == in.lower || runeLen(in.lower) >= c.opts.MinCompoundLen {
			conf := c.opts.CompoundConfidence
			if g == Neuter {
				conf = c.opts.CompoundNeuterConfidence
			}
			r = Result{Gender: g, Confidence: conf, Method: MethodCompound}
		}
	}
	c.compounds.Add(in.lower, r)
	if r.Gender == Unknown {
		return nil
	}
	return &r
}

func (c *Classifier) endings(in *input) *Result {
	n := runeLen(in.lower)
	for _, e := range endingRules {
		if !strings.HasSuffix(in.lower, e.suffix) || n <= runeLen(e.suffix) {
			continue
		}
		var conf float64
		method := MethodRuleHigh
		switch e.tier {
		case tierVeryHigh:
			conf = c.opts.VeryHighConfidence
		case tierHigh:
			conf = c.opts.HighConfidence
		case tierMedium:
			if n < c.opts.MinMediumLen {
				continue
			}
			conf = c.opts.MediumConfidence
			method = MethodRuleMedium
		}
		return &Result{Gender: e.gender, Confidence: conf, Method: method}
	}
	return nil
}

func (c *Classifier) keywords(in *input) *Result {
	for _, k := range keywords {
		if strings.Contains(in.lower, k.word) {
			return &Result{Gender: k.gender, Confidence: c.opts.KeywordConfidence, Method: MethodKeyword}
		}
	}
	return nil
}

func runeLen(s string) int {
	return len([]rune(s))
}
