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

// Package search combines the German-English and English-German archives
// into a single search.
//
// A query is run against one or both archives depending on the language it
// appears to be in. Results are grouped by German headword, so searching
// "Apfel" and searching "apple" both produce a group for "Apfel". When no
// archive has a match a fallback source is consulted.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ianlewis/go-woerterbuch/archive"
	"github.com/ianlewis/go-woerterbuch/fallback"
	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/langdetect"
)

// ErrEmptyQuery is returned when searching for a blank query.
var ErrEmptyQuery = errors.New("empty query")

// Strategy names how a search was run.
type Strategy string

const (
	// GermanOnly searched the German-English archive.
	GermanOnly Strategy = "german-only"

	// EnglishOnly searched the English-German archive.
	EnglishOnly Strategy = "english-only"

	// BothDirections searched both archives.
	BothDirections Strategy = "both-directions"

	// FallbackStrategy means the archives had no match and the result came
	// from the fallback source.
	FallbackStrategy Strategy = "fallback"
)

// Preference is the caller's preferred search direction. Zero values mean
// no preference. A preference only decides between directions when the
// language of the query is unclear.
type Preference struct {
	Source langdetect.Language
	Target langdetect.Language
}

// Result is the result of a search. Results may be shared through the cache
// and must not be modified.
type Result struct {
	Query      string
	Language   langdetect.Language
	Confidence langdetect.Confidence
	Strategy   Strategy

	// German holds the entries found in the German-English archive.
	German []*archive.Entry

	// English holds the entries found in the English-German archive.
	English []*archive.Entry

	// Groups are the merged translation groups, best first.
	Groups []*Group
}

// Empty reports whether the result has no groups.
func (r *Result) Empty() bool {
	return len(r.Groups) == 0
}

// Archive is a directional dictionary.
type Archive interface {
	Lookup(ctx context.Context, word string) (*archive.Entry, error)
	LookupByTranslation(ctx context.Context, word string, limit int) ([]*archive.Entry, error)
}

// Fallback is a secondary word source.
type Fallback interface {
	Lookup(ctx context.Context, word string) (*fallback.Entry, error)
	LookupEnglish(ctx context.Context, word string) ([]*fallback.Entry, error)
}

// Options are options for New.
type Options struct {
	// German is the German-English archive.
	German Archive

	// English is the English-German archive.
	English Archive

	// Detector detects the query language. Defaults to a detector with the
	// default word lists.
	Detector *langdetect.Detector

	// Classifier classifies the gender of German nouns. Defaults to a
	// classifier with the default options.
	Classifier *gender.Classifier

	// Fallback is consulted when no archive has a match. Optional.
	Fallback Fallback

	// FallbackTimeout bounds a fallback call.
	FallbackTimeout time.Duration

	// Ranker finds related words. Optional.
	Ranker Ranker

	// RelatedLimit is the maximum number of related words added.
	RelatedLimit int

	// GenderThreshold is the lowest gender confidence at which a German
	// noun reading outranks an English reading of the same query.
	GenderThreshold float64

	// ReverseLimit is the maximum number of entries taken from a reverse
	// lookup.
	ReverseLimit int

	// TranslationLookups is the maximum number of German translations of an
	// English entry looked up in the German-English archive.
	TranslationLookups int

	// CacheSize is the number of cached results. Zero disables caching.
	CacheSize int

	// CacheTTL is how long results are cached.
	CacheTTL time.Duration

	// Logger is the logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions are the default options. They have no archives.
var DefaultOptions = &Options{
	FallbackTimeout:    2 * time.Second,
	RelatedLimit:       5,
	GenderThreshold:    0.70,
	ReverseLimit:       10,
	TranslationLookups: 5,
	CacheSize:          256,
	CacheTTL:           10 * time.Minute,
}

// Orchestrator runs searches. An Orchestrator is safe for concurrent use.
type Orchestrator struct {
	opts       Options
	detector   *langdetect.Detector
	classifier *gender.Classifier
	cache      *expirable.LRU[string, *Result]
	log        *slog.Logger
}

// New returns a new Orchestrator.
func New(options *Options) *Orchestrator {
	if options == nil {
		options = DefaultOptions
	}
	opts := *options
	if opts.FallbackTimeout <= 0 {
		opts.FallbackTimeout = DefaultOptions.FallbackTimeout
	}
	if opts.RelatedLimit <= 0 {
		opts.RelatedLimit = DefaultOptions.RelatedLimit
	}
	if opts.ReverseLimit <= 0 {
		opts.ReverseLimit = DefaultOptions.ReverseLimit
	}
	if opts.TranslationLookups <= 0 {
		opts.TranslationLookups = DefaultOptions.TranslationLookups
	}
	if opts.GenderThreshold <= 0 {
		opts.GenderThreshold = DefaultOptions.GenderThreshold
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultOptions.CacheTTL
	}

	o := &Orchestrator{
		opts:       opts,
		detector:   opts.Detector,
		classifier: opts.Classifier,
		log:        opts.Logger,
	}
	if o.detector == nil {
		o.detector = langdetect.New(nil)
	}
	if o.classifier == nil {
		o.classifier = gender.New(nil)
	}
	if o.log == nil {
		o.log = slog.Default()
	}
	o.log = o.log.With("component", "search")
	if opts.CacheSize > 0 {
		o.cache = expirable.NewLRU[string, *Result](opts.CacheSize, nil, opts.CacheTTL)
	}
	return o
}

// Search looks up query. It only fails for a blank query or a cancelled
// context; failures of individual archives or the fallback are logged and
// treated as no match.
func (o *Orchestrator) Search(ctx context.Context, query string, pref Preference) (*Result, error) {
	q := strings.Join(strings.Fields(query), " ")
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := cacheKey(q, pref)
	if o.cache != nil {
		if r, ok := o.cache.Get(key); ok {
			o.log.DebugContext(ctx, "cache hit", slog.String("query", q))
			return r, nil
		}
	}

	det := o.detector.Detect(q)
	res := &Result{
		Query:      q,
		Language:   det.Language,
		Confidence: det.Confidence,
		Strategy:   chooseStrategy(det, pref),
	}

	var german, english []*Group
	switch res.Strategy {
	case GermanOnly:
		res.German, german = o.searchGerman(ctx, q)
	case EnglishOnly:
		res.English, english = o.searchEnglish(ctx, q)
		if det.Confidence == langdetect.Low {
			// An English preference must not hide a German noun with
			// the same spelling, such as "mutter".
			if entries, groups := o.escalate(ctx, q); len(groups) > 0 {
				res.Strategy = BothDirections
				res.German, german = entries, groups
			}
		}
	default:
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			res.German, german = o.searchGerman(ctx, q)
		}()
		go func() {
			defer wg.Done()
			res.English, english = o.searchEnglish(ctx, q)
		}()
		wg.Wait()
	}

	if o.germanFirst(det, pref, german) {
		res.Groups = Merge(append(german, english...)...)
	} else {
		res.Groups = Merge(append(english, german...)...)
	}

	if res.Empty() {
		if groups := o.fallback(ctx, q, res.Strategy); len(groups) > 0 {
			res.Groups = groups
			res.Strategy = FallbackStrategy
		}
	}

	if o.opts.Ranker != nil {
		res.Groups = o.related(ctx, q, res.Groups)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.log.DebugContext(ctx, "search",
		slog.String("query", q),
		slog.String("language", string(res.Language)),
		slog.String("confidence", res.Confidence.String()),
		slog.String("strategy", string(res.Strategy)),
		slog.Int("groups", len(res.Groups)),
	)

	if o.cache != nil {
		o.cache.Add(key, res)
	}
	return res, nil
}

func cacheKey(q string, pref Preference) string {
	return fmt.Sprintf("%s|%s|%s", q, pref.Source, pref.Target)
}

// chooseStrategy trusts a high or medium confidence detection. Otherwise the
// caller's preference decides, and without one both archives are searched.
func chooseStrategy(det langdetect.Result, pref Preference) Strategy {
	if det.Confidence != langdetect.Low {
		switch det.Language {
		case langdetect.German:
			return GermanOnly
		case langdetect.English:
			return EnglishOnly
		default:
			return BothDirections
		}
	}
	switch {
	case pref.Source == langdetect.German || pref.Target == langdetect.English:
		return GermanOnly
	case pref.Source == langdetect.English || pref.Target == langdetect.German:
		return EnglishOnly
	default:
		return BothDirections
	}
}

// germanFirst reports whether the German reading of the query is listed
// first.
func (o *Orchestrator) germanFirst(det langdetect.Result, pref Preference, german []*Group) bool {
	if len(german) == 0 {
		return false
	}
	if det.Confidence != langdetect.Low {
		return det.Language != langdetect.English
	}
	if german[0].GenderConfidence >= o.opts.GenderThreshold {
		return true
	}
	if pref.Source == langdetect.English {
		return false
	}
	return det.Lean() != langdetect.English
}

// escalate returns the German reading of an English-looking query when the
// German archive has it as a noun with a confident gender.
func (o *Orchestrator) escalate(ctx context.Context, q string) ([]*archive.Entry, []*Group) {
	if !looksGermanNoun(o.detector.Detect(q), q) {
		return nil, nil
	}
	e := o.lookup(ctx, o.opts.German, q)
	if e == nil {
		return nil, nil
	}
	g := o.entryGroup(e)
	if g.GenderConfidence < o.opts.GenderThreshold {
		return nil, nil
	}
	o.log.DebugContext(ctx, "escalated to German reading",
		slog.String("query", q),
		slog.String("headword", g.Headword),
		slog.String("gender", string(g.Gender)),
		slog.Float64("confidence", g.GenderConfidence),
	)
	return []*archive.Entry{e}, []*Group{g}
}

// looksGermanNoun reports whether q could be a German noun.
func looksGermanNoun(det langdetect.Result, q string) bool {
	if det.Language == langdetect.German {
		return true
	}
	if r, _ := utf8.DecodeRuneInString(q); unicode.IsUpper(r) {
		return true
	}
	return det.Lean() == langdetect.German
}

// searchGerman searches the German-English archive. If q is not a headword
// but looks like a German noun, the English-German archive is searched for
// entries translated by it.
func (o *Orchestrator) searchGerman(ctx context.Context, q string) (entries []*archive.Entry, groups []*Group) {
	defer o.recoverDirection(ctx, "german", q, func() { entries, groups = nil, nil })

	if e := o.lookup(ctx, o.opts.German, q); e != nil {
		return []*archive.Entry{e}, []*Group{o.entryGroup(e)}
	}
	if !looksGermanNoun(o.detector.Detect(q), q) {
		return nil, nil
	}

	rev := o.reverse(ctx, o.opts.English, q)
	if len(rev) == 0 {
		return nil, nil
	}
	// q is a German word used as a translation of English headwords.
	g := &Group{
		Headword: q,
		Score:    1,
	}
	nq := strings.ToLower(q)
	for _, e := range rev {
		g.Translations = unionFold(g.Translations, []string{e.Headword})
		for _, tr := range e.Translations {
			if strings.ToLower(tr) == nq {
				g.Headword = tr
				break
			}
		}
	}
	o.classify(g, "")
	return nil, []*Group{g}
}

// searchEnglish searches the English-German archive. Each German translation
// becomes a group, enriched from the German-English archive. If q is not a
// headword, the German-English archive is searched for entries translated by
// it.
func (o *Orchestrator) searchEnglish(ctx context.Context, q string) (entries []*archive.Entry, groups []*Group) {
	defer o.recoverDirection(ctx, "english", q, func() { entries, groups = nil, nil })

	if e := o.lookup(ctx, o.opts.English, q); e != nil {
		for i, tr := range e.Translations {
			g := &Group{
				Headword:     tr,
				Translations: []string{e.Headword},
				Score:        1,
			}
			if i < o.opts.TranslationLookups {
				if de := o.lookup(ctx, o.opts.German, tr); de != nil {
					dg := o.entryGroup(de)
					dg.Merge(g)
					g = dg
				}
			}
			if !knownGender(g.Gender) && isCapitalized(g.Headword) {
				o.classify(g, translationLine(e.Raw, tr))
			}
			groups = append(groups, g)
		}
		return []*archive.Entry{e}, groups
	}

	for _, e := range o.reverse(ctx, o.opts.German, q) {
		groups = append(groups, o.entryGroup(e))
	}
	return nil, groups
}

// entryGroup returns the group of an entry of the German-English archive.
func (o *Orchestrator) entryGroup(e *archive.Entry) *Group {
	g := &Group{
		Headword:     e.Headword,
		Translations: append([]string(nil), e.Translations...),
		Examples:     append([]archive.Example(nil), e.Examples...),
		WordType:     e.WordType,
		Score:        1,
	}
	if e.WordType == gender.Noun || (e.WordType == gender.UnknownType && isCapitalized(e.Headword)) {
		o.classify(g, e.Raw)
	}
	return g
}

func (o *Orchestrator) classify(g *Group, raw string) {
	r := o.classifier.Classify(g.Headword, raw)
	g.Gender = r.Gender
	g.GenderConfidence = r.Confidence
	g.GenderMethod = r.Method
	if r.Gender != gender.Unknown && g.WordType == gender.UnknownType {
		g.WordType = gender.Noun
	}
}

func (o *Orchestrator) lookup(ctx context.Context, a Archive, q string) *archive.Entry {
	if a == nil {
		return nil
	}
	e, err := a.Lookup(ctx, q)
	if err != nil {
		o.log.WarnContext(ctx, "lookup failed", slog.String("query", q), slog.Any("error", err))
		return nil
	}
	return e
}

func (o *Orchestrator) reverse(ctx context.Context, a Archive, q string) []*archive.Entry {
	if a == nil {
		return nil
	}
	entries, err := a.LookupByTranslation(ctx, q, o.opts.ReverseLimit)
	if err != nil {
		o.log.WarnContext(ctx, "reverse lookup failed", slog.String("query", q), slog.Any("error", err))
		return nil
	}
	return entries
}

// recoverDirection logs a panic in a search direction and calls reset.
func (o *Orchestrator) recoverDirection(ctx context.Context, direction, q string, reset func()) {
	if r := recover(); r != nil {
		o.log.ErrorContext(ctx, "search direction panicked",
			slog.String("direction", direction),
			slog.String("query", q),
			slog.Any("panic", r),
		)
		reset()
	}
}

// fallback consults the fallback source under a timeout.
func (o *Orchestrator) fallback(ctx context.Context, q string, s Strategy) []*Group {
	if o.opts.Fallback == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, o.opts.FallbackTimeout)
	defer cancel()

	var groups []*Group
	if s != EnglishOnly {
		e, err := o.opts.Fallback.Lookup(ctx, q)
		if err != nil {
			o.log.WarnContext(ctx, "fallback lookup failed", slog.String("query", q), slog.Any("error", err))
		} else if e != nil {
			groups = append(groups, fallbackGroup(e))
		}
	}
	if s != GermanOnly {
		es, err := o.opts.Fallback.LookupEnglish(ctx, q)
		if err != nil {
			o.log.WarnContext(ctx, "fallback lookup failed", slog.String("query", q), slog.Any("error", err))
		}
		for _, e := range es {
			groups = append(groups, fallbackGroup(e))
		}
	}
	return Merge(groups...)
}

func fallbackGroup(e *fallback.Entry) *Group {
	g := &Group{
		Headword:     e.Word,
		Translations: append([]string(nil), e.Translations...),
		Examples:     append([]archive.Example(nil), e.Examples...),
		WordType:     e.WordType,
		Gender:       e.Gender,
		Score:        1,
	}
	if knownGender(e.Gender) {
		// The table records gender from reference dictionaries.
		g.GenderConfidence = 1
		g.GenderMethod = gender.MethodExplicit
		if len(e.Parts) > 0 {
			g.GenderConfidence = gender.DefaultOptions.CompoundConfidence
			g.GenderMethod = gender.MethodCompound
		}
	} else {
		g.GenderMethod = gender.MethodUnknown
	}
	return g
}

func knownGender(g gender.Gender) bool {
	return g != "" && g != gender.Unknown
}

// translationLine returns the line of an entry, other than the headword
// line, that contains the translation tr.
func translationLine(raw, tr string) string {
	lines := strings.Split(raw, "\n")
	for _, l := range lines[1:] {
		if strings.Contains(l, tr) {
			return l
		}
	}
	return ""
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
