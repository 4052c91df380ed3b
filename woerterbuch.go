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

package woerterbuch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ianlewis/go-woerterbuch/archive"
	"github.com/ianlewis/go-woerterbuch/embedding"
	"github.com/ianlewis/go-woerterbuch/fallback"
	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/langdetect"
	"github.com/ianlewis/go-woerterbuch/markup"
	"github.com/ianlewis/go-woerterbuch/search"
)

// Archive names, following FreeDict naming.
const (
	GermanEnglish = "deu-eng"
	EnglishGerman = "eng-deu"
)

var (
	// ErrNoArchives is returned by Open when the directory holds neither
	// archive.
	ErrNoArchives = errors.New("no dictionary archives found")

	// ErrNoStore is returned by embedding operations when no embedding
	// store is configured.
	ErrNoStore = errors.New("no embedding store")
)

var indexExts = []string{".index", ".INDEX", ".index.gz", ".INDEX.gz", ".INDEX.GZ"}

// Dictionary is an opened dictionary data directory. A Dictionary is safe
// for concurrent use.
type Dictionary struct {
	dir string

	german  *archive.Archive
	english *archive.Archive

	detector   *langdetect.Detector
	classifier *gender.Classifier
	parser     *markup.Parser
	search     *search.Orchestrator

	embedder embedding.Embedder
	store    *embedding.Store
	ranker   *search.Semantic

	log *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Open opens the dictionary archives under dir. Archives are found by name
// anywhere below dir, so both a flat directory and the FreeDict layout of one
// directory per archive work. A directory holding only one of the archives
// is usable; the missing direction behaves as an empty dictionary.
//
// Archive indexes are loaded lazily on first use.
func Open(ctx context.Context, dir string, options *Options) (*Dictionary, error) {
	if options == nil {
		options = DefaultOptions
	}
	opts := *options
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	bases, err := findArchives(dir)
	if err != nil {
		return nil, err
	}
	if len(bases) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoArchives, dir)
	}
	for _, name := range []string{GermanEnglish, EnglishGerman} {
		if _, ok := bases[name]; !ok {
			log.WarnContext(ctx, "archive not found", slog.String("archive", name), slog.String("dir", dir))
			bases[name] = filepath.Join(dir, name)
		}
	}

	d := &Dictionary{
		dir: dir,
		german: archive.New(bases[GermanEnglish], &archive.Options{
			Source:          langdetect.German,
			Target:          langdetect.English,
			HTML:            opts.HTML,
			MaxTranslations: opts.MaxTranslations,
			MaxExamples:     opts.MaxExamples,
			Logger:          log,
		}),
		english: archive.New(bases[EnglishGerman], &archive.Options{
			Source:          langdetect.English,
			Target:          langdetect.German,
			HTML:            opts.HTML,
			MaxTranslations: opts.MaxTranslations,
			MaxExamples:     opts.MaxExamples,
			Logger:          log,
		}),
		detector: langdetect.New(opts.Detector),
		parser:   markup.New(opts.Markup),
		log:      log,
	}

	genderOpts := *gender.DefaultOptions
	if opts.Gender != nil {
		genderOpts = *opts.Gender
	}
	genderOpts.Logger = log
	d.classifier = gender.New(&genderOpts)

	d.embedder = embedding.New(opts.EmbeddingModel, &embedding.Options{Logger: log})
	if opts.EmbeddingStore != "" {
		d.store, err = embedding.OpenStore(ctx, opts.EmbeddingStore, d.embedder.Model(), d.embedder.Dimensions())
		if err != nil {
			d.Close()
			return nil, err
		}
		d.ranker = search.NewSemantic(d.embedder, d.store, opts.TopK)
	}

	searchOpts := *search.DefaultOptions
	if opts.Search != nil {
		searchOpts = *opts.Search
	}
	searchOpts.German = d.german
	searchOpts.English = d.english
	searchOpts.Detector = d.detector
	searchOpts.Classifier = d.classifier
	searchOpts.Logger = log
	if !opts.DisableFallback {
		searchOpts.Fallback = fallback.Default()
	}
	if d.ranker != nil {
		searchOpts.Ranker = d.ranker
	}
	d.search = search.New(&searchOpts)

	return d, nil
}

// findArchives walks dir and returns the base path of each archive index
// found, keyed by archive name. The first match wins.
func findArchives(dir string) (map[string]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("opening %q: %w", dir, err)
	}

	bases := make(map[string]string)
	if err := filepath.WalkDir(dir, func(path string, info fs.DirEntry, err error) error {
		// Unreadable subdirectories are ignored.
		if err != nil || info.IsDir() {
			return nil
		}
		for _, ext := range indexExts {
			base, ok := strings.CutSuffix(path, ext)
			if !ok {
				continue
			}
			name := filepath.Base(base)
			if name != GermanEnglish && name != EnglishGerman {
				continue
			}
			if _, ok := bases[name]; !ok {
				bases[name] = base
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("searching %q: %w", dir, err)
	}
	return bases, nil
}

// Dir returns the data directory.
func (d *Dictionary) Dir() string {
	return d.dir
}

// German returns the German-English archive.
func (d *Dictionary) German() *archive.Archive {
	return d.german
}

// English returns the English-German archive.
func (d *Dictionary) English() *archive.Archive {
	return d.english
}

// Embedder returns the embedder used for similarity search.
func (d *Dictionary) Embedder() embedding.Embedder {
	return d.embedder
}

// Init loads both archive indexes. Loading otherwise happens on first use.
func (d *Dictionary) Init(ctx context.Context) error {
	if err := d.german.Init(ctx); err != nil {
		return err
	}
	return d.english.Init(ctx)
}

// Search looks up query in one or both directions.
func (d *Dictionary) Search(ctx context.Context, query string, pref search.Preference) (*search.Result, error) {
	return d.search.Search(ctx, query, pref)
}

// Suggest returns up to limit headwords starting with prefix. German
// headwords come first. The result is never nil.
func (d *Dictionary) Suggest(ctx context.Context, prefix string, limit int) []string {
	if limit <= 0 {
		return []string{}
	}
	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, a := range []*archive.Archive{d.german, d.english} {
		for _, w := range a.Suggest(ctx, prefix, limit) {
			if len(out) == limit {
				return out
			}
			if seen[w] {
				continue
			}
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// Gender classifies the gender of a German noun. The German-English entry
// for the word is used as explicit markup when there is one.
func (d *Dictionary) Gender(ctx context.Context, word string) (gender.Result, error) {
	var raw string
	e, err := d.german.Lookup(ctx, word)
	if err != nil {
		return gender.Result{}, err
	}
	if e != nil {
		raw = e.Raw
	}
	return d.classifier.Classify(word, raw), nil
}

// Detect detects the language of query.
func (d *Dictionary) Detect(query string) langdetect.Result {
	return d.detector.Detect(query)
}

// Parse extracts structured content from wiki text about word.
func (d *Dictionary) Parse(word, raw string, lang langdetect.Language) *markup.Entry {
	return d.parser.Parse(word, raw, lang)
}

// ImportEmbeddings embeds every German headword and stores the vectors. It
// returns the number of vectors stored.
func (d *Dictionary) ImportEmbeddings(ctx context.Context) (int, error) {
	if d.store == nil {
		return 0, ErrNoStore
	}

	var docs []embedding.Document
	if err := d.german.Headwords(ctx, func(w string) error {
		docs = append(docs, embedding.Document{ID: w, Text: w})
		return nil
	}); err != nil {
		return 0, err
	}

	n, err := embedding.Import(ctx, d.embedder, d.store, docs)
	if err != nil {
		return n, err
	}
	d.log.InfoContext(ctx, "embeddings imported",
		slog.Int("count", n),
		slog.String("model", d.embedder.Model()),
		slog.Bool("fallback", embedding.IsFallback(d.embedder)),
	)
	return n, nil
}

// Similar returns up to limit German headwords similar to word.
func (d *Dictionary) Similar(ctx context.Context, word string, limit int) ([]embedding.Hit, error) {
	if d.ranker == nil {
		return nil, ErrNoStore
	}
	return d.ranker.Related(ctx, word, limit)
}

// Close closes the archives and the embedding store.
func (d *Dictionary) Close() error {
	d.closeOnce.Do(func() {
		var errs []error
		for _, c := range []interface{ Close() error }{d.german, d.english} {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if d.store != nil {
			if err := d.store.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		d.closeErr = errors.Join(errs...)
	})
	return d.closeErr
}
