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

// Package archive reads one direction of a bilingual dictd dictionary,
// for example deu-eng, and parses its entries.
//
// The index is loaded lazily on first use. An archive whose files are
// missing or corrupt behaves as an empty dictionary; the cause is logged and
// available from Err.
package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/ianlewis/go-woerterbuch/dict"
	"github.com/ianlewis/go-woerterbuch/idx"
	"github.com/ianlewis/go-woerterbuch/internal/folding"
	"github.com/ianlewis/go-woerterbuch/langdetect"
	"github.com/ianlewis/go-woerterbuch/reverse"
)

var (
	// ErrUnavailable is returned by Err when the archive files could not be
	// loaded.
	ErrUnavailable = errors.New("archive unavailable")

	// ErrClosed is returned when reading from a closed archive.
	ErrClosed = errors.New("archive closed")
)

// reverseCheckEvery is how many entries are streamed into the reverse index
// between context checks.
const reverseCheckEvery = 1000

// Options are options for an Archive.
type Options struct {
	// Source is the language of the headwords.
	Source langdetect.Language

	// Target is the language of the translations.
	Target langdetect.Language

	// HTML indicates that entry text is HTML.
	HTML bool

	// MaxTranslations is the maximum number of translations per entry.
	MaxTranslations int

	// MaxExamples is the maximum number of examples per entry.
	MaxExamples int

	// Scanner are options for the index scanner.
	Scanner *idx.ScannerOptions

	// Logger is the logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultOptions are the options for a German to English archive.
var DefaultOptions = &Options{
	Source:          langdetect.German,
	Target:          langdetect.English,
	MaxTranslations: 16,
	MaxExamples:     5,
}

// Info is the metadata stored in the archive.
type Info struct {
	Short       string
	URL         string
	Description string
}

// Archive is one direction of a dictionary. An Archive is safe for
// concurrent use.
type Archive struct {
	base string
	opts Options
	log  *slog.Logger

	once   sync.Once
	loaded atomic.Bool
	idx    *idx.Idx
	dict   *dict.Dict
	err    error

	// The reverse index is built under a mutex so a cancelled build can be
	// retried.
	revMu sync.Mutex
	rev   *reverse.Reverse

	closeMu sync.RWMutex
	closed  bool
}

// New returns an Archive reading basePath.index and basePath.dict.dz. No
// files are opened until the first lookup or Init.
func New(basePath string, options *Options) *Archive {
	if options == nil {
		options = DefaultOptions
	}
	opts := *options
	if opts.MaxTranslations <= 0 {
		opts.MaxTranslations = DefaultOptions.MaxTranslations
	}
	if opts.MaxExamples <= 0 {
		opts.MaxExamples = DefaultOptions.MaxExamples
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Archive{
		base: basePath,
		opts: opts,
		log: log.With(
			slog.String("component", "archive"),
			slog.String("archive", basePath),
		),
	}
}

// Source returns the language of the headwords.
func (a *Archive) Source() langdetect.Language {
	return a.opts.Source
}

// Target returns the language of the translations.
func (a *Archive) Target() langdetect.Language {
	return a.opts.Target
}

func (a *Archive) folder() folding.Func {
	if a.opts.Source == langdetect.English {
		return folding.English
	}
	return folding.German
}

// Init loads the index. It is safe to call more than once; only the first
// call does any work. A failure to load leaves the archive empty and is
// reported by Err rather than returned.
func (a *Archive) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.once.Do(func() {
		a.err = a.load()
		if a.err != nil {
			a.log.WarnContext(ctx, "archive unavailable", slog.Any("error", a.err))
			return
		}
		if skipped := a.idx.Skipped(); len(skipped) > 0 {
			a.log.WarnContext(ctx, "skipped malformed index records",
				slog.Int("count", len(skipped)),
				slog.Any("first", skipped[0]),
			)
		}
		a.loaded.Store(true)
		a.log.DebugContext(ctx, "archive loaded", slog.Int("entries", a.idx.Len()))
	})
	return nil
}

func (a *Archive) load() error {
	r, err := idx.Open(a.base)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	i, err := idx.New(r, &idx.Options{
		Folder:  a.folder(),
		Scanner: a.opts.Scanner,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	d, err := dict.Open(a.base, &dict.Options{HTML: a.opts.HTML})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	a.idx, a.dict = i, d
	return nil
}

// ready initializes the archive and reports whether it has an index.
func (a *Archive) ready(ctx context.Context) (bool, error) {
	if err := a.Init(ctx); err != nil {
		return false, err
	}
	return a.idx != nil, nil
}

// Err returns the reason the archive could not be loaded, if any.
func (a *Archive) Err() error {
	return a.err
}

// Len returns the number of entries. It is zero until the archive is
// initialized and when the archive is unavailable.
func (a *Archive) Len() int {
	if !a.loaded.Load() {
		return 0
	}
	return a.idx.Len()
}

// Normalize returns the normalized form of a headword or query.
func (a *Archive) Normalize(s string) string {
	return folding.String(a.folder(), s)
}

// Lookup returns the entry whose normalized headword equals the normalized
// word, or nil.
func (a *Archive) Lookup(ctx context.Context, word string) (*Entry, error) {
	ok, err := a.ready(ctx)
	if !ok || err != nil {
		return nil, err
	}
	w := a.idx.Lookup(word)
	if w == nil {
		return nil, nil
	}
	return a.read(w)
}

// Suggest returns up to limit headwords starting with prefix, shortest
// first. The result is never nil.
func (a *Archive) Suggest(ctx context.Context, prefix string, limit int) []string {
	if ok, err := a.ready(ctx); !ok || err != nil {
		return []string{}
	}
	words := a.idx.Prefix(prefix, limit)
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, w.Word)
	}
	return out
}

// LookupByTranslation returns up to limit entries with a translation, or a
// token of a translation, equal to word. Entries matching a whole
// translation come first. The reverse index is built on first use.
func (a *Archive) LookupByTranslation(ctx context.Context, word string, limit int) ([]*Entry, error) {
	ok, err := a.ready(ctx)
	if !ok || err != nil {
		return nil, err
	}
	rev, err := a.reverse(ctx)
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	for _, m := range rev.Search(word, limit) {
		w := a.idx.Lookup(m.Headword)
		if w == nil {
			continue
		}
		e, err := a.read(w)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Walk calls fn for each entry in index order. Entries that cannot be read
// are skipped. Walk stops at the first error returned by fn.
func (a *Archive) Walk(ctx context.Context, fn func(*Entry) error) error {
	ok, err := a.ready(ctx)
	if !ok || err != nil {
		return err
	}
	for i, w := range a.idx.Words() {
		if i%reverseCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		e, err := a.read(w)
		if errors.Is(err, ErrClosed) {
			return err
		}
		if err != nil {
			a.log.DebugContext(ctx, "skipping entry", slog.String("headword", w.Word), slog.Any("error", err))
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// Headwords calls fn for each headword in index order without reading the
// entries. Headwords stops at the first error returned by fn.
func (a *Archive) Headwords(ctx context.Context, fn func(string) error) error {
	ok, err := a.ready(ctx)
	if !ok || err != nil {
		return err
	}
	for i, w := range a.idx.Words() {
		if i%reverseCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := fn(w.Word); err != nil {
			return err
		}
	}
	return nil
}

func (a *Archive) reverse(ctx context.Context) (*reverse.Reverse, error) {
	a.revMu.Lock()
	defer a.revMu.Unlock()
	if a.rev != nil {
		return a.rev, nil
	}

	b := reverse.NewBuilder(&reverse.Options{Folder: folderFor(a.opts.Target)})
	for i, w := range a.idx.Words() {
		if i%reverseCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		e, err := a.read(w)
		if err != nil {
			a.log.DebugContext(ctx, "skipping entry in reverse index",
				slog.String("headword", w.Word),
				slog.Any("error", err),
			)
			continue
		}
		b.Add(e.Headword, e.Translations)
	}
	a.rev = b.Build()
	a.log.DebugContext(ctx, "reverse index built", slog.Int("terms", a.rev.Len()))
	return a.rev, nil
}

func folderFor(lang langdetect.Language) folding.Func {
	if lang == langdetect.German {
		return folding.German
	}
	return folding.English
}

// Info returns the metadata records of the archive.
func (a *Archive) Info(ctx context.Context) (Info, error) {
	var info Info
	ok, err := a.ready(ctx)
	if !ok || err != nil {
		return info, err
	}
	for name, dst := range map[string]*string{
		"00databaseshort": &info.Short,
		"00databaseurl":   &info.URL,
		"00databaseinfo":  &info.Description,
	} {
		w := a.idx.Info(name)
		if w == nil {
			w = a.idx.Info(strings.Replace(name, "00database", "00-database-", 1))
		}
		if w == nil {
			continue
		}
		text, err := a.text(w)
		if err != nil {
			return info, err
		}
		*dst = infoValue(name, text)
	}
	return info, nil
}

// infoValue strips the record name that dictfmt repeats on the first line.
func infoValue(name, text string) string {
	text = strings.TrimSpace(text)
	first, rest, _ := strings.Cut(text, "\n")
	if strings.HasPrefix(strings.TrimSpace(first), name) {
		first = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(first), name))
	}
	return strings.TrimSpace(strings.Join([]string{first, rest}, "\n"))
}

func (a *Archive) text(w *idx.Word) (string, error) {
	a.closeMu.RLock()
	defer a.closeMu.RUnlock()
	if a.closed {
		return "", ErrClosed
	}
	dw, err := a.dict.Word(w)
	if err != nil {
		return "", fmt.Errorf("reading entry: %w", err)
	}
	return dw.String(), nil
}

func (a *Archive) read(w *idx.Word) (*Entry, error) {
	text, err := a.text(w)
	if err != nil {
		return nil, err
	}
	return a.parse(w.Word, text), nil
}

// Close closes the archive files. A closed archive is never loaded.
func (a *Archive) Close() error {
	// Wait for a load in progress, or prevent one.
	a.once.Do(func() {})

	a.closeMu.Lock()
	defer a.closeMu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	if a.dict == nil {
		return nil
	}
	if err := a.dict.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	return nil
}
