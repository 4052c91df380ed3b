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

package idx

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"unicode/utf8"

	"github.com/ianlewis/go-woerterbuch/internal/folding"
	"github.com/ianlewis/go-woerterbuch/internal/index"
)

// Options are options for building an in-memory index.
type Options struct {
	// Folder returns the transformer producing the normalized form of
	// headwords and queries.
	Folder folding.Func

	// Scanner are options for the underlying Scanner.
	Scanner *ScannerOptions
}

// DefaultOptions are the default index options. Keys are only whitespace
// folded.
var DefaultOptions = &Options{
	Folder:  folding.Nop,
	Scanner: DefaultScannerOptions,
}

type foldedWord struct {
	folded string
	word   *Word
}

func (w *foldedWord) String() string {
	return w.folded
}

// Idx is an immutable in-memory index of an .index file. Keys are the
// normalized headwords; when a normalized headword occurs more than once
// the first record wins.
type Idx struct {
	folder folding.Func

	// words holds the unique records in file order.
	words  []*Word
	byKey  map[string]*Word
	sorted *index.Index[*foldedWord]

	info    map[string]*Word
	skipped []error
}

// New reads the index from r and closes it.
func New(r io.ReadCloser, options *Options) (*Idx, error) {
	if options == nil {
		options = DefaultOptions
	}
	folder := options.Folder
	if folder == nil {
		folder = DefaultOptions.Folder
	}

	s := NewScanner(r, options.Scanner)
	defer s.Close()

	idx := &Idx{
		folder: folder,
		byKey:  make(map[string]*Word),
		info:   make(map[string]*Word),
	}

	var folded []*foldedWord
	for s.Scan() {
		w := s.Word()
		if w.IsInfo() {
			if _, ok := idx.info[w.Word]; !ok {
				idx.info[w.Word] = w
			}
			continue
		}

		key := folding.String(folder, w.Word)
		if key == "" {
			continue
		}
		if _, ok := idx.byKey[key]; ok {
			continue
		}
		idx.byKey[key] = w
		idx.words = append(idx.words, w)
		folded = append(folded, &foldedWord{folded: key, word: w})
	}
	idx.skipped = s.Skipped()
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}

	idx.sorted = index.NewIndex(folded)
	return idx, nil
}

// Normalize returns the normalized form of s used as a key by the index.
func (idx *Idx) Normalize(s string) string {
	return folding.String(idx.folder, s)
}

// Lookup returns the record whose normalized headword equals the normalized
// query, or nil.
func (idx *Idx) Lookup(query string) *Word {
	return idx.byKey[idx.Normalize(query)]
}

// Prefix returns up to limit records whose normalized headword starts with
// the normalized prefix. Results are ordered by the length of the
// normalized headword and then lexicographically. The result is never nil.
func (idx *Idx) Prefix(prefix string, limit int) []*Word {
	if limit <= 0 {
		return []*Word{}
	}
	p := idx.Normalize(prefix)
	if p == "" {
		return []*Word{}
	}

	matches := slices.Clone(idx.sorted.Prefix(p))
	slices.SortStableFunc(matches, func(a, b *foldedWord) int {
		if c := cmp.Compare(utf8.RuneCountInString(a.folded), utf8.RuneCountInString(b.folded)); c != 0 {
			return c
		}
		return cmp.Compare(a.folded, b.folded)
	})

	n := min(limit, len(matches))
	words := make([]*Word, 0, n)
	for _, m := range matches[:n] {
		words = append(words, m.word)
	}
	return words
}

// Words returns the unique records in file order.
func (idx *Idx) Words() []*Word {
	return slices.Clone(idx.words)
}

// Len returns the number of unique records.
func (idx *Idx) Len() int {
	return len(idx.words)
}

// Info returns the 00database metadata record with the given name, for
// example "00databaseshort", or nil.
func (idx *Idx) Info(name string) *Word {
	return idx.info[name]
}

// Skipped returns the errors for malformed records that were skipped while
// building the index.
func (idx *Idx) Skipped() []error {
	return slices.Clone(idx.skipped)
}
