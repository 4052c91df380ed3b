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

// Package reverse implements an index from the translations of dictionary
// entries back to their headwords.
package reverse

import (
	"strings"
	"unicode"

	"github.com/ianlewis/go-woerterbuch/internal/folding"
	"github.com/ianlewis/go-woerterbuch/internal/index"
)

// Word links a translation term to the headword whose entry contains it.
type Word struct {
	// Headword is the headword of the entry.
	Headword string

	// Translation is the full translation the term was taken from.
	Translation string

	// Whole is true if the term is the whole translation rather than a
	// single token of it.
	Whole bool
}

type foldedWord struct {
	folded string
	word   *Word
}

func (w *foldedWord) String() string {
	return w.folded
}

// Options are options for building a reverse index.
type Options struct {
	// Folder returns a transformer that normalizes translation terms and
	// queries.
	Folder folding.Func

	// MinTokenLen is the shortest token, in runes, indexed on its own.
	MinTokenLen int
}

// DefaultOptions are the default options.
var DefaultOptions = &Options{
	Folder:      folding.English,
	MinTokenLen: 3,
}

// stopwords are never indexed as single tokens.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"der": true, "die": true, "das": true, "und": true, "ein": true, "eine": true,
	"sich": true, "etw": true, "jdn": true, "jdm": true,
}

// Reverse is an immutable reverse index.
type Reverse struct {
	index *index.Index[*foldedWord]

	folder folding.Func
}

// Builder collects translations and builds a Reverse index.
type Builder struct {
	opts  Options
	words []*foldedWord
}

// NewBuilder returns a new Builder.
func NewBuilder(options *Options) *Builder {
	if options == nil {
		options = DefaultOptions
	}
	opts := *options
	if opts.Folder == nil {
		opts.Folder = DefaultOptions.Folder
	}
	if opts.MinTokenLen <= 0 {
		opts.MinTokenLen = DefaultOptions.MinTokenLen
	}
	return &Builder{opts: opts}
}

// Add indexes the translations of the entry with the given headword. Each
// translation is indexed whole and by each of its tokens.
func (b *Builder) Add(headword string, translations []string) {
	for _, tr := range translations {
		whole := folding.String(b.opts.Folder, tr)
		if whole == "" {
			continue
		}
		b.words = append(b.words, &foldedWord{
			folded: whole,
			word:   &Word{Headword: headword, Translation: tr, Whole: true},
		})

		tokens := strings.FieldsFunc(whole, func(r rune) bool {
			return !unicode.IsLetter(r) && r != '-' && r != '\''
		})
		if len(tokens) < 2 {
			continue
		}
		for _, tok := range tokens {
			if len([]rune(tok)) < b.opts.MinTokenLen || stopwords[tok] {
				continue
			}
			b.words = append(b.words, &foldedWord{
				folded: tok,
				word:   &Word{Headword: headword, Translation: tr},
			})
		}
	}
}

// Build returns the reverse index. The Builder should not be used afterwards.
func (b *Builder) Build() *Reverse {
	r := &Reverse{
		index:  index.NewIndex(b.words),
		folder: b.opts.Folder,
	}
	b.words = nil
	return r
}

// Len returns the number of indexed terms.
func (r *Reverse) Len() int {
	return r.index.Len()
}

// Search returns the headwords with a translation or translation token
// equal to the normalized query. Whole translation matches come first. Each
// headword is returned once.
func (r *Reverse) Search(query string, limit int) []*Word {
	q := folding.String(r.folder, query)
	if q == "" || limit <= 0 {
		return nil
	}

	matches := r.index.Search(q)
	seen := make(map[string]bool, len(matches))
	var out []*Word
	for _, pass := range []bool{true, false} {
		for _, m := range matches {
			if m.word.Whole != pass || seen[m.word.Headword] {
				continue
			}
			seen[m.word.Headword] = true
			out = append(out, m.word)
			if len(out) == limit {
				return out
			}
		}
	}
	return out
}
