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

// Package testutil builds dictd dictionaries for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-woerterbuch/idx"
)

// Entry is a dictionary entry to be written to a test dictionary.
type Entry struct {
	Headword string
	Text     string
}

// MakeArchiveOptions are options for MakeArchive.
type MakeArchiveOptions struct {
	// DictZip indicates that the payload should be compressed with dictzip
	// and written to a .dict.dz file. Otherwise a plain .dict is written.
	DictZip bool

	// Info are 00database metadata records, keyed by record name.
	Info map[string]string

	// ExtraIndex is appended verbatim to the .index file. It is used to
	// inject malformed records.
	ExtraIndex string
}

// MakeDict lays the entries out back to back and returns the payload along
// with the matching index records.
func MakeDict(entries []Entry) ([]byte, []*idx.Word) {
	var b []byte
	var words []*idx.Word
	for _, e := range entries {
		words = append(words, &idx.Word{
			Word:   e.Headword,
			Offset: uint64(len(b)),
			//nolint:gosec // test data is small.
			Size: uint32(len(e.Text)),
		})
		b = append(b, e.Text...)
	}
	return b, words
}

// MakeIndex renders index records as .index file contents.
func MakeIndex(words []*idx.Word) []byte {
	var b []byte
	for _, w := range words {
		b = append(b, w.Word...)
		b = append(b, '\t')
		b = append(b, idx.EncodeNumber(w.Offset)...)
		b = append(b, '\t')
		b = append(b, idx.EncodeNumber(uint64(w.Size))...)
		b = append(b, '\n')
	}
	return b
}

// MakeArchive writes name.index and name.dict(.dz) into dir and returns the
// base path of the dictionary.
func MakeArchive(t *testing.T, dir, name string, entries []Entry, opts *MakeArchiveOptions) string {
	t.Helper()
	if opts == nil {
		opts = &MakeArchiveOptions{}
	}

	all := make([]Entry, 0, len(opts.Info)+len(entries))
	for k, v := range opts.Info {
		all = append(all, Entry{Headword: k, Text: v})
	}
	all = append(all, entries...)

	payload, words := MakeDict(all)
	index := MakeIndex(words)
	index = append(index, opts.ExtraIndex...)

	base := filepath.Join(dir, name)
	if err := os.WriteFile(base+".index", index, 0o600); err != nil {
		t.Fatal(err)
	}

	if !opts.DictZip {
		if err := os.WriteFile(base+".dict", payload, 0o600); err != nil {
			t.Fatal(err)
		}
		return base
	}

	f, err := os.Create(base + ".dict.dz")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := z.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := z.Close(); err != nil {
		t.Fatal(err)
	}

	return base
}
