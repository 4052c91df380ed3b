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
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-woerterbuch/config"
	"github.com/ianlewis/go-woerterbuch/gender"
	"github.com/ianlewis/go-woerterbuch/internal/testutil"
	"github.com/ianlewis/go-woerterbuch/langdetect"
	"github.com/ianlewis/go-woerterbuch/search"
)

var deuEng = []testutil.Entry{
	{Headword: "Apfel", Text: "Apfel /ˈapfl̩/ <masc, n, sg>\napple\n\"Der Apfel ist rot.\" - The apple is red.\n"},
	{Headword: "Haus", Text: "Haus /haʊs/ <neut, n, sg>\nhouse; home\n"},
	{Headword: "murmeln", Text: "murmeln /ˈmʊʁml̩n/ <vi>\nto mutter; to murmur\n"},
	{Headword: "Mutter", Text: "Mutter /ˈmʊtɐ/ <fem, n, sg>\nmother; mum\nnut (for a screw)\n"},
	{Headword: "Zeitung", Text: "Zeitung /ˈtsaɪ̯tʊŋ/\nnewspaper; paper\n"},
}

var engDeu = []testutil.Entry{
	{Headword: "apple", Text: "apple /ˈæpl/ <n>\nApfel {m}\n"},
	{Headword: "mother", Text: "mother /ˈmʌðə/ <n>\nMutter {f}\nMama {f}\n"},
	{Headword: "mutter", Text: "mutter /ˈmʌtə/ <v>\nmurmeln\n"},
}

// makeDataDir lays the archives out the way FreeDict distributes them, one
// directory per archive.
func makeDataDir(t *testing.T, english bool) string {
	t.Helper()
	dir := t.TempDir()
	for name, entries := range map[string][]testutil.Entry{
		GermanEnglish: deuEng,
		EnglishGerman: engDeu,
	} {
		if name == EnglishGerman && !english {
			continue
		}
		sub := filepath.Join(dir, name)
		if err := os.Mkdir(sub, 0o700); err != nil {
			t.Fatal(err)
		}
		testutil.MakeArchive(t, sub, name, entries, &testutil.MakeArchiveOptions{DictZip: true})
	}
	return dir
}

func open(t *testing.T, dir string, opts *Options) *Dictionary {
	t.Helper()
	d, err := Open(context.Background(), dir, opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return d
}

func TestOpen_Search(t *testing.T) {
	t.Parallel()

	d := open(t, makeDataDir(t, true), nil)
	ctx := context.Background()

	res, err := d.Search(ctx, "Apfel", search.Preference{Source: langdetect.German, Target: langdetect.English})
	if err != nil {
		t.Fatalf("Search(Apfel): %v", err)
	}
	if len(res.Groups) == 0 {
		t.Fatalf("Search(Apfel): no groups")
	}
	apfel := res.Groups[0]
	if diff := cmp.Diff([]string{"Apfel", "apple", "der"}, []string{apfel.Headword, apfel.Translations[0], apfel.Gender.Article()}); diff != "" {
		t.Errorf("Search(Apfel) (-want, +got):\n%s", diff)
	}

	res, err = d.Search(ctx, "mutter", search.Preference{})
	if err != nil {
		t.Fatalf("Search(mutter): %v", err)
	}
	if len(res.Groups) == 0 {
		t.Fatalf("Search(mutter): no groups")
	}
	mutter := res.Groups[0]
	if diff := cmp.Diff([]string{"Mutter", "mother"}, []string{mutter.Headword, mutter.Translations[0]}); diff != "" {
		t.Errorf("Search(mutter) (-want, +got):\n%s", diff)
	}
	if got, want := mutter.Gender, gender.Feminine; got != want {
		t.Errorf("Search(mutter) gender: want %v, got %v", want, got)
	}
}

func TestOpen_OneArchive(t *testing.T) {
	t.Parallel()

	d := open(t, makeDataDir(t, false), nil)

	res, err := d.Search(context.Background(), "Haus", search.Preference{Source: langdetect.German})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := headwords(res.Groups); len(got) == 0 || got[0] != "Haus" {
		t.Errorf("Search(Haus): got %v", got)
	}
	if err := d.English().Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if got := d.English().Len(); got != 0 {
		t.Errorf("English().Len: got %d, want 0", got)
	}
}

func TestOpen_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dir  string
		err  error
	}{
		{
			name: "empty",
			dir:  t.TempDir(),
			err:  ErrNoArchives,
		},
		{
			name: "missing",
			dir:  filepath.Join(t.TempDir(), "missing"),
			err:  fs.ErrNotExist,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Open(context.Background(), test.dir, nil)
			if diff := cmp.Diff(test.err, err, cmpopts.EquateErrors()); diff != "" {
				t.Errorf("Open (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictionary_Suggest(t *testing.T) {
	t.Parallel()

	d := open(t, makeDataDir(t, true), nil)
	ctx := context.Background()

	tests := []struct {
		prefix string
		limit  int
		want   []string
	}{
		{"ap", 10, []string{"Apfel", "apple"}},
		{"ap", 1, []string{"Apfel"}},
		{"ap", 0, []string{}},
		{"xyz", 10, []string{}},
	}

	for _, test := range tests {
		if diff := cmp.Diff(test.want, d.Suggest(ctx, test.prefix, test.limit)); diff != "" {
			t.Errorf("Suggest(%q, %d) (-want, +got):\n%s", test.prefix, test.limit, diff)
		}
	}
}

func TestDictionary_Gender(t *testing.T) {
	t.Parallel()

	d := open(t, makeDataDir(t, true), nil)
	ctx := context.Background()

	got, err := d.Gender(ctx, "Mutter")
	if err != nil {
		t.Fatalf("Gender(Mutter): %v", err)
	}
	want := gender.Result{Gender: gender.Feminine, Confidence: 1, Method: gender.MethodExplicit}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Gender(Mutter) (-want, +got):\n%s", diff)
	}

	got, err = d.Gender(ctx, "Zeitung")
	if err != nil {
		t.Fatalf("Gender(Zeitung): %v", err)
	}
	if got.Gender != gender.Feminine {
		t.Errorf("Gender(Zeitung): want %v, got %v", gender.Feminine, got.Gender)
	}
}

func TestDictionary_Embeddings(t *testing.T) {
	t.Parallel()

	dir := makeDataDir(t, true)
	d := open(t, dir, &Options{
		EmbeddingStore: filepath.Join(t.TempDir(), "embeddings.db"),
	})
	ctx := context.Background()

	n, err := d.ImportEmbeddings(ctx)
	if err != nil {
		t.Fatalf("ImportEmbeddings: %v", err)
	}
	if n != len(deuEng) {
		t.Errorf("ImportEmbeddings: got %d, want %d", n, len(deuEng))
	}

	hits, err := d.Similar(ctx, "Zeitung", 1)
	if err != nil {
		t.Fatalf("Similar: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "Zeitung" {
		t.Errorf("Similar(Zeitung): got %v", hits)
	}
}

func TestDictionary_NoStore(t *testing.T) {
	t.Parallel()

	d := open(t, makeDataDir(t, true), nil)
	ctx := context.Background()

	if _, err := d.ImportEmbeddings(ctx); !errors.Is(err, ErrNoStore) {
		t.Errorf("ImportEmbeddings: want %v, got %v", ErrNoStore, err)
	}
	if _, err := d.Similar(ctx, "Apfel", 5); !errors.Is(err, ErrNoStore) {
		t.Errorf("Similar: want %v, got %v", ErrNoStore, err)
	}
}

func TestDictionary_Close(t *testing.T) {
	t.Parallel()

	d, err := Open(context.Background(), makeDataDir(t, true), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Data: config.DataConfig{MaxTranslations: 8, MaxExamples: 2},
		Search: config.SearchConfig{
			CacheSize:       32,
			CacheTTL:        time.Minute,
			DisableFallback: true,
			FallbackTimeout: time.Second,
			GenderThreshold: 0.8,
			RelatedLimit:    3,
			ReverseLimit:    4,
		},
		Gender: config.GenderConfig{
			CompoundConfidence: 0.9,
			MinConfidence:      0.6,
		},
		Embedding: config.EmbeddingConfig{
			Model:         "model.bin",
			Store:         "embeddings.db",
			MinSimilarity: 0.4,
			StopAbove:     0.9,
			PageSize:      50,
		},
	}

	opts := OptionsFromConfig(cfg, nil)

	got := []any{
		opts.MaxTranslations, opts.MaxExamples, opts.DisableFallback,
		opts.EmbeddingModel, opts.EmbeddingStore,
		opts.Search.CacheSize, opts.Search.CacheTTL, opts.Search.FallbackTimeout,
		opts.Search.GenderThreshold, opts.Search.RelatedLimit, opts.Search.ReverseLimit,
		opts.Gender.CompoundConfidence, opts.Gender.MinConfidence, opts.Gender.CacheSize,
		opts.TopK.K, opts.TopK.MinSimilarity, opts.TopK.StopAbove, opts.TopK.PageSize,
	}
	want := []any{
		8, 2, true,
		"model.bin", "embeddings.db",
		32, time.Minute, time.Second,
		0.8, 3, 4,
		0.9, 0.6, gender.DefaultOptions.CacheSize,
		10, 0.4, 0.9, 50,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("OptionsFromConfig (-want, +got):\n%s", diff)
	}
}

func headwords(groups []*search.Group) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Headword)
	}
	return out
}
